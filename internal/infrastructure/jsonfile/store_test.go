package jsonfile_test

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"localesync/internal/domain"
	"localesync/internal/domain/entities"
	"localesync/internal/infrastructure/jsonfile"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestEncode_Format(t *testing.T) {
	doc := entities.NewNode().
		Set("title", entities.Leaf("Movies & <TV>")).
		Set("nav", entities.NewNode().
			Set("home", entities.Leaf("ホーム")).
			Set("empty", entities.NewNode())).
		Set("limit", entities.Raw("20"))

	out, err := jsonfile.Encode(doc)
	require.NoError(t, err)

	want := `{
  "title": "Movies & <TV>",
  "nav": {
    "home": "ホーム",
    "empty": {}
  },
  "limit": 20
}
`
	assert.Equal(t, want, string(out))
}

func TestEncode_LineSeparatorsLiteral(t *testing.T) {
	doc := entities.NewNode().Set("footer", entities.Leaf("line\u2028break\u2029end"))

	out, err := jsonfile.Encode(doc)
	require.NoError(t, err)

	assert.Equal(t, "{\n  \"footer\": \"line\u2028break\u2029end\"\n}\n", string(out))
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := jsonfile.NewStore(filepath.Join(t.TempDir(), "locales"))
	src := `{"b": "Bé", "a": {"y": "Y", "x": "X"}, "flags": [true, false]}`
	doc, err := entities.ParseDocument([]byte(src))
	require.NoError(t, err)

	require.NoError(t, store.Save(ctx, "pt", doc))
	got, err := store.Load(ctx, "pt")

	require.NoError(t, err)
	assert.True(t, entities.Equal(doc, got))
	assert.Equal(t, []string{"b", "a", "flags"}, got.Keys())
	assert.Equal(t, []string{"y", "x"}, got.Child("a").Keys())

	entries, err := os.ReadDir(filepath.Dir(store.Path("pt")))
	require.NoError(t, err)
	require.Len(t, entries, 1, "no temp file left behind")
	assert.Equal(t, "pt.json", entries[0].Name())
}

func TestStore_SaveReplacesExisting(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "de.json"), `{"old": "Alt"}`)
	store := jsonfile.NewStore(dir)

	require.NoError(t, store.Save(ctx, "de", entities.NewNode().Set("new", entities.Leaf("Neu"))))

	data, err := os.ReadFile(filepath.Join(dir, "de.json"))
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"new\": \"Neu\"\n}\n", string(data))
}

func TestStore_LoadMissing(t *testing.T) {
	store := jsonfile.NewStore(t.TempDir())

	_, err := store.Load(context.Background(), "en")

	assert.ErrorIs(t, err, domain.ErrWorkingDocNotFound)
}

func TestStore_LoadMalformed(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "en.json"), `{"nav": {"home": "Home",}}`)
	store := jsonfile.NewStore(dir)

	_, err := store.Load(context.Background(), "en")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMalformedDocument)
	assert.Contains(t, err.Error(), "en.json")
}

func TestStore_LoadStripsBOM(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "en.json"), "\xef\xbb\xbf{\"a\": \"b\"}")
	store := jsonfile.NewStore(dir)

	doc, err := store.Load(context.Background(), "en")

	require.NoError(t, err)
	text, _ := doc.Text("a")
	assert.Equal(t, "b", text)
}

func TestStore_SaveUnwritable(t *testing.T) {
	if runtime.GOOS == "windows" || os.Getuid() == 0 {
		t.Skip("permissions are not enforced")
	}
	dir := t.TempDir()
	require.NoError(t, os.Chmod(dir, 0o555))
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })
	store := jsonfile.NewStore(dir)

	err := store.Save(context.Background(), "de", entities.NewNode())

	assert.Error(t, err)
}

func TestOverrideDir(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "de.json"), `{"nav": {"home": "Startseite"}}`)
	overrides := jsonfile.NewOverrideDir(dir)

	de, err := overrides.Overrides(ctx, "de")
	require.NoError(t, err)
	v, ok := de.Lookup(entities.Path{"nav", "home"})
	require.True(t, ok)
	assert.Equal(t, entities.Leaf("Startseite"), v)

	ja, err := overrides.Overrides(ctx, "ja")
	require.NoError(t, err, "a missing batch is not an error")
	assert.Zero(t, ja.Len())
}
