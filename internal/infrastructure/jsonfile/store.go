package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"localesync/internal/domain"
	"localesync/internal/domain/entities"
	"localesync/internal/ports/output"
)

var (
	_ output.DocumentStore  = (*Store)(nil)
	_ output.OverrideSource = (*OverrideDir)(nil)
)

// Store keeps one <code>.json document per locale in a directory.
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Path returns the file backing code.
func (s *Store) Path(code string) string {
	return filepath.Join(s.dir, code+".json")
}

func (s *Store) Load(_ context.Context, code string) (*entities.Node, error) {
	return readDocument(s.Path(code))
}

// Save writes doc atomically: a temp file in the same directory is renamed
// over the target.
func (s *Store) Save(_ context.Context, code string, doc *entities.Node) error {
	data, err := Encode(doc)
	if err != nil {
		return fmt.Errorf("encode %s: %w", code, err)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", s.dir, err)
	}
	tmp, err := os.CreateTemp(s.dir, "."+code+".*.json")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", code, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), s.Path(code)); err != nil {
		return fmt.Errorf("rename to %s: %w", s.Path(code), err)
	}
	return nil
}

// OverrideDir reads override batches from <dir>/<code>.json. A locale
// without a file has no overrides.
type OverrideDir struct {
	dir string
}

func NewOverrideDir(dir string) *OverrideDir {
	return &OverrideDir{dir: dir}
}

func (o *OverrideDir) Overrides(_ context.Context, code string) (*entities.Node, error) {
	doc, err := readDocument(filepath.Join(o.dir, code+".json"))
	if errors.Is(err, domain.ErrWorkingDocNotFound) {
		return entities.NewNode(), nil
	}
	return doc, err
}

// Encode renders doc with two-space indentation, keys in document order,
// HTML and non-ASCII characters unescaped, and a trailing newline.
func Encode(doc *entities.Node) ([]byte, error) {
	if doc == nil {
		doc = entities.NewNode()
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ReadFile decodes the document at path.
func ReadFile(path string) (*entities.Node, error) {
	return readDocument(path)
}

func readDocument(path string) (*entities.Node, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", domain.ErrWorkingDocNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	doc, err := entities.ParseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return doc, nil
}
