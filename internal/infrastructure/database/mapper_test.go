package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"localesync/internal/domain/entities"
)

func TestRowsToNode(t *testing.T) {
	rows := []overrideRow{
		{Path: []string{"nav", "home"}, Value: "Startseite"},
		{Path: []string{"title"}, Value: "Filme"},
		{Path: []string{"nav", "about"}, Value: "Über uns"},
		{Path: nil, Value: "skipped"},
	}

	n := rowsToNode(rows)

	assert.Equal(t, []string{"nav", "title"}, n.Keys())
	assert.Equal(t, []string{"home", "about"}, n.Child("nav").Keys())
	v, ok := n.Lookup(entities.Path{"nav", "about"})
	require.True(t, ok)
	assert.Equal(t, entities.Leaf("Über uns"), v)
}

func TestRowsToNode_LaterRowWins(t *testing.T) {
	n := rowsToNode([]overrideRow{
		{Path: []string{"nav"}, Value: "Navigation"},
		{Path: []string{"nav", "home"}, Value: "Startseite"},
		{Path: []string{"footer", "links"}, Value: "Links"},
		{Path: []string{"footer"}, Value: "Fußzeile"},
	})

	v, ok := n.Lookup(entities.Path{"nav", "home"})
	require.True(t, ok)
	assert.Equal(t, entities.Leaf("Startseite"), v)

	text, ok := n.Text("footer")
	require.True(t, ok)
	assert.Equal(t, "Fußzeile", text)
}

func TestNodeToRows(t *testing.T) {
	batch, err := entities.ParseDocument([]byte(`{"nav": {"home": "Startseite", "n": 3}, "title": "Filme"}`))
	require.NoError(t, err)

	rows := nodeToRows(batch)

	assert.Equal(t, []overrideRow{
		{Path: []string{"nav", "home"}, Value: "Startseite"},
		{Path: []string{"title"}, Value: "Filme"},
	}, rows)
	want, err := entities.ParseDocument([]byte(`{"nav": {"home": "Startseite"}, "title": "Filme"}`))
	require.NoError(t, err)
	assert.True(t, entities.Equal(want, rowsToNode(rows)))
}
