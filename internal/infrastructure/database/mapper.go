package database

import "localesync/internal/domain/entities"

// overrideRow is one stored override: the text for a single key path.
type overrideRow struct {
	Path  []string
	Value string
}

// rowsToNode rebuilds an override batch in row order. A later row wins when
// two rows disagree on whether a path is a leaf or a subtree.
func rowsToNode(rows []overrideRow) *entities.Node {
	root := entities.NewNode()
	for _, r := range rows {
		if len(r.Path) == 0 {
			continue
		}
		node := root
		for _, key := range r.Path[:len(r.Path)-1] {
			child := node.Child(key)
			if child == nil {
				child = entities.NewNode()
				node.Set(key, child)
			}
			node = child
		}
		node.Set(r.Path[len(r.Path)-1], entities.Leaf(r.Value))
	}
	return root
}

// nodeToRows flattens the text leaves of batch. Raw leaves are not
// translations and are skipped.
func nodeToRows(batch *entities.Node) []overrideRow {
	var rows []overrideRow
	batch.Walk(func(p entities.Path, v entities.Tree) {
		if leaf, ok := v.(entities.Leaf); ok {
			rows = append(rows, overrideRow{Path: p, Value: string(leaf)})
		}
	})
	return rows
}
