package application

import "localesync/internal/domain/entities"

// Measure compares a working document with the reference. A nil working
// document reports every reference leaf as missing.
func Measure(reference, working *entities.Node) entities.Coverage {
	var c entities.Coverage
	reference.Walk(func(p entities.Path, v entities.Tree) {
		if _, isNode := v.(*entities.Node); isNode {
			return
		}
		w, ok := working.Lookup(p)
		if _, isNode := w.(*entities.Node); !ok || isNode {
			c.Missing = append(c.Missing, p)
			if _, isText := v.(entities.Leaf); isText {
				c.Total++
			}
			return
		}
		if _, isText := v.(entities.Leaf); !isText {
			return
		}
		c.Total++
		if entities.Equal(v, w) {
			c.Untranslated = append(c.Untranslated, p)
		} else {
			c.Translated++
		}
	})
	working.Walk(func(p entities.Path, v entities.Tree) {
		if _, isNode := v.(*entities.Node); isNode {
			return
		}
		if r, ok := reference.Lookup(p); !ok || isNodeTree(r) {
			c.Stale = append(c.Stale, p)
		}
	})
	return c
}

func isNodeTree(t entities.Tree) bool {
	_, ok := t.(*entities.Node)
	return ok
}
