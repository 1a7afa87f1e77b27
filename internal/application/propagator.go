package application

import "localesync/internal/domain/entities"

// Propagate returns a copy of reference in which every string leaf found at
// the same path in overrides replaces the reference value. Keys that exist
// only in overrides are dropped. Neither input is modified.
func Propagate(reference, overrides *entities.Node) *entities.Node {
	return Merge(reference, nil, overrides)
}

// Merge builds a working document shaped exactly like reference. At each
// leaf it takes, in order of preference, the string from overrides, a
// non-empty string from existing, and finally the reference value.
func Merge(reference, existing, overrides *entities.Node) *entities.Node {
	out := entities.NewNode()
	reference.Range(func(key string, v entities.Tree) bool {
		out.Set(key, mergeValue(key, v, existing, overrides))
		return true
	})
	return out
}

func mergeValue(key string, v entities.Tree, existing, overrides *entities.Node) entities.Tree {
	// A string override wins even where the reference holds a subtree.
	if text, ok := overrides.Text(key); ok {
		return entities.Leaf(text)
	}
	switch v := v.(type) {
	case *entities.Node:
		return Merge(v, existing.Child(key), overrides.Child(key))
	case entities.Leaf:
		if text, ok := existing.Text(key); ok && text != "" {
			return entities.Leaf(text)
		}
		return v
	default:
		return entities.CloneTree(v)
	}
}
