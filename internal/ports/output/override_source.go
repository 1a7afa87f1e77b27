package output

import (
	"context"

	"localesync/internal/domain/entities"
)

// OverrideSource supplies the override batch for one locale. A locale without
// overrides yields an empty node, not an error.
type OverrideSource interface {
	Overrides(ctx context.Context, code string) (*entities.Node, error)
}

// OverrideRepository is an OverrideSource that can also store batches. Import
// replaces whatever batch the locale had before.
type OverrideRepository interface {
	OverrideSource
	Import(ctx context.Context, code string, batch *entities.Node) (int, error)
}
