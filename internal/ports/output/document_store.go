package output

import (
	"context"

	"localesync/internal/domain/entities"
)

// DocumentStore loads and persists locale documents by locale code.
type DocumentStore interface {
	// Load returns the document for code. A missing document yields an error
	// wrapping domain.ErrWorkingDocNotFound.
	Load(ctx context.Context, code string) (*entities.Node, error)
	Save(ctx context.Context, code string, doc *entities.Node) error
}
