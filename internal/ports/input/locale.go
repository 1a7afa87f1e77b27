package input

import (
	"context"

	"localesync/internal/domain/entities"
	"localesync/internal/ports/output"
)

type LocaleUseCase interface {
	Scaffold(ctx context.Context, reference string, targets []entities.Locale) (*output.RunSummary, error)
	Sync(ctx context.Context, reference string, targets []entities.Locale) (*output.RunSummary, error)
	Check(ctx context.Context, reference string, targets []entities.Locale) ([]entities.Coverage, error)
	ImportOverrides(ctx context.Context, code string, batch *entities.Node) (int, error)
}
