package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"localesync/internal/domain/entities"
	"localesync/internal/ports/output"
)

var _ output.OverrideRepository = (*OverrideRepository)(nil)

const (
	selectOverridesSQL = `
SELECT key_path, value
FROM locale_overrides
WHERE locale = $1
ORDER BY id`

	deleteOverridesSQL = `
DELETE FROM locale_overrides
WHERE locale = $1`

	insertOverrideSQL = `
INSERT INTO locale_overrides (locale, key_path, value)
VALUES ($1, $2, $3)`
)

// OverrideRepository stores override batches in the locale_overrides table.
type OverrideRepository struct {
	pool *pgxpool.Pool
}

func NewOverrideRepository(pool *pgxpool.Pool) *OverrideRepository {
	return &OverrideRepository{pool: pool}
}

func (r *OverrideRepository) Overrides(ctx context.Context, code string) (*entities.Node, error) {
	rows, err := r.pool.Query(ctx, selectOverridesSQL, code)
	if err != nil {
		return nil, fmt.Errorf("select overrides: %w", err)
	}
	stored, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (overrideRow, error) {
		var o overrideRow
		err := row.Scan(&o.Path, &o.Value)
		return o, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan overrides: %w", err)
	}
	return rowsToNode(stored), nil
}

// Import replaces the stored batch of code with the text leaves of batch in
// one transaction and returns the number of rows written. An empty batch
// clears the locale.
func (r *OverrideRepository) Import(ctx context.Context, code string, batch *entities.Node) (int, error) {
	rows := nodeToRows(batch)

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := tx.SendBatch(ctx, importBatch(code, rows)).Close(); err != nil {
		return 0, fmt.Errorf("replace overrides: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit import: %w", err)
	}
	return len(rows), nil
}

// importBatch clears code and inserts rows in order, so ids follow the
// batch's key order.
func importBatch(code string, rows []overrideRow) *pgx.Batch {
	b := &pgx.Batch{}
	b.Queue(deleteOverridesSQL, code)
	for _, o := range rows {
		b.Queue(insertOverrideSQL, code, o.Path, o.Value)
	}
	return b
}
