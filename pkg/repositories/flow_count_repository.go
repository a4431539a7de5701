package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/chatmesh/chatmesh-importer/pkg/database"
	"github.com/chatmesh/chatmesh-importer/pkg/models"
)

// FlowCountRepository provides data access for the denormalized flow
// counters. Counts are replaced wholesale on each import, so both kinds
// support a delete-then-copy cycle.
type FlowCountRepository interface {
	// DeleteCategoryCounts removes all category counts.
	DeleteCategoryCounts(ctx context.Context) error

	// BulkCreateCategoryCounts inserts category counts.
	BulkCreateCategoryCounts(ctx context.Context, counts []*models.FlowCategoryCount) (int, error)

	// DeleteRunCounts removes all run counts.
	DeleteRunCounts(ctx context.Context) error

	// BulkCreateRunCounts inserts run counts.
	BulkCreateRunCounts(ctx context.Context, counts []*models.FlowRunCount) (int, error)
}

type flowCountRepository struct {
	db *database.DB
}

// NewFlowCountRepository creates a new FlowCountRepository.
func NewFlowCountRepository(db *database.DB) FlowCountRepository {
	return &flowCountRepository{db: db}
}

var _ FlowCountRepository = (*flowCountRepository)(nil)

func (r *flowCountRepository) DeleteCategoryCounts(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM flow_category_counts`); err != nil {
		return fmt.Errorf("failed to delete flow category counts: %w", err)
	}
	return nil
}

func (r *flowCountRepository) BulkCreateCategoryCounts(ctx context.Context, counts []*models.FlowCategoryCount) (int, error) {
	if len(counts) == 0 {
		return 0, nil
	}

	rows := make([][]any, 0, len(counts))
	for _, c := range counts {
		rows = append(rows, []any{c.FlowID, c.NodeUUID, c.ResultKey, c.ResultName, c.CategoryName, c.Count})
	}

	copied, err := r.db.CopyFrom(ctx,
		pgx.Identifier{"flow_category_counts"},
		[]string{"flow_id", "node_uuid", "result_key", "result_name", "category_name", "count"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to copy flow category counts: %w", err)
	}

	return int(copied), nil
}

func (r *flowCountRepository) DeleteRunCounts(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM flow_run_counts`); err != nil {
		return fmt.Errorf("failed to delete flow run counts: %w", err)
	}
	return nil
}

func (r *flowCountRepository) BulkCreateRunCounts(ctx context.Context, counts []*models.FlowRunCount) (int, error) {
	if len(counts) == 0 {
		return 0, nil
	}

	rows := make([][]any, 0, len(counts))
	for _, c := range counts {
		rows = append(rows, []any{c.FlowID, c.ExitType, c.Count})
	}

	copied, err := r.db.CopyFrom(ctx,
		pgx.Identifier{"flow_run_counts"},
		[]string{"flow_id", "exit_type", "count"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to copy flow run counts: %w", err)
	}

	return int(copied), nil
}
