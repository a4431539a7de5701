package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/chatmesh/chatmesh-importer/pkg/database"
	"github.com/chatmesh/chatmesh-importer/pkg/models"
)

// FlowRunRepository provides data access for reconstructed flow runs.
type FlowRunRepository interface {
	// BulkCreate inserts runs. Path and results are persisted as JSONB;
	// ids are locally generated.
	BulkCreate(ctx context.Context, runs []*models.FlowRun) (int, error)
}

type flowRunRepository struct {
	db *database.DB
}

// NewFlowRunRepository creates a new FlowRunRepository.
func NewFlowRunRepository(db *database.DB) FlowRunRepository {
	return &flowRunRepository{db: db}
}

var _ FlowRunRepository = (*flowRunRepository)(nil)

func (r *flowRunRepository) BulkCreate(ctx context.Context, runs []*models.FlowRun) (int, error) {
	if len(runs) == 0 {
		return 0, nil
	}

	rows := make([][]any, 0, len(runs))
	for _, run := range runs {
		path, err := json.Marshal(run.Path)
		if err != nil {
			return 0, fmt.Errorf("failed to marshal path for run %s: %w", run.UUID, err)
		}
		results, err := json.Marshal(run.Results)
		if err != nil {
			return 0, fmt.Errorf("failed to marshal results for run %s: %w", run.UUID, err)
		}
		rows = append(rows, []any{
			run.UUID, run.OrgID, run.FlowID, run.ContactID, run.StartID,
			run.Responded, path, results, run.Status,
			run.CreatedOn, run.ModifiedOn, run.ExitedOn,
		})
	}

	copied, err := r.db.CopyFrom(ctx,
		pgx.Identifier{"flow_runs"},
		[]string{
			"uuid", "org_id", "flow_id", "contact_id", "start_id",
			"responded", "path", "results", "status",
			"created_on", "modified_on", "exited_on",
		},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to copy flow runs: %w", err)
	}

	return int(copied), nil
}
