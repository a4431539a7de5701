package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/chatmesh/chatmesh-importer/pkg/database"
	"github.com/chatmesh/chatmesh-importer/pkg/models"
)

// LabelRepository provides data access for message labels.
type LabelRepository interface {
	// BulkCreate inserts labels.
	BulkCreate(ctx context.Context, labels []*models.Label) (int, error)

	// UUIDIDs returns the uuid -> local id projection.
	UUIDIDs(ctx context.Context) (map[string]int64, error)
}

type labelRepository struct {
	db *database.DB
}

// NewLabelRepository creates a new LabelRepository.
func NewLabelRepository(db *database.DB) LabelRepository {
	return &labelRepository{db: db}
}

var _ LabelRepository = (*labelRepository)(nil)

func (r *labelRepository) BulkCreate(ctx context.Context, labels []*models.Label) (int, error) {
	if len(labels) == 0 {
		return 0, nil
	}

	rows := make([][]any, 0, len(labels))
	for _, l := range labels {
		rows = append(rows, []any{l.UUID, l.OrgID, l.Name, l.CreatedBy, l.CreatedOn})
	}

	copied, err := r.db.CopyFrom(ctx,
		pgx.Identifier{"labels"},
		[]string{"uuid", "org_id", "name", "created_by", "created_on"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to copy labels: %w", err)
	}

	return int(copied), nil
}

func (r *labelRepository) UUIDIDs(ctx context.Context) (map[string]int64, error) {
	return keyIDProjection(ctx, r.db, `SELECT uuid::text, id FROM labels`)
}
