package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/chatmesh/chatmesh-importer/pkg/database"
	"github.com/chatmesh/chatmesh-importer/pkg/models"
)

// FlowStartRepository provides data access for flow starts.
type FlowStartRepository interface {
	// BulkCreate inserts flow starts and fills in their generated ids.
	BulkCreate(ctx context.Context, starts []*models.FlowStart) (int, error)

	// BulkCreateGroups inserts flow start/group join rows.
	BulkCreateGroups(ctx context.Context, rows []models.FlowStartGroup) (int, error)

	// BulkCreateContacts inserts flow start/contact join rows.
	BulkCreateContacts(ctx context.Context, rows []models.FlowStartContact) (int, error)

	// UUIDIDs returns the uuid -> local id projection.
	UUIDIDs(ctx context.Context) (map[string]int64, error)
}

type flowStartRepository struct {
	db *database.DB
}

// NewFlowStartRepository creates a new FlowStartRepository.
func NewFlowStartRepository(db *database.DB) FlowStartRepository {
	return &flowStartRepository{db: db}
}

var _ FlowStartRepository = (*flowStartRepository)(nil)

func (r *flowStartRepository) BulkCreate(ctx context.Context, starts []*models.FlowStart) (int, error) {
	if len(starts) == 0 {
		return 0, nil
	}

	query := `
		INSERT INTO flow_starts (
			uuid, org_id, flow_id, status, restart_participants,
			include_active, extra, created_by, created_on, modified_on
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, s := range starts {
		extra, err := json.Marshal(s.Extra)
		if err != nil {
			return 0, fmt.Errorf("failed to marshal extra for flow start %s: %w", s.UUID, err)
		}
		err = tx.QueryRow(ctx, query,
			s.UUID, s.OrgID, s.FlowID, s.Status, s.RestartParticipants,
			s.IncludeActive, extra, s.CreatedBy, s.CreatedOn, s.ModifiedOn,
		).Scan(&s.ID)
		if err != nil {
			return 0, fmt.Errorf("failed to create flow start %s: %w", s.UUID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit flow starts: %w", err)
	}

	return len(starts), nil
}

func (r *flowStartRepository) BulkCreateGroups(ctx context.Context, joins []models.FlowStartGroup) (int, error) {
	if len(joins) == 0 {
		return 0, nil
	}

	rows := make([][]any, 0, len(joins))
	for _, j := range joins {
		rows = append(rows, []any{j.FlowStartID, j.GroupID})
	}

	copied, err := r.db.CopyFrom(ctx,
		pgx.Identifier{"flow_start_groups"},
		[]string{"flow_start_id", "group_id"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to copy flow start groups: %w", err)
	}

	return int(copied), nil
}

func (r *flowStartRepository) BulkCreateContacts(ctx context.Context, joins []models.FlowStartContact) (int, error) {
	if len(joins) == 0 {
		return 0, nil
	}

	rows := make([][]any, 0, len(joins))
	for _, j := range joins {
		rows = append(rows, []any{j.FlowStartID, j.ContactID})
	}

	copied, err := r.db.CopyFrom(ctx,
		pgx.Identifier{"flow_start_contacts"},
		[]string{"flow_start_id", "contact_id"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to copy flow start contacts: %w", err)
	}

	return int(copied), nil
}

func (r *flowStartRepository) UUIDIDs(ctx context.Context) (map[string]int64, error) {
	return keyIDProjection(ctx, r.db, `SELECT uuid::text, id FROM flow_starts`)
}
