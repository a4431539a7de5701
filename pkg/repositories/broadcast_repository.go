package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/chatmesh/chatmesh-importer/pkg/database"
	"github.com/chatmesh/chatmesh-importer/pkg/models"
)

// BroadcastRepository provides data access for broadcasts and their
// recipient join rows.
type BroadcastRepository interface {
	// BulkCreate inserts broadcasts keeping their remote ids.
	BulkCreate(ctx context.Context, broadcasts []*models.Broadcast) (int, error)

	// BulkCreateGroups inserts broadcast/group join rows.
	BulkCreateGroups(ctx context.Context, rows []models.BroadcastGroup) (int, error)

	// BulkCreateContacts inserts broadcast/contact join rows.
	BulkCreateContacts(ctx context.Context, rows []models.BroadcastContact) (int, error)

	// BulkCreateURNs inserts broadcast/URN join rows.
	BulkCreateURNs(ctx context.Context, rows []models.BroadcastURN) (int, error)
}

type broadcastRepository struct {
	db *database.DB
}

// NewBroadcastRepository creates a new BroadcastRepository.
func NewBroadcastRepository(db *database.DB) BroadcastRepository {
	return &broadcastRepository{db: db}
}

var _ BroadcastRepository = (*broadcastRepository)(nil)

func (r *broadcastRepository) BulkCreate(ctx context.Context, broadcasts []*models.Broadcast) (int, error) {
	if len(broadcasts) == 0 {
		return 0, nil
	}

	rows := make([][]any, 0, len(broadcasts))
	for _, b := range broadcasts {
		rows = append(rows, []any{b.ID, b.OrgID, b.Text, b.Status, b.CreatedBy, b.CreatedOn})
	}

	copied, err := r.db.CopyFrom(ctx,
		pgx.Identifier{"broadcasts"},
		[]string{"id", "org_id", "text", "status", "created_by", "created_on"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to copy broadcasts: %w", err)
	}

	return int(copied), nil
}

func (r *broadcastRepository) BulkCreateGroups(ctx context.Context, joins []models.BroadcastGroup) (int, error) {
	if len(joins) == 0 {
		return 0, nil
	}

	rows := make([][]any, 0, len(joins))
	for _, j := range joins {
		rows = append(rows, []any{j.BroadcastID, j.GroupID})
	}

	copied, err := r.db.CopyFrom(ctx,
		pgx.Identifier{"broadcast_groups"},
		[]string{"broadcast_id", "group_id"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to copy broadcast groups: %w", err)
	}

	return int(copied), nil
}

func (r *broadcastRepository) BulkCreateContacts(ctx context.Context, joins []models.BroadcastContact) (int, error) {
	if len(joins) == 0 {
		return 0, nil
	}

	rows := make([][]any, 0, len(joins))
	for _, j := range joins {
		rows = append(rows, []any{j.BroadcastID, j.ContactID})
	}

	copied, err := r.db.CopyFrom(ctx,
		pgx.Identifier{"broadcast_contacts"},
		[]string{"broadcast_id", "contact_id"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to copy broadcast contacts: %w", err)
	}

	return int(copied), nil
}

func (r *broadcastRepository) BulkCreateURNs(ctx context.Context, joins []models.BroadcastURN) (int, error) {
	if len(joins) == 0 {
		return 0, nil
	}

	rows := make([][]any, 0, len(joins))
	for _, j := range joins {
		rows = append(rows, []any{j.BroadcastID, j.URNID})
	}

	copied, err := r.db.CopyFrom(ctx,
		pgx.Identifier{"broadcast_urns"},
		[]string{"broadcast_id", "urn_id"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to copy broadcast URNs: %w", err)
	}

	return int(copied), nil
}
