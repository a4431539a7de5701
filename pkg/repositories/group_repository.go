package repositories

import (
	"context"
	"fmt"

	"github.com/chatmesh/chatmesh-importer/pkg/database"
	"github.com/chatmesh/chatmesh-importer/pkg/models"
)

// GroupRepository provides data access for contact groups.
type GroupRepository interface {
	// BulkCreate inserts groups and fills in their generated ids and uuids.
	BulkCreate(ctx context.Context, groups []*models.ContactGroup) (int, error)

	// All returns every group in the local store.
	All(ctx context.Context) ([]*models.ContactGroup, error)

	// NameIDs returns the name -> local id projection.
	NameIDs(ctx context.Context) (map[string]int64, error)
}

type groupRepository struct {
	db *database.DB
}

// NewGroupRepository creates a new GroupRepository.
func NewGroupRepository(db *database.DB) GroupRepository {
	return &groupRepository{db: db}
}

var _ GroupRepository = (*groupRepository)(nil)

func (r *groupRepository) BulkCreate(ctx context.Context, groups []*models.ContactGroup) (int, error) {
	if len(groups) == 0 {
		return 0, nil
	}

	query := `
		INSERT INTO contact_groups (
			org_id, name, query, status, group_type, is_system,
			created_by, created_on
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, uuid`

	// Generated ids and uuids are needed afterward for the group-name
	// cache, so this is a batch of RETURNING inserts rather than a COPY.
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, g := range groups {
		err := tx.QueryRow(ctx, query,
			g.OrgID, g.Name, g.Query, g.Status, g.GroupType, g.IsSystem,
			g.CreatedBy, g.CreatedOn,
		).Scan(&g.ID, &g.UUID)
		if err != nil {
			return 0, fmt.Errorf("failed to create group %q: %w", g.Name, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit groups: %w", err)
	}

	return len(groups), nil
}

func (r *groupRepository) All(ctx context.Context) ([]*models.ContactGroup, error) {
	query := `
		SELECT id, uuid, org_id, name, query, status, group_type, is_system,
		       created_by, created_on
		FROM contact_groups
		ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query groups: %w", err)
	}
	defer rows.Close()

	var groups []*models.ContactGroup
	for rows.Next() {
		var g models.ContactGroup
		err := rows.Scan(
			&g.ID, &g.UUID, &g.OrgID, &g.Name, &g.Query, &g.Status,
			&g.GroupType, &g.IsSystem, &g.CreatedBy, &g.CreatedOn,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, &g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating groups: %w", err)
	}

	return groups, nil
}

func (r *groupRepository) NameIDs(ctx context.Context) (map[string]int64, error) {
	return keyIDProjection(ctx, r.db, `SELECT name, id FROM contact_groups`)
}
