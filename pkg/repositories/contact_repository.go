package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/chatmesh/chatmesh-importer/pkg/database"
	"github.com/chatmesh/chatmesh-importer/pkg/models"
)

// ContactRepository provides data access for contacts, their URNs, and
// their group memberships.
type ContactRepository interface {
	// BulkCreate inserts contacts and fills in their generated ids.
	BulkCreate(ctx context.Context, contacts []*models.Contact) (int, error)

	// BulkCreateURNs inserts contact URN rows.
	BulkCreateURNs(ctx context.Context, urns []*models.ContactURN) (int, error)

	// BulkCreateMemberships inserts contact/group join rows.
	BulkCreateMemberships(ctx context.Context, memberships []models.ContactGroupMembership) (int, error)

	// UUIDIDs returns the uuid -> local id projection.
	UUIDIDs(ctx context.Context) (map[string]int64, error)

	// URNIdentityIDs returns the URN identity -> local id projection.
	URNIdentityIDs(ctx context.Context) (map[string]int64, error)
}

type contactRepository struct {
	db *database.DB
}

// NewContactRepository creates a new ContactRepository.
func NewContactRepository(db *database.DB) ContactRepository {
	return &contactRepository{db: db}
}

var _ ContactRepository = (*contactRepository)(nil)

func (r *contactRepository) BulkCreate(ctx context.Context, contacts []*models.Contact) (int, error) {
	if len(contacts) == 0 {
		return 0, nil
	}

	query := `
		INSERT INTO contacts (
			uuid, org_id, name, language, status, fields,
			created_by, created_on, modified_on, last_seen_on
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, c := range contacts {
		fields, err := json.Marshal(c.Fields)
		if err != nil {
			return 0, fmt.Errorf("failed to marshal fields for contact %s: %w", c.UUID, err)
		}
		err = tx.QueryRow(ctx, query,
			c.UUID, c.OrgID, c.Name, c.Language, c.Status, fields,
			c.CreatedBy, c.CreatedOn, c.ModifiedOn, c.LastSeenOn,
		).Scan(&c.ID)
		if err != nil {
			return 0, fmt.Errorf("failed to create contact %s: %w", c.UUID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit contacts: %w", err)
	}

	return len(contacts), nil
}

func (r *contactRepository) BulkCreateURNs(ctx context.Context, urns []*models.ContactURN) (int, error) {
	if len(urns) == 0 {
		return 0, nil
	}

	rows := make([][]any, 0, len(urns))
	for _, u := range urns {
		rows = append(rows, []any{u.OrgID, u.ContactID, u.Scheme, u.Path, u.Identity, u.Display})
	}

	copied, err := r.db.CopyFrom(ctx,
		pgx.Identifier{"contact_urns"},
		[]string{"org_id", "contact_id", "scheme", "path", "identity", "display"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to copy contact URNs: %w", err)
	}

	return int(copied), nil
}

func (r *contactRepository) BulkCreateMemberships(ctx context.Context, memberships []models.ContactGroupMembership) (int, error) {
	if len(memberships) == 0 {
		return 0, nil
	}

	rows := make([][]any, 0, len(memberships))
	for _, m := range memberships {
		rows = append(rows, []any{m.ContactID, m.GroupID})
	}

	copied, err := r.db.CopyFrom(ctx,
		pgx.Identifier{"contact_group_memberships"},
		[]string{"contact_id", "group_id"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to copy group memberships: %w", err)
	}

	return int(copied), nil
}

func (r *contactRepository) UUIDIDs(ctx context.Context) (map[string]int64, error) {
	return keyIDProjection(ctx, r.db, `SELECT uuid::text, id FROM contacts`)
}

func (r *contactRepository) URNIdentityIDs(ctx context.Context) (map[string]int64, error) {
	return keyIDProjection(ctx, r.db, `SELECT identity, id FROM contact_urns`)
}
