package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/chatmesh/chatmesh-importer/pkg/apperrors"
	"github.com/chatmesh/chatmesh-importer/pkg/database"
	"github.com/chatmesh/chatmesh-importer/pkg/models"
)

// OrgRepository resolves the local org and user that own imported rows.
type OrgRepository interface {
	// DefaultOrg returns the first active, non-anonymous organization.
	DefaultOrg(ctx context.Context) (*models.Org, error)

	// DefaultUser returns the first non-system user.
	DefaultUser(ctx context.Context) (*models.User, error)
}

type orgRepository struct {
	db *database.DB
}

// NewOrgRepository creates a new OrgRepository.
func NewOrgRepository(db *database.DB) OrgRepository {
	return &orgRepository{db: db}
}

var _ OrgRepository = (*orgRepository)(nil)

func (r *orgRepository) DefaultOrg(ctx context.Context) (*models.Org, error) {
	query := `
		SELECT id, uuid, name, is_active, is_anon, created_on
		FROM orgs
		WHERE is_active = TRUE AND is_anon = FALSE
		ORDER BY id
		LIMIT 1`

	var org models.Org
	err := r.db.QueryRow(ctx, query).Scan(
		&org.ID, &org.UUID, &org.Name, &org.IsActive, &org.IsAnon, &org.CreatedOn,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNoDefaultOrg
		}
		return nil, fmt.Errorf("failed to query default org: %w", err)
	}

	return &org, nil
}

func (r *orgRepository) DefaultUser(ctx context.Context) (*models.User, error) {
	query := `
		SELECT id, username, email, first_name, last_name, is_system, created_on
		FROM users
		WHERE is_system = FALSE
		ORDER BY id
		LIMIT 1`

	var user models.User
	err := r.db.QueryRow(ctx, query).Scan(
		&user.ID, &user.Username, &user.Email, &user.FirstName, &user.LastName,
		&user.IsSystem, &user.CreatedOn,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNoDefaultUser
		}
		return nil, fmt.Errorf("failed to query default user: %w", err)
	}

	return &user, nil
}
