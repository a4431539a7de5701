package repositories_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chatmesh/chatmesh-importer/pkg/models"
	"github.com/chatmesh/chatmesh-importer/pkg/repositories"
	"github.com/chatmesh/chatmesh-importer/pkg/testhelpers"
)

// seedOwner inserts the org and user every imported row hangs off.
func seedOwner(t *testing.T, db *testhelpers.TestDB) (orgID, userID int64) {
	t.Helper()
	ctx := context.Background()

	err := db.DB.QueryRow(ctx,
		`INSERT INTO orgs (name) VALUES ('Test Org') RETURNING id`).Scan(&orgID)
	require.NoError(t, err)

	err = db.DB.QueryRow(ctx,
		`INSERT INTO users (username) VALUES ('admin') RETURNING id`).Scan(&userID)
	require.NoError(t, err)

	return orgID, userID
}

func TestGroupRepositoryRoundTrip(t *testing.T) {
	db := testhelpers.GetTestDB(t)
	orgID, userID := seedOwner(t, db)
	ctx := context.Background()

	repo := repositories.NewGroupRepository(db.DB)

	groups := []*models.ContactGroup{
		{
			OrgID:     orgID,
			Name:      "Testers",
			Status:    models.GroupStatusReady,
			GroupType: models.GroupTypeManual,
			CreatedBy: userID,
			CreatedOn: time.Now().UTC(),
		},
		{
			OrgID:     orgID,
			Name:      "Reporters",
			Status:    models.GroupStatusReady,
			GroupType: models.GroupTypeManual,
			CreatedBy: userID,
			CreatedOn: time.Now().UTC(),
		},
	}

	n, err := repo.BulkCreate(ctx, groups)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// Generated ids and uuids are filled in on the passed models.
	for _, g := range groups {
		assert.NotZero(t, g.ID)
		assert.NotEmpty(t, g.UUID.String())
	}

	all, err := repo.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Testers", all[0].Name)

	ids, err := repo.NameIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, groups[0].ID, ids["Testers"])
	assert.Equal(t, groups[1].ID, ids["Reporters"])
}
