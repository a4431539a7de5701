package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/chatmesh/chatmesh-importer/pkg/database"
	"github.com/chatmesh/chatmesh-importer/pkg/models"
)

// FlowRepository reads locally persisted flow definitions. Flows are
// loaded into the destination before an import (via a dashboard export),
// so this repository never writes them.
type FlowRepository interface {
	// All returns every local flow with its metadata.
	All(ctx context.Context) ([]*models.Flow, error)

	// NameIDs returns the name -> local id projection.
	NameIDs(ctx context.Context) (map[string]int64, error)
}

type flowRepository struct {
	db *database.DB
}

// NewFlowRepository creates a new FlowRepository.
func NewFlowRepository(db *database.DB) FlowRepository {
	return &flowRepository{db: db}
}

var _ FlowRepository = (*flowRepository)(nil)

func (r *flowRepository) All(ctx context.Context) ([]*models.Flow, error) {
	query := `SELECT id, uuid, org_id, name, metadata FROM flows ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query flows: %w", err)
	}
	defer rows.Close()

	var flows []*models.Flow
	for rows.Next() {
		var f models.Flow
		var metadata []byte
		if err := rows.Scan(&f.ID, &f.UUID, &f.OrgID, &f.Name, &metadata); err != nil {
			return nil, fmt.Errorf("failed to scan flow: %w", err)
		}
		if len(metadata) > 0 && string(metadata) != "null" {
			if err := json.Unmarshal(metadata, &f.Metadata); err != nil {
				return nil, fmt.Errorf("failed to unmarshal metadata for flow %q: %w", f.Name, err)
			}
		}
		flows = append(flows, &f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating flows: %w", err)
	}

	return flows, nil
}

func (r *flowRepository) NameIDs(ctx context.Context) (map[string]int64, error) {
	return keyIDProjection(ctx, r.db, `SELECT name, id FROM flows`)
}
