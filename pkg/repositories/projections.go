package repositories

import (
	"context"
	"fmt"

	"github.com/chatmesh/chatmesh-importer/pkg/database"
)

// keyIDProjection runs a two-column (key, id) query and returns it as a
// map. This is the bulk read behind every identity cache load.
func keyIDProjection(ctx context.Context, db *database.DB, query string) (map[string]int64, error) {
	rows, err := db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query projection: %w", err)
	}
	defer rows.Close()

	result := make(map[string]int64)
	for rows.Next() {
		var key string
		var id int64
		if err := rows.Scan(&key, &id); err != nil {
			return nil, fmt.Errorf("failed to scan projection row: %w", err)
		}
		result[key] = id
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating projection rows: %w", err)
	}

	return result, nil
}
