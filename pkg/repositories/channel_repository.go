package repositories

import (
	"context"

	"github.com/chatmesh/chatmesh-importer/pkg/database"
)

// ChannelRepository resolves channels provisioned before the import.
type ChannelRepository interface {
	// NameIDs returns the name -> local id projection.
	NameIDs(ctx context.Context) (map[string]int64, error)
}

type channelRepository struct {
	db *database.DB
}

// NewChannelRepository creates a new ChannelRepository.
func NewChannelRepository(db *database.DB) ChannelRepository {
	return &channelRepository{db: db}
}

var _ ChannelRepository = (*channelRepository)(nil)

func (r *channelRepository) NameIDs(ctx context.Context) (map[string]int64, error) {
	return keyIDProjection(ctx, r.db, `SELECT name, id FROM channels`)
}
