package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/chatmesh/chatmesh-importer/pkg/database"
	"github.com/chatmesh/chatmesh-importer/pkg/models"
)

// MessageRepository provides data access for messages.
type MessageRepository interface {
	// BulkCreate inserts messages keeping their remote ids.
	BulkCreate(ctx context.Context, messages []*models.Message) (int, error)

	// BulkCreateLabels inserts message/label join rows.
	BulkCreateLabels(ctx context.Context, rows []models.MessageLabel) (int, error)
}

type messageRepository struct {
	db *database.DB
}

// NewMessageRepository creates a new MessageRepository.
func NewMessageRepository(db *database.DB) MessageRepository {
	return &messageRepository{db: db}
}

var _ MessageRepository = (*messageRepository)(nil)

func (r *messageRepository) BulkCreate(ctx context.Context, messages []*models.Message) (int, error) {
	if len(messages) == 0 {
		return 0, nil
	}

	rows := make([][]any, 0, len(messages))
	for _, m := range messages {
		rows = append(rows, []any{
			m.ID, m.OrgID, m.BroadcastID, m.ContactID, m.ContactURNID, m.ChannelID,
			m.Direction, m.MsgType, m.Status, m.Visibility, m.Text, m.Attachments,
			m.CreatedOn, m.SentOn, m.ModifiedOn,
		})
	}

	copied, err := r.db.CopyFrom(ctx,
		pgx.Identifier{"messages"},
		[]string{
			"id", "org_id", "broadcast_id", "contact_id", "contact_urn_id", "channel_id",
			"direction", "msg_type", "status", "visibility", "text", "attachments",
			"created_on", "sent_on", "modified_on",
		},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to copy messages: %w", err)
	}

	return int(copied), nil
}

func (r *messageRepository) BulkCreateLabels(ctx context.Context, joins []models.MessageLabel) (int, error) {
	if len(joins) == 0 {
		return 0, nil
	}

	rows := make([][]any, 0, len(joins))
	for _, j := range joins {
		rows = append(rows, []any{j.MessageID, j.LabelID})
	}

	copied, err := r.db.CopyFrom(ctx,
		pgx.Identifier{"message_labels"},
		[]string{"message_id", "label_id"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to copy message labels: %w", err)
	}

	return int(copied), nil
}
