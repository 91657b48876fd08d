package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/umputun/pryzm/pkg/domain"
)

// EngagementRepository stores user interactions with items
type EngagementRepository struct {
	db *sqlx.DB
}

type engagementSQL struct {
	ID        string                  `db:"id"`
	ItemID    string                  `db:"item_id"`
	Action    string                  `db:"action"`
	SessionID string                  `db:"session_id"`
	UserID    string                  `db:"user_id"`
	Metadata  jsonSQL[map[string]any] `db:"metadata"`
	CreatedAt string                  `db:"created_at"`
}

// NewEngagementRepository creates a new engagement repository
func NewEngagementRepository(db *sqlx.DB) *EngagementRepository {
	return &EngagementRepository{db: db}
}

// RecordEngagement stores an engagement, id and creation time are assigned when missing.
// Returns the stored id.
func (r *EngagementRepository) RecordEngagement(ctx context.Context, e domain.Engagement) (string, error) {
	if !e.Action.Valid() {
		return "", fmt.Errorf("invalid engagement action %q", e.Action)
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	if e.Metadata == nil {
		e.Metadata = map[string]any{}
	}

	row := engagementSQL{
		ID: e.ID, ItemID: e.ItemID, Action: string(e.Action), SessionID: e.SessionID, UserID: e.UserID,
		Metadata: jsonSQL[map[string]any]{V: e.Metadata}, CreatedAt: formatTime(e.CreatedAt),
	}
	query := `
		INSERT INTO user_engagements (id, item_id, action, session_id, user_id, metadata, created_at)
		VALUES (:id, :item_id, :action, :session_id, :user_id, :metadata, :created_at)
	`
	err := retryOnLock(ctx, func() error {
		_, err := r.db.NamedExecContext(ctx, query, row)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("record engagement: %w", err)
	}
	return e.ID, nil
}

// CountByItem returns number of engagements per action for the item
func (r *EngagementRepository) CountByItem(ctx context.Context, itemID string) (map[domain.EngagementAction]int, error) {
	var rows []struct {
		Action string `db:"action"`
		Count  int    `db:"cnt"`
	}
	err := r.db.SelectContext(ctx, &rows,
		"SELECT action, COUNT(*) AS cnt FROM user_engagements WHERE item_id = ? GROUP BY action", itemID)
	if err != nil {
		return nil, fmt.Errorf("count engagements: %w", err)
	}
	res := make(map[domain.EngagementAction]int, len(rows))
	for _, row := range rows {
		res[domain.EngagementAction(row.Action)] = row.Count
	}
	return res, nil
}
