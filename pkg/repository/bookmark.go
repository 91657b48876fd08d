package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// BookmarkRepository handles user bookmarks, keyed by canonical item id
type BookmarkRepository struct {
	db *sqlx.DB
}

// NewBookmarkRepository creates a new bookmark repository
func NewBookmarkRepository(db *sqlx.DB) *BookmarkRepository {
	return &BookmarkRepository{db: db}
}

// AddBookmark bookmarks an item, repeated calls are no-op
func (r *BookmarkRepository) AddBookmark(ctx context.Context, userID, itemID string) error {
	err := retryOnLock(ctx, func() error {
		_, err := r.db.ExecContext(ctx,
			"INSERT INTO user_bookmarks (user_id, item_id) VALUES (?, ?) ON CONFLICT(user_id, item_id) DO NOTHING",
			userID, itemID)
		return err
	})
	if err != nil {
		return fmt.Errorf("add bookmark: %w", err)
	}
	return nil
}

// RemoveBookmark deletes a bookmark
func (r *BookmarkRepository) RemoveBookmark(ctx context.Context, userID, itemID string) error {
	err := retryOnLock(ctx, func() error {
		_, err := r.db.ExecContext(ctx, "DELETE FROM user_bookmarks WHERE user_id = ? AND item_id = ?", userID, itemID)
		return err
	})
	if err != nil {
		return fmt.Errorf("remove bookmark: %w", err)
	}
	return nil
}

// BookmarkedIDs returns bookmarked item ids of the user, newest first
func (r *BookmarkRepository) BookmarkedIDs(ctx context.Context, userID string) ([]string, error) {
	ids := []string{}
	err := r.db.SelectContext(ctx, &ids,
		"SELECT item_id FROM user_bookmarks WHERE user_id = ? ORDER BY created_at DESC, rowid DESC", userID)
	if err != nil {
		return nil, fmt.Errorf("load bookmarks: %w", err)
	}
	return ids, nil
}
