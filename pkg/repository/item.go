package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/pryzm/pkg/domain"
)

// ItemRepository handles stored feed items
type ItemRepository struct {
	db *sqlx.DB
}

// itemSQL represents an item for SQL operations
type itemSQL struct {
	ID          string         `db:"id"`
	Source      string         `db:"source"`
	Title       string         `db:"title"`
	URL         string         `db:"url"`
	PublishedAt sql.NullString `db:"published_at"`
	Summary     sql.NullString `db:"summary"`
	Tags        tagsSQL        `db:"tags"`
}

// tagsSQL is a JSON array of tag strings for SQL operations
type tagsSQL []string

// Value implements driver.Valuer for database storage
func (t tagsSQL) Value() (driver.Value, error) {
	if t == nil {
		return "[]", nil
	}
	data, err := json.Marshal([]string(t))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner for database retrieval
func (t *tagsSQL) Scan(value any) error {
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		*t = tagsSQL{}
		return nil
	}
	res := []string{}
	if err := json.Unmarshal(data, &res); err != nil {
		return fmt.Errorf("unmarshal tags: %w", err)
	}
	*t = res
	return nil
}

// NewItemRepository creates a new item repository
func NewItemRepository(db *sqlx.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

// UpsertItems inserts or updates items in one transaction. Source of an existing item never changes.
// Duplicated ids in the batch are collapsed, first wins. Returns number of written items.
func (r *ItemRepository) UpsertItems(ctx context.Context, items []domain.FeedItem) (int, error) {
	items = domain.DedupByID(items)
	if len(items) == 0 {
		return 0, nil
	}

	query := `
		INSERT INTO feed_items (id, source, title, url, published_at, summary, tags)
		VALUES (:id, :source, :title, :url, :published_at, :summary, :tags)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			url = excluded.url,
			published_at = excluded.published_at,
			summary = excluded.summary,
			tags = excluded.tags,
			updated_at = strftime('%Y-%m-%dT%H:%M:%SZ', 'now')
	`

	err := retryOnLock(ctx, func() error {
		tx, err := r.db.BeginTxx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin transaction: %w", err)
		}
		defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

		stmt, err := tx.PrepareNamedContext(ctx, query)
		if err != nil {
			return fmt.Errorf("prepare upsert: %w", err)
		}
		defer stmt.Close()

		for _, item := range items {
			if _, err := stmt.ExecContext(ctx, toItemSQL(item)); err != nil {
				return fmt.Errorf("upsert item %s: %w", item.ID, err)
			}
		}
		return tx.Commit()
	})
	if err != nil {
		return 0, fmt.Errorf("upsert items: %w", err)
	}
	return len(items), nil
}

// QueryRecent returns up to limit items, newest first, items without a date last
func (r *ItemRepository) QueryRecent(ctx context.Context, limit int) ([]domain.FeedItem, error) {
	query := `
		SELECT id, source, title, url, published_at, summary, tags
		FROM feed_items
		ORDER BY published_at IS NULL, published_at DESC, id
		LIMIT ?
	`
	var rows []itemSQL
	if err := r.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("query recent items: %w", err)
	}

	res := make([]domain.FeedItem, 0, len(rows))
	for i := range rows {
		item, err := rows[i].toDomain()
		if err != nil {
			return nil, err
		}
		res = append(res, item)
	}
	return res, nil
}

// RecentTags returns tag lists of up to limit items published since the given time
func (r *ItemRepository) RecentTags(ctx context.Context, since time.Time, limit int) ([][]string, error) {
	query := `
		SELECT tags FROM feed_items
		WHERE published_at >= ?
		ORDER BY published_at DESC
		LIMIT ?
	`
	var rows []tagsSQL
	if err := r.db.SelectContext(ctx, &rows, query, formatTime(since), limit); err != nil {
		return nil, fmt.Errorf("query recent tags: %w", err)
	}
	res := make([][]string, 0, len(rows))
	for _, t := range rows {
		res = append(res, []string(t))
	}
	return res, nil
}

// GetByIDs returns stored items with given ids, unknown ids are skipped
func (r *ItemRepository) GetByIDs(ctx context.Context, ids []string) ([]domain.FeedItem, error) {
	if len(ids) == 0 {
		return []domain.FeedItem{}, nil
	}
	query, args, err := sqlx.In(`SELECT id, source, title, url, published_at, summary, tags
		FROM feed_items WHERE id IN (?)`, ids)
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	var rows []itemSQL
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("get items by ids: %w", err)
	}
	res := make([]domain.FeedItem, 0, len(rows))
	for i := range rows {
		item, err := rows[i].toDomain()
		if err != nil {
			return nil, err
		}
		res = append(res, item)
	}
	return res, nil
}

// Count returns number of stored items
func (r *ItemRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM feed_items"); err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	return count, nil
}

func toItemSQL(item domain.FeedItem) itemSQL {
	res := itemSQL{
		ID:     item.ID,
		Source: string(item.Source),
		Title:  item.Title,
		URL:    item.URL,
		Tags:   tagsSQL(item.Tags),
	}
	if item.PublishedAt != nil {
		res.PublishedAt = sql.NullString{String: formatTime(*item.PublishedAt), Valid: true}
	}
	if item.Summary != nil {
		res.Summary = sql.NullString{String: *item.Summary, Valid: true}
	}
	return res
}

func (s *itemSQL) toDomain() (domain.FeedItem, error) {
	res := domain.FeedItem{
		ID:     s.ID,
		Source: domain.ParseSource(s.Source),
		Title:  s.Title,
		URL:    s.URL,
		Tags:   []string(s.Tags),
	}
	if res.Tags == nil {
		res.Tags = []string{}
	}
	if s.PublishedAt.Valid {
		t, err := parseTime(s.PublishedAt.String)
		if err != nil {
			return domain.FeedItem{}, fmt.Errorf("item %s: %w", s.ID, err)
		}
		res.PublishedAt = &t
	}
	if s.Summary.Valid {
		res.Summary = domain.StrPtr(s.Summary.String)
	}
	return res, nil
}
