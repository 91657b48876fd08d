package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/pryzm/pkg/domain"
)

// recentSearchesLimit is how many searches are loaded into the scoring context
const recentSearchesLimit = 10

// UserRepository handles per-user preferences, settings and search history
type UserRepository struct {
	db *sqlx.DB
}

type settingsSQL struct {
	RelevanceWeight sql.NullInt64                      `db:"relevance_weight"`
	MutedTerms      jsonSQL[[]string]                  `db:"muted_terms"`
	SourceWeights   jsonSQL[map[domain.Source]float64] `db:"source_weights"`
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// LoadContext builds the scoring context of a user: preferences oldest first,
// recent searches newest first and settings resolved over defaults
func (r *UserRepository) LoadContext(ctx context.Context, userID string) (*domain.UserScoringContext, error) {
	prefs, err := r.Preferences(ctx, userID)
	if err != nil {
		return nil, err
	}

	var searches []string
	err = r.db.SelectContext(ctx, &searches,
		"SELECT query FROM user_searches WHERE user_id = ? ORDER BY id DESC LIMIT ?", userID, recentSearchesLimit)
	if err != nil {
		return nil, fmt.Errorf("load recent searches: %w", err)
	}

	settings, err := r.Settings(ctx, userID)
	if err != nil {
		return nil, err
	}

	res := domain.DefaultScoringContext()
	res.Preferences = append(res.Preferences, prefs...)
	res.RecentSearches = append(res.RecentSearches, searches...)
	res.Apply(settings)
	return &res, nil
}

// Preferences returns saved topics of the user, oldest first
func (r *UserRepository) Preferences(ctx context.Context, userID string) ([]string, error) {
	prefs := []string{}
	err := r.db.SelectContext(ctx, &prefs, "SELECT topic FROM user_preferences WHERE user_id = ? ORDER BY id", userID)
	if err != nil {
		return nil, fmt.Errorf("load preferences: %w", err)
	}
	return prefs, nil
}

// AddPreference saves a topic, adding an existing topic is a no-op
func (r *UserRepository) AddPreference(ctx context.Context, userID, topic string) error {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return errors.New("empty topic")
	}
	err := retryOnLock(ctx, func() error {
		_, err := r.db.ExecContext(ctx,
			"INSERT INTO user_preferences (user_id, topic) VALUES (?, ?) ON CONFLICT(user_id, topic) DO NOTHING",
			userID, topic)
		return err
	})
	if err != nil {
		return fmt.Errorf("add preference: %w", err)
	}
	return nil
}

// RemovePreference deletes a saved topic, case-insensitive
func (r *UserRepository) RemovePreference(ctx context.Context, userID, topic string) error {
	err := retryOnLock(ctx, func() error {
		_, err := r.db.ExecContext(ctx, "DELETE FROM user_preferences WHERE user_id = ? AND topic = ?",
			userID, strings.TrimSpace(topic))
		return err
	})
	if err != nil {
		return fmt.Errorf("remove preference: %w", err)
	}
	return nil
}

// Settings returns stored settings, zero value if the user never saved any
func (r *UserRepository) Settings(ctx context.Context, userID string) (domain.UserSettings, error) {
	var row settingsSQL
	err := r.db.GetContext(ctx, &row,
		"SELECT relevance_weight, muted_terms, source_weights FROM user_settings WHERE user_id = ?", userID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.UserSettings{}, nil
	}
	if err != nil {
		return domain.UserSettings{}, fmt.Errorf("load settings: %w", err)
	}

	res := domain.UserSettings{MutedTerms: row.MutedTerms.V, SourceWeights: row.SourceWeights.V}
	if row.RelevanceWeight.Valid {
		w := int(row.RelevanceWeight.Int64)
		res.RelevanceWeight = &w
	}
	return res, nil
}

// SaveSettings stores settings of the user, replacing previous ones
func (r *UserRepository) SaveSettings(ctx context.Context, userID string, s domain.UserSettings) error {
	row := settingsSQL{
		MutedTerms:    jsonSQL[[]string]{V: s.MutedTerms},
		SourceWeights: jsonSQL[map[domain.Source]float64]{V: s.SourceWeights},
	}
	if row.MutedTerms.V == nil {
		row.MutedTerms.V = []string{}
	}
	if row.SourceWeights.V == nil {
		row.SourceWeights.V = map[domain.Source]float64{}
	}
	if s.RelevanceWeight != nil {
		row.RelevanceWeight = sql.NullInt64{Int64: int64(*s.RelevanceWeight), Valid: true}
	}

	query := `
		INSERT INTO user_settings (user_id, relevance_weight, muted_terms, source_weights)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			relevance_weight = excluded.relevance_weight,
			muted_terms = excluded.muted_terms,
			source_weights = excluded.source_weights,
			updated_at = strftime('%Y-%m-%dT%H:%M:%SZ', 'now')
	`
	err := retryOnLock(ctx, func() error {
		_, err := r.db.ExecContext(ctx, query, userID, row.RelevanceWeight, row.MutedTerms, row.SourceWeights)
		return err
	})
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// LogSearch appends a query to the search log, userID may be empty for anonymous searches
func (r *UserRepository) LogSearch(ctx context.Context, userID, query string) error {
	err := retryOnLock(ctx, func() error {
		_, err := r.db.ExecContext(ctx, "INSERT INTO user_searches (user_id, query) VALUES (?, ?)", userID, query)
		return err
	})
	if err != nil {
		return fmt.Errorf("log search: %w", err)
	}
	return nil
}
