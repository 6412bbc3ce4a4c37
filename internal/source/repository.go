package source

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/julienpequegnot/polypulse/internal/database"
)

// QueryPlaceholder marks a feed URL that is searched rather than read whole.
const QueryPlaceholder = "{query}"

type Source struct {
	ID          int64
	URL         string
	Name        string
	Category    string
	LastFetched *time.Time
	Active      bool
	CreatedAt   time.Time
}

// IsQueryFeed reports whether the feed URL takes a search query.
func (s Source) IsQueryFeed() bool {
	return strings.Contains(s.URL, QueryPlaceholder)
}

type Repository struct {
	db *database.DB
}

func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Add(url, name, category string) (*Source, error) {
	result, err := r.db.Exec(
		`INSERT INTO feeds (url, name, category, active) VALUES (?, ?, ?, TRUE)`,
		url, name, category,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert feed: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	return &Source{
		ID:       id,
		URL:      url,
		Name:     name,
		Category: category,
		Active:   true,
	}, nil
}

// Ensure adds the feed unless its URL is already known.
func (r *Repository) Ensure(url, name, category string) (bool, error) {
	result, err := r.db.Exec(
		`INSERT OR IGNORE INTO feeds (url, name, category, active) VALUES (?, ?, ?, TRUE)`,
		url, name, category,
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert feed: %w", err)
	}
	n, err := result.RowsAffected()
	return n > 0, err
}

func (r *Repository) List() ([]Source, error) {
	rows, err := r.db.Query(`SELECT id, url, name, COALESCE(category, ''), last_fetched, active, created_at FROM feeds WHERE active = TRUE ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sources []Source
	for rows.Next() {
		var s Source
		var lastFetched sql.NullTime
		if err := rows.Scan(&s.ID, &s.URL, &s.Name, &s.Category, &lastFetched, &s.Active, &s.CreatedAt); err != nil {
			return nil, err
		}
		if lastFetched.Valid {
			s.LastFetched = &lastFetched.Time
		}
		sources = append(sources, s)
	}
	return sources, rows.Err()
}

func (r *Repository) Deactivate(id int64) error {
	result, err := r.db.Exec(`UPDATE feeds SET active = FALSE WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *Repository) UpdateLastFetched(id int64) error {
	_, err := r.db.Exec(`UPDATE feeds SET last_fetched = CURRENT_TIMESTAMP WHERE id = ?`, id)
	return err
}
