package article

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/julienpequegnot/polypulse/internal/database"
)

type Article struct {
	ID          string
	FeedID      *int64
	Title       string
	Link        string
	Source      string
	Description string
	ImageURL    string
	Category    string
	PublishedAt time.Time
	FetchedAt   time.Time

	// Keywords are computed once when the article is fetched. An article
	// without keywords never takes part in matching.
	Keywords []string
}

// HasKeywords reports whether the article can be matched.
func (a Article) HasKeywords() bool {
	return len(a.Keywords) > 0
}

type Repository struct {
	db *database.DB
}

func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

// Upsert inserts the article or refreshes its mutable fields. It returns
// true when the article was new.
func (r *Repository) Upsert(a Article) (bool, error) {
	exists, err := r.Exists(a.ID)
	if err != nil {
		return false, err
	}

	keywords, err := json.Marshal(a.Keywords)
	if err != nil {
		return false, fmt.Errorf("failed to encode keywords: %w", err)
	}

	// Timestamps are stored as text, so they must share one zone to sort.
	_, err = r.db.Exec(`
		INSERT INTO articles (id, feed_id, link, title, source, description, image_url, category, keywords, published_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			image_url = excluded.image_url,
			category = excluded.category,
			keywords = excluded.keywords
	`, a.ID, a.FeedID, a.Link, a.Title, a.Source, a.Description, a.ImageURL, a.Category, string(keywords), a.PublishedAt.UTC())
	if err != nil {
		return false, fmt.Errorf("failed to upsert article: %w", err)
	}
	return !exists, nil
}

func (r *Repository) Exists(id string) (bool, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM articles WHERE id = ?`, id).Scan(&count)
	return count > 0, err
}

const selectColumns = `id, feed_id, title, link, COALESCE(source, ''), COALESCE(description, ''),
	COALESCE(image_url, ''), COALESCE(category, ''), COALESCE(keywords, ''), published_at, fetched_at`

func (r *Repository) Get(id string) (*Article, error) {
	row := r.db.QueryRow(`SELECT `+selectColumns+` FROM articles WHERE id = ?`, id)
	a, err := scan(row)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Resolve finds an article by full ID or by a unique ID prefix.
func (r *Repository) Resolve(prefix string) (*Article, error) {
	if prefix == "" {
		return nil, sql.ErrNoRows
	}
	matches, err := r.query(`SELECT `+selectColumns+` FROM articles WHERE id = ? OR id LIKE ? ESCAPE '\' LIMIT 2`,
		prefix, database.EscapeLike(prefix)+"%")
	if err != nil {
		return nil, err
	}
	switch {
	case len(matches) == 0:
		return nil, sql.ErrNoRows
	case len(matches) > 1 && matches[0].ID != prefix:
		return nil, fmt.Errorf("article id prefix %q is ambiguous", prefix)
	}
	return &matches[0], nil
}

// List returns articles newest first. An empty category lists everything.
func (r *Repository) List(category string, limit, offset int) ([]Article, error) {
	query := `SELECT ` + selectColumns + ` FROM articles`
	args := []any{}
	if category != "" {
		query += ` WHERE category = ?`
		args = append(args, category)
	}
	query += ` ORDER BY published_at DESC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	return r.query(query, args...)
}

// Search does a case-insensitive substring match on title and description.
func (r *Repository) Search(term string, limit int) ([]Article, error) {
	like := "%" + database.EscapeLike(strings.ToLower(term)) + "%"
	return r.query(`SELECT `+selectColumns+` FROM articles
		WHERE LOWER(title) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\'
		ORDER BY published_at DESC
		LIMIT ?`, like, like, limit)
}

func (r *Repository) query(query string, args ...any) ([]Article, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []Article
	for rows.Next() {
		a, err := scan(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(s scanner) (Article, error) {
	var a Article
	var feedID sql.NullInt64
	var keywords string
	var publishedAt sql.NullTime
	var fetchedAt sql.NullTime

	if err := s.Scan(&a.ID, &feedID, &a.Title, &a.Link, &a.Source, &a.Description,
		&a.ImageURL, &a.Category, &keywords, &publishedAt, &fetchedAt); err != nil {
		return a, err
	}
	if feedID.Valid {
		a.FeedID = &feedID.Int64
	}
	if publishedAt.Valid {
		a.PublishedAt = publishedAt.Time
	}
	if fetchedAt.Valid {
		a.FetchedAt = fetchedAt.Time
	}
	if keywords != "" {
		if err := json.Unmarshal([]byte(keywords), &a.Keywords); err != nil {
			return a, fmt.Errorf("failed to decode keywords for %s: %w", a.ID, err)
		}
	}
	return a, nil
}
