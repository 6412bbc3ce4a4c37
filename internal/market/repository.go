package market

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/julienpequegnot/polypulse/internal/database"
)

type Repository struct {
	db *database.DB
}

func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Upsert(m Market) error {
	tags, err := json.Marshal(m.Tags)
	if err != nil {
		return fmt.Errorf("failed to encode tags: %w", err)
	}

	_, err = r.db.Exec(`
		INSERT INTO markets (id, platform, slug, title, description, category, yes_price, no_price,
			volume_24h, liquidity, end_date, image_url, tags, active, promoted, event_slug, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			slug = excluded.slug,
			title = excluded.title,
			description = excluded.description,
			category = excluded.category,
			yes_price = excluded.yes_price,
			no_price = excluded.no_price,
			volume_24h = excluded.volume_24h,
			liquidity = excluded.liquidity,
			end_date = excluded.end_date,
			image_url = excluded.image_url,
			tags = excluded.tags,
			active = excluded.active,
			promoted = excluded.promoted,
			event_slug = excluded.event_slug,
			updated_at = excluded.updated_at
	`, m.ID, string(m.Platform), m.Slug, m.Title, m.Description, m.Category, m.YesPrice, m.NoPrice,
		m.Volume24h, m.Liquidity, m.EndDate.UTC(), m.ImageURL, string(tags), m.Active, m.Promoted, m.EventSlug,
		m.CreatedAt.UTC(), m.UpdatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to upsert market %s: %w", m.ID, err)
	}
	return nil
}

const selectColumns = `id, platform, COALESCE(slug, ''), title, COALESCE(description, ''), COALESCE(category, ''),
	COALESCE(yes_price, 0), COALESCE(no_price, 0), COALESCE(volume_24h, 0), COALESCE(liquidity, 0),
	end_date, COALESCE(image_url, ''), COALESCE(tags, ''), active, promoted, COALESCE(event_slug, ''),
	created_at, updated_at`

// Get looks a market up by ID, falling back to its slug.
func (r *Repository) Get(idOrSlug string) (*Market, error) {
	row := r.db.QueryRow(`SELECT `+selectColumns+` FROM markets WHERE id = ? OR slug = ? LIMIT 1`, idOrSlug, idOrSlug)
	m, err := scan(row)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

type ListOptions struct {
	Category   string
	Platform   Platform
	ActiveOnly bool
	Limit      int
}

// List returns markets by descending 24h volume.
func (r *Repository) List(opts ListOptions) ([]Market, error) {
	query := `SELECT ` + selectColumns + ` FROM markets WHERE 1=1`
	var args []any

	if opts.Category != "" {
		query += ` AND category = ?`
		args = append(args, opts.Category)
	}
	if opts.Platform != "" {
		query += ` AND platform = ?`
		args = append(args, string(opts.Platform))
	}
	if opts.ActiveOnly {
		query += ` AND active = TRUE`
	}
	query += ` ORDER BY volume_24h DESC`
	if opts.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, opts.Limit)
	}

	return r.query(query, args...)
}

func (r *Repository) Search(term string, limit int) ([]Market, error) {
	like := "%" + database.EscapeLike(strings.ToLower(term)) + "%"
	return r.query(`SELECT `+selectColumns+` FROM markets
		WHERE LOWER(title) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\'
		ORDER BY volume_24h DESC
		LIMIT ?`, like, like, limit)
}

func (r *Repository) Count() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM markets`).Scan(&count)
	return count, err
}

func (r *Repository) query(query string, args ...any) ([]Market, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var markets []Market
	for rows.Next() {
		m, err := scan(rows)
		if err != nil {
			return nil, err
		}
		markets = append(markets, m)
	}
	return markets, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(s scanner) (Market, error) {
	var m Market
	var platform, tags string
	var endDate, createdAt, updatedAt sql.NullTime

	if err := s.Scan(&m.ID, &platform, &m.Slug, &m.Title, &m.Description, &m.Category,
		&m.YesPrice, &m.NoPrice, &m.Volume24h, &m.Liquidity,
		&endDate, &m.ImageURL, &tags, &m.Active, &m.Promoted, &m.EventSlug,
		&createdAt, &updatedAt); err != nil {
		return m, err
	}
	m.Platform = Platform(platform)
	if endDate.Valid {
		m.EndDate = endDate.Time
	}
	if createdAt.Valid {
		m.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		m.UpdatedAt = updatedAt.Time
	}
	if tags != "" {
		if err := json.Unmarshal([]byte(tags), &m.Tags); err != nil {
			return m, fmt.Errorf("failed to decode tags for %s: %w", m.ID, err)
		}
	}
	return m, nil
}
