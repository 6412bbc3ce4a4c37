package match

import (
	"fmt"
	"time"

	"github.com/julienpequegnot/polypulse/internal/database"
)

type Match struct {
	ID        int64
	ArticleID string
	MarketID  string
	Score     float64
	MatchedAt time.Time
}

type Repository struct {
	db *database.DB
}

func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Upsert(articleID, marketID string, score float64) error {
	_, err := r.db.Exec(`
		INSERT INTO matches (article_id, market_id, score)
		VALUES (?, ?, ?)
		ON CONFLICT(article_id, market_id) DO UPDATE SET
			score = excluded.score,
			matched_at = CURRENT_TIMESTAMP
	`, articleID, marketID, score)
	if err != nil {
		return fmt.Errorf("failed to upsert match: %w", err)
	}
	return nil
}

// ForArticle returns the markets matched to an article, best first.
func (r *Repository) ForArticle(articleID string) ([]Match, error) {
	return r.query(`
		SELECT id, article_id, market_id, score, matched_at
		FROM matches
		WHERE article_id = ?
		ORDER BY score DESC, id
	`, articleID)
}

// ForMarket returns the articles matched to a market, best first.
func (r *Repository) ForMarket(marketID string, limit int) ([]Match, error) {
	return r.query(`
		SELECT id, article_id, market_id, score, matched_at
		FROM matches
		WHERE market_id = ?
		ORDER BY score DESC, id
		LIMIT ?
	`, marketID, limit)
}

// DeleteForArticle clears an article's matches before they are recomputed.
func (r *Repository) DeleteForArticle(articleID string) error {
	_, err := r.db.Exec(`DELETE FROM matches WHERE article_id = ?`, articleID)
	return err
}

func (r *Repository) Count() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM matches`).Scan(&count)
	return count, err
}

func (r *Repository) query(query string, args ...any) ([]Match, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []Match
	for rows.Next() {
		var m Match
		if err := rows.Scan(&m.ID, &m.ArticleID, &m.MarketID, &m.Score, &m.MatchedAt); err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}
