package database

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

type DB struct {
	conn *sql.DB
	path string
}

func New(path string) (*DB, error) {
	conn, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db := &DB{conn: conn, path: path}
	if err := db.initSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return db, nil
}

func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) Exec(query string, args ...any) (sql.Result, error) {
	return db.conn.Exec(query, args...)
}

func (db *DB) Query(query string, args ...any) (*sql.Rows, error) {
	return db.conn.Query(query, args...)
}

func (db *DB) QueryRow(query string, args ...any) *sql.Row {
	return db.conn.QueryRow(query, args...)
}

func (db *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS feeds (
		id INTEGER PRIMARY KEY,
		url TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		category TEXT,
		last_fetched DATETIME,
		active BOOLEAN DEFAULT TRUE,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS articles (
		id TEXT PRIMARY KEY,
		feed_id INTEGER REFERENCES feeds(id),
		link TEXT NOT NULL UNIQUE,
		title TEXT NOT NULL,
		source TEXT,
		description TEXT,
		image_url TEXT,
		category TEXT,
		keywords TEXT,
		published_at DATETIME,
		fetched_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS markets (
		id TEXT PRIMARY KEY,
		platform TEXT NOT NULL,
		slug TEXT,
		title TEXT NOT NULL,
		description TEXT,
		category TEXT,
		yes_price REAL,
		no_price REAL,
		volume_24h REAL,
		liquidity REAL,
		end_date DATETIME,
		image_url TEXT,
		tags TEXT,
		active BOOLEAN DEFAULT TRUE,
		promoted BOOLEAN DEFAULT FALSE,
		event_slug TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);

	CREATE TABLE IF NOT EXISTS matches (
		id INTEGER PRIMARY KEY,
		article_id TEXT NOT NULL REFERENCES articles(id) ON DELETE CASCADE,
		market_id TEXT NOT NULL REFERENCES markets(id) ON DELETE CASCADE,
		score REAL NOT NULL,
		matched_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(article_id, market_id)
	);

	CREATE INDEX IF NOT EXISTS idx_articles_published ON articles(published_at);
	CREATE INDEX IF NOT EXISTS idx_articles_category ON articles(category);
	CREATE INDEX IF NOT EXISTS idx_markets_category ON markets(category);
	CREATE INDEX IF NOT EXISTS idx_markets_volume ON markets(volume_24h DESC);
	CREATE INDEX IF NOT EXISTS idx_matches_score ON matches(score DESC);
	`

	_, err := db.conn.Exec(schema)
	return err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike quotes the LIKE wildcards in s. Patterns built from it must be
// matched with ESCAPE '\'.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}
