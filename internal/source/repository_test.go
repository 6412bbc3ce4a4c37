package source

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/julienpequegnot/polypulse/internal/database"
)

func setupTestDB(t *testing.T) *database.DB {
	tmpDir := t.TempDir()
	db, err := database.New(filepath.Join(tmpDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	return db
}

func TestAddSource(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	repo := NewRepository(db)

	src, err := repo.Add("https://cointelegraph.com/rss", "CoinTelegraph", "crypto")
	if err != nil {
		t.Fatalf("failed to add source: %v", err)
	}

	if src.ID == 0 {
		t.Error("expected non-zero ID")
	}
	if src.Category != "crypto" {
		t.Errorf("expected category crypto, got %s", src.Category)
	}
}

func TestAddDuplicateSource(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	repo := NewRepository(db)

	_, err := repo.Add("https://techcrunch.com/feed/", "TechCrunch", "technology")
	if err != nil {
		t.Fatalf("failed to add source: %v", err)
	}

	_, err = repo.Add("https://techcrunch.com/feed/", "TechCrunch", "technology")
	if err == nil {
		t.Error("expected error for duplicate source")
	}
}

func TestEnsureIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	repo := NewRepository(db)

	added, err := repo.Ensure("https://finance.yahoo.com/news/rssindex", "Yahoo Finance", "")
	if err != nil {
		t.Fatalf("failed to ensure source: %v", err)
	}
	if !added {
		t.Error("expected first Ensure to add the feed")
	}

	added, err = repo.Ensure("https://finance.yahoo.com/news/rssindex", "Yahoo Finance", "")
	if err != nil {
		t.Fatalf("failed to ensure source: %v", err)
	}
	if added {
		t.Error("expected second Ensure to be a no-op")
	}
}

func TestListSources(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	repo := NewRepository(db)

	repo.Add("https://www.coindesk.com/arc/outboundfeeds/rss/", "CoinDesk", "crypto")
	repo.Add("https://news.google.com/rss/search?q={query}", "Google News", "")

	sources, err := repo.List()
	if err != nil {
		t.Fatalf("failed to list sources: %v", err)
	}

	if len(sources) != 2 {
		t.Fatalf("expected 2 sources, got %d", len(sources))
	}
	if sources[0].IsQueryFeed() {
		t.Error("expected CoinDesk to be a plain feed")
	}
	if !sources[1].IsQueryFeed() {
		t.Error("expected Google News to be a query feed")
	}
}

func TestDeactivate(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	repo := NewRepository(db)
	src, _ := repo.Add("https://cointelegraph.com/rss", "CoinTelegraph", "crypto")

	if err := repo.Deactivate(src.ID); err != nil {
		t.Fatalf("failed to deactivate: %v", err)
	}

	sources, _ := repo.List()
	if len(sources) != 0 {
		t.Errorf("expected no active sources, got %d", len(sources))
	}

	if err := repo.Deactivate(9999); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected sql.ErrNoRows, got %v", err)
	}
}
