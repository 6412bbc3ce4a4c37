// internal/database/database_test.go
package database

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewDB(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	db, err := New(dbPath)
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}
	defer db.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestInitSchema(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	db, err := New(dbPath)
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}
	defer db.Close()

	// Verify tables exist by querying them
	tables := []string{"feeds", "articles", "markets", "matches"}
	for _, table := range tables {
		_, err := db.conn.Query("SELECT 1 FROM " + table + " LIMIT 1")
		if err != nil {
			t.Errorf("table %s does not exist: %v", table, err)
		}
	}
}

func TestReopenKeepsSchema(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := New(dbPath)
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO feeds (url, name) VALUES (?, ?)`, "https://example.com/rss", "Example"); err != nil {
		t.Fatalf("failed to insert feed: %v", err)
	}
	db.Close()

	db, err = New(dbPath)
	if err != nil {
		t.Fatalf("failed to reopen database: %v", err)
	}
	defer db.Close()

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM feeds`).Scan(&count); err != nil {
		t.Fatalf("failed to count feeds: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 feed after reopen, got %d", count)
	}
}

func TestEscapeLike(t *testing.T) {
	db, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}
	defer db.Close()

	for _, name := range []string{"100% odds", "1000 odds", "a_b", "axb"} {
		if _, err := db.Exec(`INSERT INTO feeds (url, name) VALUES (?, ?)`, "https://feeds.test/"+name, name); err != nil {
			t.Fatalf("failed to insert feed: %v", err)
		}
	}

	cases := map[string]string{
		"100%": "100% odds",
		"a_b":  "a_b",
	}
	for term, want := range cases {
		rows, err := db.Query(`SELECT name FROM feeds WHERE name LIKE ? ESCAPE '\'`, "%"+EscapeLike(term)+"%")
		if err != nil {
			t.Fatalf("query failed: %v", err)
		}
		var names []string
		for rows.Next() {
			var n string
			rows.Scan(&n)
			names = append(names, n)
		}
		rows.Close()

		if len(names) != 1 || names[0] != want {
			t.Errorf("LIKE %q: expected [%s], got %v", term, want, names)
		}
	}
}
