package cmd

import (
	"fmt"
	"unicode/utf8"

	"github.com/julienpequegnot/polypulse/internal/config"
	"github.com/julienpequegnot/polypulse/internal/database"
	"github.com/julienpequegnot/polypulse/internal/logger"
	"go.uber.org/zap"
)

// workspace bundles what most commands open before doing anything.
type workspace struct {
	cfg *config.Config
	db  *database.DB
	log *zap.Logger
}

func openWorkspace() (*workspace, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log, err := logger.New("polypulse", cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	db, err := database.New(config.DBPath())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &workspace{cfg: cfg, db: db, log: log}, nil
}

func (w *workspace) Close() {
	_ = w.log.Sync()
	w.db.Close()
}

func truncate(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	r := []rune(s)
	return string(r[:maxLen-3]) + "..."
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func percent(p float64) string {
	return fmt.Sprintf("%.0f%%", p*100)
}

func compactNumber(v float64) string {
	switch {
	case v >= 1e6:
		return fmt.Sprintf("$%.1fM", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("$%.1fK", v/1e3)
	default:
		return fmt.Sprintf("$%.0f", v)
	}
}
