package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Run in daemon mode",
	Long:  `Runs polypulse in the background, periodically refreshing markets, news and matches.`,
	RunE:  runDaemon,
}

var (
	daemonInterval int
	daemonOnce     bool
	daemonQuery    string
)

func init() {
	rootCmd.AddCommand(daemonCmd)
	daemonCmd.Flags().IntVar(&daemonInterval, "interval", 0, "Override interval in minutes (0 = use config)")
	daemonCmd.Flags().BoolVar(&daemonOnce, "once", false, "Run once and exit")
	daemonCmd.Flags().StringVarP(&daemonQuery, "query", "q", "", "Search query for news feeds")
}

func runDaemon(cmd *cobra.Command, args []string) error {
	w, err := openWorkspace()
	if err != nil {
		return err
	}
	defer w.Close()

	interval := w.cfg.Daemon.IntervalMinutes
	if daemonInterval > 0 {
		interval = daemonInterval
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	w.log.Info("daemon starting", zap.Int("interval_minutes", interval), zap.String("query", daemonQuery))

	// Run immediately on start
	if err := w.runPipeline(ctx, daemonQuery); err != nil {
		w.log.Error("pipeline failed", zap.Error(err))
	}

	if daemonOnce {
		fmt.Println("Single run complete.")
		return nil
	}

	ticker := time.NewTicker(time.Duration(interval) * time.Minute)
	defer ticker.Stop()

	fmt.Printf("Daemon running. Next run in %d minutes. Press Ctrl+C to stop.\n", interval)

	for {
		select {
		case <-ticker.C:
			fmt.Printf("\n[%s] Running scheduled pipeline...\n", time.Now().Format("2006-01-02 15:04:05"))
			if err := w.runPipeline(ctx, daemonQuery); err != nil {
				w.log.Error("pipeline failed", zap.Error(err))
			}
			fmt.Printf("Next run in %d minutes.\n", interval)

		case <-ctx.Done():
			w.log.Info("daemon shutting down")
			return nil
		}
	}
}
