package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/perennial/grove/internal/clock"
	"github.com/perennial/grove/internal/config"
	"github.com/perennial/grove/internal/domain/forest"
	"github.com/perennial/grove/internal/domain/session"
	"github.com/perennial/grove/internal/domain/stats"
	"github.com/perennial/grove/internal/notify"
	"github.com/perennial/grove/internal/sqlite"
	"github.com/perennial/grove/internal/ui"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "grove",
		Short:         "Plant a tree by staying focused for 25 minutes",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newTimerCmd())
	root.AddCommand(newStatusCmd())
	root.AddCommand(newTreesCmd())
	root.AddCommand(newStatsCmd())
	root.AddCommand(newStreakCmd())
	root.AddCommand(newTamperCmd())
	return root
}

// app wires every layer together for one command invocation.
type app struct {
	cfg     config.Config
	logger  *slog.Logger
	db      *sqlite.DB
	engine  *session.Engine
	forest  *forest.Service
	stats   *stats.Service
	recover *session.RecoveryCoordinator
}

func loadApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := newLogger(cfg.Log.Level)

	if dir := filepath.Dir(cfg.DB.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}

	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		return nil, err
	}
	if err := db.RunMigrations(); err != nil {
		db.Close()
		return nil, err
	}

	sessions := sqlite.NewSessionRepository(db)
	trees := sqlite.NewTreeRepository(db)
	streaks := sqlite.NewStreakRepository(db)
	tampers := sqlite.NewTamperRepository(db)

	statsSvc := stats.NewService(streaks, tampers, trees, logger)
	forestSvc := forest.NewService(trees, logger)

	var notifier session.Notifier = notify.Noop{}
	if cfg.Notify.Enabled {
		notifier = notify.NewDesktop(logger)
	}

	engine := session.NewEngine(sessions, statsSvc, statsSvc, notifier, clock.NewMonotonic(), logger)
	coordinator := session.NewRecoveryCoordinator(sessions, engine, logger)

	// Anything a previous process left running is unrecoverable; mark it
	// abandoned before accepting commands.
	if _, err := coordinator.AbandonStale(context.Background()); err != nil {
		db.Close()
		return nil, err
	}

	return &app{
		cfg:     cfg,
		logger:  logger,
		db:      db,
		engine:  engine,
		forest:  forestSvc,
		stats:   statsSvc,
		recover: coordinator,
	}, nil
}

func (a *app) close() {
	a.engine.Close()
	_ = a.db.Close()
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func newTimerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "timer",
		Short: "Run the interactive focus timer",
		RunE: func(_ *cobra.Command, _ []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			defer a.close()
			return ui.Run(a.engine, a.stats)
		},
	}
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show today's progress and the current streak",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			defer a.close()

			ctx := cmd.Context()
			streak, err := a.stats.CurrentStreak(ctx)
			if err != nil {
				return err
			}
			today, err := a.stats.TodaysTreeCount(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "trees today:    %d\n", today)
			_, _ = fmt.Fprintf(out, "current streak: %d day(s)\n", streak)
			return nil
		},
	}
}

func newTreesCmd() *cobra.Command {
	var todayOnly bool

	cmd := &cobra.Command{
		Use:   "trees",
		Short: "List planted trees, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			defer a.close()

			ctx := cmd.Context()
			var list []forest.Tree
			if todayOnly {
				list, err = a.forest.Today(ctx)
			} else {
				list, err = a.forest.All(ctx)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(list) == 0 {
				_, _ = fmt.Fprintln(out, "no trees yet")
				return nil
			}
			for _, tree := range list {
				_, _ = fmt.Fprintf(out, "%s  planted %s\n",
					tree.ID, tree.CompletionTime.Format(time.DateTime))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&todayOnly, "today", false, "only trees planted today")
	return cmd
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show all-time focus statistics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			defer a.close()

			ctx := cmd.Context()
			total, err := a.stats.TotalTreesPlanted(ctx)
			if err != nil {
				return err
			}
			focus, err := a.stats.TotalFocusTime(ctx)
			if err != nil {
				return err
			}
			streak, err := a.stats.CurrentStreak(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "trees planted:  %d\n", total)
			_, _ = fmt.Fprintf(out, "focus time:     %s\n", focus)
			_, _ = fmt.Fprintf(out, "current streak: %d day(s)\n", streak)
			return nil
		},
	}
}

func newStreakCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "streak",
		Short: "Show the consecutive-day streak",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			defer a.close()

			streak, err := a.stats.CurrentStreak(cmd.Context())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d day(s)\n", streak)
			return nil
		},
	}
}

func newTamperCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "tamper",
		Short: "Show detected clock anomalies, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			defer a.close()

			events, err := a.stats.TamperEvents(cmd.Context(), limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(events) == 0 {
				_, _ = fmt.Fprintln(out, "no anomalies recorded")
				return nil
			}
			for _, event := range events {
				_, _ = fmt.Fprintf(out, "%s  jump of %ss\n",
					event.Timestamp.Format(time.DateTime),
					strconv.FormatFloat(event.TimeJumpMagnitude, 'f', 1, 64))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum events to show")
	return cmd
}
