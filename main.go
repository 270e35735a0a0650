package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/example/wordquiz/internal/bot"
	"github.com/example/wordquiz/internal/config"
	"github.com/example/wordquiz/internal/console"
	"github.com/example/wordquiz/internal/database"
	"github.com/example/wordquiz/internal/excel"
	"github.com/example/wordquiz/internal/logger"
	"github.com/example/wordquiz/internal/quiz"
	"github.com/example/wordquiz/internal/scheduler"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type app struct {
	cfg    *config.Config
	logger *zap.Logger

	bankPath  string
	bankSheet string
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:          "wordquiz",
		Short:        "English and Chinese vocabulary quiz",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&a.bankPath, "bank", "", "term bank spreadsheet (overrides bank.path)")
	root.PersistentFlags().StringVar(&a.bankSheet, "sheet", "", "sheet to read (overrides bank.sheet)")

	root.AddCommand(a.serveCmd(), a.playCmd(), a.checkCmd())
	return root
}

func (a *app) init() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if a.bankPath != "" {
		cfg.Bank.Path = a.bankPath
	}
	if a.bankSheet != "" {
		cfg.Bank.Sheet = a.bankSheet
	}

	log, err := logger.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	a.cfg = cfg
	a.logger = log
	return nil
}

// loadBank imports the configured term bank
func (a *app) loadBank() (*excel.ImportResult, error) {
	src := excel.NewSource(excel.ImportConfig{
		FilePath:  a.cfg.Bank.Path,
		SheetName: a.cfg.Bank.Sheet,
	})

	result, err := src.Load()
	if err != nil {
		a.logger.Error("failed to load term bank", zap.String("path", a.cfg.Bank.Path), zap.Error(err))
		return nil, err
	}

	a.logger.Info("term bank loaded",
		zap.String("path", a.cfg.Bank.Path),
		zap.String("english_column", result.EnglishColumn),
		zap.String("chinese_column", result.ChineseColumn),
		zap.Int("terms", len(result.Bank)),
		zap.Int("skipped", result.Skipped),
	)
	return result, nil
}

func (a *app) newEngine() (*quiz.Engine, error) {
	result, err := a.loadBank()
	if err != nil {
		return nil, err
	}

	return quiz.NewEngine(result.Bank, quiz.Rules{
		QuestionsPerRound: a.cfg.Quiz.QuestionsPerRound,
		MaxRounds:         a.cfg.Quiz.MaxRounds,
	}, nil)
}

func (a *app) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the Telegram bot",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := a.cfg.RequireToken()
			if err != nil {
				return err
			}

			engine, err := a.newEngine()
			if err != nil {
				return err
			}

			db, err := database.Connect(a.cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close()

			sessions := database.NewSessionRepository(db)

			purger := scheduler.New(sessions, a.cfg.Sessions.TTL, a.cfg.Sessions.PurgeInterval, a.logger)
			if err := purger.Start(); err != nil {
				return err
			}
			defer purger.Stop()

			b, err := bot.New(token, engine, sessions, a.logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a.logger.Info("bot started", zap.String("database", a.cfg.Database.Driver))
			if err := b.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			a.logger.Info("bot stopped")
			return nil
		},
	}
}

func (a *app) playCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play a quiz in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := a.newEngine()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			err = console.Run(ctx, engine, cmd.InOrStdin(), cmd.OutOrStdout())
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
}

func (a *app) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the term bank and report what was imported",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := a.loadBank()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "file:           %s\n", a.cfg.Bank.Path)
			fmt.Fprintf(out, "columns:        %q\n", result.Columns)
			fmt.Fprintf(out, "english column: %s\n", result.EnglishColumn)
			fmt.Fprintf(out, "chinese column: %s\n", result.ChineseColumn)
			fmt.Fprintf(out, "rows read:      %d\n", result.TotalProcessed)
			fmt.Fprintf(out, "rows skipped:   %d\n", result.Skipped)
			fmt.Fprintf(out, "terms:          %d\n", len(result.Bank))
			return nil
		},
	}
}
