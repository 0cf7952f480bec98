package main

import (
	"database/sql"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jask/kidbuckets/internal/config"
	"github.com/jask/kidbuckets/internal/database"
	"github.com/jask/kidbuckets/internal/database/repository"
	"github.com/jask/kidbuckets/internal/lunchmoney"
	"github.com/jask/kidbuckets/internal/service"
)

// app holds the wired-up dependencies shared by all subcommands.
// Initialized by the root command's PersistentPreRunE.
type app struct {
	cfg         config.Config
	db          *sql.DB
	settings    *repository.SettingsRepo
	preferences *repository.PreferencesRepo
	goals       *repository.GoalRepo
	sync        *service.SyncService
}

var a app

var rootCmd = &cobra.Command{
	Use:   "kidbuckets",
	Short: "Companion app data layer for a child's three money buckets",
	Long: `kidbuckets tracks three money buckets (long-term savings, goal savings,
free spending) read-only from the Lunch Money API, caches them locally for
offline use, and manages the child's savings goals.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if a.db != nil {
			_ = a.db.Close()
		}
	},
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(prefsCmd)
	rootCmd.AddCommand(goalCmd)
	rootCmd.AddCommand(bucketsCmd)
	rootCmd.AddCommand(transactionsCmd)
	rootCmd.AddCommand(versionCmd)
}

func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		return err
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return err
	}
	if err := database.RunMigrations(db); err != nil {
		db.Close()
		return err
	}

	client := lunchmoney.NewClient()
	client.BaseURL = cfg.API.BaseURL

	a = app{
		cfg:         cfg,
		db:          db,
		settings:    repository.NewSettingsRepo(db),
		preferences: repository.NewPreferencesRepo(db),
		goals:       repository.NewGoalRepo(db),
	}
	a.sync = &service.SyncService{
		Settings:     a.settings,
		Balances:     repository.NewBalanceCacheRepo(db),
		Transactions: repository.NewTransactionCacheRepo(db),
		Client:       client,
	}

	seedDevSettings(cmd)
	return nil
}

// seedDevSettings auto-populates settings from KIDBUCKETS_DEV_* env vars on
// first load. Development convenience only; compiled out of prod builds.
func seedDevSettings(cmd *cobra.Command) {
	token, savingsID, goalsID, spendingID, ok := config.DevSettings()
	if !ok {
		return
	}
	ctx := cmd.Context()
	if _, err := a.settings.Get(ctx); err == nil {
		return // already configured, never overwrite
	}
	err := a.settings.Save(ctx, repository.Settings{
		APIToken:          token,
		SavingsAccountID:  savingsID,
		GoalsAccountID:    goalsID,
		SpendingAccountID: spendingID,
	})
	if err != nil {
		log.Printf("warn: dev settings seed failed: %v", err)
	}
}
