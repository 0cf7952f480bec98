package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jask/kidbuckets/internal/database/repository"
)

var (
	flagToken         string
	flagSavingsID     int64
	flagGoalsID       int64
	flagSpendingID    int64
	flagVaultSubtitle string
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Parent configuration: API token and bucket account mappings",
}

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Save settings (full replace)",
	RunE: func(cmd *cobra.Command, args []string) error {
		s := repository.Settings{
			APIToken:          flagToken,
			SavingsAccountID:  flagSavingsID,
			GoalsAccountID:    flagGoalsID,
			SpendingAccountID: flagSpendingID,
		}
		if flagVaultSubtitle != "" {
			s.VaultSubtitle = &flagVaultSubtitle
		}
		if err := a.settings.Save(cmd.Context(), s); err != nil {
			return err
		}
		fmt.Println("settings saved")
		return nil
	},
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show settings with the token redacted",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := a.settings.Get(cmd.Context())
		if errors.Is(err, repository.ErrNotFound) {
			fmt.Println("no settings saved yet; run: kidbuckets settings set")
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Printf("token:    %s\n", redact(s.APIToken))
		fmt.Printf("savings:  account %d\n", s.SavingsAccountID)
		fmt.Printf("goals:    account %d\n", s.GoalsAccountID)
		fmt.Printf("spending: account %d\n", s.SpendingAccountID)
		if s.VaultSubtitle != nil {
			fmt.Printf("subtitle: %s\n", *s.VaultSubtitle)
		}
		fmt.Printf("updated:  %s\n", s.UpdatedAt.Format("2006-01-02 15:04"))
		return nil
	},
}

var settingsWipeCmd = &cobra.Command{
	Use:   "wipe",
	Short: "Delete settings and cached data (full local reset)",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := a.settings.Wipe(ctx); err != nil {
			return err
		}
		if err := a.sync.Balances.Wipe(ctx); err != nil {
			return err
		}
		if err := a.sync.Transactions.Wipe(ctx); err != nil {
			return err
		}
		fmt.Println("local data wiped")
		return nil
	},
}

func init() {
	settingsSetCmd.Flags().StringVar(&flagToken, "token", "", "Lunch Money API token (required)")
	settingsSetCmd.Flags().Int64Var(&flagSavingsID, "savings", 0, "savings bucket account id (required)")
	settingsSetCmd.Flags().Int64Var(&flagGoalsID, "goals", 0, "goals bucket account id (required)")
	settingsSetCmd.Flags().Int64Var(&flagSpendingID, "spending", 0, "spending bucket account id (required)")
	settingsSetCmd.Flags().StringVar(&flagVaultSubtitle, "subtitle", "", "custom vault subtitle")
	_ = settingsSetCmd.MarkFlagRequired("token")
	_ = settingsSetCmd.MarkFlagRequired("savings")
	_ = settingsSetCmd.MarkFlagRequired("goals")
	_ = settingsSetCmd.MarkFlagRequired("spending")

	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsWipeCmd)
}

func redact(token string) string {
	if len(token) <= 4 {
		return strings.Repeat("*", len(token))
	}
	return token[:2] + strings.Repeat("*", len(token)-4) + token[len(token)-2:]
}
