package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jask/kidbuckets/internal/service"
)

var transactionsCmd = &cobra.Command{
	Use:     "transactions",
	Aliases: []string{"txns"},
	Short:   "List recent spending-bucket transactions",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := a.sync.GetSpendingTransactions(cmd.Context())
		if errors.Is(err, service.ErrNotConfigured) {
			fmt.Println("couldn't load transactions: not configured; run: kidbuckets settings set")
			return nil
		}
		if err != nil {
			return err
		}
		if len(data.Transactions) == 0 {
			fmt.Println("no transactions in the last 30 days")
			return nil
		}
		for _, t := range data.Transactions {
			category := "uncategorized"
			if t.CategoryName != nil {
				category = *t.CategoryName
			}
			fmt.Printf("%s  %10s %s  %-24s %s\n", t.Date, t.Amount, t.Currency, t.Payee, category)
		}
		printLastUpdated(data.LastUpdated)
		return nil
	},
}
