package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jask/kidbuckets/internal/lunchmoney"
	"github.com/jask/kidbuckets/internal/service"
)

// freshWindow is how long fetched data is presented as fresh before the
// display flags it as stale. Display policy only; the coordinator always
// attempts a live fetch.
const freshWindow = 5 * time.Minute

var bucketsCmd = &cobra.Command{
	Use:   "buckets",
	Short: "Show the three bucket balances (cached when offline)",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := a.sync.GetBuckets(cmd.Context())
		if errors.Is(err, service.ErrNotConfigured) {
			fmt.Println("couldn't load buckets: not configured; run: kidbuckets settings set")
			return nil
		}
		if err != nil {
			return err
		}
		printBucket("savings", data.Savings)
		printBucket("goals", data.Goals)
		printBucket("spending", data.Spending)
		printLastUpdated(data.LastUpdated)
		return nil
	},
}

func printBucket(label string, acct *lunchmoney.Account) {
	if acct == nil {
		fmt.Printf("%-9s —\n", label)
		return
	}
	fmt.Printf("%-9s %s %s  (%s)\n", label, acct.Balance, acct.Currency, acct.Name)
}

func printLastUpdated(t time.Time) {
	age := time.Since(t)
	if age > freshWindow {
		fmt.Printf("last updated %s (stale)\n", t.Local().Format("2006-01-02 15:04"))
		return
	}
	fmt.Printf("last updated %s\n", t.Local().Format("15:04"))
}
