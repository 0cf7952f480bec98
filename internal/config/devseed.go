//go:build !prod

package config

import (
	"os"
	"strconv"
)

// DevSettings reads the KIDBUCKETS_DEV_* environment variables used to
// auto-populate settings on first load during development. Production
// builds (the prod tag) compile this out entirely; there the function
// always reports absence.
func DevSettings() (token string, savingsID, goalsID, spendingID int64, ok bool) {
	token = os.Getenv("KIDBUCKETS_DEV_TOKEN")
	if token == "" {
		return "", 0, 0, 0, false
	}
	var err error
	if savingsID, err = strconv.ParseInt(os.Getenv("KIDBUCKETS_DEV_SAVINGS_ACCOUNT_ID"), 10, 64); err != nil {
		return "", 0, 0, 0, false
	}
	if goalsID, err = strconv.ParseInt(os.Getenv("KIDBUCKETS_DEV_GOALS_ACCOUNT_ID"), 10, 64); err != nil {
		return "", 0, 0, 0, false
	}
	if spendingID, err = strconv.ParseInt(os.Getenv("KIDBUCKETS_DEV_SPENDING_ACCOUNT_ID"), 10, 64); err != nil {
		return "", 0, 0, 0, false
	}
	return token, savingsID, goalsID, spendingID, true
}
