//go:build prod

package config

// DevSettings never yields settings in production builds.
func DevSettings() (token string, savingsID, goalsID, spendingID int64, ok bool) {
	return "", 0, 0, 0, false
}
