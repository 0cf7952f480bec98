// Package repository is the local store: five record kinds (settings,
// preferences, goals, cached balances, cached transactions) persisted in
// sqlite. Downstream code gets value snapshots per query and never mutates
// rows in place.
package repository

import (
	"time"

	"github.com/shopspring/decimal"
)

// Settings is the parent-entered configuration row. Exactly one row exists
// once saved (id fixed to 1, enforced by a CHECK constraint).
type Settings struct {
	APIToken          string
	SavingsAccountID  int64
	GoalsAccountID    int64
	SpendingAccountID int64
	VaultSubtitle     *string
	UpdatedAt         time.Time
}

// Preferences is the child's display preferences. Locale nil means
// auto-detect.
type Preferences struct {
	ThemeHue  int
	Locale    *string
	UpdatedAt time.Time
}

// Goal is a child-created savings goal.
type Goal struct {
	ID           int64
	Name         string
	TargetAmount decimal.Decimal
	IconEmoji    *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CachedBalance is the last-known balance for one account, written on every
// successful remote fetch. Rows are never proactively expired; freshness is
// the reader's call.
type CachedBalance struct {
	AccountID   int64
	Balance     string
	BalanceAsOf string
	Currency    string
	Name        string
	CachedAt    time.Time
}

// CachedTransaction is one remotely-fetched transaction kept for offline
// fallback. Category name is the only categorization detail retained.
type CachedTransaction struct {
	ID           int64
	AccountID    int64
	Date         string
	Payee        string
	Amount       string
	Currency     string
	CategoryName *string
	CachedAt     time.Time
}
