// Package service holds the sync coordinator that mediates between the
// Lunch Money client and the local cache, and the pure goal-affordability
// computations.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/jask/kidbuckets/internal/database"
	"github.com/jask/kidbuckets/internal/database/repository"
	"github.com/jask/kidbuckets/internal/lunchmoney"
)

// ErrNotConfigured reports that no usable settings exist and there is no
// cache to fall back to. Not retryable until configuration changes.
var ErrNotConfigured = errors.New("not configured")

// BucketFetcher is the slice of the Lunch Money client the coordinator
// needs; tests substitute fakes.
type BucketFetcher interface {
	FetchBucketBalances(ctx context.Context, token string, savingsID, goalsID, spendingID int64) (lunchmoney.BucketBalances, error)
	FetchTransactions(ctx context.Context, token string, accountID int64, startDate, endDate string) ([]lunchmoney.Transaction, error)
}

// BucketData is the result of a buckets read: live or cached, with the time
// the data was obtained.
type BucketData struct {
	Savings     *lunchmoney.Account
	Goals       *lunchmoney.Account
	Spending    *lunchmoney.Account
	LastUpdated time.Time
}

// TransactionData is the result of a spending-transactions read.
type TransactionData struct {
	Transactions []lunchmoney.Transaction
	LastUpdated  time.Time
}

// SyncService implements fetch-or-fall-back-to-cache for the two data
// domains. Every call attempts a live fetch; staleness windows are the
// caller's policy, not enforced here.
type SyncService struct {
	Settings     *repository.SettingsRepo
	Balances     *repository.BalanceCacheRepo
	Transactions *repository.TransactionCacheRepo
	Client       BucketFetcher
}

// GetBuckets returns the three bucket balances, live when possible. On a
// successful fetch the results are cached before returning; on failure the
// last cached snapshot is served instead, and only when that is also empty
// does the original error surface.
func (s *SyncService) GetBuckets(ctx context.Context) (BucketData, error) {
	settings, err := s.Settings.Get(ctx)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return BucketData{}, err
	}
	if err != nil || settings.APIToken == "" {
		return s.bucketsFromCache(ctx, settings, nil)
	}

	bb, fetchErr := s.Client.FetchBucketBalances(ctx, settings.APIToken,
		settings.SavingsAccountID, settings.GoalsAccountID, settings.SpendingAccountID)
	if fetchErr != nil {
		var violation *lunchmoney.SecurityViolation
		if errors.As(fetchErr, &violation) {
			// broken safety invariant, never masked by fallback
			return BucketData{}, fetchErr
		}
		return s.bucketsFromCache(ctx, settings, fetchErr)
	}

	var toCache []repository.CachedBalance
	for _, a := range []*lunchmoney.Account{bb.Savings, bb.Goals, bb.Spending} {
		if a == nil {
			continue
		}
		toCache = append(toCache, repository.CachedBalance{
			AccountID:   a.ID,
			Balance:     a.Balance,
			BalanceAsOf: a.BalanceAsOf,
			Currency:    a.Currency,
			Name:        a.Name,
		})
	}
	if err := s.Balances.Put(ctx, toCache); err != nil {
		return BucketData{}, err
	}

	return BucketData{
		Savings:     bb.Savings,
		Goals:       bb.Goals,
		Spending:    bb.Spending,
		LastUpdated: database.Now(),
	}, nil
}

// bucketsFromCache serves the last cached snapshot. fetchErr is the error
// that forced the fallback, re-raised when the cache is empty; nil fetchErr
// means configuration was missing, which resolves to ErrNotConfigured.
func (s *SyncService) bucketsFromCache(ctx context.Context, settings repository.Settings, fetchErr error) (BucketData, error) {
	cached, err := s.Balances.List(ctx)
	if err != nil {
		// the store is the fallback target; its failure cannot be masked
		return BucketData{}, err
	}
	if len(cached) == 0 {
		if fetchErr != nil {
			return BucketData{}, fetchErr
		}
		return BucketData{}, ErrNotConfigured
	}

	data := BucketData{LastUpdated: oldestBalance(cached)}
	for i := range cached {
		a := accountFromCache(cached[i])
		switch cached[i].AccountID {
		case settings.SavingsAccountID:
			data.Savings = a
		case settings.GoalsAccountID:
			data.Goals = a
		case settings.SpendingAccountID:
			data.Spending = a
		}
	}
	return data, nil
}

// GetSpendingTransactions returns the spending bucket's recent
// transactions, live when possible, cached otherwise. Cached rows are
// rebuilt into the API shape with nil notes and category id and status
// "cleared": the cache does not retain those fields, a deliberate lossy
// tradeoff.
func (s *SyncService) GetSpendingTransactions(ctx context.Context) (TransactionData, error) {
	settings, err := s.Settings.Get(ctx)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return TransactionData{}, err
	}
	if err != nil || settings.APIToken == "" || settings.SpendingAccountID == 0 {
		return s.transactionsFromCache(ctx, settings, nil)
	}

	txns, fetchErr := s.Client.FetchTransactions(ctx, settings.APIToken, settings.SpendingAccountID, "", "")
	if fetchErr != nil {
		var violation *lunchmoney.SecurityViolation
		if errors.As(fetchErr, &violation) {
			return TransactionData{}, fetchErr
		}
		return s.transactionsFromCache(ctx, settings, fetchErr)
	}

	toCache := make([]repository.CachedTransaction, 0, len(txns))
	for _, t := range txns {
		toCache = append(toCache, repository.CachedTransaction{
			ID:           t.ID,
			AccountID:    settings.SpendingAccountID,
			Date:         t.Date,
			Payee:        t.Payee,
			Amount:       t.Amount,
			Currency:     t.Currency,
			CategoryName: t.CategoryName,
		})
	}
	if err := s.Transactions.Put(ctx, toCache); err != nil {
		return TransactionData{}, err
	}

	return TransactionData{Transactions: txns, LastUpdated: database.Now()}, nil
}

func (s *SyncService) transactionsFromCache(ctx context.Context, settings repository.Settings, fetchErr error) (TransactionData, error) {
	cached, err := s.Transactions.ListByAccount(ctx, settings.SpendingAccountID)
	if err != nil {
		return TransactionData{}, err
	}
	if len(cached) == 0 {
		if fetchErr != nil {
			return TransactionData{}, fetchErr
		}
		return TransactionData{}, ErrNotConfigured
	}

	out := make([]lunchmoney.Transaction, 0, len(cached))
	oldest := cached[0].CachedAt
	for _, c := range cached {
		if c.CachedAt.Before(oldest) {
			oldest = c.CachedAt
		}
		accountID := c.AccountID
		out = append(out, lunchmoney.Transaction{
			ID:           c.ID,
			Date:         c.Date,
			Payee:        c.Payee,
			Amount:       c.Amount,
			Currency:     c.Currency,
			CategoryName: c.CategoryName,
			AssetID:      &accountID,
			Status:       "cleared",
		})
	}
	return TransactionData{Transactions: out, LastUpdated: oldest}, nil
}

func accountFromCache(b repository.CachedBalance) *lunchmoney.Account {
	return &lunchmoney.Account{
		ID:          b.AccountID,
		Name:        b.Name,
		Balance:     b.Balance,
		BalanceAsOf: b.BalanceAsOf,
		Currency:    b.Currency,
	}
}

// oldestBalance picks the earliest cachedAt of the batch; balances are
// cached together, so the oldest row bounds how stale the whole view is.
func oldestBalance(rows []repository.CachedBalance) time.Time {
	oldest := rows[0].CachedAt
	for _, r := range rows[1:] {
		if r.CachedAt.Before(oldest) {
			oldest = r.CachedAt
		}
	}
	return oldest
}
