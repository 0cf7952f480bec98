package service

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/kidbuckets/internal/database"
	"github.com/jask/kidbuckets/internal/database/repository"
	"github.com/jask/kidbuckets/internal/lunchmoney"
)

// fakeFetcher is a scripted BucketFetcher.
type fakeFetcher struct {
	buckets    lunchmoney.BucketBalances
	txns       []lunchmoney.Transaction
	err        error
	bucketCall int
	txnCall    int
}

func (f *fakeFetcher) FetchBucketBalances(ctx context.Context, token string, savingsID, goalsID, spendingID int64) (lunchmoney.BucketBalances, error) {
	f.bucketCall++
	if f.err != nil {
		return lunchmoney.BucketBalances{}, f.err
	}
	return f.buckets, nil
}

func (f *fakeFetcher) FetchTransactions(ctx context.Context, token string, accountID int64, startDate, endDate string) ([]lunchmoney.Transaction, error) {
	f.txnCall++
	if f.err != nil {
		return nil, f.err
	}
	return f.txns, nil
}

func newSyncService(t *testing.T, fetcher BucketFetcher) (*SyncService, *sql.DB) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.RunMigrations(db))

	return &SyncService{
		Settings:     repository.NewSettingsRepo(db),
		Balances:     repository.NewBalanceCacheRepo(db),
		Transactions: repository.NewTransactionCacheRepo(db),
		Client:       fetcher,
	}, db
}

func saveSettings(t *testing.T, s *SyncService) {
	t.Helper()
	require.NoError(t, s.Settings.Save(context.Background(), repository.Settings{
		APIToken:          "t",
		SavingsAccountID:  1,
		GoalsAccountID:    2,
		SpendingAccountID: 3,
	}))
}

func acct(id int64, name, balance string) *lunchmoney.Account {
	return &lunchmoney.Account{
		ID:          id,
		Name:        name,
		Balance:     balance,
		BalanceAsOf: "2026-08-30T10:00:00Z",
		Currency:    "EUR",
		TypeName:    "cash",
		Source:      "manual",
	}
}

func TestGetBucketsFreshFetchAndCacheWrite(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	fetcher := &fakeFetcher{buckets: lunchmoney.BucketBalances{
		Savings:  acct(1, "Savings", "1500.00"),
		Goals:    acct(2, "Goals", "350.00"),
		Spending: acct(3, "Spending", "75.50"),
	}}
	s, _ := newSyncService(t, fetcher)
	saveSettings(t, s)

	data, err := s.GetBuckets(ctx)
	require.NoError(t, err)
	require.Equal(t, "1500.00", data.Savings.Balance)
	require.Equal(t, "350.00", data.Goals.Balance)
	require.Equal(t, "75.50", data.Spending.Balance)
	require.Equal(t, "EUR", data.Savings.Currency)
	require.WithinDuration(t, time.Now().UTC(), data.LastUpdated, 5*time.Second)

	// all three rows landed in the cache
	cached, err := s.Balances.List(ctx)
	require.NoError(t, err)
	require.Len(t, cached, 3)
}

func TestGetBucketsPartialAccountList(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	fetcher := &fakeFetcher{buckets: lunchmoney.BucketBalances{
		Savings: acct(1, "Savings", "1500.00"),
		// goals and spending ids not found upstream
	}}
	s, _ := newSyncService(t, fetcher)
	saveSettings(t, s)

	data, err := s.GetBuckets(ctx)
	require.NoError(t, err)
	require.NotNil(t, data.Savings)
	require.Nil(t, data.Goals)
	require.Nil(t, data.Spending)

	cached, err := s.Balances.List(ctx)
	require.NoError(t, err)
	require.Len(t, cached, 1)
}

func TestGetBucketsFallsBackToCacheOnFetchFailure(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	// first run online to populate the cache
	fetcher := &fakeFetcher{buckets: lunchmoney.BucketBalances{
		Savings:  acct(1, "Savings", "1500.00"),
		Goals:    acct(2, "Goals", "350.00"),
		Spending: acct(3, "Spending", "75.50"),
	}}
	s, _ := newSyncService(t, fetcher)
	saveSettings(t, s)
	_, err := s.GetBuckets(ctx)
	require.NoError(t, err)

	// then go offline
	fetcher.err = &lunchmoney.NetworkError{Err: context.DeadlineExceeded}

	data, err := s.GetBuckets(ctx)
	require.NoError(t, err)
	require.Equal(t, "1500.00", data.Savings.Balance)
	require.Equal(t, "350.00", data.Goals.Balance)
	require.Equal(t, "75.50", data.Spending.Balance)
	require.False(t, data.LastUpdated.IsZero())
}

func TestGetBucketsEmptyCacheReRaisesFetchError(t *testing.T) {
	t.Parallel()
	netErr := &lunchmoney.NetworkError{Err: context.DeadlineExceeded}
	s, _ := newSyncService(t, &fakeFetcher{err: netErr})
	saveSettings(t, s)

	_, err := s.GetBuckets(context.Background())
	var ne *lunchmoney.NetworkError
	require.ErrorAs(t, err, &ne)
}

func TestGetBucketsNotConfigured(t *testing.T) {
	t.Parallel()
	fetcher := &fakeFetcher{}
	s, _ := newSyncService(t, fetcher)

	_, err := s.GetBuckets(context.Background())
	require.ErrorIs(t, err, ErrNotConfigured)
	require.Zero(t, fetcher.bucketCall, "no fetch without configuration")
}

func TestGetBucketsCacheServedWithoutToken(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	fetcher := &fakeFetcher{buckets: lunchmoney.BucketBalances{
		Savings: acct(1, "Savings", "1500.00"),
	}}
	s, _ := newSyncService(t, fetcher)
	saveSettings(t, s)
	_, err := s.GetBuckets(ctx)
	require.NoError(t, err)

	// settings wiped but cache kept: still serves a stale view
	require.NoError(t, s.Settings.Wipe(ctx))
	data, err := s.GetBuckets(ctx)
	require.NoError(t, err)
	require.False(t, data.LastUpdated.IsZero())
	require.Equal(t, 1, fetcher.bucketCall, "offline path must not fetch")
}

func TestGetBucketsSecurityViolationIsNeverMasked(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	fetcher := &fakeFetcher{buckets: lunchmoney.BucketBalances{
		Savings: acct(1, "Savings", "1500.00"),
	}}
	s, _ := newSyncService(t, fetcher)
	saveSettings(t, s)
	_, err := s.GetBuckets(ctx) // populate cache
	require.NoError(t, err)

	fetcher.err = &lunchmoney.SecurityViolation{Method: "POST"}
	_, err = s.GetBuckets(ctx)
	var violation *lunchmoney.SecurityViolation
	require.ErrorAs(t, err, &violation, "cache fallback must not swallow a broken safety invariant")
}

func TestGetSpendingTransactionsFreshAndCached(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	notes := "school trip"
	categoryID := int64(77)
	category := "Snacks"
	assetID := int64(3)
	fetcher := &fakeFetcher{txns: []lunchmoney.Transaction{
		{ID: 11, Date: "2026-08-28", Payee: "Kiosk", Amount: "-2.50", Currency: "EUR",
			Notes: &notes, CategoryID: &categoryID, CategoryName: &category, AssetID: &assetID, Status: "posted"},
	}}
	s, _ := newSyncService(t, fetcher)
	saveSettings(t, s)

	data, err := s.GetSpendingTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, data.Transactions, 1)
	require.Equal(t, "posted", data.Transactions[0].Status)

	// offline: the cache serves a reconstructed, lossy view
	fetcher.err = &lunchmoney.NetworkError{Err: context.DeadlineExceeded}
	data, err = s.GetSpendingTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, data.Transactions, 1)
	got := data.Transactions[0]
	require.Equal(t, int64(11), got.ID)
	require.Equal(t, "Kiosk", got.Payee)
	require.NotNil(t, got.CategoryName)
	require.Equal(t, "Snacks", *got.CategoryName)
	// fields the cache does not retain come back as placeholders
	require.Nil(t, got.Notes)
	require.Nil(t, got.CategoryID)
	require.Equal(t, "cleared", got.Status)
	require.NotNil(t, got.AssetID)
	require.Equal(t, int64(3), *got.AssetID)
}

func TestGetSpendingTransactionsNotConfigured(t *testing.T) {
	t.Parallel()
	s, _ := newSyncService(t, &fakeFetcher{})

	_, err := s.GetSpendingTransactions(context.Background())
	require.ErrorIs(t, err, ErrNotConfigured)
}
