package repository

import (
	"context"
	"database/sql"

	"github.com/jask/kidbuckets/internal/database"
)

// BalanceCacheRepo handles the cached balances table.
type BalanceCacheRepo struct {
	db *sql.DB
}

func NewBalanceCacheRepo(db *sql.DB) *BalanceCacheRepo {
	return &BalanceCacheRepo{db: db}
}

// Put bulk-upserts balances keyed by account id. cached_at is stamped here
// for every row regardless of the caller-supplied value, so a batch always
// carries one write time.
func (r *BalanceCacheRepo) Put(ctx context.Context, balances []CachedBalance) error {
	if len(balances) == 0 {
		return nil
	}
	now := database.Now()
	return database.WithTx(r.db, func(tx *sql.Tx) error {
		for _, b := range balances {
			_, err := tx.ExecContext(ctx, `
			INSERT INTO cached_balances(account_id, balance, balance_as_of, currency, name, cached_at)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT(account_id) DO UPDATE SET
			 balance=excluded.balance,
			 balance_as_of=excluded.balance_as_of,
			 currency=excluded.currency,
			 name=excluded.name,
			 cached_at=excluded.cached_at;
			`, b.AccountID, b.Balance, b.BalanceAsOf, b.Currency, b.Name, now)
			if err != nil {
				return storageErr("cache balance", err)
			}
		}
		return nil
	})
}

// List returns all cached balance rows.
func (r *BalanceCacheRepo) List(ctx context.Context) ([]CachedBalance, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT account_id, balance, balance_as_of, currency, name, cached_at
	FROM cached_balances`)
	if err != nil {
		return nil, storageErr("list cached balances", err)
	}
	defer rows.Close()
	var out []CachedBalance
	for rows.Next() {
		var b CachedBalance
		if err := rows.Scan(&b.AccountID, &b.Balance, &b.BalanceAsOf, &b.Currency, &b.Name, &b.CachedAt); err != nil {
			return nil, storageErr("scan cached balance", err)
		}
		out = append(out, b)
	}
	return out, storageErr("list cached balances", rows.Err())
}

// Wipe clears the balance cache.
func (r *BalanceCacheRepo) Wipe(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cached_balances`)
	return storageErr("wipe cached balances", err)
}
