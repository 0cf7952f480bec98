package repository

import (
	"context"
	"database/sql"

	"github.com/jask/kidbuckets/internal/database"
)

// TransactionCacheRepo handles the cached transactions table.
type TransactionCacheRepo struct {
	db *sql.DB
}

func NewTransactionCacheRepo(db *sql.DB) *TransactionCacheRepo {
	return &TransactionCacheRepo{db: db}
}

// Put bulk-upserts transactions keyed by their upstream id, stamping
// cached_at = now on every row.
func (r *TransactionCacheRepo) Put(ctx context.Context, txns []CachedTransaction) error {
	if len(txns) == 0 {
		return nil
	}
	now := database.Now()
	return database.WithTx(r.db, func(tx *sql.Tx) error {
		for _, t := range txns {
			_, err := tx.ExecContext(ctx, `
			INSERT INTO cached_transactions(id, account_id, date_iso, payee, amount, currency, category_name, cached_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
			 account_id=excluded.account_id,
			 date_iso=excluded.date_iso,
			 payee=excluded.payee,
			 amount=excluded.amount,
			 currency=excluded.currency,
			 category_name=excluded.category_name,
			 cached_at=excluded.cached_at;
			`, t.ID, t.AccountID, t.Date, t.Payee, t.Amount, t.Currency, t.CategoryName, now)
			if err != nil {
				return storageErr("cache transaction", err)
			}
		}
		return nil
	})
}

// ListByAccount returns the cached transactions for one account, newest
// first.
func (r *TransactionCacheRepo) ListByAccount(ctx context.Context, accountID int64) ([]CachedTransaction, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, account_id, date_iso, payee, amount, currency, category_name, cached_at
	FROM cached_transactions WHERE account_id = ? ORDER BY date_iso DESC, id DESC`, accountID)
	if err != nil {
		return nil, storageErr("list cached transactions", err)
	}
	defer rows.Close()
	var out []CachedTransaction
	for rows.Next() {
		var t CachedTransaction
		if err := rows.Scan(&t.ID, &t.AccountID, &t.Date, &t.Payee, &t.Amount, &t.Currency, &t.CategoryName, &t.CachedAt); err != nil {
			return nil, storageErr("scan cached transaction", err)
		}
		out = append(out, t)
	}
	return out, storageErr("list cached transactions", rows.Err())
}

// Wipe clears the transaction cache.
func (r *TransactionCacheRepo) Wipe(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cached_transactions`)
	return storageErr("wipe cached transactions", err)
}
