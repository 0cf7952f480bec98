package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jask/kidbuckets/internal/database"
)

// SettingsRepo handles the settings singleton.
type SettingsRepo struct {
	db *sql.DB
}

func NewSettingsRepo(db *sql.DB) *SettingsRepo {
	return &SettingsRepo{db: db}
}

// Get returns the settings row, or ErrNotFound before first save.
func (r *SettingsRepo) Get(ctx context.Context) (Settings, error) {
	var s Settings
	err := r.db.QueryRowContext(ctx, `
	SELECT api_token, savings_account_id, goals_account_id, spending_account_id, vault_subtitle, updated_at
	FROM settings WHERE id = 1`).
		Scan(&s.APIToken, &s.SavingsAccountID, &s.GoalsAccountID, &s.SpendingAccountID, &s.VaultSubtitle, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Settings{}, ErrNotFound
	}
	if err != nil {
		return Settings{}, storageErr("get settings", err)
	}
	return s, nil
}

// Save writes the settings row with full-replace semantics: every field is
// overwritten, updated_at is stamped here. A caller-supplied UpdatedAt is
// ignored.
func (r *SettingsRepo) Save(ctx context.Context, s Settings) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO settings(id, api_token, savings_account_id, goals_account_id, spending_account_id, vault_subtitle, updated_at)
	VALUES (1, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
	 api_token=excluded.api_token,
	 savings_account_id=excluded.savings_account_id,
	 goals_account_id=excluded.goals_account_id,
	 spending_account_id=excluded.spending_account_id,
	 vault_subtitle=excluded.vault_subtitle,
	 updated_at=excluded.updated_at;
	`, s.APIToken, s.SavingsAccountID, s.GoalsAccountID, s.SpendingAccountID, s.VaultSubtitle, database.Now())
	return storageErr("save settings", err)
}

// Wipe deletes the settings row. Part of the full local-data reset flow.
func (r *SettingsRepo) Wipe(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM settings`)
	return storageErr("wipe settings", err)
}
