package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jask/kidbuckets/internal/database"
)

// PreferencesRepo handles the preferences singleton.
type PreferencesRepo struct {
	db *sql.DB
}

func NewPreferencesRepo(db *sql.DB) *PreferencesRepo {
	return &PreferencesRepo{db: db}
}

// PreferencesPatch carries the fields a save wants to change. Nil fields
// keep their current value; ClearLocale resets locale to auto-detect.
type PreferencesPatch struct {
	ThemeHue    *int
	Locale      *string
	ClearLocale bool
}

// Get returns the preferences, never failing on absence: a missing row
// yields defaults, and a legacy row that predates theme_hue is mapped
// through the named-theme table in place. No migration step is required of
// the caller.
func (r *PreferencesRepo) Get(ctx context.Context) (Preferences, error) {
	p, err := readPreferences(ctx, r.db)
	if err != nil {
		return Preferences{}, err
	}
	return p, nil
}

// Save merges patch onto the existing (or default) record and stamps
// updated_at. Merge, not replace: unlike settings, untouched fields keep
// their previous values. The read and write run in one transaction so
// concurrent merges cannot lose updates.
func (r *PreferencesRepo) Save(ctx context.Context, patch PreferencesPatch) error {
	if patch.ThemeHue != nil && (*patch.ThemeHue < 0 || *patch.ThemeHue > 360) {
		return fmt.Errorf("%w: %d", ErrHueOutOfRange, *patch.ThemeHue)
	}
	return database.WithTx(r.db, func(tx *sql.Tx) error {
		p, err := readPreferences(ctx, tx)
		if err != nil {
			return err
		}
		if patch.ThemeHue != nil {
			p.ThemeHue = *patch.ThemeHue
		}
		if patch.ClearLocale {
			p.Locale = nil
		} else if patch.Locale != nil {
			p.Locale = patch.Locale
		}
		// Writing theme_hue and a NULL theme finalizes any pending legacy
		// migration on disk.
		_, err = tx.ExecContext(ctx, `
		INSERT INTO preferences(id, theme, theme_hue, locale, updated_at)
		VALUES (1, NULL, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
		 theme=NULL,
		 theme_hue=excluded.theme_hue,
		 locale=excluded.locale,
		 updated_at=excluded.updated_at;
		`, p.ThemeHue, p.Locale, database.Now())
		return storageErr("save preferences", err)
	})
}

// querier lets readPreferences run against *sql.DB or *sql.Tx.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func readPreferences(ctx context.Context, q querier) (Preferences, error) {
	var (
		theme    *string
		themeHue *int
		p        Preferences
	)
	err := q.QueryRowContext(ctx,
		`SELECT theme, theme_hue, locale, updated_at FROM preferences WHERE id = 1`).
		Scan(&theme, &themeHue, &p.Locale, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Preferences{ThemeHue: DefaultThemeHue, UpdatedAt: database.Now()}, nil
	}
	if err != nil {
		return Preferences{}, storageErr("get preferences", err)
	}
	switch {
	case themeHue != nil:
		p.ThemeHue = *themeHue
	case theme != nil:
		p.ThemeHue = HueForLegacyTheme(*theme)
	default:
		p.ThemeHue = DefaultThemeHue
	}
	return p, nil
}
