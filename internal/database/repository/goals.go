package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/jask/kidbuckets/internal/database"
)

const maxGoalNameLen = 50

// GoalRepo handles the goals collection.
type GoalRepo struct {
	db *sql.DB
}

func NewGoalRepo(db *sql.DB) *GoalRepo {
	return &GoalRepo{db: db}
}

// GoalPatch carries the editable goal fields; nil fields are left alone.
type GoalPatch struct {
	Name         *string
	TargetAmount *decimal.Decimal
	IconEmoji    *string
}

func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name must not be empty", ErrInvalidGoal)
	}
	if utf8.RuneCountInString(name) > maxGoalNameLen {
		return fmt.Errorf("%w: name longer than %d characters", ErrInvalidGoal, maxGoalNameLen)
	}
	return nil
}

func validateTarget(amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return fmt.Errorf("%w: target amount must be positive, got %s", ErrInvalidGoal, amount)
	}
	return nil
}

// List returns all goals in creation order.
func (r *GoalRepo) List(ctx context.Context) ([]Goal, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, name, target_amount, icon_emoji, created_at, updated_at
	FROM goals ORDER BY created_at, id`)
	if err != nil {
		return nil, storageErr("list goals", err)
	}
	defer rows.Close()
	var out []Goal
	for rows.Next() {
		var (
			g   Goal
			amt string
		)
		if err := rows.Scan(&g.ID, &g.Name, &amt, &g.IconEmoji, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, storageErr("scan goal", err)
		}
		g.TargetAmount, err = decimal.NewFromString(amt)
		if err != nil {
			return nil, storageErr("parse goal amount", err)
		}
		out = append(out, g)
	}
	return out, storageErr("list goals", rows.Err())
}

// Add creates a goal, stamping created_at = updated_at = now, and returns
// the new id. Invalid goals are rejected here, not tolerated at read time.
func (r *GoalRepo) Add(ctx context.Context, name string, target decimal.Decimal, iconEmoji *string) (int64, error) {
	if err := validateName(name); err != nil {
		return 0, err
	}
	if err := validateTarget(target); err != nil {
		return 0, err
	}
	now := database.Now()
	res, err := r.db.ExecContext(ctx, `
	INSERT INTO goals(name, target_amount, icon_emoji, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?)`,
		name, target.String(), iconEmoji, now, now)
	if err != nil {
		return 0, storageErr("add goal", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, storageErr("add goal", err)
	}
	return id, nil
}

// Update applies patch to the goal with the given id and stamps updated_at.
// Returns ErrNotFound if no such goal exists.
func (r *GoalRepo) Update(ctx context.Context, id int64, patch GoalPatch) error {
	if patch.Name != nil {
		if err := validateName(*patch.Name); err != nil {
			return err
		}
	}
	if patch.TargetAmount != nil {
		if err := validateTarget(*patch.TargetAmount); err != nil {
			return err
		}
	}
	return database.WithTx(r.db, func(tx *sql.Tx) error {
		var (
			g   Goal
			amt string
		)
		err := tx.QueryRowContext(ctx,
			`SELECT name, target_amount, icon_emoji FROM goals WHERE id = ?`, id).
			Scan(&g.Name, &amt, &g.IconEmoji)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return storageErr("get goal", err)
		}
		if patch.Name != nil {
			g.Name = *patch.Name
		}
		if patch.TargetAmount != nil {
			amt = patch.TargetAmount.String()
		}
		if patch.IconEmoji != nil {
			g.IconEmoji = patch.IconEmoji
		}
		_, err = tx.ExecContext(ctx,
			`UPDATE goals SET name = ?, target_amount = ?, icon_emoji = ?, updated_at = ? WHERE id = ?`,
			g.Name, amt, g.IconEmoji, database.Now(), id)
		return storageErr("update goal", err)
	})
}

// Delete removes the goal with the given id; deleting a missing id is a
// no-op.
func (r *GoalRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM goals WHERE id = ?`, id)
	return storageErr("delete goal", err)
}
