package repository

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func TestGoalAddAndListInCreationOrder(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := NewGoalRepo(testDB(t))

	icon := "🚲"
	id1, err := repo.Add(ctx, "Bike", dec(t, "250.00"), &icon)
	require.NoError(t, err)
	id2, err := repo.Add(ctx, "Game", dec(t, "59.99"), nil)
	require.NoError(t, err)
	require.Greater(t, id2, id1)

	goals, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, goals, 2)
	require.Equal(t, "Bike", goals[0].Name)
	require.Equal(t, "Game", goals[1].Name)
	require.True(t, goals[0].TargetAmount.Equal(dec(t, "250.00")))
	require.NotNil(t, goals[0].IconEmoji)
	require.Equal(t, "🚲", *goals[0].IconEmoji)
	require.Nil(t, goals[1].IconEmoji)
}

func TestGoalAddRejectsInvalid(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := NewGoalRepo(testDB(t))

	_, err := repo.Add(ctx, "", dec(t, "10"), nil)
	require.ErrorIs(t, err, ErrInvalidGoal)

	_, err = repo.Add(ctx, strings.Repeat("x", 51), dec(t, "10"), nil)
	require.ErrorIs(t, err, ErrInvalidGoal)

	_, err = repo.Add(ctx, "Zero", decimal.Zero, nil)
	require.ErrorIs(t, err, ErrInvalidGoal)

	_, err = repo.Add(ctx, "Negative", dec(t, "-5"), nil)
	require.ErrorIs(t, err, ErrInvalidGoal)

	// nothing got through
	goals, err := repo.List(ctx)
	require.NoError(t, err)
	require.Empty(t, goals)
}

func TestGoalUpdatePatchesFields(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := NewGoalRepo(testDB(t))

	id, err := repo.Add(ctx, "Skateboard", dec(t, "80"), nil)
	require.NoError(t, err)

	newAmount := dec(t, "95.50")
	require.NoError(t, repo.Update(ctx, id, GoalPatch{TargetAmount: &newAmount}))

	goals, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, goals, 1)
	require.Equal(t, "Skateboard", goals[0].Name) // untouched
	require.True(t, goals[0].TargetAmount.Equal(newAmount))
}

func TestGoalUpdateMissingIsNotFound(t *testing.T) {
	t.Parallel()
	repo := NewGoalRepo(testDB(t))

	name := "Ghost"
	err := repo.Update(context.Background(), 999, GoalPatch{Name: &name})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestGoalUpdateRejectsInvalidPatch(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := NewGoalRepo(testDB(t))

	id, err := repo.Add(ctx, "Valid", dec(t, "10"), nil)
	require.NoError(t, err)

	bad := decimal.Zero
	require.ErrorIs(t, repo.Update(ctx, id, GoalPatch{TargetAmount: &bad}), ErrInvalidGoal)

	empty := ""
	require.ErrorIs(t, repo.Update(ctx, id, GoalPatch{Name: &empty}), ErrInvalidGoal)
}

func TestGoalDelete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := NewGoalRepo(testDB(t))

	id, err := repo.Add(ctx, "Gone", dec(t, "10"), nil)
	require.NoError(t, err)
	require.NoError(t, repo.Delete(ctx, id))
	require.NoError(t, repo.Delete(ctx, id)) // deleting again is a no-op

	goals, err := repo.List(ctx)
	require.NoError(t, err)
	require.Empty(t, goals)
}
