package main

import (
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/jask/kidbuckets/internal/database/repository"
	"github.com/jask/kidbuckets/internal/service"
)

var (
	flagGoalName   string
	flagGoalAmount string
	flagGoalIcon   string
)

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Savings goals: add, list, edit, delete",
}

var goalAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a savings goal",
	RunE: func(cmd *cobra.Command, args []string) error {
		target, err := decimal.NewFromString(flagGoalAmount)
		if err != nil {
			return fmt.Errorf("%w: target amount %q is not a number", repository.ErrInvalidGoal, flagGoalAmount)
		}
		var icon *string
		if flagGoalIcon != "" {
			icon = &flagGoalIcon
		}
		id, err := a.goals.Add(cmd.Context(), flagGoalName, target, icon)
		if err != nil {
			return err
		}
		fmt.Printf("goal %d created\n", id)
		return nil
	},
}

var goalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List goals, closest to completion first",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		goals, err := a.goals.List(ctx)
		if err != nil {
			return err
		}
		if len(goals) == 0 {
			fmt.Println("no goals yet; run: kidbuckets goal add")
			return nil
		}

		available := decimal.Zero
		currency := ""
		data, err := a.sync.GetBuckets(ctx)
		switch {
		case err == nil && data.Goals != nil:
			if bal, perr := decimal.NewFromString(data.Goals.Balance); perr == nil {
				available = bal
				currency = data.Goals.Currency
			}
		case err != nil:
			log.Printf("warn: goals bucket balance unavailable: %v", err)
		}

		for _, g := range service.SortForDisplay(goals, available) {
			icon := ""
			if g.IconEmoji != nil {
				icon = *g.IconEmoji + " "
			}
			pct := service.ProgressPercent(g, available)
			line := fmt.Sprintf("%3d  %s%s  %s %s  %s%%", g.ID, icon, g.Name,
				g.TargetAmount.StringFixed(2), currency, pct.StringFixed(1))
			if service.IsAffordable(g, available) {
				line += "  (affordable!)"
			}
			fmt.Println(line)
		}
		return nil
	},
}

var goalEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a goal's name, amount, or icon",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid goal id %q", args[0])
		}
		var patch repository.GoalPatch
		if cmd.Flags().Changed("name") {
			patch.Name = &flagGoalName
		}
		if cmd.Flags().Changed("amount") {
			target, err := decimal.NewFromString(flagGoalAmount)
			if err != nil {
				return fmt.Errorf("%w: target amount %q is not a number", repository.ErrInvalidGoal, flagGoalAmount)
			}
			patch.TargetAmount = &target
		}
		if cmd.Flags().Changed("icon") {
			patch.IconEmoji = &flagGoalIcon
		}
		err = a.goals.Update(cmd.Context(), id, patch)
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("goal %d does not exist", id)
		}
		if err != nil {
			return err
		}
		fmt.Printf("goal %d updated\n", id)
		return nil
	},
}

var goalDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a goal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid goal id %q", args[0])
		}
		if err := a.goals.Delete(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Printf("goal %d deleted\n", id)
		return nil
	},
}

func init() {
	goalAddCmd.Flags().StringVar(&flagGoalName, "name", "", "goal name (required)")
	goalAddCmd.Flags().StringVar(&flagGoalAmount, "amount", "", "target amount (required)")
	goalAddCmd.Flags().StringVar(&flagGoalIcon, "icon", "", "icon emoji")
	_ = goalAddCmd.MarkFlagRequired("name")
	_ = goalAddCmd.MarkFlagRequired("amount")

	goalEditCmd.Flags().StringVar(&flagGoalName, "name", "", "new goal name")
	goalEditCmd.Flags().StringVar(&flagGoalAmount, "amount", "", "new target amount")
	goalEditCmd.Flags().StringVar(&flagGoalIcon, "icon", "", "new icon emoji")

	goalCmd.AddCommand(goalAddCmd)
	goalCmd.AddCommand(goalListCmd)
	goalCmd.AddCommand(goalEditCmd)
	goalCmd.AddCommand(goalDeleteCmd)
}
