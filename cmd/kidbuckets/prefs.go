package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jask/kidbuckets/internal/database/repository"
)

var (
	flagHue         int
	flagLocale      string
	flagClearLocale bool
)

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Child display preferences: theme hue and locale",
}

var prefsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Save preferences (merge: unset flags keep their value)",
	RunE: func(cmd *cobra.Command, args []string) error {
		var patch repository.PreferencesPatch
		if cmd.Flags().Changed("hue") {
			patch.ThemeHue = &flagHue
		}
		if flagClearLocale {
			patch.ClearLocale = true
		} else if cmd.Flags().Changed("locale") {
			patch.Locale = &flagLocale
		}
		if err := a.preferences.Save(cmd.Context(), patch); err != nil {
			return err
		}
		fmt.Println("preferences saved")
		return nil
	},
}

var prefsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show preferences",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := a.preferences.Get(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("theme hue: %d\n", p.ThemeHue)
		if p.Locale == nil {
			fmt.Println("locale:    auto-detect")
		} else {
			fmt.Printf("locale:    %s\n", *p.Locale)
		}
		return nil
	},
}

func init() {
	prefsSetCmd.Flags().IntVar(&flagHue, "hue", repository.DefaultThemeHue, "theme hue in [0,360]")
	prefsSetCmd.Flags().StringVar(&flagLocale, "locale", "", "pinned locale, e.g. en or de")
	prefsSetCmd.Flags().BoolVar(&flagClearLocale, "auto-locale", false, "reset locale to auto-detect")

	prefsCmd.AddCommand(prefsSetCmd)
	prefsCmd.AddCommand(prefsShowCmd)
}
