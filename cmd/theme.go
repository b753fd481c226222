package cmd

import (
	"fmt"

	"github.com/abbasza/contactctl/colors"
	"github.com/abbasza/contactctl/store"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(createThemeCmd())
}

func createThemeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Show or change the color theme",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.Printf("Current theme: %v\n", appStore.Theme())
			return nil
		},
	}

	cmd.AddCommand(createThemeSetCmd())

	return cmd
}

func createThemeSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "set THEME",
		Short:     fmt.Sprintf("Set the color theme (%v or %v)", store.LIGHT_THEME, store.DARK_THEME),
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{store.LIGHT_THEME, store.DARK_THEME},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := appStore.SetTheme(args[0]); err != nil {
				return formattedError("%v", err)
			}

			colors.Apply(args[0])
			cmd.Printf("Theme set to %v.\n", args[0])
			return nil
		},
	}
}
