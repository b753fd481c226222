package cmd

import (
	"strings"

	"github.com/abbasza/contactctl/views"
	"github.com/spf13/cobra"
)

var loginUsernameArg string

func init() {
	rootCmd.AddCommand(createLoginCmd())
	rootCmd.AddCommand(createLogoutCmd())
}

func createLoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "login",
		Short:   "Log in to the Contact Manager API",
		PreRunE: requireAnonymous,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(cmd)
		},
	}

	cmd.Flags().StringVarP(&loginUsernameArg, "username", "u", "", "username (email or phone)")

	return cmd
}

func runLogin(cmd *cobra.Command) error {
	prompter := views.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())

	username := strings.TrimSpace(loginUsernameArg)
	if username == "" {
		username = strings.TrimSpace(prompter.Ask("Username (email or phone)", ""))
	}
	if username == "" {
		return formattedError("please enter your username (email or phone)")
	}

	password := prompter.Ask("Password", "")
	if password == "" {
		return formattedError("please enter your password")
	}

	// A failed attempt keeps the username, only the password is re-asked
	for {
		res, err := apiClient.Login(username, password)
		if err == nil {
			if err := appStore.SetToken(res.JWT); err != nil {
				return err
			}

			cmd.Printf("%v Try 'contactctl contacts browse'.\n", green("Logged in."))
			return nil
		}

		cmd.Printf("%v\n", red(err))
		if !prompter.Confirm("Try again?") {
			return nil
		}

		username = strings.TrimSpace(prompter.Ask("Username (email or phone)", username))
		password = prompter.Ask("Password", "")
	}
}

func createLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "logout",
		Short:   "Log out and clear the stored session",
		PreRunE: requireSession,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := appStore.ClearToken(); err != nil {
				return err
			}

			cmd.Println("Logged out.")
			return nil
		},
	}
}
