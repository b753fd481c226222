package cmd

import (
	"strings"

	"github.com/abbasza/contactctl/api"
	"github.com/abbasza/contactctl/validation"
	"github.com/abbasza/contactctl/views"
	"github.com/spf13/cobra"
)

var skipConfirmDeleteAccount bool

func init() {
	rootCmd.AddCommand(createProfileCmd())
}

func createProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "profile",
		Short:             "View and manage your account",
		PersistentPreRunE: requireSession,
	}

	cmd.AddCommand(
		createProfileShowCmd(),
		createProfileEditCmd(),
		createProfileChangePasswordCmd(),
		createProfileDeleteCmd(),
	)

	return cmd
}

func createProfileShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the logged-in user's profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := apiClient.GetUser()
			if err != nil {
				return err
			}

			views.RenderUser(cmd.OutOrStdout(), user)
			return nil
		},
	}
}

func createProfileEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Update your username and name",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProfileEdit(cmd)
		},
	}
}

func runProfileEdit(cmd *cobra.Command) error {
	current, err := apiClient.GetUser()
	if err != nil {
		return err
	}

	cmd.Printf("%v changing your username ends all active sessions, "+
		"and you will have to log in again.\n", warningLabel)

	prompter := views.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())

	username := strings.TrimSpace(prompter.Ask("Username (email or phone)", current.Username))
	if !validation.IsEmailOrPhone(username) {
		return formattedError("username must be a valid email or phone number (e.g. +1234567890)")
	}

	firstName := strings.TrimSpace(prompter.Ask("First name", current.FirstName))
	if firstName == "" {
		return formattedError("please enter your first name")
	}

	lastName := strings.TrimSpace(prompter.Ask("Last name", current.LastName))
	if lastName == "" {
		return formattedError("please enter your last name")
	}

	userRequest := api.UserRequest{
		FirstName: firstName,
		LastName:  lastName,
	}
	if validation.UsernameType(username) == "email" {
		userRequest.Email = username
	} else {
		userRequest.Phone = username
	}

	if err := validate.Struct(userRequest); err != nil {
		return err
	}

	updated, err := apiClient.UpdateUser(userRequest)
	if err != nil {
		return err
	}

	cmd.Printf("%v\n", green("Profile updated."))
	views.RenderUser(cmd.OutOrStdout(), updated)

	return endSession(cmd)
}

func createProfileChangePasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "change-password",
		Short: "Change your account password",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChangePassword(cmd)
		},
	}
}

func runChangePassword(cmd *cobra.Command) error {
	cmd.Printf("%v changing your password ends all active sessions, "+
		"and you will have to log in again.\n", warningLabel)

	prompter := views.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())

	oldPassword := prompter.Ask("Current password", "")
	if oldPassword == "" {
		return formattedError("please enter your current password")
	}

	newPassword := prompter.Ask("New password", "")
	if !validation.IsStrongPassword(newPassword) {
		return formattedError("password must be at least 8 characters with an uppercase letter, " +
			"a lowercase letter, a digit and a special character")
	}

	if err := apiClient.ChangePassword(oldPassword, newPassword); err != nil {
		return err
	}

	cmd.Printf("%v\n", green("Password changed."))
	return endSession(cmd)
}

func createProfileDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Permanently delete your account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !skipConfirmDeleteAccount {
				prompter := views.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
				if !prompter.Confirm("Delete your account and all of its contacts? This cannot be undone.") {
					cmd.Println("Aborted.")
					return nil
				}
			}

			if err := apiClient.DeleteUser(); err != nil {
				return err
			}

			cmd.Printf("%v\n", green("Account deleted."))
			return endSession(cmd)
		},
	}

	cmd.Flags().BoolVarP(&skipConfirmDeleteAccount, "yes", "y", false, "skip the confirmation prompt")

	return cmd
}

// endSession drops the stored token after an operation that invalidated
// it server-side, so the next command lands on the login prompt instead
// of a confusing 401.
func endSession(cmd *cobra.Command) error {
	if err := appStore.ClearToken(); err != nil {
		return err
	}

	cmd.Println("Your session has ended. Log in again with 'contactctl login'.")
	return nil
}
