package cmd

import (
	"strings"

	"github.com/abbasza/contactctl/api"
	"github.com/abbasza/contactctl/validation"
	"github.com/abbasza/contactctl/views"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(createSignupCmd())
	rootCmd.AddCommand(createForgotPasswordCmd())
}

func createSignupCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "signup",
		Short:   "Create a new Contact Manager account",
		PreRunE: requireAnonymous,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSignup(cmd)
		},
	}
}

func runSignup(cmd *cobra.Command) error {
	prompter := views.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())

	signupRequest, err := promptSignupRequest(prompter, api.SignupRequest{})
	if err != nil {
		return err
	}

	for {
		if err := validate.Struct(signupRequest); err != nil {
			return err
		}

		res, submitErr := apiClient.Signup(signupRequest)
		if submitErr == nil {
			// No auto-login - the account is created, the user logs in explicitly
			cmd.Printf("%v Account created for %v. Please log in with 'contactctl login'.\n",
				green("Done."), res.Username)
			return nil
		}

		// A failed attempt keeps the entered values for editing
		cmd.Printf("%v\n", red(submitErr))
		if !prompter.Confirm("Edit and retry?") {
			return nil
		}

		signupRequest, err = promptSignupRequest(prompter, signupRequest)
		if err != nil {
			return err
		}
	}
}

func promptSignupRequest(prompter *views.Prompter, prev api.SignupRequest) (api.SignupRequest, error) {
	prevUsername := prev.Email
	if prevUsername == "" {
		prevUsername = prev.Phone
	}

	username := strings.TrimSpace(prompter.Ask("Username (email or phone)", prevUsername))
	if !validation.IsEmailOrPhone(username) {
		return prev, formattedError("username must be a valid email or phone number (e.g. +1234567890)")
	}

	firstName := strings.TrimSpace(prompter.Ask("First name", prev.FirstName))
	if firstName == "" {
		return prev, formattedError("please enter your first name")
	}

	lastName := strings.TrimSpace(prompter.Ask("Last name", prev.LastName))
	if lastName == "" {
		return prev, formattedError("please enter your last name")
	}

	password := prompter.Ask("Password", "")
	if password == "" {
		password = prev.Password
	}
	if !validation.IsStrongPassword(password) {
		return prev, formattedError("password must be at least 8 characters with an uppercase letter, " +
			"a lowercase letter, a digit and a special character")
	}

	// The username goes into exactly one of the email/phone fields
	signupRequest := api.SignupRequest{
		FirstName: firstName,
		LastName:  lastName,
		Password:  password,
	}
	if validation.UsernameType(username) == "email" {
		signupRequest.Email = username
	} else {
		signupRequest.Phone = username
	}

	return signupRequest, nil
}

// Placeholder - password reset is not available yet.
func createForgotPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:    "forgot-password",
		Short:  "Password recovery (not available yet)",
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.Println("Password reset functionality will be added here later.")
			return nil
		},
	}
}
