package cmd

import (
	"github.com/abbasza/contactctl/api"
	"github.com/abbasza/contactctl/views"
	"github.com/spf13/cobra"
)

var (
	pageArg       int
	skipConfirmRm bool
)

func init() {
	rootCmd.AddCommand(createContactsCmd())
}

func createContactsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "contacts",
		Short:             "List, search and manage your contacts",
		PersistentPreRunE: requireSession,
	}

	cmd.AddCommand(
		createContactsListCmd(),
		createContactsSearchCmd(),
		createContactsShowCmd(),
		createContactsAddCmd(),
		createContactsEditCmd(),
		createContactsRmCmd(),
		createContactsBrowseCmd(),
	)

	return cmd
}

func createContactsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List one page of contacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := apiClient.ContactPage(pageArg, pageSize())
			if err != nil {
				return err
			}

			if len(page.Content) == 0 {
				cmd.Println(views.EMPTY_LIST_MSG)
				return nil
			}

			views.RenderSummaries(cmd.OutOrStdout(), page.Content)
			views.RenderPageFooter(cmd.OutOrStdout(), pageArg, page.TotalPages, page.TotalElements)
			return nil
		},
	}

	cmd.Flags().IntVarP(&pageArg, "page", "p", 0, "zero-based page index")

	return cmd
}

func createContactsSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search QUERY",
		Short: "Search contacts by free text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			matches, err := apiClient.SearchContacts(args[0])
			if err != nil {
				return err
			}

			if len(matches) == 0 {
				cmd.Println(views.EMPTY_SEARCH_MSG)
				return nil
			}

			views.RenderSummaries(cmd.OutOrStdout(), matches)
			return nil
		},
	}
}

func createContactsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show one contact with its emails and phones",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			detail, err := apiClient.GetContact(args[0])
			if err != nil {
				return err
			}

			views.RenderDetail(cmd.OutOrStdout(), detail)
			return nil
		},
	}
}

func createContactsAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add",
		Short: "Create a contact interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			prompter := views.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
			buffer := prompter.FillContactRequest(api.EmptyContactRequest())

			sanitized := api.SanitizeContactRequest(buffer)
			if err := validate.Struct(sanitized); err != nil {
				return err
			}

			detail, err := apiClient.CreateContact(sanitized)
			if err != nil {
				return err
			}

			cmd.Printf("%v\n", green("Contact created."))
			views.RenderDetail(cmd.OutOrStdout(), detail)
			return nil
		},
	}
}

func createContactsEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit ID",
		Short: "Update a contact interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			current, err := apiClient.GetContact(args[0])
			if err != nil {
				return err
			}

			prompter := views.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
			buffer := prompter.FillContactRequest(api.ContactRequestFromDetail(*current))

			sanitized := api.SanitizeContactRequest(buffer)
			if err := validate.Struct(sanitized); err != nil {
				return err
			}

			detail, err := apiClient.UpdateContact(args[0], sanitized)
			if err != nil {
				return err
			}

			cmd.Printf("%v\n", green("Contact updated."))
			views.RenderDetail(cmd.OutOrStdout(), detail)
			return nil
		},
	}
}

func createContactsRmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm ID",
		Short: "Delete a contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !skipConfirmRm {
				prompter := views.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
				if !prompter.Confirm("Delete this contact? This cannot be undone.") {
					cmd.Println("Aborted.")
					return nil
				}
			}

			if err := apiClient.DeleteContact(args[0]); err != nil {
				return err
			}

			cmd.Println("Contact deleted.")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&skipConfirmRm, "yes", "y", false, "skip the confirmation prompt")

	return cmd
}

func createContactsBrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse contacts interactively with search-as-you-type",
		RunE: func(cmd *cobra.Command, args []string) error {
			session := views.NewBrowseSession(
				apiClient,
				cmd.InOrStdin(),
				cmd.OutOrStdout(),
				pageSize(),
			)
			return session.Run()
		},
	}
}

func pageSize() int {
	size := config.GetInt("api.pageSize")
	if size <= 0 {
		return 10
	}
	return size
}
