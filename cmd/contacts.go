package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/s0up4200/bulksms/bulksms"
)

var (
	contactsFilter filterFlags
	contactsGroup  string
	newContact     bulksms.CreateContactRequest
)

// contactsCmd groups the contact subcommands
var contactsCmd = &cobra.Command{
	Use:   "contacts",
	Short: "Manage phonebook contacts",
}

var contactsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List contacts, optionally only those of one group",
	Example: `  bulksms contacts list --group 3
  bulksms contacts list -f 'hasPrefix(digits(phone), "024")'`,
	Args: cobra.NoArgs,
	RunE: runContactsList,
}

var contactsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a contact in a group",
	Args:  cobra.NoArgs,
	RunE:  runContactsCreate,
}

func init() {
	rootCmd.AddCommand(contactsCmd)
	contactsCmd.AddCommand(contactsListCmd, contactsCreateCmd)

	contactsListCmd.Flags().StringVarP(&contactsGroup, "group", "g", "", "only list contacts of this group")
	contactsFilter.register(contactsListCmd)

	f := contactsCreateCmd.Flags()
	f.StringVarP(&newContact.GroupID, "group", "g", "", "group the contact is created in")
	f.StringVar(&newContact.Phone, "phone", "", "phone number")
	f.StringVar(&newContact.Title, "title", "", "title, e.g. Mr or Dr")
	f.StringVar(&newContact.FirstName, "firstname", "", "first name")
	f.StringVar(&newContact.LastName, "lastname", "", "last name")
	f.StringVar(&newContact.Email, "email", "", "email address")
	f.StringVar(&newContact.DOB, "dob", "", "date of birth (YYYY-MM-DD)")
}

func runContactsList(cmd *cobra.Command, args []string) error {
	contacts, err := client.Contacts.List(cmd.Context(), bulksms.ListContactsOptions{GroupID: contactsGroup})
	if err != nil {
		return fmt.Errorf("failed to list contacts: %w", err)
	}

	contacts, err = applyFilter(&contactsFilter, contacts)
	if err != nil {
		return err
	}

	return render(cmd, contacts, func(w io.Writer) {
		if len(contacts) == 0 {
			fmt.Fprintln(w, "No contacts found.")
			return
		}
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tPHONE\tNAME\tEMAIL\tGROUP")
		for _, c := range contacts {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", c.ID, c.Phone, c.DisplayName(), valueOr(c.Email, "-"), valueOr(c.GroupID, "-"))
		}
		tw.Flush()
		fmt.Fprintf(w, "\n%d contacts\n", len(contacts))
	})
}

func runContactsCreate(cmd *cobra.Command, args []string) error {
	contact, err := client.Contacts.Create(cmd.Context(), newContact)
	if err != nil {
		return fmt.Errorf("failed to create contact: %w", err)
	}

	logger.Info().Str("contact_id", contact.ID).Str("group_id", newContact.GroupID).Msg("Contact created")

	return render(cmd, contact, func(w io.Writer) {
		fmt.Fprintf(w, "✓ Created contact %s (%s, ID: %s)\n", contact.DisplayName(), contact.Phone, contact.ID)
	})
}
