package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/bulksms/bulksms"
)

var (
	groupsFilter filterFlags
	groupsYes    bool
)

// groupsCmd groups the contact group subcommands
var groupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "Manage contact groups",
}

var groupsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List groups",
	Args:  cobra.NoArgs,
	RunE:  runGroupsList,
}

var groupsShowCmd = &cobra.Command{
	Use:   "show <group-id>",
	Short: "Show a group together with its contacts",
	Args:  cobra.ExactArgs(1),
	RunE:  runGroupsShow,
}

var groupsCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a group",
	Args:  cobra.ExactArgs(1),
	RunE:  runGroupsCreate,
}

var groupsDeleteCmd = &cobra.Command{
	Use:   "delete <group-id>",
	Short: "Delete a group",
	Args:  cobra.ExactArgs(1),
	RunE:  runGroupsDelete,
}

var groupsAddContactCmd = &cobra.Command{
	Use:   "add-contact <group-id> <contact-id>",
	Short: "Add an existing contact to a group",
	Args:  cobra.ExactArgs(2),
	RunE:  runGroupsMembership,
}

var groupsRemoveContactCmd = &cobra.Command{
	Use:   "remove-contact <group-id> <contact-id>",
	Short: "Remove a contact from a group",
	Args:  cobra.ExactArgs(2),
}

func init() {
	// RunE is assigned here because runGroupsMembership refers to
	// groupsRemoveContactCmd, which would otherwise be an initialization cycle.
	groupsRemoveContactCmd.RunE = runGroupsMembership

	rootCmd.AddCommand(groupsCmd)
	groupsCmd.AddCommand(groupsListCmd, groupsShowCmd, groupsCreateCmd, groupsDeleteCmd,
		groupsAddContactCmd, groupsRemoveContactCmd)

	groupsFilter.register(groupsListCmd)
	groupsDeleteCmd.Flags().BoolVarP(&groupsYes, "yes", "y", false, "skip confirmation prompt")
}

func runGroupsList(cmd *cobra.Command, args []string) error {
	groups, err := client.Groups.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list groups: %w", err)
	}

	groups, err = applyFilter(&groupsFilter, groups)
	if err != nil {
		return err
	}

	return render(cmd, groups, func(w io.Writer) {
		if len(groups) == 0 {
			fmt.Fprintln(w, "No groups found.")
			return
		}
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tCONTACTS\tCREATED")
		for _, g := range groups {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", g.ID, g.Name, g.TotalContacts, valueOr(g.CreatedAt, "-"))
		}
		tw.Flush()
	})
}

// groupDetails is a group with its members
type groupDetails struct {
	*bulksms.Group
	Contacts []bulksms.Contact `json:"contacts"`
}

func runGroupsShow(cmd *cobra.Command, args []string) error {
	groupID := args[0]
	var details groupDetails

	g, ctx := errgroup.WithContext(cmd.Context())
	g.Go(func() error {
		group, err := client.Groups.Get(ctx, groupID)
		if err != nil {
			return fmt.Errorf("failed to get group: %w", err)
		}
		details.Group = group
		return nil
	})
	g.Go(func() error {
		contacts, err := client.Contacts.List(ctx, bulksms.ListContactsOptions{GroupID: groupID})
		if err != nil {
			return fmt.Errorf("failed to list group contacts: %w", err)
		}
		details.Contacts = contacts
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	return render(cmd, details, func(w io.Writer) {
		fmt.Fprintf(w, "%s (ID: %s)\n", details.Name, details.ID)
		if details.CreatedAt != "" {
			fmt.Fprintf(w, "  Created: %s\n", details.CreatedAt)
		}
		fmt.Fprintf(w, "  Contacts: %d\n", len(details.Contacts))
		for _, c := range details.Contacts {
			fmt.Fprintf(w, "  • %s %s\n", c.Phone, c.DisplayName())
		}
	})
}

func runGroupsCreate(cmd *cobra.Command, args []string) error {
	group, err := client.Groups.Create(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to create group: %w", err)
	}

	return render(cmd, group, func(w io.Writer) {
		fmt.Fprintf(w, "✓ Created group %s (ID: %s)\n", group.Name, group.ID)
	})
}

func runGroupsDelete(cmd *cobra.Command, args []string) error {
	groupID := args[0]
	if !groupsYes && !confirm(cmd, fmt.Sprintf("Delete group %s?", groupID)) {
		logger.Info().Str("group_id", groupID).Msg("Deletion cancelled")
		return nil
	}

	res, err := client.Groups.Delete(cmd.Context(), groupID)
	if err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	return renderDelete(cmd, "group", res)
}

func runGroupsMembership(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	groupID, contactID := args[0], args[1]

	var (
		m   *bulksms.GroupMembership
		err error
	)
	action := "Added"
	if cmd == groupsRemoveContactCmd {
		action = "Removed"
		m, err = client.Groups.RemoveContact(ctx, groupID, contactID)
	} else {
		m, err = client.Groups.AddContact(ctx, groupID, contactID)
	}
	if err != nil {
		return fmt.Errorf("failed to update group membership: %w", err)
	}

	return render(cmd, m, func(w io.Writer) {
		fmt.Fprintf(w, "✓ %s contact %s (group %s)\n", action, m.ContactID, m.GroupID)
	})
}

func renderDelete(cmd *cobra.Command, kind string, res *bulksms.DeleteResult) error {
	if !res.Deleted {
		return fmt.Errorf("%s %s was not deleted: %s", kind, res.ID, valueOr(res.Message, "no reason given"))
	}
	return render(cmd, res, func(w io.Writer) {
		fmt.Fprintf(w, "✓ Deleted %s %s\n", kind, res.ID)
	})
}
