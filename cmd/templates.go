package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/s0up4200/bulksms/bulksms"
)

var (
	templatesFilter filterFlags
	templatesYes    bool
	newTemplate     bulksms.CreateTemplateRequest
)

// templatesCmd groups the message template subcommands
var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Manage message templates",
}

var templatesListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List templates",
	Example: `  bulksms templates list -f 'status == "approved"'`,
	Args:    cobra.NoArgs,
	RunE:    runTemplatesList,
}

var templatesShowCmd = &cobra.Command{
	Use:   "show <template-id>",
	Short: "Show a template",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplatesShow,
}

var templatesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a template for review",
	Args:  cobra.NoArgs,
	RunE:  runTemplatesCreate,
}

var templatesDeleteCmd = &cobra.Command{
	Use:   "delete <template-id>",
	Short: "Delete a template",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplatesDelete,
}

func init() {
	rootCmd.AddCommand(templatesCmd)
	templatesCmd.AddCommand(templatesListCmd, templatesShowCmd, templatesCreateCmd, templatesDeleteCmd)

	templatesFilter.register(templatesListCmd)
	templatesCreateCmd.Flags().StringVar(&newTemplate.Title, "title", "", "template title")
	templatesCreateCmd.Flags().StringVar(&newTemplate.Content, "content", "", "template body")
	templatesDeleteCmd.Flags().BoolVarP(&templatesYes, "yes", "y", false, "skip confirmation prompt")
}

func runTemplatesList(cmd *cobra.Command, args []string) error {
	templates, err := client.Templates.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list templates: %w", err)
	}

	templates, err = applyFilter(&templatesFilter, templates)
	if err != nil {
		return err
	}

	return render(cmd, templates, func(w io.Writer) {
		if len(templates) == 0 {
			fmt.Fprintln(w, "No templates found.")
			return
		}
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tTITLE\tSTATUS\tCONTENT")
		for _, t := range templates {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", t.ID, t.Title, t.Status, truncate(t.Content, 40))
		}
		tw.Flush()
	})
}

func runTemplatesShow(cmd *cobra.Command, args []string) error {
	tpl, err := client.Templates.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get template: %w", err)
	}

	return render(cmd, tpl, func(w io.Writer) {
		fmt.Fprintf(w, "%s (ID: %s) [%s]\n\n%s\n", tpl.Title, tpl.ID, tpl.Status, tpl.Content)
	})
}

func runTemplatesCreate(cmd *cobra.Command, args []string) error {
	tpl, err := client.Templates.Create(cmd.Context(), newTemplate)
	if err != nil {
		return fmt.Errorf("failed to create template: %w", err)
	}

	return render(cmd, tpl, func(w io.Writer) {
		fmt.Fprintf(w, "✓ Created template %s (ID: %s, status: %s)\n", tpl.Title, tpl.ID, tpl.Status)
	})
}

func runTemplatesDelete(cmd *cobra.Command, args []string) error {
	templateID := args[0]
	if !templatesYes && !confirm(cmd, fmt.Sprintf("Delete template %s?", templateID)) {
		logger.Info().Str("template_id", templateID).Msg("Deletion cancelled")
		return nil
	}

	res, err := client.Templates.Delete(cmd.Context(), templateID)
	if err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}
	return renderDelete(cmd, "template", res)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
