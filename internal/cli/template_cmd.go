package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/dayweave/internal/cli/formatter"
	"github.com/alexanderramin/dayweave/internal/domain"
	"github.com/spf13/cobra"
)

func newTemplateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "template",
		Aliases: []string{"tpl"},
		Short:   "Manage the task templates the planner places into free time",
	}

	cmd.AddCommand(
		newTemplateAddCmd(app),
		newTemplateListCmd(app),
		newTemplateDeleteCmd(app),
	)

	return cmd
}

func newTemplateAddCmd(app *App) *cobra.Command {
	var (
		durationMin int
		category    string
		color       string
		priority    domain.Priority
	)

	cmd := &cobra.Command{
		Use:   "add [NAME]",
		Short: "Add a template",
		Long: `Add a template.

On a terminal, missing NAME or --duration open a form instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t := &domain.Template{
				DurationMin: durationMin,
				Category:    category,
				Priority:    priority,
				Color:       color,
			}
			if len(args) == 1 {
				t.Name = strings.TrimSpace(args[0])
			}

			if t.Name == "" || !cmd.Flags().Changed("duration") {
				if !app.interactive() {
					return fmt.Errorf("NAME and --duration are required")
				}
				durationStr := ""
				if t.DurationMin > 0 && cmd.Flags().Changed("duration") {
					durationStr = strconv.Itoa(t.DurationMin)
				}
				if err := templateForm(t, &durationStr).Run(); err != nil {
					return err
				}
				d, err := strconv.Atoi(durationStr)
				if err != nil {
					return fmt.Errorf("invalid duration %q", durationStr)
				}
				t.DurationMin = d
			}
			if err := validateOptionalColor(t.Color); err != nil {
				return fmt.Errorf("color %q: %w", t.Color, err)
			}

			if err := app.Templates.Create(cmdContext(cmd), t); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created template %s (%s, %s)\n",
				formatter.Bold(t.Name), formatter.FormatMinutes(t.DurationMin), t.ID)
			return nil
		},
	}

	cmd.Flags().IntVar(&durationMin, "duration", 0, "duration in minutes")
	cmd.Flags().StringVar(&category, "category", "", "category")
	cmd.Flags().StringVar(&color, "color", "", "hex color, e.g. #83a598")
	cmd.Flags().Var(newPriorityValue(&priority, domain.PriorityMedium), "priority", "high, medium or low")

	return cmd
}

func newTemplateListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			templates, err := app.Templates.List(cmdContext(cmd))
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTemplateList(templates))
			return nil
		},
	}
}

func newTemplateDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a user template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmdContext(cmd)
			id, err := resolveTemplateID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Templates.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted template %s\n", id)
			return nil
		},
	}
}
