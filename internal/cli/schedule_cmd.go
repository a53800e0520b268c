package cli

import (
	"fmt"

	"github.com/alexanderramin/dayweave/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newFreeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "free [DATE]",
		Short: "Show free time between wake and sleep",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			now := app.now()
			day, err := dayArg(args, now)
			if err != nil {
				return err
			}
			slots, err := app.Schedule.FreeSlots(cmdContext(cmd), day)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatFreeSlots(day, now, slots))
			return nil
		},
	}
}

func newPlanCmd(app *App) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "plan [DATE]",
		Short: "Place templates into a day's free time",
		Long: `Plan a day by placing templates into its free time.

Planning again replaces the events generated by the previous plan of that
day. Use --dry-run to preview without saving.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmdContext(cmd)
			now := app.now()
			day, err := dayArg(args, now)
			if err != nil {
				return err
			}

			if dryRun {
				plan, err := app.Schedule.Preview(ctx, day)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPlan(plan, now, 0, true))
				return nil
			}

			res, err := app.Schedule.Plan(ctx, day)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPlan(&res.Plan, now, res.Replaced, false))
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "preview without saving")
	return cmd
}

func newAgendaCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "agenda [DATE]",
		Short: "Show a day's events and due todos",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			now := app.now()
			day, err := dayArg(args, now)
			if err != nil {
				return err
			}
			out, err := renderAgenda(cmdContext(cmd), app, day, now)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
}
