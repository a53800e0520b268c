package cli

import (
	"log/slog"
	"time"

	"github.com/alexanderramin/dayweave/internal/daemon"
	"github.com/alexanderramin/dayweave/internal/notify"
	"github.com/spf13/cobra"
)

func newDaemonCmd(app *App) *cobra.Command {
	var once bool

	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Plan days automatically and send event reminders",
		Long: `Run in the foreground, planning each day on the configured cron
schedule (autoplan_cron) and firing reminders reminder_lead_min minutes
before events that have notifications enabled. Stop with Ctrl-C.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmdContext(cmd)
			cfg := app.config()
			logger := slog.Default()

			reminders := notify.NewRegistry(notify.LogNotifier{Logger: logger},
				time.Duration(cfg.ReminderLeadMin)*time.Minute)
			d, err := daemon.New(app.Schedule, app.Events, reminders, daemon.Options{
				AutoPlanSpec: cfg.AutoPlanCron,
				Logger:       logger,
				Now:          app.now,
			})
			if err != nil {
				return err
			}

			if once {
				defer reminders.Clear()
				return d.AutoPlan(ctx)
			}
			return d.Run(ctx)
		},
	}

	cmd.Flags().BoolVar(&once, "once", false, "plan today if it has no plan yet, then exit")
	return cmd
}
