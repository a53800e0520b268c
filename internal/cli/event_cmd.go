package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/dayweave/internal/cli/formatter"
	"github.com/alexanderramin/dayweave/internal/domain"
	"github.com/alexanderramin/dayweave/internal/recurrence"
	"github.com/alexanderramin/dayweave/internal/service"
	"github.com/spf13/cobra"
)

func newEventCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "event",
		Aliases: []string{"ev"},
		Short:   "Manage calendar events",
	}

	cmd.AddCommand(
		newEventAddCmd(app),
		newEventListCmd(app),
		newEventShowCmd(app),
		newEventEditCmd(app),
		newEventDetachCmd(app),
		newEventDeleteCmd(app),
		newEventOccursCmd(app),
		newEventExpandCmd(app),
	)

	return cmd
}

func newEventAddCmd(app *App) *cobra.Command {
	var (
		start       string
		durationMin int
		allDay      bool
		description string
		location    string
		category    string
		color       string
		priority    domain.Priority
		notify      bool
		fixed       bool
		rec         recurrenceFlags
	)

	cmd := &cobra.Command{
		Use:   "add TITLE",
		Short: "Add an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmdContext(cmd)
			at, err := parseDateTime(start)
			if err != nil {
				return err
			}
			rule, err := rec.rule()
			if err != nil {
				return err
			}

			e := &domain.Event{
				Title:                strings.TrimSpace(args[0]),
				Description:          description,
				Location:             location,
				Start:                at,
				End:                  at.Add(time.Duration(durationMin) * time.Minute),
				AllDay:               allDay,
				Recurrence:           rule,
				Fixed:                fixed,
				Category:             category,
				Priority:             priority,
				Color:                color,
				NotificationsEnabled: notify,
			}
			if allDay {
				e.Start = domain.StartOfDay(at)
				e.End = e.Start
			}

			if err := app.Events.Create(ctx, e); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created event %s (%s)\n", formatter.Bold(e.Title), e.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "at", "", "start, YYYY-MM-DD HH:MM (required)")
	cmd.Flags().IntVar(&durationMin, "duration", 60, "duration in minutes")
	cmd.Flags().BoolVar(&allDay, "all-day", false, "all-day event on the --at date")
	cmd.Flags().StringVar(&description, "description", "", "description")
	cmd.Flags().StringVar(&location, "location", "", "location")
	cmd.Flags().StringVar(&category, "category", "", "category")
	cmd.Flags().StringVar(&color, "color", "", "hex color, e.g. #83a598")
	cmd.Flags().Var(newPriorityValue(&priority, domain.PriorityMedium), "priority", "high, medium or low")
	cmd.Flags().BoolVar(&notify, "notify", false, "send reminders before it starts")
	cmd.Flags().BoolVar(&fixed, "fixed", true, "immovable commitment")
	rec.register(cmd.Flags())
	_ = cmd.MarkFlagRequired("at")

	return cmd
}

func newEventListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all events",
		RunE: func(cmd *cobra.Command, args []string) error {
			events, err := app.Events.List(cmdContext(cmd))
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatEventList(events))
			return nil
		},
	}
}

func newEventShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show event details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmdContext(cmd)
			id, err := resolveEventID(ctx, app, args[0])
			if err != nil {
				return err
			}
			e, err := app.Events.GetByID(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatEvent(e))
			return nil
		},
	}
}

// eventEditFlags collects the fields an edit may change. Only flags the
// user actually set are applied.
type eventEditFlags struct {
	title       string
	at          string
	durationMin int
	description string
	location    string
	category    string
	color       string
	priority    domain.Priority
	notify      bool
}

func (f *eventEditFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.title, "title", "", "new title")
	fs.StringVar(&f.at, "at", "", "new start time of day, HH:MM")
	fs.IntVar(&f.durationMin, "duration", 0, "new duration in minutes")
	fs.StringVar(&f.description, "description", "", "new description")
	fs.StringVar(&f.location, "location", "", "new location")
	fs.StringVar(&f.category, "category", "", "new category")
	fs.StringVar(&f.color, "color", "", "new hex color")
	fs.Var(newPriorityValue(&f.priority, ""), "priority", "new priority")
	fs.BoolVar(&f.notify, "notify", false, "enable or disable reminders")
}

func (f *eventEditFlags) edit(cmd *cobra.Command) (service.EventEdit, error) {
	changed := cmd.Flags().Changed
	var clock *domain.WallClock
	if changed("at") {
		wc, err := domain.ParseWallClock(f.at)
		if err != nil {
			return nil, err
		}
		clock = &wc
	}
	if changed("duration") && f.durationMin <= 0 {
		return nil, fmt.Errorf("duration must be positive, got %d", f.durationMin)
	}

	return func(e *domain.Event) {
		if changed("title") {
			e.Title = strings.TrimSpace(f.title)
		}
		if clock != nil {
			shiftTo(e, *clock)
		}
		if changed("duration") {
			e.End = e.Start.Add(time.Duration(f.durationMin) * time.Minute)
		}
		if changed("description") {
			e.Description = f.description
		}
		if changed("location") {
			e.Location = f.location
		}
		if changed("category") {
			e.Category = f.category
		}
		if changed("color") {
			e.Color = f.color
		}
		if changed("priority") {
			e.Priority = f.priority
		}
		if changed("notify") {
			e.NotificationsEnabled = f.notify
		}
	}, nil
}

func newEventEditCmd(app *App) *cobra.Command {
	var (
		flags eventEditFlags
		on    string
		scope string
	)

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Edit an event, or one occurrence of a recurring event",
		Long: `Edit an event.

With --on, the edit targets the occurrence on that date: --scope series
(the default) changes the whole series, --scope this detaches the
occurrence into its own event and changes only that.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmdContext(cmd)
			id, err := resolveEventID(ctx, app, args[0])
			if err != nil {
				return err
			}
			edit, err := flags.edit(cmd)
			if err != nil {
				return err
			}

			var updated *domain.Event
			if cmd.Flags().Changed("on") {
				day, err := parseDay(on, app.now())
				if err != nil {
					return err
				}
				s, err := parseScope(scope)
				if err != nil {
					return err
				}
				updated, err = app.Events.EditOccurrence(ctx, id, day, s, edit)
				if err != nil {
					return err
				}
			} else {
				updated, err = app.Events.GetByID(ctx, id)
				if err != nil {
					return err
				}
				edit(updated)
				if err := app.Events.Update(ctx, updated); err != nil {
					return err
				}
			}

			if updated.ID != id {
				fmt.Fprintf(cmd.OutOrStdout(), "Detached %s into %s\n", formatter.Bold(updated.Title), updated.ID)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated event %s\n", formatter.Bold(updated.Title))
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&on, "on", "", "occurrence date, YYYY-MM-DD")
	cmd.Flags().StringVar(&scope, "scope", string(recurrence.ScopeSeries), "this or series")

	return cmd
}

func newEventDetachCmd(app *App) *cobra.Command {
	var flags eventEditFlags

	cmd := &cobra.Command{
		Use:   "detach ID DATE",
		Short: "Split one occurrence off a recurring event",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmdContext(cmd)
			id, err := resolveEventID(ctx, app, args[0])
			if err != nil {
				return err
			}
			day, err := parseDay(args[1], app.now())
			if err != nil {
				return err
			}
			edit, err := flags.edit(cmd)
			if err != nil {
				return err
			}
			detached, err := app.Events.DetachOccurrence(ctx, id, day, edit)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Detached %s on %s into %s\n",
				formatter.Bold(detached.Title), day.Format(dateLayout), detached.ID)
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func newEventDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete an event and its whole series",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmdContext(cmd)
			id, err := resolveEventID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Events.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted event %s\n", id)
			return nil
		},
	}
}

func newEventOccursCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "occurs ID DATE",
		Short: "Check whether an event occurs on a date",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmdContext(cmd)
			id, err := resolveEventID(ctx, app, args[0])
			if err != nil {
				return err
			}
			day, err := parseDay(args[1], app.now())
			if err != nil {
				return err
			}
			ok, err := app.Events.OccursOn(ctx, id, day)
			if err != nil {
				return err
			}
			if ok {
				fmt.Fprintf(cmd.OutOrStdout(), "%s occurs on %s\n", formatter.StyleGreen.Render("yes"), day.Format(dateLayout))
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s, not on %s\n", formatter.StyleRed.Render("no"), day.Format(dateLayout))
			}
			return nil
		},
	}
}

func newEventExpandCmd(app *App) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "expand ID",
		Short: "List the occurrences of an event in a date range",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmdContext(cmd)
			id, err := resolveEventID(ctx, app, args[0])
			if err != nil {
				return err
			}
			start, err := parseDay(from, app.now())
			if err != nil {
				return err
			}
			end := start.AddDate(0, 0, 27)
			if to != "" {
				if end, err = parseDay(to, app.now()); err != nil {
					return err
				}
			}
			if end.Before(start) {
				return fmt.Errorf("--to %s is before --from %s", end.Format(dateLayout), start.Format(dateLayout))
			}

			e, err := app.Events.GetByID(ctx, id)
			if err != nil {
				return err
			}
			exp, err := app.Events.Expand(ctx, id, start, end)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatOccurrences(e, exp))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "today", "first day, YYYY-MM-DD")
	cmd.Flags().StringVar(&to, "to", "", "last day, inclusive (default four weeks after --from)")
	return cmd
}
