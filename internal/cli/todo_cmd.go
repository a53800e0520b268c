package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/dayweave/internal/cli/formatter"
	"github.com/alexanderramin/dayweave/internal/domain"
	"github.com/spf13/cobra"
)

func newTodoCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "todo",
		Short: "Manage todos",
	}

	cmd.AddCommand(
		newTodoAddCmd(app),
		newTodoListCmd(app),
		newTodoDoneCmd(app),
		newTodoDeleteCmd(app),
		newTodoDueCmd(app),
	)

	return cmd
}

func newTodoAddCmd(app *App) *cobra.Command {
	var (
		due      string
		category string
		priority domain.Priority
		rec      recurrenceFlags
	)

	cmd := &cobra.Command{
		Use:   "add TITLE",
		Short: "Add a todo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			at, err := parseDateTime(due)
			if err != nil {
				return err
			}
			rule, err := rec.rule()
			if err != nil {
				return err
			}
			t := &domain.Todo{
				Title:      strings.TrimSpace(args[0]),
				Due:        at,
				Recurrence: rule,
				Priority:   priority,
				Category:   category,
			}
			if err := app.Todos.Create(cmdContext(cmd), t); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created todo %s (%s)\n", formatter.Bold(t.Title), t.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&due, "due", "", "due, YYYY-MM-DD [HH:MM] (required)")
	cmd.Flags().StringVar(&category, "category", "", "category")
	cmd.Flags().Var(newPriorityValue(&priority, domain.PriorityMedium), "priority", "high, medium or low")
	rec.register(cmd.Flags())
	_ = cmd.MarkFlagRequired("due")

	return cmd
}

func newTodoListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List todos",
		RunE: func(cmd *cobra.Command, args []string) error {
			todos, err := app.Todos.List(cmdContext(cmd), all)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTodoList(todos))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "include completed todos")
	return cmd
}

func newTodoDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done ID",
		Short: "Complete a todo; recurring todos move to their next due date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmdContext(cmd)
			id, err := resolveTodoID(ctx, app, args[0])
			if err != nil {
				return err
			}
			t, err := app.Todos.MarkDone(ctx, id)
			if err != nil {
				return err
			}
			if t.IsDone() {
				fmt.Fprintf(cmd.OutOrStdout(), "Completed %s\n", formatter.Bold(t.Title))
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Completed %s, next due %s\n",
					formatter.Bold(t.Title), t.Due.Format(dateTimeLayout))
			}
			return nil
		},
	}
}

func newTodoDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a todo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmdContext(cmd)
			id, err := resolveTodoID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Todos.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted todo %s\n", id)
			return nil
		},
	}
}

func newTodoDueCmd(app *App) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "due [DATE]",
		Short: "List open todos due in the days starting at DATE",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := dayArg(args, app.now())
			if err != nil {
				return err
			}
			if days < 1 {
				return fmt.Errorf("--days must be at least 1, got %d", days)
			}
			to := from.AddDate(0, 0, days-1)
			due, err := app.Todos.DueBetween(cmdContext(cmd), from, to)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.Header(fmt.Sprintf("Due · %s to %s", from.Format(dateLayout), to.Format(dateLayout))))
			if len(due) == 0 {
				fmt.Fprintln(out, formatter.Dim("Nothing due."))
				return nil
			}
			rows := make([][]string, 0, len(due))
			for _, d := range due {
				rows = append(rows, []string{
					d.Due.Format("Mon 01-02 15:04"),
					d.Todo.Title,
					formatter.PriorityBadge(d.Todo.Priority),
					formatter.TruncID(d.Todo.ID),
				})
			}
			fmt.Fprint(out, formatter.RenderTable([]string{"Due", "Todo", "Priority", "ID"}, rows))
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 7, "number of days to cover")
	return cmd
}
