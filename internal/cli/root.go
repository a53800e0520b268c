package cli

import (
	"context"
	"time"

	"github.com/alexanderramin/dayweave/internal/config"
	"github.com/alexanderramin/dayweave/internal/service"
	"github.com/spf13/cobra"
)

// App holds the services and environment the commands run against.
type App struct {
	Events    service.EventService
	Todos     service.TodoService
	Templates service.TemplateService
	Settings  service.SettingsService
	Learning  service.LearningService
	Schedule  service.ScheduleService
	Export    service.ExportService

	// Config is used by the daemon command; nil means defaults.
	Config *config.Config

	// IsInteractive reports whether stdin is a terminal, enabling forms.
	IsInteractive func() bool
	// Now is overridable in tests.
	Now func() time.Time
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) config() *config.Config {
	if a.Config != nil {
		return a.Config
	}
	return config.DefaultConfig()
}

// NewRootCmd creates the top-level "dayweave" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "dayweave",
		Short:         "Weave templates into the free time around your calendar",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newEventCmd(app),
		newTodoCmd(app),
		newTemplateCmd(app),
		newSettingsCmd(app),
		newLearnCmd(app),
		newFreeCmd(app),
		newPlanCmd(app),
		newAgendaCmd(app),
		newViewCmd(app),
		newExportCmd(app),
		newDaemonCmd(app),
	)

	return root
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
