package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/dayweave/internal/cli/formatter"
	"github.com/alexanderramin/dayweave/internal/domain"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// renderAgenda loads and formats a day's events and due todos.
func renderAgenda(ctx context.Context, app *App, day, now time.Time) (string, error) {
	occs, err := app.Events.OccurrencesBetween(ctx, day, day)
	if err != nil {
		return "", err
	}
	todos, err := app.Todos.DueBetween(ctx, day, day)
	if err != nil {
		return "", err
	}
	return formatter.FormatAgenda(day, now, occs, todos), nil
}

func newViewCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "view [DATE]",
		Short: "Browse agendas day by day",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmdContext(cmd)
			now := app.now()
			day, err := dayArg(args, now)
			if err != nil {
				return err
			}
			if !app.interactive() {
				out, err := renderAgenda(ctx, app, day, now)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), out)
				return nil
			}

			p := tea.NewProgram(newDayViewModel(ctx, app, day), tea.WithAltScreen(), tea.WithContext(ctx))
			_, err = p.Run()
			return err
		},
	}
}

type dayViewKeys struct {
	Prev  key.Binding
	Next  key.Binding
	Today key.Binding
	Plan  key.Binding
	Quit  key.Binding
}

func (k dayViewKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Today, k.Plan, k.Quit}
}

func (k dayViewKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func defaultDayViewKeys() dayViewKeys {
	return dayViewKeys{
		Prev:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev day")),
		Next:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next day")),
		Today: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
		Plan:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "plan day")),
		Quit:  key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

type agendaLoadedMsg struct {
	day     time.Time
	content string
	status  string
	err     error
}

type dayViewModel struct {
	ctx      context.Context
	app      *App
	day      time.Time
	keys     dayViewKeys
	help     help.Model
	viewport viewport.Model
	ready    bool
	content  string
	status   string
	err      error
}

func newDayViewModel(ctx context.Context, app *App, day time.Time) dayViewModel {
	return dayViewModel{
		ctx:  ctx,
		app:  app,
		day:  day,
		keys: defaultDayViewKeys(),
		help: help.New(),
	}
}

func (m dayViewModel) Init() tea.Cmd {
	return m.load(m.day, "")
}

func (m dayViewModel) load(day time.Time, status string) tea.Cmd {
	return func() tea.Msg {
		out, err := renderAgenda(m.ctx, m.app, day, m.app.now())
		return agendaLoadedMsg{day: day, content: out, status: status, err: err}
	}
}

func (m dayViewModel) plan(day time.Time) tea.Cmd {
	return func() tea.Msg {
		res, err := m.app.Schedule.Plan(m.ctx, day)
		if err != nil {
			return agendaLoadedMsg{day: day, err: err}
		}
		status := fmt.Sprintf("%d placed", len(res.Plan.Placed))
		if res.Replaced > 0 {
			status += fmt.Sprintf(" · %d replaced", res.Replaced)
		}
		return m.load(day, status)()
	}
}

func (m dayViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		height := msg.Height - 2
		if height < 1 {
			height = 1
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width, height)
			m.viewport.SetContent(m.content)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = height
		}
		m.help.Width = msg.Width
		return m, nil

	case agendaLoadedMsg:
		m.day = msg.day
		m.err = msg.err
		m.status = msg.status
		if msg.err == nil {
			m.content = msg.content
			m.viewport.SetContent(msg.content)
			m.viewport.GotoTop()
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Prev):
			return m, m.load(m.day.AddDate(0, 0, -1), "")
		case key.Matches(msg, m.keys.Next):
			return m, m.load(m.day.AddDate(0, 0, 1), "")
		case key.Matches(msg, m.keys.Today):
			return m, m.load(domain.StartOfDay(m.app.now()), "")
		case key.Matches(msg, m.keys.Plan):
			return m, m.plan(m.day)
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m dayViewModel) View() string {
	var b strings.Builder
	if m.ready {
		b.WriteString(m.viewport.View())
	} else {
		b.WriteString(m.content)
	}
	b.WriteString("\n")
	switch {
	case m.err != nil:
		b.WriteString(formatter.StyleRed.Render("Error: "+m.err.Error()) + "  ")
	case m.status != "":
		b.WriteString(formatter.StyleGreen.Render(m.status) + "  ")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}
