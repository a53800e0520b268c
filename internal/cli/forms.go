package cli

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/alexanderramin/dayweave/internal/cli/formatter"
	"github.com/alexanderramin/dayweave/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// dayweaveHuhTheme returns a huh theme matching the formatter palette.
func dayweaveHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func validateRequired(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("required")
	}
	return nil
}

// validatePositiveInt accepts empty or a positive integer.
func validatePositiveInt(s string) error {
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return fmt.Errorf("enter a positive number")
	}
	return nil
}

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

func validateOptionalColor(s string) error {
	if s == "" || hexColor.MatchString(s) {
		return nil
	}
	return fmt.Errorf("use #RRGGBB format")
}

func priorityOptions() []huh.Option[domain.Priority] {
	return []huh.Option[domain.Priority]{
		huh.NewOption("High", domain.PriorityHigh),
		huh.NewOption("Medium", domain.PriorityMedium),
		huh.NewOption("Low", domain.PriorityLow),
	}
}

// templateForm fills in whatever the flags left unset.
func templateForm(t *domain.Template, durationStr *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Placeholder("Reading").
				Value(&t.Name).
				Validate(validateRequired),
			huh.NewInput().
				Title("Duration (minutes)").
				Placeholder("30").
				Value(durationStr).
				Validate(func(s string) error {
					if err := validateRequired(s); err != nil {
						return err
					}
					return validatePositiveInt(s)
				}),
			huh.NewInput().
				Title("Category").
				Placeholder("optional").
				Value(&t.Category),
			huh.NewSelect[domain.Priority]().
				Title("Priority").
				Options(priorityOptions()...).
				Value(&t.Priority),
			huh.NewInput().
				Title("Color").
				Placeholder("#83a598").
				Value(&t.Color).
				Validate(validateOptionalColor),
		),
	).WithTheme(dayweaveHuhTheme()).WithShowHelp(false)
}
