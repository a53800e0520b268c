package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/dayweave/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// RelativeDay describes day relative to today at calendar-day granularity.
func RelativeDay(day, today time.Time) string {
	d := domain.StartOfDay(day)
	t := domain.StartOfDay(today)
	// Round to absorb DST shifts.
	days := int(d.Sub(t).Round(24*time.Hour) / (24 * time.Hour))

	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days == -1:
		return "Yesterday"
	case days > 0:
		return fmt.Sprintf("In %dd", days)
	default:
		return fmt.Sprintf("%dd ago", -days)
	}
}

// DayTitle is the heading used for a day's views, e.g. "Fri, Mar 14 2025 · Today".
func DayTitle(day, today time.Time) string {
	return day.Format("Mon, Jan 2 2006") + " · " + RelativeDay(day, today)
}

// Clock formats a time of day as HH:MM.
func Clock(t time.Time) string {
	return t.Format("15:04")
}

// TimeRange formats [start, end) as "HH:MM–HH:MM".
func TimeRange(start, end time.Time) string {
	return Clock(start) + "–" + Clock(end)
}

var weekdayNames = [...]string{"", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// RecurrenceLabel describes a rule in words. Non-repeating rules are empty.
func RecurrenceLabel(r domain.RecurrenceRule) string {
	switch r.Type {
	case domain.RecurDaily:
		return "daily"
	case domain.RecurWeekly:
		if len(r.WeeklyDays) == 0 {
			return "weekly"
		}
		names := make([]string, 0, len(r.WeeklyDays))
		for _, d := range r.WeeklyDays {
			if d >= 1 && d <= 7 {
				names = append(names, weekdayNames[d])
			}
		}
		return "weekly on " + strings.Join(names, ", ")
	case domain.RecurMonthly:
		if r.MonthlyDay == 0 {
			return "monthly"
		}
		return fmt.Sprintf("monthly on day %d", r.MonthlyDay)
	default:
		return ""
	}
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// FormatMinutes converts raw minutes into human-friendly format.
func FormatMinutes(min int) string {
	if min <= 0 {
		return "0m"
	}
	h := min / 60
	m := min % 60
	if h > 0 && m > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	if h > 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dm", m)
}
