package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/dayweave/internal/domain"
	"github.com/alexanderramin/dayweave/internal/recurrence"
	"github.com/alexanderramin/dayweave/internal/scheduler"
	"github.com/alexanderramin/dayweave/internal/service"
)

// FormatFreeSlots renders the free time of a day.
func FormatFreeSlots(day, today time.Time, slots []scheduler.TimeSlot) string {
	var b strings.Builder
	b.WriteString(Header("Free time · " + DayTitle(day, today)))
	b.WriteString("\n")

	if len(slots) == 0 {
		b.WriteString(Dim("No free time between wake and sleep.") + "\n")
		return b.String()
	}

	total := 0
	rows := make([][]string, 0, len(slots))
	for _, s := range slots {
		total += s.DurationMin()
		rows = append(rows, []string{TimeRange(s.Start, s.End), FormatMinutes(s.DurationMin()), SlotKindLabel(s.Kind)})
	}
	b.WriteString(RenderTable([]string{"Time", "Length", "Kind"}, rows))
	b.WriteString(Dim(fmt.Sprintf("%d slots · %s free", len(slots), FormatMinutes(total))) + "\n")
	return b.String()
}

// FormatPlan renders a generated day plan.
func FormatPlan(plan *scheduler.DayPlan, today time.Time, replaced int, dryRun bool) string {
	var b strings.Builder
	b.WriteString(Header("Plan · " + DayTitle(plan.Date, today)))
	b.WriteString("\n")

	if plan.Empty() {
		b.WriteString(StyleYellow.Render("Nothing could be placed.") + " " +
			Dim("Add templates or free up time.") + "\n")
	} else {
		rows := make([][]string, 0, len(plan.Placed))
		for _, e := range plan.Placed {
			rows = append(rows, []string{
				TimeRange(e.Start, e.End),
				Swatch(e.Color) + " " + e.Title,
				FormatMinutes(int(e.Duration().Minutes())),
				PriorityBadge(e.Priority),
			})
		}
		b.WriteString(RenderTable([]string{"Time", "Task", "Length", "Priority"}, rows))
	}

	summary := fmt.Sprintf("%d placed", len(plan.Placed))
	if replaced > 0 {
		summary += fmt.Sprintf(" · %d replaced", replaced)
	}
	if dryRun {
		summary += " · dry run, nothing saved"
	}
	b.WriteString(Dim(summary) + "\n")
	return b.String()
}

// FormatAgenda renders a day's event occurrences and due todos.
func FormatAgenda(day, today time.Time, occs []service.EventOccurrence, todos []service.TodoOccurrence) string {
	var b strings.Builder
	b.WriteString(Header("Agenda · " + DayTitle(day, today)))
	b.WriteString("\n")

	if len(occs) == 0 {
		b.WriteString(Dim("No events.") + "\n")
	} else {
		rows := make([][]string, 0, len(occs))
		for _, o := range occs {
			rows = append(rows, agendaRow(o))
		}
		b.WriteString(RenderTable([]string{"Time", "Event", "Category", "ID"}, rows))
	}

	if len(todos) > 0 {
		b.WriteString("\n")
		b.WriteString(Header("Due"))
		b.WriteString("\n")
		rows := make([][]string, 0, len(todos))
		for _, t := range todos {
			rows = append(rows, []string{Clock(t.Due), t.Todo.Title, PriorityBadge(t.Todo.Priority), TruncID(t.Todo.ID)})
		}
		b.WriteString(RenderTable([]string{"Due", "Todo", "Priority", "ID"}, rows))
	}
	return b.String()
}

func agendaRow(o service.EventOccurrence) []string {
	when := TimeRange(o.Occurrence.Start, o.Occurrence.End)
	if o.Event.AllDay {
		when = "all day"
	}
	title := Swatch(o.Event.Color) + " " + o.Event.Title
	if o.Occurrence.Recurring {
		title += " " + Dim("↻")
	}
	if o.Event.Generated() {
		title += " " + StyleGreen.Render("✦")
	}
	return []string{when, title, o.Event.Category, TruncID(o.Event.ID)}
}

// FormatEvent renders a single event's details.
func FormatEvent(e *domain.Event) string {
	var b strings.Builder
	b.WriteString(Header("Event"))
	b.WriteString("\n")
	line := func(label, value string) {
		if value == "" {
			return
		}
		fmt.Fprintf(&b, "  %-10s %s\n", label+":", value)
	}

	line("Title", Bold(e.Title))
	line("ID", e.ID)
	if e.AllDay {
		line("When", e.Start.Format("2006-01-02")+" (all day)")
	} else {
		line("When", e.Start.Format("2006-01-02")+" "+TimeRange(e.Start, e.End))
	}
	line("Repeats", RecurrenceLabel(e.Recurrence))
	if len(e.ExcludedDates) > 0 {
		days := make([]string, 0, len(e.ExcludedDates))
		for _, d := range e.ExcludedDates {
			days = append(days, d.Format("2006-01-02"))
		}
		line("Except", strings.Join(days, ", "))
	}
	line("Location", e.Location)
	line("Category", e.Category)
	line("Priority", PriorityBadge(e.Priority))
	line("Color", Swatch(e.Color)+" "+e.Color)
	if e.NotificationsEnabled {
		line("Remind", "yes")
	}
	if e.Description != "" {
		b.WriteString("\n  " + e.Description + "\n")
	}
	return b.String()
}

// FormatEventList renders events as a table.
func FormatEventList(events []*domain.Event) string {
	if len(events) == 0 {
		return Dim("No events.") + "\n"
	}
	rows := make([][]string, 0, len(events))
	for _, e := range events {
		rows = append(rows, []string{
			TruncID(e.ID),
			e.Start.Format("2006-01-02 15:04"),
			Swatch(e.Color) + " " + e.Title,
			RecurrenceLabel(e.Recurrence),
			e.Category,
		})
	}
	return RenderTable([]string{"ID", "Start", "Title", "Repeats", "Category"}, rows)
}

// FormatOccurrences renders an expansion of one event.
func FormatOccurrences(e *domain.Event, exp recurrence.Expansion) string {
	var b strings.Builder
	b.WriteString(Header("Occurrences · " + e.Title))
	b.WriteString("\n")
	if len(exp.Occurrences) == 0 {
		b.WriteString(Dim("None in range.") + "\n")
		return b.String()
	}
	rows := make([][]string, 0, len(exp.Occurrences))
	for _, o := range exp.Occurrences {
		kind := Dim(string(o.Kind))
		if o.Kind == recurrence.KindAnchor {
			kind = StyleHeader.Render(string(o.Kind))
		}
		rows = append(rows, []string{o.Start.Format("Mon 2006-01-02"), TimeRange(o.Start, o.End), kind})
	}
	b.WriteString(RenderTable([]string{"Date", "Time", "Kind"}, rows))
	if exp.Truncated {
		b.WriteString(StyleYellow.Render(fmt.Sprintf("Showing the first %d occurrences.", recurrence.MaxOccurrences)) + "\n")
	}
	return b.String()
}

// FormatTodoList renders todos as a table.
func FormatTodoList(todos []*domain.Todo) string {
	if len(todos) == 0 {
		return Dim("No todos.") + "\n"
	}
	rows := make([][]string, 0, len(todos))
	for _, t := range todos {
		status := StyleBlue.Render("○ open")
		if t.IsDone() {
			status = StyleDim.Render("✔ done")
		}
		rows = append(rows, []string{
			TruncID(t.ID),
			t.Due.Format("2006-01-02 15:04"),
			t.Title,
			PriorityBadge(t.Priority),
			RecurrenceLabel(t.Recurrence),
			status,
		})
	}
	return RenderTable([]string{"ID", "Due", "Title", "Priority", "Repeats", "Status"}, rows)
}

// FormatTemplateList renders templates as a table.
func FormatTemplateList(templates []*domain.Template) string {
	if len(templates) == 0 {
		return Dim("No templates.") + "\n"
	}
	rows := make([][]string, 0, len(templates))
	for _, t := range templates {
		name := Swatch(t.Color) + " " + t.Name
		if t.IsDefault {
			name += " " + Dim("(default)")
		}
		rows = append(rows, []string{
			TruncID(t.ID),
			name,
			FormatMinutes(t.DurationMin),
			t.Category,
			PriorityBadge(t.Priority),
		})
	}
	return RenderTable([]string{"ID", "Name", "Length", "Category", "Priority"}, rows)
}

// FormatSettings renders scheduling preferences.
func FormatSettings(s *domain.Settings) string {
	var b strings.Builder
	b.WriteString(Header("Settings"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  %-14s %s\n", "Chronotype:", string(s.Chronotype))
	fmt.Fprintf(&b, "  %-14s %s\n", "Work session:", FormatMinutes(s.WorkSessionMin))
	fmt.Fprintf(&b, "  %-14s %s\n", "Break:", FormatMinutes(s.BreakMin))
	fmt.Fprintf(&b, "  %-14s %s\n", "Wake:", s.WakeTime.String())
	fmt.Fprintf(&b, "  %-14s %s\n", "Sleep:", s.SleepTime.String())
	return b.String()
}

// FormatLearning renders stored learning signals.
func FormatLearning(signals scheduler.LearningSignals) string {
	var b strings.Builder
	b.WriteString(Header("Concentration"))
	b.WriteString("\n")
	if len(signals.Concentration) == 0 {
		b.WriteString(Dim("No data; the chronotype curve is used.") + "\n")
	} else {
		rows := make([][]string, 0, len(signals.Concentration))
		for _, c := range signals.Concentration {
			rows = append(rows, []string{fmt.Sprintf("%02d:00", c.Hour), strconv.FormatFloat(c.Score, 'f', 2, 64), bar(c.Score)})
		}
		b.WriteString(RenderTable([]string{"Hour", "Score", ""}, rows))
	}

	b.WriteString("\n")
	b.WriteString(Header("Durations"))
	b.WriteString("\n")
	if len(signals.Durations) == 0 {
		b.WriteString(Dim("No data; template durations are used.") + "\n")
		return b.String()
	}
	rows := make([][]string, 0, len(signals.Durations))
	for _, d := range signals.Durations {
		rows = append(rows, []string{
			d.TaskName,
			FormatMinutes(int(d.AverageDuration + 0.5)),
			strconv.Itoa(d.SampleSize),
			strconv.FormatFloat(d.Accuracy, 'f', 2, 64),
		})
	}
	b.WriteString(RenderTable([]string{"Task", "Average", "Samples", "Accuracy"}, rows))
	return b.String()
}

func bar(score float64) string {
	n := int(score*10 + 0.5)
	return StyleGreen.Render(strings.Repeat("█", n)) + Dim(strings.Repeat("░", 10-n))
}
