package domain

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// ValidPriorities is the canonical set of accepted priority strings.
var ValidPriorities = map[string]bool{
	"high": true, "medium": true, "low": true,
}

// Rank returns the sort rank of a priority (lower = placed first).
// Unknown priorities rank with low.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

type Chronotype string

const (
	ChronotypeMorning Chronotype = "morning"
	ChronotypeEvening Chronotype = "evening"
)

type RecurrenceType string

const (
	RecurNone    RecurrenceType = "none"
	RecurDaily   RecurrenceType = "daily"
	RecurWeekly  RecurrenceType = "weekly"
	RecurMonthly RecurrenceType = "monthly"
)

// ValidRecurrenceTypes is the canonical set of accepted recurrence type strings.
var ValidRecurrenceTypes = map[string]bool{
	"none": true, "daily": true, "weekly": true, "monthly": true,
}
