package recurrence

import (
	"time"

	"github.com/alexanderramin/dayweave/internal/domain"
)

// Kind tags an occurrence as the anchor itself or a derived instance.
type Kind string

const (
	KindAnchor  Kind = "anchor"
	KindDerived Kind = "derived"
)

// Occurrence is one materialized instance of an anchor. It is a value: it is
// never stored and can be re-derived from the anchor at any time.
type Occurrence struct {
	AnchorID  string
	Kind      Kind
	Recurring bool
	Start     time.Time
	End       time.Time
}

// Date returns the occurrence's calendar day.
func (o Occurrence) Date() time.Time {
	return domain.StartOfDay(o.Start)
}

// InstanceKey identifies this occurrence within its series.
func (o Occurrence) InstanceKey() string {
	return o.AnchorID + "@" + o.Start.Format("20060102")
}

func (o Occurrence) IsDerived() bool {
	return o.Kind == KindDerived
}

// occurrenceOn shifts the anchor to day, keeping its time of day and duration.
func occurrenceOn(a Anchor, day time.Time) Occurrence {
	y, m, d := day.Date()
	s := a.Start
	start := time.Date(y, m, d, s.Hour(), s.Minute(), s.Second(), s.Nanosecond(), s.Location())
	kind := KindDerived
	if domain.SameDay(day, a.Start) {
		kind = KindAnchor
	}
	return Occurrence{
		AnchorID:  a.ID,
		Kind:      kind,
		Recurring: !a.oneOff(),
		Start:     start,
		End:       start.Add(a.End.Sub(a.Start)),
	}
}

// EditScope is the user's answer to "edit this occurrence or the series?".
type EditScope string

const (
	ScopeThis   EditScope = "this"
	ScopeSeries EditScope = "series"
)

// EditAction is where an edit must be applied.
type EditAction string

const (
	// EditAnchor applies the change to the anchor record (and so to every
	// occurrence of a series).
	EditAnchor EditAction = "edit_anchor"
	// DetachOccurrence splits the occurrence into its own event and excludes
	// its date from the series before the change is applied.
	DetachOccurrence EditAction = "detach_occurrence"
)

// EditTarget is the routing decision for an edit.
type EditTarget struct {
	Action   EditAction
	AnchorID string
	Date     time.Time
}

// RouteEdit decides how an edit to o should be applied.
func RouteEdit(o Occurrence, scope EditScope) EditTarget {
	target := EditTarget{Action: EditAnchor, AnchorID: o.AnchorID, Date: o.Date()}
	if scope == ScopeThis && o.Recurring {
		target.Action = DetachOccurrence
	}
	return target
}
