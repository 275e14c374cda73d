package availability

import "fmt"

// State is the phase of a two-click range selection.
type State int

const (
	Empty State = iota
	PartialFrom
	Complete
)

func (s State) String() string {
	switch s {
	case Empty:
		return "empty"
	case PartialFrom:
		return "partial"
	case Complete:
		return "complete"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Selection is an in-progress check-in/check-out pick. Values are immutable;
// Click returns the next selection.
type Selection struct {
	state State
	from  Date
	to    Date
}

// RestoreSelection rebuilds a selection from stored endpoints. A zero Date
// means the endpoint is unset.
func RestoreSelection(from, to Date) (Selection, error) {
	switch {
	case from.IsZero() && to.IsZero():
		return Selection{}, nil
	case from.IsZero():
		return Selection{}, fmt.Errorf("selection has check-out %s without check-in", to)
	case to.IsZero():
		return Selection{state: PartialFrom, from: from}, nil
	case !from.Before(to):
		return Selection{}, fmt.Errorf("selection check-out %s is not after check-in %s", to, from)
	default:
		return Selection{state: Complete, from: from, to: to}, nil
	}
}

func (s Selection) State() State { return s.state }

func (s Selection) From() (Date, bool) { return s.from, s.state != Empty }

func (s Selection) To() (Date, bool) { return s.to, s.state == Complete }

// Click applies one day click.
func (s Selection) Click(d Date) Selection {
	if s.state == PartialFrom && d.After(s.from) {
		return Selection{state: Complete, from: s.from, to: d}
	}
	return Selection{state: PartialFrom, from: d}
}

// Interval is the selected stay, available once both endpoints are set.
func (s Selection) Interval() (Interval, bool) {
	if s.state != Complete {
		return Interval{}, false
	}
	return Interval{From: s.from, To: s.to}, true
}

// Stay turns the selection into validator input. Unset endpoints stay zero.
func (s Selection) Stay(guests int) Stay {
	st := Stay{Guests: guests}
	if from, ok := s.From(); ok {
		st.From = from
	}
	if to, ok := s.To(); ok {
		st.To = to
	}
	return st
}

// Calendar gates clicks: past days and blocked days cannot become either
// endpoint of a selection.
type Calendar struct {
	Blocked BlockedSet
	Today   Date
}

func (c Calendar) Selectable(d Date) error {
	if d.IsZero() {
		return ErrDayUnavailable
	}
	if !c.Today.IsZero() && d.Before(c.Today) {
		return dayUnavailable(d, "date is in the past")
	}
	if c.Blocked.Contains(d) {
		return dayUnavailable(d, "already booked")
	}
	return nil
}

// Click applies d to sel if the day is selectable; otherwise sel is
// returned unchanged with the reason.
func (c Calendar) Click(sel Selection, d Date) (Selection, error) {
	if err := c.Selectable(d); err != nil {
		return sel, err
	}
	return sel.Click(d), nil
}
