package availability

import "sort"

// Interval is a stay: From is the check-in day, To the check-out day.
// The check-out day itself is free for the next guest.
type Interval struct {
	From Date
	To   Date
}

// Contains reports whether d is one of the nights of the stay.
func (iv Interval) Contains(d Date) bool {
	return !d.Before(iv.From) && d.Before(iv.To)
}

func (iv Interval) Nights() int { return Nights(iv.From, iv.To) }

// BlockedSet is the set of days no new stay may include.
// The zero value is an empty set.
type BlockedSet struct {
	days map[Date]struct{}
}

// BuildBlockedSet blocks every night of every interval. Intervals whose
// check-out is not after the check-in contribute nothing.
func BuildBlockedSet(intervals []Interval) BlockedSet {
	s := BlockedSet{days: make(map[Date]struct{})}
	for _, iv := range intervals {
		if iv.From.IsZero() || iv.To.IsZero() {
			continue
		}
		for d := iv.From; d.Before(iv.To); d = d.AddDays(1) {
			s.days[d] = struct{}{}
		}
	}
	return s
}

func (s BlockedSet) Contains(d Date) bool {
	_, ok := s.days[d]
	return ok
}

// Dates returns the blocked days in ascending order.
func (s BlockedSet) Dates() []Date {
	out := make([]Date, 0, len(s.days))
	for d := range s.days {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

func (s BlockedSet) Strings() []string {
	ds := s.Dates()
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.String()
	}
	return out
}

// FirstConflict returns the earliest blocked night in [from, to).
func (s BlockedSet) FirstConflict(from, to Date) (Date, bool) {
	for d := from; d.Before(to); d = d.AddDays(1) {
		if s.Contains(d) {
			return d, true
		}
	}
	return Date{}, false
}
