package calendar

import (
	"errors"
	"fmt"
)

var ErrEndWithoutStart = errors.New("range has an end date but no start date")

// Range is an inclusive pair of dates. It is either empty, start-only,
// or fully bounded with Start <= End.
type Range struct {
	Start Date `json:"start"`
	End   Date `json:"end"`
}

func (r Range) IsEmpty() bool   { return r.Start.IsZero() && r.End.IsZero() }
func (r Range) HasStart() bool  { return !r.Start.IsZero() }
func (r Range) Complete() bool  { return !r.Start.IsZero() && !r.End.IsZero() }
func (r Range) StartOnly() bool { return !r.Start.IsZero() && r.End.IsZero() }

// Validate reports ranges that could not have been produced by Next.
func (r Range) Validate() error {
	if r.Start.IsZero() && !r.End.IsZero() {
		return ErrEndWithoutStart
	}
	if r.Complete() && r.End.Before(r.Start) {
		return fmt.Errorf("range end %s is before start %s", r.End, r.Start)
	}
	return nil
}

// Next applies one pick to the range.
//
// An empty or fully bounded range restarts at d. A start-only range is
// completed: a later date becomes the end, an earlier or equal one becomes
// the start and the old start becomes the end. Picking the start again
// therefore yields a one-day range.
func (r Range) Next(d Date) Range {
	if !r.StartOnly() {
		return Range{Start: d}
	}
	if d.After(r.Start) {
		return Range{Start: r.Start, End: d}
	}
	return Range{Start: d, End: r.Start}
}

// InRange is true only for complete ranges with Start <= d <= End.
func (r Range) InRange(d Date) bool {
	if !r.Complete() {
		return false
	}
	return !d.Before(r.Start) && !d.After(r.End)
}

func (r Range) IsBoundary(d Date) bool {
	if d.IsZero() {
		return false
	}
	return d == r.Start || (!r.End.IsZero() && d == r.End)
}

// Days is the inclusive length of a complete range, 0 otherwise.
func (r Range) Days() int {
	if !r.Complete() {
		return 0
	}
	return int(r.End.Time().Sub(r.Start.Time()).Hours()/24) + 1
}

// Label is the human-readable form stored on bookings, e.g. "5/15/2024 - 5/20/2024".
func (r Range) Label() string {
	switch {
	case r.Complete():
		return r.Start.Label() + " - " + r.End.Label()
	case r.HasStart():
		return r.Start.Label()
	}
	return ""
}
