package calendar

// Selector accumulates date picks for one details screen.
type Selector struct {
	today Date
	rng   Range
}

// NewSelector resumes selection from r. An invalid r starts empty.
func NewSelector(today Date, r Range) *Selector {
	if r.Validate() != nil {
		r = Range{}
	}
	return &Selector{today: today, rng: r}
}

// Disabled reports whether d can no longer be picked.
func (s *Selector) Disabled(d Date) bool {
	return d.IsZero() || d.Before(s.today)
}

// Pick applies d and reports whether it was accepted. Disabled dates leave
// the selection untouched.
func (s *Selector) Pick(d Date) bool {
	if s.Disabled(d) {
		return false
	}
	s.rng = s.rng.Next(d)
	return true
}

func (s *Selector) Range() Range {
	return s.rng
}

func (s *Selector) Reset() {
	s.rng = Range{}
}

// Grid renders month m with disabled and selection flags applied.
func (s *Selector) Grid(m Month) []Cell {
	return MarkSelection(BuildMonth(m, s.today), s.rng)
}
