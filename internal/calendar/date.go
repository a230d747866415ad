package calendar

import (
	"fmt"
	"time"
)

// DateLayout is the wire format of a calendar date.
const DateLayout = "2006-01-02"

// MonthLayout is the wire format of a calendar month.
const MonthLayout = "2006-01"

// Date is a calendar day without time of day or location.
// The zero value means "no date".
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate normalizes out-of-range values the way time.Date does (Jan 32 -> Feb 1).
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 12, 0, 0, 0, time.UTC))
}

// DateOf returns the calendar day of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DateOf(t), nil
}

func (d Date) IsZero() bool {
	return d == Date{}
}

// Time returns midnight UTC of the day.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// Compare returns -1, 0 or +1.
func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return cmpInt(d.Year, o.Year)
	case d.Month != o.Month:
		return cmpInt(int(d.Month), int(o.Month))
	default:
		return cmpInt(d.Day, o.Day)
	}
}

func (d Date) Before(o Date) bool { return d.Compare(o) < 0 }
func (d Date) After(o Date) bool  { return d.Compare(o) > 0 }

// AddDays returns the date n days later (n may be negative).
func (d Date) AddDays(n int) Date {
	return NewDate(d.Year, d.Month, d.Day+n)
}

// Weekday uses Go's Sunday=0 numbering, which is also the grid column.
func (d Date) Weekday() time.Weekday {
	return d.Time().Weekday()
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Time().Format(DateLayout)
}

// Label renders the en-US short form used in booking labels, e.g. 5/15/2024.
func (d Date) Label() string {
	return d.Time().Format("1/2/2006")
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Month identifies a calendar month.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf returns the month containing d.
func MonthOf(d Date) Month {
	return Month{Year: d.Year, Month: d.Month}
}

// ParseMonth parses a YYYY-MM string.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse(MonthLayout, s)
	if err != nil {
		return Month{}, fmt.Errorf("invalid month %q: %w", s, err)
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

func (m Month) First() Date {
	return Date{Year: m.Year, Month: m.Month, Day: 1}
}

// Days returns the number of days in the month.
func (m Month) Days() int {
	return NewDate(m.Year, m.Month+1, 0).Day
}

// FirstWeekday is the Sunday-first column index of day 1.
func (m Month) FirstWeekday() int {
	return int(m.First().Weekday())
}

func (m Month) Next() Month { return MonthOf(NewDate(m.Year, m.Month+1, 1)) }
func (m Month) Prev() Month { return MonthOf(NewDate(m.Year, m.Month-1, 1)) }

func (m Month) String() string {
	return m.First().Time().Format(MonthLayout)
}

// Title is the header shown above the grid, e.g. "May 2024".
func (m Month) Title() string {
	return fmt.Sprintf("%s %d", m.Month, m.Year)
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
