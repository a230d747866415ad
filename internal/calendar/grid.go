package calendar

// Cell is one square of the month grid. Padding cells have a zero Date.
type Cell struct {
	Date     Date
	Disabled bool
	InRange  bool
	Selected bool
}

func (c Cell) Empty() bool {
	return c.Date.IsZero()
}

// BuildMonth lays out month m Sunday-first: one empty cell per weekday
// before day 1, then every day of the month. There is no trailing padding.
// Days strictly before today are disabled.
func BuildMonth(m Month, today Date) []Cell {
	lead := m.FirstWeekday()
	days := m.Days()

	cells := make([]Cell, lead, lead+days)
	for day := 1; day <= days; day++ {
		d := Date{Year: m.Year, Month: m.Month, Day: day}
		cells = append(cells, Cell{
			Date:     d,
			Disabled: d.Before(today),
		})
	}
	return cells
}

// MarkSelection returns a copy of cells with the range flags derived from r.
func MarkSelection(cells []Cell, r Range) []Cell {
	out := make([]Cell, len(cells))
	for i, c := range cells {
		if !c.Empty() {
			c.InRange = r.InRange(c.Date)
			c.Selected = r.IsBoundary(c.Date)
		}
		out[i] = c
	}
	return out
}

// Weeks splits cells into rows of seven; the last row may be short.
func Weeks(cells []Cell) [][]Cell {
	var rows [][]Cell
	for i := 0; i < len(cells); i += 7 {
		end := min(i+7, len(cells))
		rows = append(rows, cells[i:end])
	}
	return rows
}
