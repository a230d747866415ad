package entities

// CalendarCell is one grid square. Date is null for padding cells.
type CalendarCell struct {
	Date     *string `json:"date"`
	Day      int     `json:"day,omitempty"`
	Disabled bool    `json:"disabled"`
	InRange  bool    `json:"inRange"`
	Selected bool    `json:"selected"`
}

type CalendarResponse struct {
	Month     string            `json:"month"`
	Title     string            `json:"title"`
	Prev      string            `json:"prev"`
	Next      string            `json:"next"`
	Today     string            `json:"today"`
	Weekdays  []string          `json:"weekdays"`
	Cells     []CalendarCell    `json:"cells"`
	Selection SelectionResponse `json:"selection"`
}

type SelectionResponse struct {
	Start    *string `json:"start"`
	End      *string `json:"end"`
	Label    string  `json:"label,omitempty"`
	Complete bool    `json:"complete"`
	Days     int     `json:"days,omitempty"`
	// Accepted is false when a pick landed on a disabled date.
	Accepted *bool `json:"accepted,omitempty"`
}
