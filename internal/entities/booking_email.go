package entities

type BookingEmailData struct {
	BookingID     string
	VehicleName   string
	VehicleType   string
	DateRange     string
	Price         string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	CurrentYear   int
}
