package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	datePicks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rentomobile",
			Name:      "date_picks_total",
			Help:      "Count of calendar date picks by outcome.",
		},
		[]string{"outcome"},
	)

	bookingCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rentomobile",
			Name:      "booking_created_total",
			Help:      "Count of bookings created by category.",
		},
		[]string{"category"},
	)

	bookingRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rentomobile",
			Name:      "booking_rejected_total",
			Help:      "Count of booking attempts that were not persisted.",
		},
		[]string{"reason"},
	)

	handoff = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rentomobile",
			Name:      "confirmation_handoff_total",
			Help:      "Count of confirmation hand-offs by channel and result.",
		},
		[]string{"channel", "result"},
	)

	upcomingRefreshed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "rentomobile",
			Name:      "upcoming_flags_refreshed_total",
			Help:      "Count of bookings whose upcoming flag was rewritten by the sweeper.",
		},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(datePicks, bookingCreated, bookingRejected, handoff, upcomingRefreshed)
	})
}

func IncDatePick(outcome string) {
	datePicks.WithLabelValues(outcome).Inc()
}

func IncBookingCreated(category string) {
	bookingCreated.WithLabelValues(category).Inc()
}

func IncBookingRejected(reason string) {
	bookingRejected.WithLabelValues(reason).Inc()
}

func IncHandoff(channel, result string) {
	handoff.WithLabelValues(channel, result).Inc()
}

func AddUpcomingRefreshed(n int) {
	upcomingRefreshed.Add(float64(n))
}
