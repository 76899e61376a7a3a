package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Set holds the service counters. One Set is created in main and passed
// to the services that record into it.
type Set struct {
	DeliveriesRecorded   *prometheus.CounterVec
	PaymentsRecorded     prometheus.Counter
	LicenseVerifications *prometheus.CounterVec
	NotificationsSent    prometheus.Counter
	NotificationsFailed  prometheus.Counter
	BroadcastsSent       prometheus.Counter
}

func New(reg prometheus.Registerer) *Set {
	f := promauto.With(reg)
	return &Set{
		DeliveriesRecorded: f.NewCounterVec(prometheus.CounterOpts{
			Name: "dairy_deliveries_recorded_total",
			Help: "Delivery decisions recorded, by status.",
		}, []string{"status"}),
		PaymentsRecorded: f.NewCounter(prometheus.CounterOpts{
			Name: "dairy_payments_recorded_total",
			Help: "Payment increments recorded.",
		}),
		LicenseVerifications: f.NewCounterVec(prometheus.CounterOpts{
			Name: "dairy_license_verifications_total",
			Help: "License verification calls, by verdict.",
		}, []string{"verdict"}),
		NotificationsSent: f.NewCounter(prometheus.CounterOpts{
			Name: "dairy_notifications_sent_total",
			Help: "Telegram notifications delivered.",
		}),
		NotificationsFailed: f.NewCounter(prometheus.CounterOpts{
			Name: "dairy_notifications_failed_total",
			Help: "Telegram notifications that failed to send.",
		}),
		BroadcastsSent: f.NewCounter(prometheus.CounterOpts{
			Name: "dairy_broadcasts_sent_total",
			Help: "Broadcast batches sent.",
		}),
	}
}
