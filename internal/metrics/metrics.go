// Package metrics exposes Prometheus counters for booking outcomes.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// BookingsCreated counts appointments successfully created.
	BookingsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "booking_appointments_created_total",
		Help: "Number of appointments created",
	})

	// SlotConflicts counts booking attempts rejected because the slot
	// was unavailable at write time.
	SlotConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "booking_slot_conflicts_total",
		Help: "Number of booking attempts rejected for an unavailable slot",
	})

	// Transitions counts lifecycle transitions by target status.
	Transitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "booking_status_transitions_total",
		Help: "Number of appointment status transitions",
	}, []string{"to_status"})

	// NotificationFailures counts swallowed notification emission errors.
	NotificationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "booking_notification_failures_total",
		Help: "Number of notification emissions that failed",
	})
)
