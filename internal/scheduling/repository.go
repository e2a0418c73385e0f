package scheduling

import (
	"context"

	"healthcare-booking-server/internal/models"
)

// CallerIdentity is the authenticated principal a transport layer resolved
// for the current request. Core operations take it explicitly instead of
// reading ambient request state, which keeps the core testable without a
// fake runtime.
type CallerIdentity struct {
	UserID string
	Role   models.Role
}

// Repository is the persistence surface the scheduling core depends on.
// Implementations return (nil, nil) for lookups that find nothing; the
// service decides whether a miss is an error.
type Repository interface {
	// Doctor returns the user with the doctor role, with its profile
	// preloaded, or (nil, nil) when no such doctor exists.
	Doctor(ctx context.Context, doctorID string) (*models.User, error)

	// ScheduleDay returns the stored weekly pattern for one day of week,
	// slots included, or (nil, nil) when the doctor never configured it.
	ScheduleDay(ctx context.Context, doctorID string, dayOfWeek int) (*models.ScheduleDay, error)

	// ReplaceScheduleDay atomically overwrites the schedule for the
	// day carried by the given record (whole-day replace).
	ReplaceScheduleDay(ctx context.Context, day *models.ScheduleDay) error

	// IsDateBlocked reports whether the doctor blocked the given date.
	IsDateBlocked(ctx context.Context, doctorID, date string) (bool, error)

	// BlockDate records a blocked date, overwriting the reason if the
	// date is already blocked.
	BlockDate(ctx context.Context, blocked *models.BlockedDate) error

	// UnblockDate removes a blocked date if present.
	UnblockDate(ctx context.Context, doctorID, date string) error

	// BlockingAppointments returns the doctor's appointments on the date
	// whose status occupies a slot (PENDING or CONFIRMED), ordered by
	// start time.
	BlockingAppointments(ctx context.Context, doctorID, date string) ([]models.Appointment, error)

	// Appointment returns a record by id, or (nil, nil) when missing.
	Appointment(ctx context.Context, id string) (*models.Appointment, error)

	// AppointmentByIdempotencyKey returns the patient's appointment
	// created under the given key, or (nil, nil) when none exists.
	AppointmentByIdempotencyKey(ctx context.Context, patientID, key string) (*models.Appointment, error)

	// UpdateAppointment persists a status/notes mutation.
	UpdateAppointment(ctx context.Context, appt *models.Appointment) error

	// CreateAppointmentExclusive creates the appointment inside a
	// transaction that locks the doctor's blocking appointments for the
	// date and re-checks for interval overlap. Returns ErrSlotTaken when
	// a concurrent booking won the slot.
	CreateAppointmentExclusive(ctx context.Context, appt *models.Appointment) error
}

// Notifier delivers a notification to a user. Emission is best-effort:
// the service logs failures and never propagates them to the caller.
type Notifier interface {
	Notify(ctx context.Context, n *models.Notification) error
}
