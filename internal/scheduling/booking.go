package scheduling

import (
	"context"
	"errors"
	"fmt"

	"healthcare-booking-server/internal/metrics"
	"healthcare-booking-server/internal/models"
)

const (
	maxReasonLength = 1000
	maxNotesLength  = 2000
	maxCancelLength = 500
	maxKeyLength    = 64
)

// BookingRequest is a patient's request for a specific slot.
type BookingRequest struct {
	DoctorID        string
	AppointmentDate string // "YYYY-MM-DD"
	StartTime       string // "HH:MM"
	EndTime         string // "HH:MM"
	Type            models.AppointmentType
	Reason          string
	// IdempotencyKey, when set, makes retried submissions return the
	// appointment created by the first one instead of booking again.
	IdempotencyKey string
}

// Book validates a booking request against the slot calculator and creates
// the appointment in PENDING status. The requested interval must exactly
// match an available slot at write time; the final overlap check runs
// inside the exclusive create so two concurrent requests for the same slot
// cannot both succeed.
func (s *Service) Book(ctx context.Context, caller CallerIdentity, req BookingRequest) (*models.Appointment, error) {
	if caller.UserID == "" {
		return nil, NewError(CodeUnauthenticated, "authentication required")
	}
	if caller.Role != models.RolePatient {
		return nil, NewError(CodePermissionDenied, "only patients can book appointments")
	}
	if err := validateBookingRequest(req); err != nil {
		return nil, err
	}

	if req.IdempotencyKey != "" {
		existing, err := s.repo.AppointmentByIdempotencyKey(ctx, caller.UserID, req.IdempotencyKey)
		if err != nil {
			return nil, WrapInternal(err, "failed to check idempotency key")
		}
		if existing != nil {
			s.log.Debug().Str("appointment_id", existing.ID).Str("idempotency_key", req.IdempotencyKey).
				Msg("duplicate booking submission, returning existing appointment")
			return existing, nil
		}
	}

	doctor, err := s.repo.Doctor(ctx, req.DoctorID)
	if err != nil {
		return nil, WrapInternal(err, "failed to load doctor")
	}
	if doctor == nil {
		return nil, NewError(CodeNotFound, "doctor not found")
	}
	if !doctor.IsActive || doctor.DoctorProfile == nil || !doctor.DoctorProfile.IsBookable() {
		return nil, NewError(CodeFailedPrecondition, "doctor is not accepting bookings")
	}

	// Re-derive availability at write time instead of trusting whatever
	// slot list the client cached.
	slots, err := s.AvailableSlots(ctx, req.DoctorID, req.AppointmentDate)
	if err != nil {
		return nil, err
	}
	if !slotMatches(slots, req.StartTime, req.EndTime) {
		metrics.SlotConflicts.Inc()
		return nil, NewError(CodeSlotUnavailable, "slot %s-%s on %s is not available",
			req.StartTime, req.EndTime, req.AppointmentDate)
	}

	appt := &models.Appointment{
		PatientID:       caller.UserID,
		DoctorID:        req.DoctorID,
		AppointmentDate: req.AppointmentDate,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		Status:          models.StatusPending,
		Type:            req.Type,
		Reason:          req.Reason,
		IdempotencyKey:  req.IdempotencyKey,
	}
	if err := s.repo.CreateAppointmentExclusive(ctx, appt); err != nil {
		if errors.Is(err, ErrSlotTaken) {
			metrics.SlotConflicts.Inc()
			return nil, NewError(CodeSlotUnavailable, "slot %s-%s on %s was just taken",
				req.StartTime, req.EndTime, req.AppointmentDate)
		}
		return nil, WrapInternal(err, "failed to create appointment")
	}
	metrics.BookingsCreated.Inc()
	s.log.Info().Str("appointment_id", appt.ID).Str("doctor_id", appt.DoctorID).
		Str("patient_id", appt.PatientID).Str("date", appt.AppointmentDate).
		Str("slot", appt.StartTime+"-"+appt.EndTime).Msg("appointment booked")

	s.notifyBestEffort(ctx, &models.Notification{
		UserID:    appt.DoctorID,
		Title:     "New appointment request",
		Message:   fmt.Sprintf("A patient requested %s-%s on %s.", appt.StartTime, appt.EndTime, appt.AppointmentDate),
		Type:      models.NotificationAppointmentBooked,
		RelatedID: appt.ID,
	})
	s.notifyBestEffort(ctx, &models.Notification{
		UserID:    appt.PatientID,
		Title:     "Appointment requested",
		Message:   fmt.Sprintf("Your appointment request for %s-%s on %s is pending confirmation.", appt.StartTime, appt.EndTime, appt.AppointmentDate),
		Type:      models.NotificationAppointmentBooked,
		RelatedID: appt.ID,
	})
	return appt, nil
}

func validateBookingRequest(req BookingRequest) error {
	if req.DoctorID == "" {
		return NewError(CodeInvalidArgument, "doctorId is required")
	}
	if !ValidDate(req.AppointmentDate) {
		return NewError(CodeInvalidArgument, "appointmentDate must be YYYY-MM-DD, got %q", req.AppointmentDate)
	}
	if !ValidTime(req.StartTime) || !ValidTime(req.EndTime) {
		return NewError(CodeInvalidArgument, "times must be 24-hour HH:MM, got %q-%q", req.StartTime, req.EndTime)
	}
	if req.StartTime >= req.EndTime {
		return NewError(CodeInvalidArgument, "endTime %q must be after startTime %q", req.EndTime, req.StartTime)
	}
	if req.Type != models.TypeInPerson && req.Type != models.TypeVideo {
		return NewError(CodeInvalidArgument, "appointmentType must be IN_PERSON or VIDEO, got %q", req.Type)
	}
	if len(req.Reason) > maxReasonLength {
		return NewError(CodeInvalidArgument, "reason exceeds %d characters", maxReasonLength)
	}
	if len(req.IdempotencyKey) > maxKeyLength {
		return NewError(CodeInvalidArgument, "idempotencyKey exceeds %d characters", maxKeyLength)
	}
	return nil
}

// slotMatches requires the requested interval to exactly equal one of the
// computed slots and that slot to still be free.
func slotMatches(slots []Slot, startTime, endTime string) bool {
	for _, slot := range slots {
		if slot.StartTime == startTime && slot.EndTime == endTime {
			return slot.IsAvailable
		}
	}
	return false
}
