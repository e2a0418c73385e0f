package scheduling

import (
	"context"
	"errors"
	"fmt"

	"healthcare-booking-server/internal/metrics"
	"healthcare-booking-server/internal/models"
)

// allowedTransitions is the appointment state machine. CANCELED and
// COMPLETED are terminal.
var allowedTransitions = map[models.AppointmentStatus][]models.AppointmentStatus{
	models.StatusPending:   {models.StatusConfirmed, models.StatusCanceled, models.StatusCompleted, models.StatusRescheduled},
	models.StatusConfirmed: {models.StatusCanceled, models.StatusCompleted, models.StatusRescheduled},
}

func canTransition(from, to models.AppointmentStatus) bool {
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Confirm moves a PENDING appointment to CONFIRMED. Only the assigned
// doctor may confirm.
func (s *Service) Confirm(ctx context.Context, caller CallerIdentity, appointmentID string) (*models.Appointment, error) {
	appt, err := s.loadAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if caller.Role != models.RoleDoctor || caller.UserID != appt.DoctorID {
		return nil, NewError(CodePermissionDenied, "only the assigned doctor can confirm this appointment")
	}
	if appt.Status != models.StatusPending {
		return nil, NewError(CodeFailedPrecondition, "appointment in status %s cannot be confirmed", appt.Status)
	}

	appt.Status = models.StatusConfirmed
	if err := s.repo.UpdateAppointment(ctx, appt); err != nil {
		return nil, WrapInternal(err, "failed to confirm appointment")
	}
	metrics.Transitions.WithLabelValues(string(models.StatusConfirmed)).Inc()
	s.log.Info().Str("appointment_id", appt.ID).Msg("appointment confirmed")

	s.notifyBestEffort(ctx, &models.Notification{
		UserID:    appt.PatientID,
		Title:     "Appointment confirmed",
		Message:   fmt.Sprintf("Your appointment on %s at %s was confirmed.", appt.AppointmentDate, appt.StartTime),
		Type:      models.NotificationAppointmentConfirmed,
		RelatedID: appt.ID,
	})
	return appt, nil
}

// Cancel moves a blocking appointment to CANCELED. Either party (or an
// admin) may cancel; the optional reason is stored and the other party is
// notified. A second cancellation fails with failed-precondition rather
// than silently repeating.
func (s *Service) Cancel(ctx context.Context, caller CallerIdentity, appointmentID, reason string) (*models.Appointment, error) {
	if len(reason) > maxCancelLength {
		return nil, NewError(CodeInvalidArgument, "cancellationReason exceeds %d characters", maxCancelLength)
	}
	appt, err := s.loadAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if !s.isParty(caller, appt) {
		return nil, NewError(CodePermissionDenied, "you are not a party to this appointment")
	}
	if !canTransition(appt.Status, models.StatusCanceled) {
		return nil, NewError(CodeFailedPrecondition, "appointment in status %s cannot be canceled", appt.Status)
	}

	appt.Status = models.StatusCanceled
	appt.CancellationReason = reason
	if err := s.repo.UpdateAppointment(ctx, appt); err != nil {
		return nil, WrapInternal(err, "failed to cancel appointment")
	}
	metrics.Transitions.WithLabelValues(string(models.StatusCanceled)).Inc()
	s.log.Info().Str("appointment_id", appt.ID).Str("canceled_by", caller.UserID).Msg("appointment canceled")

	s.notifyBestEffort(ctx, &models.Notification{
		UserID:    s.otherParty(caller, appt),
		Title:     "Appointment canceled",
		Message:   cancelMessage(appt, reason),
		Type:      models.NotificationAppointmentCanceled,
		RelatedID: appt.ID,
	})
	return appt, nil
}

// Complete moves a blocking appointment to COMPLETED. Only the assigned
// doctor may complete; non-empty notes override the stored notes, an empty
// value preserves them.
func (s *Service) Complete(ctx context.Context, caller CallerIdentity, appointmentID, notes string) (*models.Appointment, error) {
	if len(notes) > maxNotesLength {
		return nil, NewError(CodeInvalidArgument, "notes exceed %d characters", maxNotesLength)
	}
	appt, err := s.loadAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if caller.Role != models.RoleDoctor || caller.UserID != appt.DoctorID {
		return nil, NewError(CodePermissionDenied, "only the assigned doctor can complete this appointment")
	}
	if !canTransition(appt.Status, models.StatusCompleted) {
		return nil, NewError(CodeFailedPrecondition, "appointment in status %s cannot be completed", appt.Status)
	}

	appt.Status = models.StatusCompleted
	if notes != "" {
		appt.Notes = notes
	}
	if err := s.repo.UpdateAppointment(ctx, appt); err != nil {
		return nil, WrapInternal(err, "failed to complete appointment")
	}
	metrics.Transitions.WithLabelValues(string(models.StatusCompleted)).Inc()
	s.log.Info().Str("appointment_id", appt.ID).Msg("appointment completed")

	s.notifyBestEffort(ctx, &models.Notification{
		UserID:    appt.PatientID,
		Title:     "Appointment completed",
		Message:   fmt.Sprintf("Your appointment on %s was marked as completed.", appt.AppointmentDate),
		Type:      models.NotificationAppointmentCompleted,
		RelatedID: appt.ID,
	})
	return appt, nil
}

// Reschedule replaces a blocking appointment with a new PENDING one on a
// different slot. The new slot goes through the same write-time validation
// as a fresh booking; the old record is kept and marked RESCHEDULED.
func (s *Service) Reschedule(ctx context.Context, caller CallerIdentity, appointmentID string, newDate, newStart, newEnd string) (*models.Appointment, error) {
	appt, err := s.loadAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if !s.isParty(caller, appt) {
		return nil, NewError(CodePermissionDenied, "you are not a party to this appointment")
	}
	if !canTransition(appt.Status, models.StatusRescheduled) {
		return nil, NewError(CodeFailedPrecondition, "appointment in status %s cannot be rescheduled", appt.Status)
	}
	if !ValidDate(newDate) {
		return nil, NewError(CodeInvalidArgument, "appointmentDate must be YYYY-MM-DD, got %q", newDate)
	}
	if !ValidTime(newStart) || !ValidTime(newEnd) || newStart >= newEnd {
		return nil, NewError(CodeInvalidArgument, "invalid time range %q-%q", newStart, newEnd)
	}

	slots, err := s.AvailableSlots(ctx, appt.DoctorID, newDate)
	if err != nil {
		return nil, err
	}
	if !slotMatches(slots, newStart, newEnd) {
		metrics.SlotConflicts.Inc()
		return nil, NewError(CodeSlotUnavailable, "slot %s-%s on %s is not available", newStart, newEnd, newDate)
	}

	replacement := &models.Appointment{
		PatientID:       appt.PatientID,
		DoctorID:        appt.DoctorID,
		AppointmentDate: newDate,
		StartTime:       newStart,
		EndTime:         newEnd,
		Status:          models.StatusPending,
		Type:            appt.Type,
		Reason:          appt.Reason,
	}
	if err := s.repo.CreateAppointmentExclusive(ctx, replacement); err != nil {
		if errors.Is(err, ErrSlotTaken) {
			metrics.SlotConflicts.Inc()
			return nil, NewError(CodeSlotUnavailable, "slot %s-%s on %s was just taken", newStart, newEnd, newDate)
		}
		return nil, WrapInternal(err, "failed to create replacement appointment")
	}

	appt.Status = models.StatusRescheduled
	appt.RescheduledToID = replacement.ID
	if err := s.repo.UpdateAppointment(ctx, appt); err != nil {
		// The replacement is already committed; the old record keeps
		// blocking until this update is retried.
		s.log.Error().Err(err).Str("appointment_id", appt.ID).
			Str("replacement_id", replacement.ID).Msg("failed to mark appointment rescheduled")
		return nil, WrapInternal(err, "failed to mark appointment rescheduled")
	}
	metrics.Transitions.WithLabelValues(string(models.StatusRescheduled)).Inc()
	s.log.Info().Str("appointment_id", appt.ID).Str("replacement_id", replacement.ID).
		Msg("appointment rescheduled")

	s.notifyBestEffort(ctx, &models.Notification{
		UserID:    s.otherParty(caller, appt),
		Title:     "Appointment rescheduled",
		Message:   fmt.Sprintf("The appointment on %s at %s was moved to %s at %s.", appt.AppointmentDate, appt.StartTime, newDate, newStart),
		Type:      models.NotificationAppointmentMoved,
		RelatedID: replacement.ID,
	})
	return replacement, nil
}

func (s *Service) loadAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	if id == "" {
		return nil, NewError(CodeInvalidArgument, "appointmentId is required")
	}
	appt, err := s.repo.Appointment(ctx, id)
	if err != nil {
		return nil, WrapInternal(err, "failed to load appointment")
	}
	if appt == nil {
		return nil, NewError(CodeNotFound, "appointment not found")
	}
	return appt, nil
}

// isParty reports whether the caller is the appointment's patient, its
// doctor, or an admin.
func (s *Service) isParty(caller CallerIdentity, appt *models.Appointment) bool {
	if caller.Role == models.RoleAdmin {
		return true
	}
	return caller.UserID == appt.PatientID || caller.UserID == appt.DoctorID
}

// otherParty picks the notification recipient opposite the caller. An
// admin-initiated change notifies the patient.
func (s *Service) otherParty(caller CallerIdentity, appt *models.Appointment) string {
	if caller.UserID == appt.PatientID {
		return appt.DoctorID
	}
	return appt.PatientID
}

func cancelMessage(appt *models.Appointment, reason string) string {
	msg := fmt.Sprintf("The appointment on %s at %s was canceled.", appt.AppointmentDate, appt.StartTime)
	if reason != "" {
		msg += " Reason: " + reason
	}
	return msg
}
