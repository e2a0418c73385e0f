package scheduling

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"healthcare-booking-server/internal/metrics"
	"healthcare-booking-server/internal/models"
)

// Config carries the policy knobs of the scheduling core.
type Config struct {
	// SlotGranularityMinutes is the slot length synthesized for
	// available-all-day schedules.
	SlotGranularityMinutes int
	// AllDayStart/AllDayEnd bound the synthesized all-day window.
	AllDayStart string
	AllDayEnd   string
}

const (
	defaultGranularityMinutes = 30
	defaultAllDayStart        = "08:00"
	defaultAllDayEnd          = "18:00"
	maxRangeDays              = 31
)

// Service implements the scheduling core: availability management, the
// slot calculator, booking, and appointment lifecycle transitions.
type Service struct {
	repo     Repository
	notifier Notifier
	log      zerolog.Logger
	cfg      Config
}

// NewService wires the scheduling core. Zero config fields fall back to
// documented defaults.
func NewService(repo Repository, notifier Notifier, log zerolog.Logger, cfg Config) *Service {
	if cfg.SlotGranularityMinutes <= 0 {
		cfg.SlotGranularityMinutes = defaultGranularityMinutes
	}
	if !ValidTime(cfg.AllDayStart) {
		cfg.AllDayStart = defaultAllDayStart
	}
	if !ValidTime(cfg.AllDayEnd) || cfg.AllDayEnd <= cfg.AllDayStart {
		cfg.AllDayEnd = defaultAllDayEnd
	}
	return &Service{repo: repo, notifier: notifier, log: log, cfg: cfg}
}

// SetAvailabilityInput is a whole-day availability declaration.
type SetAvailabilityInput struct {
	DayOfWeek           int
	Slots               []TimeRange
	IsAvailableAllDay   bool
	IsUnavailableAllDay bool
}

// SetAvailability overwrites the caller's schedule for one day of the week.
// The all-day flags are mutually exclusive and, when set, clear the slot
// list.
func (s *Service) SetAvailability(ctx context.Context, caller CallerIdentity, input SetAvailabilityInput) error {
	if caller.UserID == "" {
		return NewError(CodeUnauthenticated, "authentication required")
	}
	if caller.Role != models.RoleDoctor {
		return NewError(CodePermissionDenied, "only doctors can manage availability")
	}
	if input.DayOfWeek < 0 || input.DayOfWeek > 6 {
		return NewError(CodeInvalidArgument, "dayOfWeek must be between 0 and 6, got %d", input.DayOfWeek)
	}
	if input.IsAvailableAllDay && input.IsUnavailableAllDay {
		return NewError(CodeInvalidArgument, "isAvailableAllDay and isUnavailableAllDay are mutually exclusive")
	}

	day := &models.ScheduleDay{
		DoctorID:            caller.UserID,
		DayOfWeek:           input.DayOfWeek,
		IsAvailableAllDay:   input.IsAvailableAllDay,
		IsUnavailableAllDay: input.IsUnavailableAllDay,
	}
	if !input.IsAvailableAllDay && !input.IsUnavailableAllDay {
		if err := validateRanges(input.Slots); err != nil {
			return err
		}
		for _, r := range input.Slots {
			day.Slots = append(day.Slots, models.ScheduleSlot{StartTime: r.StartTime, EndTime: r.EndTime})
		}
	}

	if err := s.repo.ReplaceScheduleDay(ctx, day); err != nil {
		s.log.Error().Err(err).Str("doctor_id", caller.UserID).Int("day_of_week", input.DayOfWeek).
			Msg("failed to replace schedule day")
		return WrapInternal(err, "failed to save availability")
	}
	s.log.Info().Str("doctor_id", caller.UserID).Int("day_of_week", input.DayOfWeek).
		Int("slots", len(day.Slots)).Msg("availability updated")
	return nil
}

// BlockDate marks a calendar date as fully unavailable for the caller.
func (s *Service) BlockDate(ctx context.Context, caller CallerIdentity, date, reason string) error {
	if caller.Role != models.RoleDoctor {
		return NewError(CodePermissionDenied, "only doctors can block dates")
	}
	if !ValidDate(date) {
		return NewError(CodeInvalidArgument, "date must be YYYY-MM-DD, got %q", date)
	}
	blocked := &models.BlockedDate{DoctorID: caller.UserID, Date: date, Reason: reason}
	if err := s.repo.BlockDate(ctx, blocked); err != nil {
		return WrapInternal(err, "failed to block date")
	}
	return nil
}

// UnblockDate removes a blocked date for the caller.
func (s *Service) UnblockDate(ctx context.Context, caller CallerIdentity, date string) error {
	if caller.Role != models.RoleDoctor {
		return NewError(CodePermissionDenied, "only doctors can unblock dates")
	}
	if !ValidDate(date) {
		return NewError(CodeInvalidArgument, "date must be YYYY-MM-DD, got %q", date)
	}
	if err := s.repo.UnblockDate(ctx, caller.UserID, date); err != nil {
		return WrapInternal(err, "failed to unblock date")
	}
	return nil
}

// AvailableSlots derives the bookable slots for a doctor on one date by
// combining the weekly pattern, blocked dates and blocking appointments.
// A doctor without a configured schedule yields an empty list rather than
// an error.
func (s *Service) AvailableSlots(ctx context.Context, doctorID, date string) ([]Slot, error) {
	if !ValidDate(date) {
		return nil, NewError(CodeInvalidArgument, "date must be YYYY-MM-DD, got %q", date)
	}

	doctor, err := s.repo.Doctor(ctx, doctorID)
	if err != nil {
		return nil, WrapInternal(err, "failed to load doctor")
	}
	if doctor == nil {
		return nil, NewError(CodeNotFound, "doctor not found")
	}

	loc := s.doctorLocation(doctor)
	dayOfWeek, err := weekdayOf(date, loc)
	if err != nil {
		return nil, NewError(CodeInvalidArgument, "date must be YYYY-MM-DD, got %q", date)
	}

	blocked, err := s.repo.IsDateBlocked(ctx, doctorID, date)
	if err != nil {
		return nil, WrapInternal(err, "failed to check blocked dates")
	}
	if blocked {
		return []Slot{}, nil
	}

	day, err := s.repo.ScheduleDay(ctx, doctorID, dayOfWeek)
	if err != nil {
		return nil, WrapInternal(err, "failed to load schedule")
	}
	if day == nil || day.IsUnavailableAllDay {
		return []Slot{}, nil
	}

	var candidates []TimeRange
	if day.IsAvailableAllDay {
		candidates = synthesizeRanges(s.cfg.AllDayStart, s.cfg.AllDayEnd, s.cfg.SlotGranularityMinutes)
	} else {
		for _, slot := range day.Slots {
			candidates = append(candidates, TimeRange{StartTime: slot.StartTime, EndTime: slot.EndTime})
		}
	}
	if len(candidates) == 0 {
		return []Slot{}, nil
	}

	booked, err := s.repo.BlockingAppointments(ctx, doctorID, date)
	if err != nil {
		return nil, WrapInternal(err, "failed to load appointments")
	}

	slots := make([]Slot, 0, len(candidates))
	for _, r := range candidates {
		available := true
		for _, appt := range booked {
			if Overlaps(r.StartTime, r.EndTime, appt.StartTime, appt.EndTime) {
				available = false
				break
			}
		}
		slots = append(slots, Slot{StartTime: r.StartTime, EndTime: r.EndTime, IsAvailable: available})
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].StartTime < slots[j].StartTime })
	return slots, nil
}

// AvailableSlotsRange runs the calculator over an inclusive date range.
func (s *Service) AvailableSlotsRange(ctx context.Context, doctorID, startDate, endDate string) ([]DaySlots, error) {
	if !ValidDate(startDate) || !ValidDate(endDate) {
		return nil, NewError(CodeInvalidArgument, "dates must be YYYY-MM-DD")
	}
	start, _ := time.Parse(dateLayout, startDate)
	end, _ := time.Parse(dateLayout, endDate)
	if end.Before(start) {
		return nil, NewError(CodeInvalidArgument, "endDate %s is before startDate %s", endDate, startDate)
	}
	if end.Sub(start) > maxRangeDays*24*time.Hour {
		return nil, NewError(CodeInvalidArgument, "date range is limited to %d days", maxRangeDays)
	}

	var days []DaySlots
	for cursor := start; !cursor.After(end); cursor = cursor.AddDate(0, 0, 1) {
		date := cursor.Format(dateLayout)
		slots, err := s.AvailableSlots(ctx, doctorID, date)
		if err != nil {
			return nil, err
		}
		days = append(days, DaySlots{Date: date, Slots: slots})
	}
	return days, nil
}

// doctorLocation resolves the doctor's IANA timezone, falling back to UTC
// on a missing profile or unknown zone name.
func (s *Service) doctorLocation(doctor *models.User) *time.Location {
	if doctor.DoctorProfile == nil || doctor.DoctorProfile.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(doctor.DoctorProfile.Timezone)
	if err != nil {
		s.log.Warn().Str("doctor_id", doctor.ID).Str("timezone", doctor.DoctorProfile.Timezone).
			Msg("unknown timezone, falling back to UTC")
		return time.UTC
	}
	return loc
}

// notifyBestEffort emits a notification without letting a delivery failure
// surface to the caller. The appointment write has already committed by the
// time this runs.
func (s *Service) notifyBestEffort(ctx context.Context, n *models.Notification) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, n); err != nil {
		metrics.NotificationFailures.Inc()
		s.log.Warn().Err(err).Str("user_id", n.UserID).Str("related_id", n.RelatedID).
			Str("type", string(n.Type)).Msg("notification emission failed")
	}
}
