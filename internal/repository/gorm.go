// Package repository implements the scheduling persistence surface on GORM.
package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"healthcare-booking-server/internal/models"
	"healthcare-booking-server/internal/scheduling"
)

var blockingStatuses = []models.AppointmentStatus{models.StatusPending, models.StatusConfirmed}

// GormRepository is the production scheduling.Repository.
type GormRepository struct {
	db *gorm.DB
}

// New creates a GormRepository.
func New(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// Doctor returns the doctor user with its profile, or (nil, nil) when the
// id does not belong to a doctor.
func (r *GormRepository) Doctor(ctx context.Context, doctorID string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Preload("DoctorProfile").
		Where("id = ? AND role = ?", doctorID, models.RoleDoctor).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ScheduleDay returns the configured day with slots, or (nil, nil).
func (r *GormRepository) ScheduleDay(ctx context.Context, doctorID string, dayOfWeek int) (*models.ScheduleDay, error) {
	var day models.ScheduleDay
	err := r.db.WithContext(ctx).Preload("Slots").
		Where("doctor_id = ? AND day_of_week = ?", doctorID, dayOfWeek).
		First(&day).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &day, nil
}

// ReplaceScheduleDay deletes any existing row for the doctor+day pair and
// inserts the new one with its slots, all in one transaction.
func (r *GormRepository) ReplaceScheduleDay(ctx context.Context, day *models.ScheduleDay) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.ScheduleDay
		err := tx.Where("doctor_id = ? AND day_of_week = ?", day.DoctorID, day.DayOfWeek).
			First(&existing).Error
		if err == nil {
			if err := tx.Where("schedule_day_id = ?", existing.ID).Delete(&models.ScheduleSlot{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Create(day).Error
	})
}

// IsDateBlocked reports whether the doctor blocked the date.
func (r *GormRepository) IsDateBlocked(ctx context.Context, doctorID, date string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.BlockedDate{}).
		Where("doctor_id = ? AND date = ?", doctorID, date).
		Count(&count).Error
	return count > 0, err
}

// BlockDate inserts or updates a blocked date.
func (r *GormRepository) BlockDate(ctx context.Context, blocked *models.BlockedDate) error {
	var existing models.BlockedDate
	err := r.db.WithContext(ctx).
		Where("doctor_id = ? AND date = ?", blocked.DoctorID, blocked.Date).
		First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.WithContext(ctx).Create(blocked).Error
	}
	if err != nil {
		return err
	}
	existing.Reason = blocked.Reason
	return r.db.WithContext(ctx).Save(&existing).Error
}

// UnblockDate removes a blocked date if present.
func (r *GormRepository) UnblockDate(ctx context.Context, doctorID, date string) error {
	return r.db.WithContext(ctx).
		Where("doctor_id = ? AND date = ?", doctorID, date).
		Delete(&models.BlockedDate{}).Error
}

// BlockingAppointments returns PENDING/CONFIRMED appointments for the
// doctor on the date, ordered by start time.
func (r *GormRepository) BlockingAppointments(ctx context.Context, doctorID, date string) ([]models.Appointment, error) {
	var appts []models.Appointment
	err := r.db.WithContext(ctx).
		Where("doctor_id = ? AND appointment_date = ? AND status IN ?", doctorID, date, blockingStatuses).
		Order("start_time asc").
		Find(&appts).Error
	return appts, err
}

// Appointment returns a record by id, or (nil, nil) when missing.
func (r *GormRepository) Appointment(ctx context.Context, id string) (*models.Appointment, error) {
	var appt models.Appointment
	err := r.db.WithContext(ctx).First(&appt, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &appt, nil
}

// AppointmentByIdempotencyKey returns the patient's appointment created
// under the key, or (nil, nil).
func (r *GormRepository) AppointmentByIdempotencyKey(ctx context.Context, patientID, key string) (*models.Appointment, error) {
	var appt models.Appointment
	err := r.db.WithContext(ctx).
		Where("patient_id = ? AND idempotency_key = ?", patientID, key).
		First(&appt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &appt, nil
}

// UpdateAppointment persists the mutated record.
func (r *GormRepository) UpdateAppointment(ctx context.Context, appt *models.Appointment) error {
	return r.db.WithContext(ctx).Save(appt).Error
}

// CreateAppointmentExclusive creates the appointment after re-checking for
// overlap under a row lock. The SELECT ... FOR UPDATE on the doctor's
// blocking appointments serializes concurrent bookings for the same
// doctor+date, so at most one of two racing requests for an overlapping
// interval can commit.
func (r *GormRepository) CreateAppointmentExclusive(ctx context.Context, appt *models.Appointment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing []models.Appointment
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("doctor_id = ? AND appointment_date = ? AND status IN ?",
				appt.DoctorID, appt.AppointmentDate, blockingStatuses).
			Find(&existing).Error
		if err != nil {
			return err
		}
		for _, other := range existing {
			if appt.StartTime < other.EndTime && other.StartTime < appt.EndTime {
				return scheduling.ErrSlotTaken
			}
		}
		return tx.Create(appt).Error
	})
}
