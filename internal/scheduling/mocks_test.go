package scheduling

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"

	"healthcare-booking-server/internal/models"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Doctor(ctx context.Context, doctorID string) (*models.User, error) {
	args := m.Called(ctx, doctorID)
	var user *models.User
	if v := args.Get(0); v != nil {
		user = v.(*models.User)
	}
	return user, args.Error(1)
}

func (m *mockRepository) ScheduleDay(ctx context.Context, doctorID string, dayOfWeek int) (*models.ScheduleDay, error) {
	args := m.Called(ctx, doctorID, dayOfWeek)
	var day *models.ScheduleDay
	if v := args.Get(0); v != nil {
		day = v.(*models.ScheduleDay)
	}
	return day, args.Error(1)
}

func (m *mockRepository) ReplaceScheduleDay(ctx context.Context, day *models.ScheduleDay) error {
	args := m.Called(ctx, day)
	return args.Error(0)
}

func (m *mockRepository) IsDateBlocked(ctx context.Context, doctorID, date string) (bool, error) {
	args := m.Called(ctx, doctorID, date)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepository) BlockDate(ctx context.Context, blocked *models.BlockedDate) error {
	args := m.Called(ctx, blocked)
	return args.Error(0)
}

func (m *mockRepository) UnblockDate(ctx context.Context, doctorID, date string) error {
	args := m.Called(ctx, doctorID, date)
	return args.Error(0)
}

func (m *mockRepository) BlockingAppointments(ctx context.Context, doctorID, date string) ([]models.Appointment, error) {
	args := m.Called(ctx, doctorID, date)
	var appts []models.Appointment
	if v := args.Get(0); v != nil {
		appts = v.([]models.Appointment)
	}
	return appts, args.Error(1)
}

func (m *mockRepository) Appointment(ctx context.Context, id string) (*models.Appointment, error) {
	args := m.Called(ctx, id)
	var appt *models.Appointment
	if v := args.Get(0); v != nil {
		appt = v.(*models.Appointment)
	}
	return appt, args.Error(1)
}

func (m *mockRepository) AppointmentByIdempotencyKey(ctx context.Context, patientID, key string) (*models.Appointment, error) {
	args := m.Called(ctx, patientID, key)
	var appt *models.Appointment
	if v := args.Get(0); v != nil {
		appt = v.(*models.Appointment)
	}
	return appt, args.Error(1)
}

func (m *mockRepository) UpdateAppointment(ctx context.Context, appt *models.Appointment) error {
	args := m.Called(ctx, appt)
	return args.Error(0)
}

func (m *mockRepository) CreateAppointmentExclusive(ctx context.Context, appt *models.Appointment) error {
	args := m.Called(ctx, appt)
	return args.Error(0)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Notify(ctx context.Context, n *models.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func newTestService(repo Repository, notifier Notifier) *Service {
	return NewService(repo, notifier, zerolog.Nop(), Config{})
}

// verifiedDoctor returns a bookable doctor fixture.
func verifiedDoctor(id string) *models.User {
	return &models.User{
		BaseModel: models.BaseModel{ID: id},
		Role:      models.RoleDoctor,
		IsActive:  true,
		DoctorProfile: &models.DoctorProfile{
			UserID:             id,
			Timezone:           "UTC",
			VerificationStatus: models.VerificationVerified,
		},
	}
}
