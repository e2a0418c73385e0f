package scheduling

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"healthcare-booking-server/internal/models"
)

// 2026-01-05 is a Monday, day of week 1.
const (
	testDoctorID = "doctor-1"
	testDate     = "2026-01-05"
	testDOW      = 1
)

func scheduleDayWithSlots(slots ...models.ScheduleSlot) *models.ScheduleDay {
	return &models.ScheduleDay{
		DoctorID:  testDoctorID,
		DayOfWeek: testDOW,
		Slots:     slots,
	}
}

func TestAvailableSlots_MarksOverlappingSlotsUnavailable(t *testing.T) {
	repo := new(mockRepository)
	svc := newTestService(repo, nil)

	repo.On("Doctor", mock.Anything, testDoctorID).Return(verifiedDoctor(testDoctorID), nil)
	repo.On("IsDateBlocked", mock.Anything, testDoctorID, testDate).Return(false, nil)
	repo.On("ScheduleDay", mock.Anything, testDoctorID, testDOW).Return(scheduleDayWithSlots(
		models.ScheduleSlot{StartTime: "09:00", EndTime: "09:30"},
		models.ScheduleSlot{StartTime: "09:30", EndTime: "10:00"},
		models.ScheduleSlot{StartTime: "10:00", EndTime: "10:30"},
	), nil)
	repo.On("BlockingAppointments", mock.Anything, testDoctorID, testDate).Return([]models.Appointment{
		{StartTime: "09:30", EndTime: "10:00", Status: models.StatusConfirmed},
	}, nil)

	slots, err := svc.AvailableSlots(context.Background(), testDoctorID, testDate)
	require.NoError(t, err)
	require.Len(t, slots, 3)
	assert.True(t, slots[0].IsAvailable)
	assert.False(t, slots[1].IsAvailable)
	assert.True(t, slots[2].IsAvailable)
}

func TestAvailableSlots_BlockedDateYieldsEmpty(t *testing.T) {
	repo := new(mockRepository)
	svc := newTestService(repo, nil)

	repo.On("Doctor", mock.Anything, testDoctorID).Return(verifiedDoctor(testDoctorID), nil)
	repo.On("IsDateBlocked", mock.Anything, testDoctorID, testDate).Return(true, nil)

	slots, err := svc.AvailableSlots(context.Background(), testDoctorID, testDate)
	require.NoError(t, err)
	assert.Empty(t, slots)
	repo.AssertNotCalled(t, "ScheduleDay", mock.Anything, mock.Anything, mock.Anything)
}

func TestAvailableSlots_NoScheduleYieldsEmpty(t *testing.T) {
	repo := new(mockRepository)
	svc := newTestService(repo, nil)

	repo.On("Doctor", mock.Anything, testDoctorID).Return(verifiedDoctor(testDoctorID), nil)
	repo.On("IsDateBlocked", mock.Anything, testDoctorID, testDate).Return(false, nil)
	repo.On("ScheduleDay", mock.Anything, testDoctorID, testDOW).Return(nil, nil)

	slots, err := svc.AvailableSlots(context.Background(), testDoctorID, testDate)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestAvailableSlots_UnavailableAllDayYieldsEmpty(t *testing.T) {
	repo := new(mockRepository)
	svc := newTestService(repo, nil)

	repo.On("Doctor", mock.Anything, testDoctorID).Return(verifiedDoctor(testDoctorID), nil)
	repo.On("IsDateBlocked", mock.Anything, testDoctorID, testDate).Return(false, nil)
	repo.On("ScheduleDay", mock.Anything, testDoctorID, testDOW).Return(&models.ScheduleDay{
		DoctorID:            testDoctorID,
		DayOfWeek:           testDOW,
		IsUnavailableAllDay: true,
	}, nil)

	slots, err := svc.AvailableSlots(context.Background(), testDoctorID, testDate)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestAvailableSlots_AllDaySynthesis(t *testing.T) {
	repo := new(mockRepository)
	svc := newTestService(repo, nil)

	repo.On("Doctor", mock.Anything, testDoctorID).Return(verifiedDoctor(testDoctorID), nil)
	repo.On("IsDateBlocked", mock.Anything, testDoctorID, testDate).Return(false, nil)
	repo.On("ScheduleDay", mock.Anything, testDoctorID, testDOW).Return(&models.ScheduleDay{
		DoctorID:          testDoctorID,
		DayOfWeek:         testDOW,
		IsAvailableAllDay: true,
	}, nil)
	repo.On("BlockingAppointments", mock.Anything, testDoctorID, testDate).Return(nil, nil)

	slots, err := svc.AvailableSlots(context.Background(), testDoctorID, testDate)
	require.NoError(t, err)
	// Default window 08:00-18:00 at 30 minutes.
	require.Len(t, slots, 20)
	assert.Equal(t, "08:00", slots[0].StartTime)
	assert.Equal(t, "18:00", slots[19].EndTime)
	for _, slot := range slots {
		assert.True(t, slot.IsAvailable)
	}
}

func TestAvailableSlots_SortedByStartTime(t *testing.T) {
	repo := new(mockRepository)
	svc := newTestService(repo, nil)

	repo.On("Doctor", mock.Anything, testDoctorID).Return(verifiedDoctor(testDoctorID), nil)
	repo.On("IsDateBlocked", mock.Anything, testDoctorID, testDate).Return(false, nil)
	repo.On("ScheduleDay", mock.Anything, testDoctorID, testDOW).Return(scheduleDayWithSlots(
		models.ScheduleSlot{StartTime: "14:00", EndTime: "14:30"},
		models.ScheduleSlot{StartTime: "09:00", EndTime: "09:30"},
	), nil)
	repo.On("BlockingAppointments", mock.Anything, testDoctorID, testDate).Return(nil, nil)

	slots, err := svc.AvailableSlots(context.Background(), testDoctorID, testDate)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, "09:00", slots[0].StartTime)
	assert.Equal(t, "14:00", slots[1].StartTime)
}

func TestAvailableSlots_UnknownDoctor(t *testing.T) {
	repo := new(mockRepository)
	svc := newTestService(repo, nil)

	repo.On("Doctor", mock.Anything, "nobody").Return(nil, nil)

	_, err := svc.AvailableSlots(context.Background(), "nobody", testDate)
	require.Error(t, err)
	assert.Equal(t, CodeNotFound, CodeOf(err))
}

func TestAvailableSlots_InvalidDate(t *testing.T) {
	repo := new(mockRepository)
	svc := newTestService(repo, nil)

	_, err := svc.AvailableSlots(context.Background(), testDoctorID, "05/01/2026")
	require.Error(t, err)
	assert.Equal(t, CodeInvalidArgument, CodeOf(err))
	repo.AssertNotCalled(t, "Doctor", mock.Anything, mock.Anything)
}

func TestAvailableSlotsRange(t *testing.T) {
	repo := new(mockRepository)
	svc := newTestService(repo, nil)

	repo.On("Doctor", mock.Anything, testDoctorID).Return(verifiedDoctor(testDoctorID), nil)
	repo.On("IsDateBlocked", mock.Anything, testDoctorID, mock.Anything).Return(false, nil)
	repo.On("ScheduleDay", mock.Anything, testDoctorID, mock.Anything).Return(nil, nil)

	days, err := svc.AvailableSlotsRange(context.Background(), testDoctorID, "2026-01-05", "2026-01-07")
	require.NoError(t, err)
	require.Len(t, days, 3)
	assert.Equal(t, "2026-01-05", days[0].Date)
	assert.Equal(t, "2026-01-07", days[2].Date)
}

func TestAvailableSlotsRange_Validation(t *testing.T) {
	svc := newTestService(new(mockRepository), nil)

	_, err := svc.AvailableSlotsRange(context.Background(), testDoctorID, "2026-01-07", "2026-01-05")
	require.Error(t, err)
	assert.Equal(t, CodeInvalidArgument, CodeOf(err))

	_, err = svc.AvailableSlotsRange(context.Background(), testDoctorID, "2026-01-01", "2026-03-15")
	require.Error(t, err)
	assert.Equal(t, CodeInvalidArgument, CodeOf(err))

	_, err = svc.AvailableSlotsRange(context.Background(), testDoctorID, "bad", "2026-01-05")
	require.Error(t, err)
	assert.Equal(t, CodeInvalidArgument, CodeOf(err))
}

func TestSetAvailability(t *testing.T) {
	doctorCaller := CallerIdentity{UserID: testDoctorID, Role: models.RoleDoctor}

	t.Run("replaces the day with validated slots", func(t *testing.T) {
		repo := new(mockRepository)
		svc := newTestService(repo, nil)

		repo.On("ReplaceScheduleDay", mock.Anything, mock.MatchedBy(func(day *models.ScheduleDay) bool {
			return day.DoctorID == testDoctorID && day.DayOfWeek == 2 && len(day.Slots) == 2
		})).Return(nil)

		err := svc.SetAvailability(context.Background(), doctorCaller, SetAvailabilityInput{
			DayOfWeek: 2,
			Slots: []TimeRange{
				{StartTime: "09:00", EndTime: "12:00"},
				{StartTime: "13:00", EndTime: "17:00"},
			},
		})
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("all-day flag clears the slot list", func(t *testing.T) {
		repo := new(mockRepository)
		svc := newTestService(repo, nil)

		repo.On("ReplaceScheduleDay", mock.Anything, mock.MatchedBy(func(day *models.ScheduleDay) bool {
			return day.IsAvailableAllDay && len(day.Slots) == 0
		})).Return(nil)

		err := svc.SetAvailability(context.Background(), doctorCaller, SetAvailabilityInput{
			DayOfWeek:         3,
			IsAvailableAllDay: true,
			Slots:             []TimeRange{{StartTime: "09:00", EndTime: "10:00"}},
		})
		require.NoError(t, err)
	})

	t.Run("rejects non-doctor", func(t *testing.T) {
		svc := newTestService(new(mockRepository), nil)
		err := svc.SetAvailability(context.Background(),
			CallerIdentity{UserID: "patient-1", Role: models.RolePatient},
			SetAvailabilityInput{DayOfWeek: 1})
		assert.Equal(t, CodePermissionDenied, CodeOf(err))
	})

	t.Run("rejects missing identity", func(t *testing.T) {
		svc := newTestService(new(mockRepository), nil)
		err := svc.SetAvailability(context.Background(), CallerIdentity{}, SetAvailabilityInput{DayOfWeek: 1})
		assert.Equal(t, CodeUnauthenticated, CodeOf(err))
	})

	t.Run("rejects day of week out of range", func(t *testing.T) {
		svc := newTestService(new(mockRepository), nil)
		err := svc.SetAvailability(context.Background(), doctorCaller, SetAvailabilityInput{DayOfWeek: 7})
		assert.Equal(t, CodeInvalidArgument, CodeOf(err))
	})

	t.Run("rejects contradictory all-day flags", func(t *testing.T) {
		svc := newTestService(new(mockRepository), nil)
		err := svc.SetAvailability(context.Background(), doctorCaller, SetAvailabilityInput{
			DayOfWeek:           1,
			IsAvailableAllDay:   true,
			IsUnavailableAllDay: true,
		})
		assert.Equal(t, CodeInvalidArgument, CodeOf(err))
	})

	t.Run("rejects overlapping slots", func(t *testing.T) {
		repo := new(mockRepository)
		svc := newTestService(repo, nil)
		err := svc.SetAvailability(context.Background(), doctorCaller, SetAvailabilityInput{
			DayOfWeek: 1,
			Slots: []TimeRange{
				{StartTime: "09:00", EndTime: "11:00"},
				{StartTime: "10:00", EndTime: "12:00"},
			},
		})
		assert.Equal(t, CodeInvalidArgument, CodeOf(err))
		repo.AssertNotCalled(t, "ReplaceScheduleDay", mock.Anything, mock.Anything)
	})
}

func TestBlockDate(t *testing.T) {
	doctorCaller := CallerIdentity{UserID: testDoctorID, Role: models.RoleDoctor}

	t.Run("records the blocked date", func(t *testing.T) {
		repo := new(mockRepository)
		svc := newTestService(repo, nil)
		repo.On("BlockDate", mock.Anything, mock.MatchedBy(func(b *models.BlockedDate) bool {
			return b.DoctorID == testDoctorID && b.Date == testDate && b.Reason == "vacation"
		})).Return(nil)

		require.NoError(t, svc.BlockDate(context.Background(), doctorCaller, testDate, "vacation"))
		repo.AssertExpectations(t)
	})

	t.Run("rejects invalid date", func(t *testing.T) {
		svc := newTestService(new(mockRepository), nil)
		err := svc.BlockDate(context.Background(), doctorCaller, "not-a-date", "")
		assert.Equal(t, CodeInvalidArgument, CodeOf(err))
	})

	t.Run("rejects non-doctor", func(t *testing.T) {
		svc := newTestService(new(mockRepository), nil)
		err := svc.BlockDate(context.Background(), CallerIdentity{UserID: "p1", Role: models.RolePatient}, testDate, "")
		assert.Equal(t, CodePermissionDenied, CodeOf(err))
	})
}

func TestUnblockDate(t *testing.T) {
	repo := new(mockRepository)
	svc := newTestService(repo, nil)
	repo.On("UnblockDate", mock.Anything, testDoctorID, testDate).Return(nil)

	err := svc.UnblockDate(context.Background(),
		CallerIdentity{UserID: testDoctorID, Role: models.RoleDoctor}, testDate)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}
