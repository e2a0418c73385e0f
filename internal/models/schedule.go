package models

// ScheduleDay is a doctor's declared availability for one day of the week.
// Writes replace the whole day: the handler never patches individual slots.
type ScheduleDay struct {
	BaseModel
	DoctorID            string `gorm:"size:36;index:idx_schedule_doctor_day,unique" json:"doctorId"`
	DayOfWeek           int    `gorm:"index:idx_schedule_doctor_day,unique" json:"dayOfWeek"` // 0 = Sunday .. 6 = Saturday
	IsAvailableAllDay   bool   `gorm:"default:false" json:"isAvailableAllDay"`
	IsUnavailableAllDay bool   `gorm:"default:false" json:"isUnavailableAllDay"`

	Slots []ScheduleSlot `gorm:"foreignKey:ScheduleDayID;constraint:OnDelete:CASCADE" json:"slots"`
}

// ScheduleSlot is a single bookable time range within a ScheduleDay.
// Times are 24-hour "HH:MM" strings; zero-padded so lexicographic order
// matches chronological order.
type ScheduleSlot struct {
	BaseModel
	ScheduleDayID string `gorm:"size:36;index" json:"-"`
	StartTime     string `gorm:"size:5" json:"startTime"`
	EndTime       string `gorm:"size:5" json:"endTime"`
}

// BlockedDate marks a calendar date on which the doctor is fully
// unavailable regardless of the weekly pattern.
type BlockedDate struct {
	BaseModel
	DoctorID string `gorm:"size:36;index:idx_blocked_doctor_date,unique" json:"doctorId"`
	Date     string `gorm:"size:10;index:idx_blocked_doctor_date,unique" json:"date"` // "YYYY-MM-DD"
	Reason   string `gorm:"size:255" json:"reason,omitempty"`
}
