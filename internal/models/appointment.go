package models

// AppointmentStatus represents the status of an appointment.
// This is the single canonical definition; handlers and the scheduling
// core must not redeclare these values.
type AppointmentStatus string

const (
	StatusPending     AppointmentStatus = "PENDING"
	StatusConfirmed   AppointmentStatus = "CONFIRMED"
	StatusCanceled    AppointmentStatus = "CANCELED"
	StatusCompleted   AppointmentStatus = "COMPLETED"
	StatusRescheduled AppointmentStatus = "RESCHEDULED"
)

// IsBlocking reports whether an appointment in this status occupies its slot.
func (s AppointmentStatus) IsBlocking() bool {
	return s == StatusPending || s == StatusConfirmed
}

// IsTerminal reports whether no further transition is permitted.
func (s AppointmentStatus) IsTerminal() bool {
	return s == StatusCanceled || s == StatusCompleted
}

// AppointmentType distinguishes in-person from video visits.
type AppointmentType string

const (
	TypeInPerson AppointmentType = "IN_PERSON"
	TypeVideo    AppointmentType = "VIDEO"
)

// Appointment represents a scheduled medical appointment.
// The date is stored date-only; start and end are "HH:MM" strings in the
// doctor's timezone. Records are never deleted, cancellation is a status
// change so the audit history survives.
type Appointment struct {
	BaseModel
	PatientID          string            `gorm:"size:36;index" json:"patientId"`
	DoctorID           string            `gorm:"size:36;index:idx_appt_doctor_date" json:"doctorId"`
	AppointmentDate    string            `gorm:"size:10;index:idx_appt_doctor_date" json:"appointmentDate"` // "YYYY-MM-DD"
	StartTime          string            `gorm:"size:5" json:"startTime"`
	EndTime            string            `gorm:"size:5" json:"endTime"`
	Status             AppointmentStatus `gorm:"size:20;default:'PENDING'" json:"status"`
	Type               AppointmentType   `gorm:"size:20;default:'IN_PERSON'" json:"appointmentType"`
	Reason             string            `gorm:"size:1000" json:"reason,omitempty"`
	Notes              string            `gorm:"type:text" json:"notes,omitempty"`
	CancellationReason string            `gorm:"size:500" json:"cancellationReason,omitempty"`
	RescheduledToID    string            `gorm:"size:36" json:"rescheduledToId,omitempty"`
	IdempotencyKey     string            `gorm:"size:64;index" json:"-"`

	// Relations
	Patient User `gorm:"foreignKey:PatientID" json:"-"`
	Doctor  User `gorm:"foreignKey:DoctorID" json:"-"`
}
