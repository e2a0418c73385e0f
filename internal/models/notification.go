package models

import (
	"time"
)

// NotificationType categorizes what a notification is about
type NotificationType string

const (
	NotificationAppointmentBooked    NotificationType = "APPOINTMENT_BOOKED"
	NotificationAppointmentConfirmed NotificationType = "APPOINTMENT_CONFIRMED"
	NotificationAppointmentCanceled  NotificationType = "APPOINTMENT_CANCELED"
	NotificationAppointmentCompleted NotificationType = "APPOINTMENT_COMPLETED"
	NotificationAppointmentMoved     NotificationType = "APPOINTMENT_RESCHEDULED"
)

// Notification is a message shown to a user about an appointment event.
// Delivery beyond the in-app record (email, push) is out of scope.
type Notification struct {
	BaseModel
	UserID    string           `gorm:"size:36;index" json:"userId"`
	Title     string           `gorm:"size:255" json:"title"`
	Message   string           `gorm:"type:text" json:"message"`
	Type      NotificationType `gorm:"size:40" json:"type"`
	RelatedID string           `gorm:"size:36;index" json:"relatedId,omitempty"` // Appointment id
	IsRead    bool             `gorm:"default:false" json:"isRead"`
	ReadAt    *time.Time       `json:"readAt,omitempty"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}
