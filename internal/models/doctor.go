package models

// VerificationStatus represents the admin review state of a doctor profile
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "PENDING"
	VerificationVerified VerificationStatus = "VERIFIED"
	VerificationRejected VerificationStatus = "REJECTED"
)

// DoctorProfile holds doctor-specific data attached to a User with the doctor role.
// A doctor only becomes bookable once an admin sets the verification status to
// VERIFIED and the underlying account is active.
type DoctorProfile struct {
	BaseModel
	UserID             string             `gorm:"size:36;uniqueIndex" json:"userId"`
	Specialty          string             `gorm:"size:255" json:"specialty,omitempty"`
	Timezone           string             `gorm:"size:64;default:'UTC'" json:"timezone"`
	VerificationStatus VerificationStatus `gorm:"size:20;default:'PENDING'" json:"verificationStatus"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

// IsBookable reports whether the profile passes the verification gate.
func (p *DoctorProfile) IsBookable() bool {
	return p.VerificationStatus == VerificationVerified
}
