package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"healthcare-booking-server/internal/models"
	"healthcare-booking-server/internal/utils"
)

// UserHandler handles user-related requests (typically admin operations).
type UserHandler struct {
	DB *gorm.DB
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{DB: db}
}

// CreateUserRequest represents the request body for creating a user by an admin.
type CreateUserRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	Role      string `json:"role" binding:"required,oneof=patient doctor admin"`
}

// CreateUser handles creating a new user (admin).
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var existingUser models.User
	if err := h.DB.Where("email = ?", req.Email).First(&existingUser).Error; err == nil {
		utils.BadRequest(c, "User with this email already exists")
		return
	} else if err != gorm.ErrRecordNotFound {
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	}

	user := models.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Role:      models.Role(req.Role),
		IsActive:  true,
	}
	if err := user.SetPassword(req.Password); err != nil {
		utils.InternalServerError(c, "Failed to hash password: "+err.Error())
		return
	}
	if user.Role == models.RoleDoctor {
		user.DoctorProfile = &models.DoctorProfile{
			Timezone:           "UTC",
			VerificationStatus: models.VerificationPending,
		}
	}

	if err := h.DB.Create(&user).Error; err != nil {
		utils.InternalServerError(c, "Failed to create user: "+err.Error())
		return
	}

	utils.Created(c, "User created successfully", user.Sanitize())
}

// GetUsers handles fetching all users (admin).
func (h *UserHandler) GetUsers(c *gin.Context) {
	var users []models.User
	if err := h.DB.Preload("DoctorProfile").Find(&users).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch users: "+err.Error())
		return
	}

	sanitized := make([]models.UserSanitized, len(users))
	for i, u := range users {
		sanitized[i] = u.Sanitize()
	}
	utils.Success(c, "Users fetched successfully", sanitized)
}

// GetUserByID handles fetching a single user by ID (admin).
func (h *UserHandler) GetUserByID(c *gin.Context) {
	userID := c.Param("id")

	var user models.User
	if err := h.DB.Preload("DoctorProfile").First(&user, "id = ?", userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "User not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}
	utils.Success(c, "User fetched successfully", user.Sanitize())
}

// VerifyDoctorRequest carries the admin's verification decision.
type VerifyDoctorRequest struct {
	Status string `json:"status" binding:"required,oneof=VERIFIED REJECTED PENDING"`
}

// VerifyDoctor sets a doctor's verification status (admin). Only VERIFIED
// doctors with active accounts can accept bookings.
func (h *UserHandler) VerifyDoctor(c *gin.Context) {
	var req VerifyDoctorRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var profile models.DoctorProfile
	if err := h.DB.Where("user_id = ?", c.Param("id")).First(&profile).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Doctor profile not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	profile.VerificationStatus = models.VerificationStatus(req.Status)
	if err := h.DB.Save(&profile).Error; err != nil {
		utils.InternalServerError(c, "Failed to update verification status: "+err.Error())
		return
	}
	utils.Success(c, "Verification status updated successfully", profile)
}

// SetActiveRequest toggles account activation.
type SetActiveRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

// SetActive activates or deactivates a user account (admin). Deactivating
// a doctor removes them from booking eligibility without touching their
// schedule or existing appointments.
func (h *UserHandler) SetActive(c *gin.Context) {
	var req SetActiveRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var user models.User
	if err := h.DB.First(&user, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "User not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	user.IsActive = *req.IsActive
	if err := h.DB.Save(&user).Error; err != nil {
		utils.InternalServerError(c, "Failed to update user: "+err.Error())
		return
	}
	utils.Success(c, "User updated successfully", user.Sanitize())
}

// GetDoctors handles fetching bookable doctors: verified profiles on
// active accounts. This endpoint backs the patient's doctor search.
func (h *UserHandler) GetDoctors(c *gin.Context) {
	var doctors []models.User
	query := h.DB.Preload("DoctorProfile").
		Joins("JOIN doctor_profiles ON doctor_profiles.user_id = users.id").
		Where("users.role = ? AND users.is_active = ? AND doctor_profiles.verification_status = ?",
			models.RoleDoctor, true, models.VerificationVerified)
	if specialty := c.Query("specialty"); specialty != "" {
		query = query.Where("doctor_profiles.specialty = ?", specialty)
	}
	if err := query.Find(&doctors).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch doctors: "+err.Error())
		return
	}

	sanitized := make([]models.UserSanitized, len(doctors))
	for i, doctor := range doctors {
		sanitized[i] = doctor.Sanitize()
	}
	utils.Success(c, "Doctors fetched successfully", sanitized)
}
