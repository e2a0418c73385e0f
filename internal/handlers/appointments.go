package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"healthcare-booking-server/internal/middleware"
	"healthcare-booking-server/internal/models"
	"healthcare-booking-server/internal/scheduling"
	"healthcare-booking-server/internal/utils"
)

// AppointmentHandler handles appointment related requests. Booking and
// lifecycle transitions delegate to the scheduling core; read endpoints
// query the database directly.
type AppointmentHandler struct {
	DB  *gorm.DB
	Svc *scheduling.Service
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(db *gorm.DB, svc *scheduling.Service) *AppointmentHandler {
	return &AppointmentHandler{DB: db, Svc: svc}
}

// BookAppointmentRequest represents the request body for booking a slot.
type BookAppointmentRequest struct {
	DoctorID        string `json:"doctorId" binding:"required,uuid"`
	AppointmentDate string `json:"appointmentDate" binding:"required"`
	StartTime       string `json:"startTime" binding:"required"`
	EndTime         string `json:"endTime" binding:"required"`
	AppointmentType string `json:"appointmentType" binding:"required,oneof=IN_PERSON VIDEO"`
	Reason          string `json:"reason" binding:"max=1000"`
	IdempotencyKey  string `json:"idempotencyKey" binding:"max=64"`
}

// BookAppointment books a slot for the authenticated patient.
func (h *AppointmentHandler) BookAppointment(c *gin.Context) {
	var req BookAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	appt, err := h.Svc.Book(c.Request.Context(), middleware.CallerFromContext(c), scheduling.BookingRequest{
		DoctorID:        req.DoctorID,
		AppointmentDate: req.AppointmentDate,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		Type:            models.AppointmentType(req.AppointmentType),
		Reason:          req.Reason,
		IdempotencyKey:  req.IdempotencyKey,
	})
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	utils.Created(c, "Appointment booked successfully", appt)
}

// GetAppointmentsForUser handles fetching appointments for the logged-in
// user (patient or doctor).
func (h *AppointmentHandler) GetAppointmentsForUser(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}
	userRole, _ := middleware.GetUserRoleFromContext(c)

	var appointments []models.Appointment
	query := h.DB.Order("appointment_date asc, start_time asc")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var err error
	switch userRole {
	case models.RolePatient:
		err = query.Where("patient_id = ?", userID).Find(&appointments).Error
	case models.RoleDoctor:
		err = query.Where("doctor_id = ?", userID).Find(&appointments).Error
	case models.RoleAdmin:
		err = query.Find(&appointments).Error
	default:
		utils.Forbidden(c, "User role not permitted to view appointments")
		return
	}

	if err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return
	}
	utils.Success(c, "Appointments fetched successfully", appointments)
}

// GetAppointmentByID handles fetching a single appointment by its ID.
// Accessible by the involved patient, doctor, or an admin.
func (h *AppointmentHandler) GetAppointmentByID(c *gin.Context) {
	appointmentID := c.Param("id")

	var appointment models.Appointment
	if err := h.DB.First(&appointment, "id = ?", appointmentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	userRole, _ := middleware.GetUserRoleFromContext(c)
	if userRole != models.RoleAdmin && userID != appointment.PatientID && userID != appointment.DoctorID {
		utils.Forbidden(c, "You are not authorized to view this appointment")
		return
	}

	utils.Success(c, "Appointment fetched successfully", appointment)
}

// ConfirmAppointment moves a pending appointment to CONFIRMED (doctor).
func (h *AppointmentHandler) ConfirmAppointment(c *gin.Context) {
	appt, err := h.Svc.Confirm(c.Request.Context(), middleware.CallerFromContext(c), c.Param("id"))
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	utils.Success(c, "Appointment confirmed successfully", appt)
}

// CancelAppointmentRequest carries the optional cancellation reason.
type CancelAppointmentRequest struct {
	CancellationReason string `json:"cancellationReason" binding:"max=500"`
}

// CancelAppointment cancels an appointment for either involved party.
func (h *AppointmentHandler) CancelAppointment(c *gin.Context) {
	var req CancelAppointmentRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.BadRequest(c, "Invalid request payload: "+err.Error())
			return
		}
	}

	appt, err := h.Svc.Cancel(c.Request.Context(), middleware.CallerFromContext(c), c.Param("id"), req.CancellationReason)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	utils.Success(c, "Appointment canceled successfully", appt)
}

// CompleteAppointmentRequest carries the optional visit notes.
type CompleteAppointmentRequest struct {
	Notes string `json:"notes" binding:"max=2000"`
}

// CompleteAppointment marks an appointment completed (owning doctor).
func (h *AppointmentHandler) CompleteAppointment(c *gin.Context) {
	var req CompleteAppointmentRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.BadRequest(c, "Invalid request payload: "+err.Error())
			return
		}
	}

	appt, err := h.Svc.Complete(c.Request.Context(), middleware.CallerFromContext(c), c.Param("id"), req.Notes)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	utils.Success(c, "Appointment completed successfully", appt)
}

// RescheduleAppointmentRequest carries the replacement slot.
type RescheduleAppointmentRequest struct {
	AppointmentDate string `json:"appointmentDate" binding:"required"`
	StartTime       string `json:"startTime" binding:"required"`
	EndTime         string `json:"endTime" binding:"required"`
}

// RescheduleAppointment replaces an appointment with a new one on a
// different slot.
func (h *AppointmentHandler) RescheduleAppointment(c *gin.Context) {
	var req RescheduleAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	replacement, err := h.Svc.Reschedule(c.Request.Context(), middleware.CallerFromContext(c),
		c.Param("id"), req.AppointmentDate, req.StartTime, req.EndTime)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	utils.Success(c, "Appointment rescheduled successfully", replacement)
}
