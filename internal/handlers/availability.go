package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"healthcare-booking-server/internal/middleware"
	"healthcare-booking-server/internal/models"
	"healthcare-booking-server/internal/scheduling"
	"healthcare-booking-server/internal/utils"
)

// AvailabilityHandler exposes the doctor's weekly schedule and the slot
// calculator.
type AvailabilityHandler struct {
	DB  *gorm.DB
	Svc *scheduling.Service
}

// NewAvailabilityHandler creates a new AvailabilityHandler.
func NewAvailabilityHandler(db *gorm.DB, svc *scheduling.Service) *AvailabilityHandler {
	return &AvailabilityHandler{DB: db, Svc: svc}
}

// SetAvailabilityRequest is the whole-day availability payload.
type SetAvailabilityRequest struct {
	DayOfWeek           *int                   `json:"dayOfWeek" binding:"required"`
	AvailableSlots      []scheduling.TimeRange `json:"availableSlots"`
	IsAvailableAllDay   bool                   `json:"isAvailableAllDay"`
	IsUnavailableAllDay bool                   `json:"isUnavailableAllDay"`
}

// SetAvailability replaces the calling doctor's schedule for one day of
// the week.
func (h *AvailabilityHandler) SetAvailability(c *gin.Context) {
	var req SetAvailabilityRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	err := h.Svc.SetAvailability(c.Request.Context(), middleware.CallerFromContext(c), scheduling.SetAvailabilityInput{
		DayOfWeek:           *req.DayOfWeek,
		Slots:               req.AvailableSlots,
		IsAvailableAllDay:   req.IsAvailableAllDay,
		IsUnavailableAllDay: req.IsUnavailableAllDay,
	})
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	utils.Success(c, "Availability updated successfully", gin.H{"success": true})
}

// GetMyAvailability returns the calling doctor's full weekly schedule and
// blocked dates.
func (h *AvailabilityHandler) GetMyAvailability(c *gin.Context) {
	doctorID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var days []models.ScheduleDay
	if err := h.DB.Preload("Slots").Where("doctor_id = ?", doctorID).
		Order("day_of_week asc").Find(&days).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch schedule: "+err.Error())
		return
	}

	var blocked []models.BlockedDate
	if err := h.DB.Where("doctor_id = ?", doctorID).Order("date asc").
		Find(&blocked).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch blocked dates: "+err.Error())
		return
	}

	utils.Success(c, "Schedule fetched successfully", gin.H{
		"schedule":     days,
		"blockedDates": blocked,
	})
}

// BlockDateRequest marks a date fully unavailable.
type BlockDateRequest struct {
	Date   string `json:"date" binding:"required"`
	Reason string `json:"reason"`
}

// BlockDate adds a blocked date for the calling doctor.
func (h *AvailabilityHandler) BlockDate(c *gin.Context) {
	var req BlockDateRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if err := h.Svc.BlockDate(c.Request.Context(), middleware.CallerFromContext(c), req.Date, req.Reason); err != nil {
		respondSchedulingError(c, err)
		return
	}
	utils.Success(c, "Date blocked successfully", gin.H{"success": true})
}

// UnblockDate removes a blocked date for the calling doctor.
func (h *AvailabilityHandler) UnblockDate(c *gin.Context) {
	date := c.Param("date")
	if err := h.Svc.UnblockDate(c.Request.Context(), middleware.CallerFromContext(c), date); err != nil {
		respondSchedulingError(c, err)
		return
	}
	utils.Success(c, "Date unblocked successfully", gin.H{"success": true})
}

// GetDoctorSlots runs the slot calculator for a doctor. Accepts either
// ?date= for a single day or ?startDate=&endDate= for a range.
func (h *AvailabilityHandler) GetDoctorSlots(c *gin.Context) {
	doctorID := c.Param("id")

	if date := c.Query("date"); date != "" {
		slots, err := h.Svc.AvailableSlots(c.Request.Context(), doctorID, date)
		if err != nil {
			respondSchedulingError(c, err)
			return
		}
		utils.Success(c, "Slots fetched successfully", gin.H{"slots": slots})
		return
	}

	startDate := c.Query("startDate")
	endDate := c.Query("endDate")
	if endDate == "" {
		endDate = startDate
	}
	if startDate == "" {
		utils.BadRequest(c, "Either 'date' or 'startDate' query parameter is required")
		return
	}

	days, err := h.Svc.AvailableSlotsRange(c.Request.Context(), doctorID, startDate, endDate)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	utils.Success(c, "Slots fetched successfully", gin.H{"days": days})
}
