package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"healthcare-booking-server/internal/config"
	"healthcare-booking-server/internal/handlers"
	"healthcare-booking-server/internal/middleware"
	"healthcare-booking-server/internal/models"
	"healthcare-booking-server/internal/scheduling"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config, svc *scheduling.Service) {
	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, cfg)
	userHandler := handlers.NewUserHandler(db)
	appointmentHandler := handlers.NewAppointmentHandler(db, svc)
	availabilityHandler := handlers.NewAvailabilityHandler(db, svc)
	notificationHandler := handlers.NewNotificationHandler(db)

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		authRoutes := public.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/refresh-token", authHandler.RefreshToken)
		}
	}

	// Authenticated routes
	private := router.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(cfg))
	{
		authRoutesPrivate := private.Group("/auth")
		{
			authRoutesPrivate.POST("/logout", authHandler.Logout)
			authRoutesPrivate.GET("/profile", authHandler.GetProfile)
			authRoutesPrivate.PUT("/profile", authHandler.UpdateProfile)
		}

		// User management routes
		userRoutes := private.Group("/users")
		{
			// Bookable doctor directory - accessible by all authenticated users
			userRoutes.GET("/doctors", userHandler.GetDoctors)

			// Admin-only routes
			adminRoutes := userRoutes.Group("")
			adminRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
			{
				adminRoutes.POST("", userHandler.CreateUser)
				adminRoutes.GET("", userHandler.GetUsers)
				adminRoutes.GET("/:id", userHandler.GetUserByID)
				adminRoutes.PATCH("/:id/verify", userHandler.VerifyDoctor)
				adminRoutes.PATCH("/:id/active", userHandler.SetActive)
			}
		}

		// Doctor availability management
		doctorRoutes := private.Group("/doctors")
		{
			myAvailability := doctorRoutes.Group("/me")
			myAvailability.Use(middleware.RoleAuthMiddleware(models.RoleDoctor))
			{
				myAvailability.PUT("/availability", availabilityHandler.SetAvailability)
				myAvailability.GET("/availability", availabilityHandler.GetMyAvailability)
				myAvailability.POST("/blocked-dates", availabilityHandler.BlockDate)
				myAvailability.DELETE("/blocked-dates/:date", availabilityHandler.UnblockDate)
			}

			// Slot calculator - accessible by all authenticated users
			doctorRoutes.GET("/:id/slots", availabilityHandler.GetDoctorSlots)
		}

		// Appointment routes
		appointmentRoutes := private.Group("/appointments")
		{
			appointmentRoutes.POST("", middleware.RoleAuthMiddleware(models.RolePatient), appointmentHandler.BookAppointment)
			appointmentRoutes.GET("", appointmentHandler.GetAppointmentsForUser)
			appointmentRoutes.GET("/:id", appointmentHandler.GetAppointmentByID)

			// Lifecycle transitions - authorization inside the scheduling core
			appointmentRoutes.PATCH("/:id/confirm", appointmentHandler.ConfirmAppointment)
			appointmentRoutes.PATCH("/:id/cancel", appointmentHandler.CancelAppointment)
			appointmentRoutes.PATCH("/:id/complete", appointmentHandler.CompleteAppointment)
			appointmentRoutes.PATCH("/:id/reschedule", appointmentHandler.RescheduleAppointment)
		}

		// Notification routes
		notificationRoutes := private.Group("/notifications")
		{
			notificationRoutes.GET("", notificationHandler.GetNotifications)
			notificationRoutes.GET("/unread-count", notificationHandler.GetUnreadCount)
			notificationRoutes.PATCH("/:id/read", notificationHandler.MarkNotificationAsRead)
		}
	}

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
