package routes

import (
	"ShifaCare/cache"
	"ShifaCare/config"
	"ShifaCare/controllers"
	"ShifaCare/database"
	"ShifaCare/handlers"
	"ShifaCare/middlewares"
	"ShifaCare/repositories"
	"ShifaCare/services"
	"ShifaCare/utils"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes initializes the routes and middleware for the server
func SetupRoutes(cache *cache.Cache, cfg *config.AppConfig, db *gorm.DB) http.Handler {
	// Set Gin to release mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())

	router.Use(middlewares.CorsMiddleware(cfg))

	// Apply rate limiter middleware (process-local counter)
	router.Use(middlewares.NewRateLimiterMiddleware(middlewares.RateLimiterConfig{
		RequestsPerSecond: 15,
		Burst:             30,
	}))

	// Apply logging middleware
	router.Use(middlewares.LoggingMiddleware())

	// Initialize repositories
	doctorRepo := repositories.NewDoctorRepository(db, cache)
	availabilityRepo := repositories.NewAvailabilityRepository(db, cache)
	appointmentRepo := repositories.NewAppointmentRepository(db)
	auditRepo := repositories.NewAuditLogRepository(db)
	adminRepo := repositories.NewAdminRepository(db)

	// Initialize services
	slotService := services.NewSlotService(doctorRepo, availabilityRepo, appointmentRepo)
	bookingService := services.NewBookingService(slotService, appointmentRepo, database.RedisLocker{})
	mailer := utils.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)
	statusService := services.NewStatusService(appointmentRepo, auditRepo, mailer)
	availabilityService := services.NewAvailabilityService(doctorRepo, availabilityRepo)
	doctorService := services.NewDoctorService(doctorRepo)
	authService := services.NewAuthService(adminRepo)

	// Initialize handlers
	slotHandler := handlers.NewSlotHandler(slotService)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	adminAppointmentHandler := handlers.NewAdminAppointmentHandler(statusService)
	availabilityHandler := handlers.NewAvailabilityHandler(availabilityService)
	doctorHandler := handlers.NewDoctorHandler(doctorService)
	authHandler := handlers.NewAuthHandler(authService)

	// Register routes
	controllers.SetupPublicRoutes(router, doctorHandler, slotHandler, bookingHandler)

	adminController := controllers.NewAdminController(authHandler, adminAppointmentHandler, availabilityHandler, doctorHandler)
	adminController.RegisterRoutes(router)

	controllers.SetupRootRoute(router)

	return router
}
