package controllers

import (
	"ShifaCare/handlers"
	"ShifaCare/middlewares"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AdminController registers the session-gated admin surface.
type AdminController struct {
	authHandler         *handlers.AuthHandler
	appointmentHandler  *handlers.AdminAppointmentHandler
	availabilityHandler *handlers.AvailabilityHandler
	doctorHandler       *handlers.DoctorHandler
}

func NewAdminController(
	authHandler *handlers.AuthHandler,
	appointmentHandler *handlers.AdminAppointmentHandler,
	availabilityHandler *handlers.AvailabilityHandler,
	doctorHandler *handlers.DoctorHandler,
) *AdminController {
	return &AdminController{
		authHandler:         authHandler,
		appointmentHandler:  appointmentHandler,
		availabilityHandler: availabilityHandler,
		doctorHandler:       doctorHandler,
	}
}

func (ac *AdminController) RegisterRoutes(router *gin.Engine) {
	router.POST("/api/admin/login", ac.authHandler.Login)
	router.POST("/api/admin/logout", ac.authHandler.Logout)

	// Dashboard pages redirect to login on auth failure.
	pages := router.Group("/admin", middlewares.RequireSessionPage("/admin/login"))
	pages.GET("/dashboard", func(c *gin.Context) {
		username, _ := middlewares.ExtractAdminUsername(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"dashboard": "ok", "username": username})
	})

	// API routes answer 401/403 instead of redirecting.
	api := router.Group("/api/admin", middlewares.RequireSessionAPI())
	api.GET("/appointments", ac.appointmentHandler.List)
	api.GET("/appointments/counts", ac.appointmentHandler.Counts)
	api.PUT("/appointments/:id/status", ac.appointmentHandler.SetStatus)
	api.GET("/appointments/:id/audit", ac.appointmentHandler.AuditTrail)
	api.POST("/availability", ac.availabilityHandler.UpsertOverride)
	api.GET("/availability", ac.availabilityHandler.ListOverrides)
	api.POST("/doctors", ac.doctorHandler.CreateDoctor)
	api.PUT("/doctors/:id", ac.doctorHandler.UpdateDoctor)
	api.PUT("/doctors/:id/schedule", ac.doctorHandler.ReplaceSchedule)
}
