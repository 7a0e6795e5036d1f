package controllers

import (
	"ShifaCare/handlers"

	"github.com/gin-gonic/gin"
)

// SetupPublicRoutes registers the patient-facing booking surface.
func SetupPublicRoutes(
	router *gin.Engine,
	doctorHandler *handlers.DoctorHandler,
	slotHandler *handlers.SlotHandler,
	bookingHandler *handlers.BookingHandler,
) {
	router.GET("/api/doctors", doctorHandler.GetAllDoctors)
	router.GET("/api/slots", slotHandler.GetSlots)
	router.POST("/api/appointments", bookingHandler.Book)
	router.POST("/api/appointments/cancel", bookingHandler.Cancel)
	router.GET("/api/my-appointments", bookingHandler.MyAppointments)
}
