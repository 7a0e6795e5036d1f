package handlers

import (
	"ShifaCare/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service *services.BookingService
}

func NewBookingHandler(service *services.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// Book handles POST /api/appointments: validates the patient request and
// creates a PENDING appointment. 201 on success, 400 with the first
// validation failure, 409 when the slot was taken in the meantime.
func (h *BookingHandler) Book(c *gin.Context) {
	var input services.BookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	input.IPAddress = c.ClientIP()
	input.UserAgent = c.Request.UserAgent()

	appointment, err := h.service.Book(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, appointment)
}

// Cancel handles POST /api/appointments/cancel. The patient proves ownership
// by knowing the appointment's CNIC.
func (h *BookingHandler) Cancel(c *gin.Context) {
	var input struct {
		AppointmentID uint   `json:"appointment_id"`
		CancelReason  string `json:"cancel_reason"`
		PatientCnic   string `json:"patient_cnic"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if input.AppointmentID == 0 || input.PatientCnic == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "appointment_id and patient_cnic are required"})
		return
	}

	err := h.service.Cancel(c.Request.Context(), input.AppointmentID, input.CancelReason, input.PatientCnic, c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "appointment cancelled"})
}

// MyAppointments handles GET /api/my-appointments?cnic=|email=.
func (h *BookingHandler) MyAppointments(c *gin.Context) {
	cnic := c.Query("cnic")
	email := c.Query("email")
	if cnic == "" && email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cnic or email is required"})
		return
	}

	appointments, err := h.service.MyAppointments(c.Request.Context(), cnic, email)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, appointments)
}
