package handlers

import (
	"ShifaCare/middlewares"
	"ShifaCare/repositories"
	"ShifaCare/services"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type AdminAppointmentHandler struct {
	service *services.StatusService
}

func NewAdminAppointmentHandler(service *services.StatusService) *AdminAppointmentHandler {
	return &AdminAppointmentHandler{service: service}
}

// List handles GET /api/admin/appointments with optional doctorId, date and
// status filters.
func (h *AdminAppointmentHandler) List(c *gin.Context) {
	filters := repositories.AppointmentFilters{
		DoctorID: c.Query("doctorId"),
		Date:     c.Query("date"),
		Status:   c.Query("status"),
	}

	appointments, err := h.service.ListAppointments(c.Request.Context(), filters)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, appointments)
}

// Counts handles GET /api/admin/appointments/counts.
func (h *AdminAppointmentHandler) Counts(c *gin.Context) {
	counts, err := h.service.StatusCounts(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, counts)
}

// SetStatus handles PUT /api/admin/appointments/:id/status.
func (h *AdminAppointmentHandler) SetStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid appointment ID"})
		return
	}

	var input struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	actor, err := middlewares.ExtractAdminUsername(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	if err := h.service.SetStatus(c.Request.Context(), uint(id), input.Status, input.Reason, actor, c.ClientIP()); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "status updated"})
}

// AuditTrail handles GET /api/admin/appointments/:id/audit.
func (h *AdminAppointmentHandler) AuditTrail(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid appointment ID"})
		return
	}

	entries, err := h.service.AuditTrail(c.Request.Context(), uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
