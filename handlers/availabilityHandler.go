package handlers

import (
	"ShifaCare/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

type AvailabilityHandler struct {
	service *services.AvailabilityService
}

func NewAvailabilityHandler(service *services.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{service: service}
}

// UpsertOverride handles POST /api/admin/availability: creates or replaces
// the override for (doctor, date).
func (h *AvailabilityHandler) UpsertOverride(c *gin.Context) {
	var input services.OverrideInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if input.DoctorID == "" || input.Date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "doctor_id and date are required"})
		return
	}

	override, err := h.service.UpsertOverride(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, override)
}

// ListOverrides handles GET /api/admin/availability?doctorId=.
func (h *AvailabilityHandler) ListOverrides(c *gin.Context) {
	doctorID := c.Query("doctorId")
	if doctorID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "doctorId is required"})
		return
	}

	overrides, err := h.service.ListOverrides(c.Request.Context(), doctorID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, overrides)
}
