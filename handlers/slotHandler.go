package handlers

import (
	"ShifaCare/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

type SlotHandler struct {
	service *services.SlotService
}

func NewSlotHandler(service *services.SlotService) *SlotHandler {
	return &SlotHandler{service: service}
}

// GetSlots answers GET /api/slots?doctorId=&date= with the day's slot list,
// or 404 when the doctor is unknown or the date is not bookable.
func (h *SlotHandler) GetSlots(c *gin.Context) {
	doctorID := c.Query("doctorId")
	date := c.Query("date")
	if doctorID == "" || date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "doctorId and date are required"})
		return
	}

	slots, err := h.service.GetAvailableSlots(c.Request.Context(), doctorID, date)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, slots)
}
