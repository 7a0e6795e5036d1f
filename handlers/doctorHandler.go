package handlers

import (
	"ShifaCare/models"
	"ShifaCare/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

type DoctorHandler struct {
	service *services.DoctorService
}

func NewDoctorHandler(service *services.DoctorService) *DoctorHandler {
	return &DoctorHandler{service: service}
}

func (h *DoctorHandler) CreateDoctor(c *gin.Context) {
	var doctor models.Doctor
	if err := c.ShouldBindJSON(&doctor); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if doctor.ID == "" || doctor.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id and name are required"})
		return
	}
	if err := h.service.Create(c.Request.Context(), &doctor); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, doctor)
}

func (h *DoctorHandler) UpdateDoctor(c *gin.Context) {
	var doctor models.Doctor
	if err := c.ShouldBindJSON(&doctor); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	doctor.ID = c.Param("id")

	if err := h.service.Update(c.Request.Context(), &doctor); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, doctor)
}

func (h *DoctorHandler) GetAllDoctors(c *gin.Context) {
	doctors, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, doctors)
}

// ReplaceSchedule handles PUT /api/admin/doctors/:id/schedule: swaps the
// doctor's entire weekly template.
func (h *DoctorHandler) ReplaceSchedule(c *gin.Context) {
	var input struct {
		Windows []models.ScheduleWindow `json:"windows"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.service.ReplaceSchedule(c.Request.Context(), c.Param("id"), input.Windows); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "schedule updated"})
}
