package handlers

import (
	"ShifaCare/middlewares"
	"ShifaCare/services"
	"ShifaCare/utils"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps service-layer errors onto the HTTP error taxonomy:
// validation 400, not found 404, conflict 409, everything unexpected 500 with
// a generic body and the detail logged server-side only.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrDoctorNotFound),
		errors.Is(err, services.ErrDateNotBookable),
		errors.Is(err, services.ErrAppointmentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrSlotTaken),
		errors.Is(err, services.ErrStatusConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrSlotNotFound),
		errors.Is(err, services.ErrPastDate),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrTerminalStatus),
		errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrCancelReasonRequired),
		errors.Is(err, services.ErrCnicMismatch),
		errors.Is(err, services.ErrNotCancellable),
		errors.Is(err, services.ErrInvalidOverrideType),
		errors.Is(err, services.ErrCustomWindowsRequired),
		errors.Is(err, services.ErrOverlappingWindows),
		errors.Is(err, utils.ErrInvalidPatientName),
		errors.Is(err, utils.ErrInvalidCnic),
		errors.Is(err, utils.ErrInvalidEmail),
		errors.Is(err, utils.ErrInvalidPhone),
		errors.Is(err, utils.ErrInvalidDate),
		errors.Is(err, utils.ErrInvalidTimeWindow):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		middlewares.HttpError(c, "something went wrong", http.StatusInternalServerError, err)
	}
}
