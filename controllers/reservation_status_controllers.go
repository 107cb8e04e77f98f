package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/table-reservation/models"
	"github.com/yeremiapane/table-reservation/services"
	"github.com/yeremiapane/table-reservation/store"
	"github.com/yeremiapane/table-reservation/utils"
)

const (
	msgStatusNotFound  = "Reservation status not found"
	msgInvalidStatusID = "Invalid reservation status ID format"
)

// ReservationStatusController mengelola katalog status reservasi
type ReservationStatusController struct {
	Statuses store.Collection[models.ReservationStatus]
	Notifier services.Notifier
}

func NewReservationStatusController(statuses store.Collection[models.ReservationStatus], notifier services.Notifier) *ReservationStatusController {
	return &ReservationStatusController{Statuses: statuses, Notifier: notifier}
}

func (sc *ReservationStatusController) CreateStatus(c *gin.Context) {
	var in models.ReservationStatusInput
	if !bindInput(c, &in) {
		return
	}

	status, err := in.ToEntity()
	if err != nil {
		c.Error(err)
		return
	}
	if err := sc.Statuses.Insert(c.Request.Context(), &status); err != nil {
		respondError(c, err, msgStatusNotFound)
		return
	}

	publish(c, sc.Notifier, services.EventReservationStatusCreated, status)
	utils.RespondJSON(c, http.StatusCreated, "Reservation status created successfully", status)
}

func (sc *ReservationStatusController) GetAllStatuses(c *gin.Context) {
	listResources(c, sc.Statuses, "Reservation statuses retrieved successfully")
}

func (sc *ReservationStatusController) GetStatusByID(c *gin.Context) {
	id, ok := paramID(c, msgInvalidStatusID)
	if !ok {
		return
	}

	status, err := sc.Statuses.FindByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, msgStatusNotFound)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reservation status retrieved successfully", status)
}

func (sc *ReservationStatusController) UpdateStatus(c *gin.Context) {
	id, ok := paramID(c, msgInvalidStatusID)
	if !ok {
		return
	}
	var in models.ReservationStatusUpdate
	if !bindInput(c, &in) {
		return
	}

	status, err := sc.Statuses.UpdateByID(c.Request.Context(), id, in.ToFields())
	if err != nil {
		respondError(c, err, msgStatusNotFound)
		return
	}

	publish(c, sc.Notifier, services.EventReservationStatusUpdated, status)
	utils.RespondJSON(c, http.StatusOK, "Reservation status updated successfully", status)
}

func (sc *ReservationStatusController) DeleteStatus(c *gin.Context) {
	id, ok := paramID(c, msgInvalidStatusID)
	if !ok {
		return
	}

	status, err := sc.Statuses.DeleteByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, msgStatusNotFound)
		return
	}

	publish(c, sc.Notifier, services.EventReservationStatusDeleted, status)
	c.Status(http.StatusNoContent)
}
