package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/table-reservation/models"
	"github.com/yeremiapane/table-reservation/services"
	"github.com/yeremiapane/table-reservation/store"
	"github.com/yeremiapane/table-reservation/utils"
)

const (
	msgReservationNotFound  = "Reservation not found"
	msgInvalidReservationID = "Invalid reservation ID format"
	msgUnknownTable         = "Invalid tableId, table not found"
)

type ReservationController struct {
	Reservations store.Collection[models.Reservation]
	Tables       store.Collection[models.Table]
	Notifier     services.Notifier
}

func NewReservationController(reservations store.Collection[models.Reservation], tables store.Collection[models.Table], notifier services.Notifier) *ReservationController {
	return &ReservationController{Reservations: reservations, Tables: tables, Notifier: notifier}
}

// CreateReservation -> buat reservasi, tableId harus menunjuk ke meja yang ada
func (rc *ReservationController) CreateReservation(c *gin.Context) {
	var in models.ReservationInput
	if !bindInput(c, &in) {
		return
	}

	tableID, ok := rc.checkTable(c, in.TableID)
	if !ok {
		return
	}
	in.TableID = tableID

	reservation, err := in.ToEntity()
	if err != nil {
		c.Error(err)
		return
	}
	if err := rc.Reservations.Insert(c.Request.Context(), &reservation); err != nil {
		respondError(c, err, msgReservationNotFound)
		return
	}

	publish(c, rc.Notifier, services.EventReservationCreated, reservation)
	utils.InfoLogger.Printf("Reservation %s created for table %s", reservation.ID, reservation.TableID)
	utils.RespondJSON(c, http.StatusCreated, "Reservation created successfully", reservation)
}

// GetAllReservations -> mendukung filter startDate, endDate, status, search
func (rc *ReservationController) GetAllReservations(c *gin.Context) {
	listResources(c, rc.Reservations, "Reservations retrieved successfully")
}

func (rc *ReservationController) GetReservationByID(c *gin.Context) {
	id, ok := paramID(c, msgInvalidReservationID)
	if !ok {
		return
	}

	reservation, err := rc.Reservations.FindByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, msgReservationNotFound)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reservation retrieved successfully", reservation)
}

func (rc *ReservationController) UpdateReservation(c *gin.Context) {
	id, ok := paramID(c, msgInvalidReservationID)
	if !ok {
		return
	}
	var in models.ReservationUpdate
	if !bindInput(c, &in) {
		return
	}
	if in.TableID != nil {
		tableID, ok := rc.checkTable(c, *in.TableID)
		if !ok {
			return
		}
		in.TableID = &tableID
	}

	reservation, err := rc.Reservations.UpdateByID(c.Request.Context(), id, in.ToFields())
	if err != nil {
		respondError(c, err, msgReservationNotFound)
		return
	}

	publish(c, rc.Notifier, services.EventReservationUpdated, reservation)
	utils.RespondJSON(c, http.StatusOK, "Reservation updated successfully", reservation)
}

// DeleteReservation -> 200 dengan data reservasi yang dihapus
func (rc *ReservationController) DeleteReservation(c *gin.Context) {
	id, ok := paramID(c, msgInvalidReservationID)
	if !ok {
		return
	}

	reservation, err := rc.Reservations.DeleteByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, msgReservationNotFound)
		return
	}

	publish(c, rc.Notifier, services.EventReservationDeleted, reservation)
	utils.RespondJSON(c, http.StatusOK, "Reservation deleted successfully", reservation)
}

// checkTable validates the format of a table reference and that the table exists.
func (rc *ReservationController) checkTable(c *gin.Context, raw string) (string, bool) {
	tableID, ok := utils.ToObjectID(raw)
	if !ok {
		utils.RespondError(c, http.StatusBadRequest, msgInvalidTableID)
		return "", false
	}
	if _, err := rc.Tables.FindByID(c.Request.Context(), tableID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.RespondError(c, http.StatusBadRequest, msgUnknownTable)
			return "", false
		}
		c.Error(err)
		return "", false
	}
	return tableID, true
}
