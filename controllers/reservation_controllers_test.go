package controllers_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/table-reservation/models"
	"github.com/yeremiapane/table-reservation/utils"
)

func reservationBody(tableID, name, when string) map[string]interface{} {
	return map[string]interface{}{
		"tableId":         tableID,
		"customerName":    name,
		"customerPhone":   "555.123.4567",
		"reservationTime": when,
		"partySize":       2,
	}
}

func TestCreateReservation(t *testing.T) {
	api := setupTestAPI(t)
	tableID := api.createTable(t, "A1", 4)

	w, env := api.do(t, http.MethodPost, "/reservations", reservationBody(tableID, "Budi", "2030-05-01T19:00:00+07:00"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "Reservation created successfully", env.Message)

	reservation := decode[models.Reservation](t, env.Data)
	assert.Equal(t, tableID, reservation.TableID)
	assert.Equal(t, models.StatusPending, reservation.Status)
	assert.Equal(t, "(555) 123-4567", reservation.CustomerPhone)
	assert.True(t, reservation.ReservationTime.Equal(time.Date(2030, 5, 1, 12, 0, 0, 0, time.UTC)))
}

func TestCreateReservationTableChecks(t *testing.T) {
	api := setupTestAPI(t)

	w, env := api.do(t, http.MethodPost, "/reservations", reservationBody("table-1", "Budi", "2030-05-01"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid table ID format", env.Message)

	w, env = api.do(t, http.MethodPost, "/reservations", reservationBody(utils.NewObjectID(), "Budi", "2030-05-01"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid tableId, table not found", env.Message)

	total, err := api.cols.Reservations.Count(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestCreateReservationValidation(t *testing.T) {
	api := setupTestAPI(t)
	tableID := api.createTable(t, "A1", 4)

	body := reservationBody(tableID, "Budi", "tomorrow evening")
	w, env := api.do(t, http.MethodPost, "/reservations", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Reservation time must be a valid date.", env.Message)

	body = reservationBody(tableID, "Budi", "2030-05-01")
	body["status"] = "Done"
	w, env = api.do(t, http.MethodPost, "/reservations", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Status must be one of: Pending, Confirmed, Seated, Cancelled.", env.Message)

	body = reservationBody(tableID, "Budi", "2030-05-01")
	body["customerEmail"] = "someone@a-long-domain.example"
	w, env = api.do(t, http.MethodPost, "/reservations", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Customer email must be at most 20 characters long.", env.Message)
}

func TestGetAllReservationsFilters(t *testing.T) {
	api := setupTestAPI(t)
	tableID := api.createTable(t, "A1", 4)

	for _, r := range []struct{ name, when string }{
		{"Budi Santoso", "2030-05-01T10:00:00Z"},
		{"Siti", "2030-05-02T10:00:00Z"},
		{"budiman", "2030-05-03T10:00:00Z"},
		{"Agus", "2030-06-01T10:00:00Z"},
	} {
		w, _ := api.do(t, http.MethodPost, "/reservations", reservationBody(tableID, r.name, r.when))
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w, env := api.do(t, http.MethodGet, "/reservations?search=BUDI", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Reservations retrieved successfully", env.Message)
	assert.Equal(t, int64(2), env.Meta.Total)

	w, env = api.do(t, http.MethodGet, "/reservations?startDate=2030-05-02&endDate=2030-05-31&sortBy=reservationTime&sortOrder=asc", nil)
	require.Equal(t, http.StatusOK, w.Code)
	reservations := decode[[]models.Reservation](t, env.Data)
	require.Len(t, reservations, 2)
	assert.Equal(t, "Siti", reservations[0].CustomerName)
	assert.Equal(t, "budiman", reservations[1].CustomerName)

	w, env = api.do(t, http.MethodGet, "/reservations?status=Confirmed", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(0), env.Meta.Total)
	assert.JSONEq(t, `[]`, string(env.Data))
}

func TestGetAllReservationsEmptyQueryValues(t *testing.T) {
	api := setupTestAPI(t)
	tableID := api.createTable(t, "A1", 4)

	var confirmedID string
	for i, name := range []string{"Budi", "Siti", "Agus"} {
		w, env := api.do(t, http.MethodPost, "/reservations", reservationBody(tableID, name, "2030-05-01T10:00:00Z"))
		require.Equal(t, http.StatusCreated, w.Code)
		if i == 2 {
			confirmedID = decode[models.Reservation](t, env.Data).ID
		}
	}
	w, _ := api.do(t, http.MethodPut, "/reservations/"+confirmedID, map[string]interface{}{"status": models.StatusConfirmed})
	require.Equal(t, http.StatusOK, w.Code)

	// form kosong tidak boleh menghapus filter lain
	w, env := api.do(t, http.MethodGet, "/reservations?startDate=&endDate=&status=Confirmed", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1), env.Meta.Total)
	reservations := decode[[]models.Reservation](t, env.Data)
	require.Len(t, reservations, 1)
	assert.Equal(t, "Agus", reservations[0].CustomerName)

	w, env = api.do(t, http.MethodGet, "/reservations?status=", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(3), env.Meta.Total)

	w, env = api.do(t, http.MethodGet, "/reservations?minCapacity=&search=&status=Pending", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(2), env.Meta.Total)
}

func TestUpdateReservation(t *testing.T) {
	api := setupTestAPI(t)
	tableID := api.createTable(t, "A1", 4)
	otherID := api.createTable(t, "B1", 6)

	w, env := api.do(t, http.MethodPost, "/reservations", reservationBody(tableID, "Budi", "2030-05-01T19:00:00Z"))
	require.Equal(t, http.StatusCreated, w.Code)
	id := decode[models.Reservation](t, env.Data).ID

	w, env = api.do(t, http.MethodPut, "/reservations/"+id, map[string]interface{}{
		"status":  models.StatusConfirmed,
		"tableId": otherID,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Reservation updated successfully", env.Message)
	updated := decode[models.Reservation](t, env.Data)
	assert.Equal(t, models.StatusConfirmed, updated.Status)
	assert.Equal(t, otherID, updated.TableID)
	assert.Equal(t, "Budi", updated.CustomerName)

	w, env = api.do(t, http.MethodPut, "/reservations/"+id, map[string]interface{}{"tableId": utils.NewObjectID()})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid tableId, table not found", env.Message)

	w, env = api.do(t, http.MethodPut, "/reservations/"+utils.NewObjectID(), map[string]interface{}{"notes": "window"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Reservation not found", env.Message)
}

func TestDeleteReservationReturnsEntity(t *testing.T) {
	api := setupTestAPI(t)
	tableID := api.createTable(t, "A1", 4)

	w, env := api.do(t, http.MethodPost, "/reservations", reservationBody(tableID, "Budi", "2030-05-01"))
	require.Equal(t, http.StatusCreated, w.Code)
	id := decode[models.Reservation](t, env.Data).ID

	w, env = api.do(t, http.MethodDelete, "/reservations/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Reservation deleted successfully", env.Message)
	assert.Equal(t, id, decode[models.Reservation](t, env.Data).ID)

	w, env = api.do(t, http.MethodGet, "/reservations/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Reservation not found", env.Message)

	w, env = api.do(t, http.MethodGet, "/reservations/xyz", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid reservation ID format", env.Message)
}
