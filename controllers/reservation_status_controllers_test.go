package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/table-reservation/models"
)

func TestReservationStatusCRUD(t *testing.T) {
	api := setupTestAPI(t)

	w, env := api.do(t, http.MethodPost, "/reservation-statuses", map[string]interface{}{
		"name":        "Waitlisted",
		"description": "No table yet",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id := decode[models.ReservationStatus](t, env.Data).ID

	w, env = api.do(t, http.MethodPost, "/reservation-statuses", map[string]interface{}{"name": "Waitlisted"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Duplicate value for name: 'Waitlisted' already exists", env.Message)

	w, env = api.do(t, http.MethodPut, "/reservation-statuses/"+id, map[string]interface{}{"description": "Queue"})
	require.Equal(t, http.StatusOK, w.Code)
	status := decode[models.ReservationStatus](t, env.Data)
	assert.Equal(t, "Waitlisted", status.Name)
	assert.Equal(t, "Queue", status.Description)

	w, env = api.do(t, http.MethodGet, "/reservation-statuses", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1), env.Meta.Total)

	w, _ = api.do(t, http.MethodDelete, "/reservation-statuses/"+id, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w, _ = api.do(t, http.MethodGet, "/reservation-statuses/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
