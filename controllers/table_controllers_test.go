package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/table-reservation/models"
	"github.com/yeremiapane/table-reservation/services"
	"github.com/yeremiapane/table-reservation/utils"
)

func TestCreateTable(t *testing.T) {
	api := setupTestAPI(t)

	w, env := api.do(t, http.MethodPost, "/tables", map[string]interface{}{
		"tableNumber": "  <b>A1</b> ",
		"capacity":    4,
		"location":    "Patio",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.True(t, env.Success)
	assert.Equal(t, "Table created successfully", env.Message)

	table := decode[models.Table](t, env.Data)
	assert.Equal(t, "A1", table.TableNumber)
	assert.Equal(t, 4, table.Capacity)
	assert.True(t, table.IsAvailable)
	_, ok := utils.ToObjectID(table.ID)
	assert.True(t, ok)
	assert.Equal(t, []string{services.EventTableCreated}, api.notifier.Types())
}

func TestCreateTableValidation(t *testing.T) {
	api := setupTestAPI(t)

	w, env := api.do(t, http.MethodPost, "/tables", map[string]interface{}{"capacity": 4})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "Table number is required.", env.Message)

	w, env = api.do(t, http.MethodPost, "/tables", map[string]interface{}{"tableNumber": "A1", "capacity": 21})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Table capacity must be at most 20.", env.Message)
	assert.Empty(t, api.notifier.Types())
}

func TestCreateTableMalformedBody(t *testing.T) {
	api := setupTestAPI(t)

	w, env := api.do(t, http.MethodPost, "/tables", "not an object")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, env.Message, "Invalid request body")
}

func TestCreateTableDuplicateNumber(t *testing.T) {
	api := setupTestAPI(t)
	api.createTable(t, "A1", 4)

	w, env := api.do(t, http.MethodPost, "/tables", map[string]interface{}{"tableNumber": "A1", "capacity": 2})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "Duplicate value for tableNumber: 'A1' already exists", env.Message)
}

func TestGetTableByID(t *testing.T) {
	api := setupTestAPI(t)
	id := api.createTable(t, "A1", 4)

	w, env := api.do(t, http.MethodGet, "/tables/not-an-id", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid table ID format", env.Message)

	w, env = api.do(t, http.MethodGet, "/tables/"+utils.NewObjectID(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Table not found", env.Message)

	w, env = api.do(t, http.MethodGet, "/tables/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Table retrieved successfully", env.Message)
	assert.Equal(t, id, decode[models.Table](t, env.Data).ID)
}

func TestGetAllTablesPagination(t *testing.T) {
	api := setupTestAPI(t)
	for i := 1; i <= 12; i++ {
		api.createTable(t, fmt.Sprintf("T%02d", i), 2)
	}

	w, env := api.do(t, http.MethodGet, "/tables?page=2&limit=5&sortBy=tableNumber&sortOrder=asc", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Tables retrieved successfully", env.Message)
	require.NotNil(t, env.Meta)
	assert.Equal(t, utils.Meta{Page: 2, Limit: 5, Total: 12, Pages: 3}, *env.Meta)

	tables := decode[[]models.Table](t, env.Data)
	require.Len(t, tables, 5)
	for i, table := range tables {
		assert.Equal(t, fmt.Sprintf("T%02d", i+6), table.TableNumber)
	}
}

func TestGetAllTablesFilters(t *testing.T) {
	api := setupTestAPI(t)
	api.createTable(t, "S1", 2)
	api.createTable(t, "L1", 8)
	busy := api.createTable(t, "L2", 10)
	w, _ := api.do(t, http.MethodPut, "/tables/"+busy, map[string]interface{}{"isAvailable": false})
	require.Equal(t, http.StatusOK, w.Code)

	w, env := api.do(t, http.MethodGet, "/tables?minCapacity=6&isAvailable=true", nil)
	require.Equal(t, http.StatusOK, w.Code)
	tables := decode[[]models.Table](t, env.Data)
	require.Len(t, tables, 1)
	assert.Equal(t, "L1", tables[0].TableNumber)

	// angka yang tidak valid -> filter diabaikan
	w, env = api.do(t, http.MethodGet, "/tables?minCapacity=abc", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(3), env.Meta.Total)
}

func TestUpdateTable(t *testing.T) {
	api := setupTestAPI(t)
	id := api.createTable(t, "A1", 4)
	api.createTable(t, "B1", 2)

	w, env := api.do(t, http.MethodPut, "/tables/"+id, map[string]interface{}{"capacity": 6})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Table updated successfully", env.Message)
	table := decode[models.Table](t, env.Data)
	assert.Equal(t, 6, table.Capacity)
	assert.Equal(t, "A1", table.TableNumber)

	w, env = api.do(t, http.MethodPut, "/tables/"+id, map[string]interface{}{"tableNumber": "B1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Duplicate value for tableNumber: 'B1' already exists", env.Message)

	w, env = api.do(t, http.MethodPut, "/tables/"+id, map[string]interface{}{"tableNumber": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Table number is required.", env.Message)

	w, _ = api.do(t, http.MethodPut, "/tables/"+utils.NewObjectID(), map[string]interface{}{"capacity": 2})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = api.do(t, http.MethodPut, "/tables/123", map[string]interface{}{"capacity": 2})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteTableTwice(t *testing.T) {
	api := setupTestAPI(t)
	id := api.createTable(t, "A1", 4)

	w, _ := api.do(t, http.MethodDelete, "/tables/"+id, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Zero(t, w.Body.Len())

	w, env := api.do(t, http.MethodDelete, "/tables/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Table not found", env.Message)

	assert.Equal(t, []string{services.EventTableCreated, services.EventTableDeleted}, api.notifier.Types())
}
