package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/table-reservation/controllers"
	"github.com/yeremiapane/table-reservation/database"
	"github.com/yeremiapane/table-reservation/middlewares"
	"github.com/yeremiapane/table-reservation/services"
	"github.com/yeremiapane/table-reservation/utils"
)

// recordingNotifier mencatat tipe event yang dipublish
type recordingNotifier struct {
	mu    sync.Mutex
	types []string
}

func (n *recordingNotifier) Publish(_ context.Context, event services.Event) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.types = append(n.types, event.Type)
	return nil
}

func (n *recordingNotifier) Types() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.types...)
}

type testAPI struct {
	router   *gin.Engine
	cols     database.Collections
	notifier *recordingNotifier
}

// setupTestAPI registers every resource controller on a fresh in-memory sqlite database.
// The auth gate is covered by the middleware tests, so routes here are open.
func setupTestAPI(t *testing.T) testAPI {
	t.Helper()
	utils.InitLogger("error")
	gin.SetMode(gin.TestMode)

	db, err := database.OpenSQL("sqlite", "file:"+uuid.NewString()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	cols, err := database.SQLCollections(db)
	require.NoError(t, err)

	notifier := &recordingNotifier{}
	r := gin.New()
	r.Use(middlewares.ErrorHandler(false))

	tableCtrl := controllers.NewTableController(cols.Tables, notifier)
	r.POST("/tables", tableCtrl.CreateTable)
	r.GET("/tables", tableCtrl.GetAllTables)
	r.GET("/tables/:id", tableCtrl.GetTableByID)
	r.PUT("/tables/:id", tableCtrl.UpdateTable)
	r.DELETE("/tables/:id", tableCtrl.DeleteTable)

	reservationCtrl := controllers.NewReservationController(cols.Reservations, cols.Tables, notifier)
	r.POST("/reservations", reservationCtrl.CreateReservation)
	r.GET("/reservations", reservationCtrl.GetAllReservations)
	r.GET("/reservations/:id", reservationCtrl.GetReservationByID)
	r.PUT("/reservations/:id", reservationCtrl.UpdateReservation)
	r.DELETE("/reservations/:id", reservationCtrl.DeleteReservation)

	statusCtrl := controllers.NewReservationStatusController(cols.Statuses, notifier)
	r.POST("/reservation-statuses", statusCtrl.CreateStatus)
	r.GET("/reservation-statuses", statusCtrl.GetAllStatuses)
	r.GET("/reservation-statuses/:id", statusCtrl.GetStatusByID)
	r.PUT("/reservation-statuses/:id", statusCtrl.UpdateStatus)
	r.DELETE("/reservation-statuses/:id", statusCtrl.DeleteStatus)

	infoCtrl := controllers.NewRestaurantInfoController(cols.RestaurantInfo, notifier)
	r.GET("/restaurant-info", infoCtrl.GetRestaurantInfo)
	r.PUT("/restaurant-info", infoCtrl.UpdateRestaurantInfo)
	r.DELETE("/restaurant-info", infoCtrl.DeleteRestaurantInfo)

	userCtrl := controllers.NewUserController(cols.Users, notifier)
	r.POST("/users", userCtrl.CreateUser)
	r.GET("/users", userCtrl.GetAllUsers)
	r.GET("/users/:id", userCtrl.GetUserByID)
	r.PUT("/users/:id", userCtrl.UpdateUser)
	r.DELETE("/users/:id", userCtrl.DeleteUser)

	return testAPI{router: r, cols: cols, notifier: notifier}
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Meta    *utils.Meta     `json:"meta"`
}

func (a testAPI) do(t *testing.T, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

func (a testAPI) createTable(t *testing.T, number string, capacity int) string {
	t.Helper()
	w, env := a.do(t, http.MethodPost, "/tables", map[string]interface{}{
		"tableNumber": number,
		"capacity":    capacity,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[map[string]interface{}](t, env.Data)["_id"].(string)
}
