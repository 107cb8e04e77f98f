package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/table-reservation/auth"
	"github.com/yeremiapane/table-reservation/models"
	"github.com/yeremiapane/table-reservation/realtime"
	"github.com/yeremiapane/table-reservation/store"
	"github.com/yeremiapane/table-reservation/utils"
)

const upcomingLimit = 50

type DashboardController struct {
	Tables       store.Collection[models.Table]
	Reservations store.Collection[models.Reservation]
	Hub          *realtime.Hub
	now          func() time.Time
}

func NewDashboardController(tables store.Collection[models.Table], reservations store.Collection[models.Reservation], hub *realtime.Hub) *DashboardController {
	return &DashboardController{Tables: tables, Reservations: reservations, Hub: hub, now: time.Now}
}

type dashboardSummary struct {
	TotalTables     int64 `json:"totalTables"`
	AvailableTables int64 `json:"availableTables"`
	OccupiedTables  int64 `json:"occupiedTables"`
}

// GetDashboard -> user yang login, semua meja, reservasi mendatang dan ringkasan meja
func (dc *DashboardController) GetDashboard(c *gin.Context) {
	ctx := c.Request.Context()

	tables, err := dc.Tables.Find(ctx, nil, store.FindOptions{SortField: "tableNumber", SortAsc: true})
	if err != nil {
		c.Error(err)
		return
	}

	upcoming, err := dc.Reservations.Find(ctx,
		store.Filter{{Field: "reservationTime", Op: store.OpGte, Value: dc.now().UTC()}},
		store.FindOptions{SortField: "reservationTime", SortAsc: true, Limit: upcomingLimit})
	if err != nil {
		c.Error(err)
		return
	}

	available, err := dc.Tables.Count(ctx, store.Eq("isAvailable", true))
	if err != nil {
		c.Error(err)
		return
	}

	total := int64(len(tables))
	utils.RespondJSON(c, http.StatusOK, "Dashboard retrieved successfully", gin.H{
		"user":                 auth.FromContext(c).User,
		"tables":               tables,
		"upcomingReservations": upcoming,
		"summary": dashboardSummary{
			TotalTables:     total,
			AvailableTables: available,
			OccupiedTables:  total - available,
		},
	})
}

// LiveFeed upgrades to a websocket that receives every domain event until the client leaves.
func (dc *DashboardController) LiveFeed(c *gin.Context) {
	user := auth.FromContext(c).User
	conn, err := dc.Hub.Upgrade(c.Writer, c.Request, user.ID)
	if err != nil {
		// upgrader sudah menulis response error
		utils.ErrorLogger.Warnf("dashboard websocket upgrade failed: %v", err)
		return
	}
	utils.InfoLogger.Debugf("dashboard client connected: %s", user.ID)
	dc.Hub.Listen(conn)
}
