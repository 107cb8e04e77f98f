package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/table-reservation/auth"
	"github.com/yeremiapane/table-reservation/controllers"
	"github.com/yeremiapane/table-reservation/database"
	"github.com/yeremiapane/table-reservation/middlewares"
	"github.com/yeremiapane/table-reservation/realtime"
	"github.com/yeremiapane/table-reservation/services"
	"github.com/yeremiapane/table-reservation/sessions"
	"github.com/yeremiapane/table-reservation/utils"
)

// Deps is everything the HTTP layer needs, built once in main.
type Deps struct {
	Collections  database.Collections
	Sessions     *sessions.Manager
	Flow         *auth.LoginFlow
	Notifier     services.Notifier
	Hub          *realtime.Hub
	AuthLimiter  *middlewares.RateLimiter
	CORS         middlewares.CORSPolicy
	SecureCookie bool
	Development  bool
}

func SetupRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(middlewares.ErrorHandler(d.Development))
	r.Use(middlewares.SecurityHeaders(d.SecureCookie))
	r.Use(middlewares.CORSMiddlewares(d.CORS))
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.SessionMiddleware(d.Sessions, d.Collections.Users))

	notifier := d.Notifier
	if notifier == nil {
		notifier = services.Nop{}
	}

	// Inisialisasi controller
	tableCtrl := controllers.NewTableController(d.Collections.Tables, notifier)
	reservationCtrl := controllers.NewReservationController(d.Collections.Reservations, d.Collections.Tables, notifier)
	statusCtrl := controllers.NewReservationStatusController(d.Collections.Statuses, notifier)
	infoCtrl := controllers.NewRestaurantInfoController(d.Collections.RestaurantInfo, notifier)
	userCtrl := controllers.NewUserController(d.Collections.Users, notifier)
	authCtrl := controllers.NewAuthController(d.Flow)
	dashboardCtrl := controllers.NewDashboardController(d.Collections.Tables, d.Collections.Reservations, d.Hub)

	gate := middlewares.AuthGate(d.Flow.LoginPath())

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	r.GET(d.Flow.LoginPath(), authCtrl.LoginPage)

	// Rate limiter untuk endpoint login
	authGroup := r.Group("/auth")
	if d.AuthLimiter != nil {
		authGroup.Use(d.AuthLimiter.RateLimit())
	}
	{
		authGroup.GET("/google", authCtrl.GoogleLogin)
		authGroup.GET("/google/callback", authCtrl.GoogleCallback)
		authGroup.GET("/logout", authCtrl.Logout)
		authGroup.GET("/status", authCtrl.Status)
	}

	// ----------------------------------------------------------------
	//            RESOURCES (read public, write behind the gate)
	// ----------------------------------------------------------------
	tables := r.Group("/tables")
	{
		tables.GET("", tableCtrl.GetAllTables)
		tables.GET("/:id", tableCtrl.GetTableByID)
		tables.POST("", gate, tableCtrl.CreateTable)
		tables.PUT("/:id", gate, tableCtrl.UpdateTable)
		tables.DELETE("/:id", gate, tableCtrl.DeleteTable)
	}

	reservations := r.Group("/reservations")
	{
		reservations.GET("", reservationCtrl.GetAllReservations)
		reservations.GET("/:id", reservationCtrl.GetReservationByID)
		reservations.POST("", gate, reservationCtrl.CreateReservation)
		reservations.PUT("/:id", gate, reservationCtrl.UpdateReservation)
		reservations.DELETE("/:id", gate, reservationCtrl.DeleteReservation)
	}

	statuses := r.Group("/reservation-statuses")
	{
		statuses.GET("", statusCtrl.GetAllStatuses)
		statuses.GET("/:id", statusCtrl.GetStatusByID)
		statuses.POST("", gate, statusCtrl.CreateStatus)
		statuses.PUT("/:id", gate, statusCtrl.UpdateStatus)
		statuses.DELETE("/:id", gate, statusCtrl.DeleteStatus)
	}

	info := r.Group("/restaurant-info")
	{
		info.GET("", infoCtrl.GetRestaurantInfo)
		info.PUT("", gate, infoCtrl.UpdateRestaurantInfo)
		info.DELETE("", gate, infoCtrl.DeleteRestaurantInfo)
	}

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	users := r.Group("/users", gate)
	{
		users.GET("", userCtrl.GetAllUsers)
		users.POST("", userCtrl.CreateUser)
		users.GET("/:id", userCtrl.GetUserByID)
		users.PUT("/:id", userCtrl.UpdateUser)
		users.DELETE("/:id", userCtrl.DeleteUser)
	}

	r.GET("/dashboard", gate, dashboardCtrl.GetDashboard)
	r.GET("/ws/dashboard", gate, dashboardCtrl.LiveFeed)

	r.NoRoute(func(c *gin.Context) {
		utils.RespondError(c, http.StatusNotFound, "Resource not found")
	})
	r.NoMethod(func(c *gin.Context) {
		utils.RespondError(c, http.StatusMethodNotAllowed, "Method not allowed")
	})

	return r
}
