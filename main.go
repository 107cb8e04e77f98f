package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/yeremiapane/table-reservation/auth"
	"github.com/yeremiapane/table-reservation/config"
	"github.com/yeremiapane/table-reservation/database"
	"github.com/yeremiapane/table-reservation/middlewares"
	"github.com/yeremiapane/table-reservation/realtime"
	"github.com/yeremiapane/table-reservation/router"
	"github.com/yeremiapane/table-reservation/services"
	"github.com/yeremiapane/table-reservation/sessions"
	"github.com/yeremiapane/table-reservation/utils"
)

const (
	shutdownTimeout = 10 * time.Second
	limiterIdle     = 30 * time.Minute
)

func main() {
	utils.InitLogger()
	cfg := config.Load()
	utils.InitLogger(cfg.LogLevel)

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize store
	cols, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	defer closeStore()

	// Session store
	sweepers := map[string]services.Sweeper{}
	var sessionStore sessions.Store
	switch cfg.SessionDriver {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			utils.ErrorLogger.Fatalf("Failed to connect to redis: %v", err)
		}
		defer client.Close()
		sessionStore = sessions.NewRedisStore(client, "")
	default:
		memory := sessions.NewMemoryStore()
		sweepers["sessions"] = services.SweepFunc(memory.Purge)
		sessionStore = memory
	}
	manager := sessions.NewManager(sessionStore, sessions.ManagerConfig{
		CookieName: cfg.SessionCookieName,
		TTL:        cfg.SessionTTL,
		Secure:     cfg.SessionCookieSecure,
	})

	authLimiter := middlewares.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	sweepers["rate-limiter"] = services.SweepFunc(func() int { return authLimiter.Cleanup(limiterIdle) })

	janitor, err := services.NewJanitor(cfg.SessionSweepEvery, sweepers)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to create janitor: %v", err)
	}
	janitor.Start()
	defer janitor.Stop()

	// Notifier: dashboard websocket + broker (opsional)
	hub := realtime.NewHub(cfg.CORSOrigins...)
	notifiers := services.Fanout{hub}
	if cfg.AMQPURL != "" {
		publisher, err := services.DialAMQP(cfg.AMQPURL, cfg.AMQPExchange, 5)
		if err != nil {
			utils.ErrorLogger.Errorf("AMQP disabled, failed to connect: %v", err)
		} else {
			defer publisher.Close()
			notifiers = append(notifiers, publisher)
		}
	}

	if cfg.GoogleClientID == "" || cfg.GoogleClientSecret == "" {
		utils.ErrorLogger.Warn("GOOGLE_CLIENT_ID / GOOGLE_CLIENT_SECRET not set, Google sign in will fail")
	}
	flow := auth.NewLoginFlow(
		auth.NewGoogleProvider(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleCallbackURL),
		auth.NewStateSigner(cfg.OAuthStateSecret),
		auth.NewVerifier(cols.Users),
		manager,
		auth.FlowConfig{LoginPath: cfg.LoginPath, DefaultRedirect: cfg.DefaultRedirect},
	)

	r := router.SetupRouter(router.Deps{
		Collections:  cols,
		Sessions:     manager,
		Flow:         flow,
		Notifier:     notifiers,
		Hub:          hub,
		AuthLimiter:  authLimiter,
		CORS:         middlewares.CORSPolicy{Origins: cfg.CORSOrigins, MaxAge: cfg.CORSMaxAge},
		SecureCookie: cfg.SessionCookieSecure,
		Development:  cfg.IsDevelopment(),
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		utils.InfoLogger.Printf("Listening on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.ErrorLogger.Fatal(err)
		}
	}()

	<-ctx.Done()
	utils.InfoLogger.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.ErrorLogger.Errorf("Server forced to shutdown: %v", err)
	}
}

// openStore connects the configured backend and returns its collections plus a close func.
func openStore(ctx context.Context, cfg config.Config) (database.Collections, func(), error) {
	switch cfg.StoreDriver {
	case "mysql", "sqlite":
		dsn := cfg.MySQLDSN
		if cfg.StoreDriver == "sqlite" {
			dsn = cfg.SQLitePath
		}
		db, err := database.OpenSQL(cfg.StoreDriver, dsn)
		if err != nil {
			return database.Collections{}, nil, err
		}
		cols, err := database.SQLCollections(db)
		if err != nil {
			return database.Collections{}, nil, err
		}
		closeFn := func() {
			if sqlDB, err := db.DB(); err == nil {
				sqlDB.Close()
			}
		}
		return cols, closeFn, nil
	default:
		client, err := database.OpenMongo(ctx, cfg.MongoURI)
		if err != nil {
			return database.Collections{}, nil, err
		}
		cols, err := database.MongoCollections(ctx, client.Database(cfg.MongoDatabase))
		if err != nil {
			client.Disconnect(context.Background())
			return database.Collections{}, nil, err
		}
		closeFn := func() {
			if err := client.Disconnect(context.Background()); err != nil {
				utils.ErrorLogger.Errorf("mongo disconnect: %v", err)
			}
		}
		return cols, closeFn, nil
	}
}
