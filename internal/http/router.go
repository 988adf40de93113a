package http

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/therohansaxena/AddressBook/internal/auth"
	"github.com/therohansaxena/AddressBook/internal/cache"
	"github.com/therohansaxena/AddressBook/internal/config"
	"github.com/therohansaxena/AddressBook/internal/http/handlers"
	"github.com/therohansaxena/AddressBook/internal/http/middlewares"
	"github.com/therohansaxena/AddressBook/internal/notifications"
	"github.com/therohansaxena/AddressBook/internal/observability"
	"github.com/therohansaxena/AddressBook/internal/repo/memory"
	"github.com/therohansaxena/AddressBook/internal/repo/postgres"
	"github.com/therohansaxena/AddressBook/internal/service"
)

// NewRouter wires repositories, services and handlers into the gin engine.
// A nil pool selects the in-memory repositories (no-database dev mode).
func NewRouter(log *slog.Logger, pool *pgxpool.Pool, cfg config.Config, cacheStore cache.Store, notifier notifications.Notifier) *gin.Engine {
	cfgEnv := os.Getenv("APP_ENV")

	if cfgEnv != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	reg := prometheus.NewRegistry()
	prom := observability.NewProm(reg)

	// middleware

	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(RequestLogger(log))
	r.Use(otelgin.Middleware("addressbook-api"))
	r.Use(prom.GinHandleMiddleware())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(cfg.CORSOrigins))
	r.Use(middlewares.RequireJSON())
	r.Use(middlewares.MaxBodyBytes(1 << 20))

	// health
	ping := func() error {
		if pool == nil {
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
		defer cancel()

		return pool.Ping(ctx)
	}

	h := handlers.NewHealthHandler(ping)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// wire up repositories

	var contactStore service.ContactStore
	var userStore service.UserStore

	if pool != nil {
		contactStore = postgres.NewContactsRepo(pool)
		userStore = postgres.NewUsersRepo(pool)
	} else {
		contactStore = memory.NewContactsRepo()
		userStore = memory.NewUsersRepo()
	}

	// services

	jwtManager := auth.NewManager(cfg.JWTSecret, time.Duration(cfg.JWTTTLMinutes)*time.Minute)

	contactSvc := service.NewContactService(contactStore, cacheStore, log, prom)
	userSvc := service.NewUserService(userStore, jwtManager, notifier, log, prom)

	// handlers

	contactsHandler := handlers.NewContactsHandler(contactSvc)
	authHandler := handlers.NewAuthHandler(userSvc)

	authMw := middlewares.NewAuthMiddleware(jwtManager)
	loginLimiter := middlewares.NewRateLimiter(20, time.Minute)

	api := r.Group("/api")

	authRoutes := api.Group("/auth")
	authRoutes.Use(loginLimiter.RateLimiterMiddleware(middlewares.KeyByIP))
	authRoutes.POST("/register", authHandler.Register)
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.PUT("/forgot-password/:email", authHandler.ForgotPassword)
	authRoutes.PUT("/reset-password/:email", authHandler.ResetPassword)

	contactRoutes := api.Group("/contacts")
	contactRoutes.Use(authMw.RequireAuth())
	contactRoutes.GET("", contactsHandler.ListContacts)
	contactRoutes.GET("/:id", contactsHandler.GetContactById)
	contactRoutes.POST("/add", contactsHandler.CreateContact)
	contactRoutes.PUT("/update/:id", contactsHandler.UpdateContact)
	contactRoutes.DELETE("/:id", contactsHandler.DeleteContact)

	return r
}
