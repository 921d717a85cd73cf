package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"reviewapi/docs"
	"reviewapi/internal/auth"
	"reviewapi/internal/cache"
	"reviewapi/internal/database"
	"reviewapi/internal/database/migration"
	handlers "reviewapi/internal/http/handler"
	"reviewapi/internal/http/middleware"
	"reviewapi/internal/otel"
	"reviewapi/internal/repository/postgres"
	"reviewapi/internal/service"
	"reviewapi/internal/storage"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context())
		},
	}
}

// deps holds the long-lived resources shared by the server and the admin commands.
type deps struct {
	db    *sql.DB
	store storage.Storage
	kv    cache.Store
	svc   handlers.Dependencies
}

func (d *deps) Close() {
	if d.kv != nil {
		_ = d.kv.Close()
	}
	if d.db != nil {
		_ = d.db.Close()
	}
}

// build wires repositories and services on top of the database, object store and key/value store.
func (a *app) build(ctx context.Context) (*deps, error) {
	d := &deps{}

	db, err := database.NewPostgres(ctx, a.cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	d.db = db

	store, err := storage.New(ctx, a.cfg.Storage)
	if err != nil {
		d.Close()
		return nil, fmt.Errorf("init object storage: %w", err)
	}
	d.store = store

	kv, err := cache.New(a.cfg.Redis)
	if err != nil {
		d.Close()
		return nil, fmt.Errorf("init key/value store: %w", err)
	}
	d.kv = kv

	tokens, err := auth.NewTokenManager(a.cfg.Auth.JWTSecret, a.cfg.Auth.Issuer, a.cfg.Auth.TokenTTL)
	if err != nil {
		d.Close()
		return nil, fmt.Errorf("init token manager: %w", err)
	}

	users := postgres.NewUserPostgres(db)
	consumers := postgres.NewConsumerPostgres(db)
	retailers := postgres.NewRetailerPostgres(db)
	products := postgres.NewProductPostgres(db)
	reviews := postgres.NewReviewPostgres(db)
	collections := postgres.NewCollectionPostgres(db)
	maxImage := a.cfg.Upload.MaxImageBytes

	d.svc = handlers.Dependencies{
		Probes: []handlers.Probe{
			handlers.DatabaseProbe(db),
			{Name: "cache", Check: kv.Ping},
		},
		Auth: service.NewAuthService(service.AuthDeps{
			Users:     users,
			Consumers: consumers,
			Retailers: retailers,
			Hasher:    auth.NewPasswordHasher(a.cfg.Auth.BcryptCost),
			Tokens:    tokens,
			Denylist:  auth.NewDenylist(kv),
		}),
		Consumers:   service.NewConsumerService(consumers, users, store, maxImage),
		Retailers:   service.NewRetailerService(retailers, users, store, maxImage),
		Products:    service.NewProductService(products, retailers, store, maxImage),
		Reviews:     service.NewReviewService(reviews, store, maxImage),
		Collections: service.NewCollectionService(collections, users, reviews, products),
		Files:       service.NewFileService(store),
	}
	return d, nil
}

func (a *app) serve(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, a.log)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			a.log.Warn("tracing_shutdown_failed", zap.Error(err))
		}
	}()

	d, err := a.build(ctx)
	if err != nil {
		return err
	}
	defer d.Close()

	if a.cfg.Database.AutoMigrate {
		if err := migration.Run(ctx, d.db, a.log, a.cfg.Database.Host, migration.Up); err != nil {
			return fmt.Errorf("auto migrate: %w", err)
		}
	}

	app, err := a.newFiber(d)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("server_starting", zap.String("addr", ":"+a.cfg.Port))
		errCh <- app.Listen(":" + a.cfg.Port)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.log.Info("server_stopping")
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (a *app) newFiber(d *deps) (*fiber.App, error) {
	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    a.cfg.BodyLimit,
	})

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := middleware.NewMetrics(reg, "/metrics", "/healthz")
	if err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}

	app.Use(recover.New())
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(a.log))
	app.Use(metrics.Handler())
	app.Use(cors.New(cors.Config{
		AllowOrigins: a.cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
	}))
	if a.cfg.RateLimit.Enabled {
		app.Use(limiter.New(limiter.Config{
			Max:        a.cfg.RateLimit.Max,
			Expiration: a.cfg.RateLimit.Window,
			Storage:    d.kv,
			Next: func(c *fiber.Ctx) bool {
				switch c.Path() {
				case "/health", "/healthz", "/metrics":
					return true
				}
				return false
			},
			LimitReached: func(c *fiber.Ctx) error {
				return fiber.ErrTooManyRequests
			},
		}))
	}
	app.Use(otelfiber.Middleware())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	handlers.RegisterRoutes(app, d.svc)
	return app, nil
}
