package main

import (
	"context"
	"net/http"
	"os"

	"github.com/devesh457/nea-website/api/controllers"
	"github.com/devesh457/nea-website/api/routes"
	"github.com/devesh457/nea-website/internal/auth"
	"github.com/devesh457/nea-website/internal/availability"
	"github.com/devesh457/nea-website/internal/bookings"
	"github.com/devesh457/nea-website/internal/circulars"
	"github.com/devesh457/nea-website/internal/governingbody"
	"github.com/devesh457/nea-website/internal/members"
	"github.com/devesh457/nea-website/pkg/auth/session"
	"github.com/devesh457/nea-website/pkg/config"
	"github.com/devesh457/nea-website/pkg/db"
	"github.com/devesh457/nea-website/pkg/db/models"
	"github.com/devesh457/nea-website/pkg/logger"
	"github.com/devesh457/nea-website/pkg/metrics"
	"github.com/devesh457/nea-website/pkg/migrate"
	"github.com/devesh457/nea-website/pkg/redis"
	"github.com/joho/godotenv"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, cfg.FeatureFlags, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if cfg.FeatureFlags.UseSQLite && cfg.FeatureFlags.AutoMigrate {
		// sqlite has no goose migrations, the schema comes from GORM.
		if err := dbClient.DB().AutoMigrate(
			&models.User{},
			&models.GuestHouseAvailability{},
			&models.GuestHouseBooking{},
			&models.Circular{},
			&models.GoverningBodyMember{},
		); err != nil {
			logg.Error(context.Background(), "failed to auto-migrate sqlite schema", err)
			os.Exit(1)
		}
	}

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	membersRepo := members.NewRepository(dbClient.DB())
	availabilityRepo := availability.NewRepository(dbClient.DB())
	bookingsRepo := bookings.NewRepository(dbClient.DB())

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       membersRepo,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	membersService, err := members.NewService(membersRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create members service", err)
		os.Exit(1)
	}

	availabilityService, err := availability.NewService(availabilityRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create availability service", err)
		os.Exit(1)
	}

	bookingsService, err := bookings.NewService(bookingsRepo, availabilityRepo, dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create bookings service", err)
		os.Exit(1)
	}

	circularsService, err := circulars.NewService(circulars.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create circulars service", err)
		os.Exit(1)
	}

	governingBodyService, err := governingbody.NewService(governingbody.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create governing body service", err)
		os.Exit(1)
	}

	router := routes.NewRouter(routes.Deps{
		Config: cfg,
		Logger: logg,
		Stores: map[string]controllers.Pinger{
			"postgres": dbClient,
			"redis":    redisClient,
		},
		RedisClient:    redisClient,
		Sessions:       sessionManager,
		Metrics:        metrics.NewHTTPMetrics(),
		AuthService:    authService,
		MembersService: membersService,
		Availability:   availabilityService,
		Bookings:       bookingsService,
		Circulars:      circularsService,
		GoverningBody:  governingBodyService,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
