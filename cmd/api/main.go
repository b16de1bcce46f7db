package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/maintenance-service/internal/api/http"
	"github.com/spec-kit/maintenance-service/internal/api/http/handlers"
	"github.com/spec-kit/maintenance-service/internal/auth"
	"github.com/spec-kit/maintenance-service/internal/catalog"
	"github.com/spec-kit/maintenance-service/internal/config"
	"github.com/spec-kit/maintenance-service/internal/events"
	"github.com/spec-kit/maintenance-service/internal/observability"
	"github.com/spec-kit/maintenance-service/internal/persistence"
	"github.com/spec-kit/maintenance-service/internal/repository"
	"github.com/spec-kit/maintenance-service/internal/service"
	"github.com/spec-kit/maintenance-service/internal/store"
	"github.com/spec-kit/maintenance-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()
	pool := pg.PoolHandle()

	var techRepo repository.TechnicianRepository

	ticketStore := store.NewTicketStore(nil, logger)
	directory := store.NewTechnicianDirectory(nil)
	planStore := store.NewPlanStore(nil, nil, nil, nil, logger)
	rules := catalog.NewStaticProvider(catalog.Default())

	if pool != nil {
		tickets := repository.NewTicketRepository(pool)
		technicians := repository.NewTechnicianRepository(pool)
		plans := repository.NewPlanRepository(pool, logger)
		catalogRepo := repository.NewCatalogRepository(pool)

		techRepo = technicians
		ticketStore = store.NewTicketStore(tickets, logger)
		planStore = store.NewPlanStore(nil, nil, nil, plans, logger)

		loaded, err := catalogRepo.LoadCatalog(ctx, cfg.Engine.FallbackDays())
		if err != nil {
			logger.Fatal("failed to load rule catalog", zap.Error(err))
		}
		if len(loaded.RoutingRules) > 0 || len(loaded.Categories) > 0 {
			rules = catalog.NewStaticProvider(loaded)
		} else {
			logger.Warn("catalog tables empty; using stock catalog")
		}

		if err := hydrate(ctx, ticketStore, directory, planStore, tickets, technicians, plans, logger); err != nil {
			logger.Fatal("failed to hydrate from postgres", zap.Error(err))
		}
	}

	if len(directory.List()) == 0 {
		seedWorld(ctx, directory, planStore, techRepo, cfg.Auth, logger)
	}

	dispatcher := events.NewDispatcher()

	ticketService := service.NewTicketService(service.TicketDependencies{
		Store:      ticketStore,
		Directory:  directory,
		Rules:      rules,
		Dispatcher: dispatcher,
		EngineCfg:  cfg.Engine,
		Logger:     logger,
	})
	sweepService := service.NewSweepService(ticketStore, dispatcher, metrics, logger)
	maintenanceService := service.NewMaintenanceService(planStore, ticketService, dispatcher, metrics, logger)
	authService := service.NewAuthService(directory, techRepo, cfg.Auth, logger)

	notificationService := service.NewNotificationService(dispatcher, redis, logger, cfg.Notification)
	notificationService.RegisterHandlers()

	authMiddleware := auth.NewMiddleware(authService.TokenManager(), directory)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(redis, metrics),
		Auth:           handlers.NewAuthHandler(authService),
		Tickets:        handlers.NewTicketsHandler(ticketService, directory),
		Technicians:    handlers.NewTechniciansHandler(directory, ticketStore),
		Maintenance:    handlers.NewMaintenanceHandler(maintenanceService, sweepService, planStore, directory),
		AuthMiddleware: authMiddleware,
	})

	engineWorker := worker.NewEngineWorker(sweepService, maintenanceService, cfg.Engine.SweepInterval(), logger)
	go engineWorker.Start(ctx)

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	cancel()
	_ = app.Shutdown()
}

// hydrate replaces the in-memory stores with the persisted state.
func hydrate(
	ctx context.Context,
	ticketStore *store.TicketStore,
	directory *store.TechnicianDirectory,
	planStore *store.PlanStore,
	tickets repository.TicketRepository,
	technicians repository.TechnicianRepository,
	plans repository.PlanRepository,
	logger *zap.Logger,
) error {
	persisted, err := tickets.LoadAll(ctx)
	if err != nil {
		return err
	}
	if err := ticketStore.Load(persisted); err != nil {
		return err
	}

	roster, err := technicians.LoadAll(ctx)
	if err != nil {
		return err
	}
	directory.Replace(roster)

	maintenancePlans, err := plans.LoadPlans(ctx)
	if err != nil {
		return err
	}
	assets, err := plans.LoadAssets(ctx)
	if err != nil {
		return err
	}
	locations, err := plans.LoadLocations(ctx)
	if err != nil {
		return err
	}
	planStore.Replace(maintenancePlans, assets, locations)

	logger.Info("hydrated from postgres",
		zap.Int("tickets", len(persisted)),
		zap.Int("technicians", len(roster)),
		zap.Int("plans", len(maintenancePlans)))
	return nil
}

// seedWorld fills an empty roster and plan store with the stock data so the
// service is usable out of the box.
func seedWorld(
	ctx context.Context,
	directory *store.TechnicianDirectory,
	planStore *store.PlanStore,
	techRepo repository.TechnicianRepository,
	authCfg config.AuthConfig,
	logger *zap.Logger,
) {
	now := time.Now().UTC()
	password := os.Getenv("SEED_TECHNICIAN_PASSWORD")
	if password == "" {
		password = "changeme"
	}
	hash, err := auth.HashPassword(password, authCfg.BcryptCost)
	if err != nil {
		logger.Fatal("failed to hash seed password", zap.Error(err))
	}

	roster := store.SeedTechnicians(now)
	for i := range roster {
		roster[i].PasswordHash = hash
	}
	directory.Replace(roster)

	if techRepo != nil {
		for i := range roster {
			if err := techRepo.SaveTechnician(ctx, &roster[i]); err != nil {
				logger.Warn("seed technician write-through failed",
					zap.String("technician_id", roster[i].ID), zap.Error(err))
			}
		}
	}

	if len(planStore.Plans()) == 0 {
		planStore.Replace(store.SeedPlans(), store.SeedAssets(now), store.SeedLocations())
	}
	logger.Info("seeded stock roster",
		zap.Int("technicians", len(roster)))
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
