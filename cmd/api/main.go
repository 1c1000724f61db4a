package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/angelmondragon/urbanthreads-backend/api/routes"
	"github.com/angelmondragon/urbanthreads-backend/internal/auth"
	"github.com/angelmondragon/urbanthreads-backend/internal/cart"
	"github.com/angelmondragon/urbanthreads-backend/internal/categories"
	"github.com/angelmondragon/urbanthreads-backend/internal/invoices"
	"github.com/angelmondragon/urbanthreads-backend/internal/orders"
	product "github.com/angelmondragon/urbanthreads-backend/internal/products"
	"github.com/angelmondragon/urbanthreads-backend/internal/users"
	"github.com/angelmondragon/urbanthreads-backend/internal/wishlist"
	"github.com/angelmondragon/urbanthreads-backend/pkg/auth/session"
	"github.com/angelmondragon/urbanthreads-backend/pkg/config"
	"github.com/angelmondragon/urbanthreads-backend/pkg/db"
	"github.com/angelmondragon/urbanthreads-backend/pkg/logger"
	"github.com/angelmondragon/urbanthreads-backend/pkg/metrics"
	"github.com/angelmondragon/urbanthreads-backend/pkg/migrate"
	"github.com/angelmondragon/urbanthreads-backend/pkg/redis"
	"github.com/angelmondragon/urbanthreads-backend/pkg/security"
)

const shutdownTimeout = 15 * time.Second

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
		ServiceName: cfg.App.Name,
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
		WarnStack:   cfg.App.LogWarnStack,
	})

	if err := run(cfg, logg); err != nil {
		logg.Error(context.Background(), "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logg *logger.Logger) (err error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, dbClient.Close())
	}()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		return err
	}

	deps := routes.Deps{
		Config: cfg,
		Logger: logg,
		DB:     dbClient,
	}

	var store session.Store
	if cfg.FeatureFlags.SkipRedis {
		logg.Warn(ctx, "redis disabled; sessions, rate limits and idempotency are unavailable")
	} else {
		redisClient, redisErr := redis.New(ctx, cfg.Redis, logg)
		if redisErr != nil {
			return redisErr
		}
		defer func() {
			err = multierr.Append(err, redisClient.Close())
		}()
		store = redisClient
		deps.Redis = redisClient
		deps.RateLimiter = redisClient
		deps.Idempotency = redisClient
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	deps.Gatherer = reg
	deps.HTTPMetrics = metrics.NewHTTPMetrics(reg)

	if err := wireServices(&deps, cfg, logg, dbClient, store, metrics.NewOrderMetrics(reg)); err != nil {
		return err
	}

	addr := ":" + cfg.App.Port
	logCtx := logg.WithFields(ctx, map[string]any{"env": cfg.App.Env, "addr": addr})
	logg.Info(logCtx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		Handler:           routes.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	logg.Info(logCtx, "shutting down api server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func wireServices(deps *routes.Deps, cfg *config.Config, logg *logger.Logger, dbClient *db.Client, store session.Store, orderMetrics *metrics.OrderMetrics) error {
	conn := dbClient.DB()
	catalogRepo := product.NewRepository(conn)
	cartRepo := cart.NewRepository(conn)
	orderRepo := orders.NewRepository(conn)

	if store != nil {
		sessions, err := session.NewManager(store, cfg.JWT)
		if err != nil {
			return err
		}
		deps.Sessions = sessions
		deps.Auth, err = auth.NewService(auth.ServiceParams{
			UserRepo:       users.NewRepository(conn),
			SessionManager: sessions,
			Hasher:         security.NewHasher(cfg.Password),
			JWTConfig:      cfg.JWT,
		})
		if err != nil {
			return err
		}
	}

	var err error
	if deps.Categories, err = categories.NewService(categories.NewRepository(conn)); err != nil {
		return err
	}
	if deps.Products, err = product.NewService(catalogRepo); err != nil {
		return err
	}
	if deps.Cart, err = cart.NewService(cartRepo, catalogRepo); err != nil {
		return err
	}
	if deps.Wishlist, err = wishlist.NewService(wishlist.ServiceParams{
		WishlistRepo: wishlist.NewRepository(conn),
		ProductRepo:  catalogRepo,
		CartRepo:     cartRepo,
		Tx:           dbClient,
	}); err != nil {
		return err
	}
	if deps.Placement, err = orders.NewPlacementService(orders.PlacementParams{
		Transactor: dbClient,
		Stores:     orders.BindStores(orderRepo, cartRepo, catalogRepo),
		Logger:     logg,
		Metrics:    orderMetrics,
	}); err != nil {
		return err
	}
	if deps.Orders, err = orders.NewQueryService(orderRepo); err != nil {
		return err
	}

	invoiceStore, err := invoices.NewLocalStore(cfg.Invoice.Dir)
	if err != nil {
		return err
	}
	deps.Invoices, err = invoices.NewService(invoices.ServiceParams{
		Orders:   deps.Orders,
		Recorder: orderRepo,
		Store:    invoiceStore,
		Renderer: invoices.NewRenderer(invoices.Branding{CompanyName: cfg.Invoice.CompanyName, Tagline: cfg.Invoice.Tagline}),
		Logger:   logg,
	})
	return err
}
