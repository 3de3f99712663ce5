package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	authsqlite "github.com/jcmexdev/storefront/internal/auth/adapters/sqlite"
	authapp "github.com/jcmexdev/storefront/internal/auth/app"
	cartsqlite "github.com/jcmexdev/storefront/internal/cart/adapters/sqlite"
	cartapp "github.com/jcmexdev/storefront/internal/cart/app"
	catalogsqlite "github.com/jcmexdev/storefront/internal/catalog/adapters/sqlite"
	catalogapp "github.com/jcmexdev/storefront/internal/catalog/app"
	ordersqlite "github.com/jcmexdev/storefront/internal/order/adapters/sqlite"
	orderapp "github.com/jcmexdev/storefront/internal/order/app"
	logsqlite "github.com/jcmexdev/storefront/internal/order/placementlog/sqlite"
	"github.com/jcmexdev/storefront/internal/pkg/cache"
	"github.com/jcmexdev/storefront/internal/pkg/config"
	"github.com/jcmexdev/storefront/internal/pkg/interceptors"
	"github.com/jcmexdev/storefront/internal/pkg/sqlitedb"
	"github.com/jcmexdev/storefront/internal/pkg/telemetry"
	"github.com/jcmexdev/storefront/internal/storefront/httpx"
)

const serviceName = "storefront"

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	telemetry.InitLogger(os.Stdout, telemetry.LoggerOptions{
		Service: cfg.Tracing.ServiceName,
		Env:     string(cfg.AppEnv),
		Level:   cfg.LogLevel,
	})
	decimal.MarshalJSONWithoutQuotes = true

	if err := run(cfg); err != nil {
		slog.Error("storefront stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := telemetry.SetupTracer(ctx, cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, string(cfg.AppEnv))
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTracer(shutdownCtx); err != nil {
			slog.Error("tracer shutdown error", "error", err)
		}
	}()

	db, err := sqlitedb.Open(ctx, sqlitedb.Config{Path: cfg.Database.Path, BusyTimeout: cfg.Database.BusyTimeout})
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}()

	appCache := cache.New(ctx, cfg.Redis.Addr, serviceName)
	defer appCache.Close()

	auth, err := authapp.NewService(authsqlite.NewUserRepo(db), cfg.Auth.BcryptCost)
	if err != nil {
		return err
	}
	handler := httpx.NewHandler(
		catalogapp.NewService(catalogsqlite.NewProductRepo(db), appCache, cfg.Redis.ProductCacheTTL),
		cartapp.NewService(cartsqlite.NewCartRepo(db)),
		orderapp.NewService(ordersqlite.NewOrderRepo(db), logsqlite.NewRepository(db), appCache, cfg.Redis.IdempotencyTTL),
		auth,
	)

	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: httpx.NewRouter(handler),
	}

	healthServer := health.NewServer()
	grpcServer := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.UnaryInterceptor(interceptors.TraceServerInterceptor()),
	)
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus(serviceName, healthpb.HealthCheckResponse_SERVING)

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("storefront HTTP running", "addr", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		slog.Info("storefront gRPC health running", "addr", cfg.GRPCAddr)
		return grpcServer.Serve(lis)
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down")
		healthServer.Shutdown()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		err := httpServer.Shutdown(shutdownCtx)
		grpcServer.GracefulStop()
		return err
	})

	return g.Wait()
}
