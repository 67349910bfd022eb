package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rogerio-castellano/record-services/internal/config"
	"github.com/rogerio-castellano/record-services/internal/db"
	api "github.com/rogerio-castellano/record-services/internal/http"
	"github.com/rogerio-castellano/record-services/internal/http/ban"
	"github.com/rogerio-castellano/record-services/internal/http/handlers"
	rl "github.com/rogerio-castellano/record-services/internal/http/rate_limiter"
	"github.com/rogerio-castellano/record-services/internal/redissvc"
	"github.com/rogerio-castellano/record-services/internal/repo"
	"github.com/rogerio-castellano/record-services/internal/service"
)

// @title Record Services API
// @version 1.0
// @description Create and fetch users, products, orders and invoices.
// @BasePath /
func main() {
	flags := config.NewFlagSet("recordsvc")
	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: recordsvc --service=<users|products|orders|invoices> [serve|init-db]\n")
		flags.PrintDefaults()
	}

	cfg, err := config.Load(flags, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	command := flags.Arg(0)
	if command == "" {
		command = "serve"
	}

	switch command {
	case "serve":
		err = serve(ctx, cfg, logger)
	case "init-db":
		err = initDB(ctx, cfg)
	default:
		err = fmt.Errorf("unknown command %q", command)
	}
	if err != nil {
		logger.Error("command failed", slog.String("command", command), slog.String("service", cfg.Service), slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func initDB(ctx context.Context, cfg config.Config) error {
	database, dialect, err := db.Connect(ctx, cfg.Database.Options())
	if err != nil {
		return err
	}
	defer database.Close()

	if err := db.Bootstrap(ctx, database, dialect, cfg.Service); err != nil {
		return err
	}
	fmt.Printf("Initialized the %s database.\n", cfg.Service)
	return nil
}

func serve(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	database, dialect, err := db.Connect(ctx, cfg.Database.Options())
	if err != nil {
		return err
	}
	defer database.Close()

	routes, err := recordRoutes(cfg.Service, database, dialect, cfg.Database.QueryTimeout, logger)
	if err != nil {
		return err
	}

	opts := api.RouterOptions{
		Logger:     logger,
		Health:     database,
		TrustProxy: cfg.TrustProxy,
		Routes:     []handlers.Routes{routes},
	}

	if cfg.RateLimit.RPS > 0 {
		opts.Limiter = rl.New(cfg.RateLimit.RPS, cfg.RateLimit.Burst)

		var store ban.Store = ban.NewMemoryStore()
		if cfg.Redis.Addr != "" {
			rs, err := redissvc.Connect(ctx, cfg.Redis.Addr)
			if err != nil {
				return err
			}
			defer rs.Close()
			store = ban.NewRedisStore(rs)
		}
		opts.Bans = ban.NewTracker(store, cfg.RateLimit.MaxStrikes, ban.DefaultWindow, cfg.RateLimit.BanTTL)
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           api.NewRouter(opts),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server running", slog.String("service", cfg.Service), slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info("shutting down", slog.String("service", cfg.Service))
		return srv.Shutdown(shutdownCtx)
	})
	if opts.Limiter != nil {
		g.Go(func() error {
			opts.Limiter.StartVisitorCleanupLoop(gctx, time.Minute)
			return nil
		})
	}

	return g.Wait()
}

// recordRoutes builds the create/get endpoints of the named service on top
// of its SQL repository.
func recordRoutes(name string, database *sql.DB, dialect db.Dialect, timeout time.Duration, logger *slog.Logger) (handlers.Routes, error) {
	switch name {
	case service.Users:
		return handlers.NewRecordHandlers(service.UserResource(repo.NewSQLUserRepository(database, dialect, timeout)), logger), nil
	case service.Products:
		return handlers.NewRecordHandlers(service.ProductResource(repo.NewSQLProductRepository(database, dialect, timeout)), logger), nil
	case service.Orders:
		return handlers.NewRecordHandlers(service.OrderResource(repo.NewSQLOrderRepository(database, dialect, timeout)), logger), nil
	case service.Invoices:
		return handlers.NewRecordHandlers(service.InvoiceResource(repo.NewSQLInvoiceRepository(database, dialect, timeout)), logger), nil
	}
	return nil, fmt.Errorf("unknown service %q", name)
}
