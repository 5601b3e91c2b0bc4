// Package app wires the catalog service together.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/abgdnv/missil/internal/blob"
	"github.com/abgdnv/missil/internal/catalog"
	"github.com/abgdnv/missil/internal/cms"
	"github.com/abgdnv/missil/internal/config"
	"github.com/abgdnv/missil/internal/inquiry"
	"github.com/abgdnv/missil/internal/transport/rest"
	"github.com/abgdnv/missil/pkg/bootstrap"
	"github.com/abgdnv/missil/pkg/server"
	"github.com/go-chi/chi/v5"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
)

const defaultInboxSize = 100

type Dependencies struct {
	Catalog *catalog.Catalog
	Store   *cms.Store
	Inbox   *inquiry.Service
	Health  *health.Server
	Shop    rest.ShopOptions
	Logger  *slog.Logger
}

// OpenBlobStore builds the blob backend selected by cfg.Driver.
// The returned cleanup releases the backend's resources and is never nil.
func OpenBlobStore(ctx context.Context, cfg config.StorageConfig, logger *slog.Logger) (blob.Store, func(), error) {
	noop := func() {}
	switch cfg.Driver {
	case "", config.StorageMemory:
		logger.Warn("CMS products are kept in memory only and are lost on restart")
		return blob.NewMemoryStore(), noop, nil
	case config.StorageFile:
		fs, err := blob.NewFileStore(cfg.Dir)
		if err != nil {
			return nil, noop, err
		}
		return fs, noop, nil
	case config.StoragePostgres:
		if err := blob.Migrate(cfg.Database.URL); err != nil {
			return nil, noop, fmt.Errorf("failed to migrate blob database: %w", err)
		}
		dbPool, err := bootstrap.NewDbPool(ctx, cfg.Database.URL, cfg.Database.Timeout)
		if err != nil {
			return nil, noop, err
		}
		logger.Info("Successfully connected to the database!")
		store := blob.NewBreakerStore("cms-blob-store", blob.NewPgStore(dbPool), cfg.CircuitBreaker)
		return store, dbPool.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

func SetupDependencies(ctx context.Context, cfg *config.Config, blobs blob.Store, logger *slog.Logger) (*Dependencies, error) {
	c, err := catalog.LoadFile(cfg.Catalog.File)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	c = c.WithLocale(cfg.Catalog.LocaleTag())

	key := cfg.Storage.Key
	if key == "" {
		key = cms.DefaultKey
	}
	inboxSize := cfg.Inquiry.InboxSize
	if inboxSize == 0 {
		inboxSize = defaultInboxSize
	}

	return &Dependencies{
		Catalog: c,
		Store:   cms.NewStore(ctx, blobs, logger, cms.WithKey(key)),
		Inbox:   inquiry.NewService(inboxSize, logger),
		Health:  health.NewServer(),
		Shop:    shopOptions(cfg.Catalog),
		Logger:  logger,
	}, nil
}

func shopOptions(cfg config.CatalogConfig) rest.ShopOptions {
	opts := rest.ShopOptions{
		PriceFilter:  rest.PriceFilterRange,
		DefaultRange: catalog.DefaultPriceRange,
	}
	if cfg.PriceFilter == config.PriceFilterBucket {
		opts.PriceFilter = rest.PriceFilterBucket
	}
	if cfg.PriceMax != 0 {
		opts.DefaultRange = catalog.PriceRange{Min: cfg.PriceMin, Max: cfg.PriceMax}
	}
	return opts
}

// SetupHttpHandler builds the router with every route and middleware.
func SetupHttpHandler(deps *Dependencies) http.Handler {
	mux := server.NewChiRouter(deps.Logger)
	wireRoutes(mux, deps)
	return mux
}

func wireRoutes(mux *chi.Mux, deps *Dependencies) {
	handler := rest.NewHandler(deps.Catalog, deps.Store, deps.Inbox, deps.Shop, deps.Logger)
	handler.RegisterRoutes(mux)
}

func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {
	mux := SetupHttpHandler(deps)

	httpCfg := server.HTTPConfig{
		Port:           cfg.HTTPServer.Port,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		ReadTimeout:    cfg.HTTPServer.Timeout.Read,
		WriteTimeout:   cfg.HTTPServer.Timeout.Write,
		IdleTimeout:    cfg.HTTPServer.Timeout.Idle,
		ReadHeader:     cfg.HTTPServer.Timeout.ReadHeader,
	}
	return server.NewHTTPServer(httpCfg, mux)
}

// SetupGrpcServer creates the gRPC server exposing the health service.
func SetupGrpcServer(deps *Dependencies, reflectionEnabled bool) *grpc.Server {
	return server.NewGRPCServer(reflectionEnabled, server.HealthRegistration(deps.Health))
}
