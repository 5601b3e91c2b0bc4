package app

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/abgdnv/missil/internal/blob"
	"github.com/abgdnv/missil/internal/catalog"
	"github.com/abgdnv/missil/internal/cms"
	"github.com/abgdnv/missil/internal/config"
	"github.com/abgdnv/missil/internal/transport/rest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discard = slog.New(slog.DiscardHandler)

func TestOpenBlobStore(t *testing.T) {
	testCases := []struct {
		name    string
		cfg     config.StorageConfig
		wantErr bool
	}{
		{name: "default", cfg: config.StorageConfig{}},
		{name: "memory", cfg: config.StorageConfig{Driver: config.StorageMemory}},
		{name: "file", cfg: config.StorageConfig{Driver: config.StorageFile, Dir: filepath.Join(t.TempDir(), "blobs")}},
		{name: "unknown", cfg: config.StorageConfig{Driver: "s3"}, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// when
			store, cleanup, err := OpenBlobStore(context.Background(), tc.cfg, discard)
			// then
			require.NotNil(t, cleanup)
			defer cleanup()
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NoError(t, store.Save(context.Background(), cms.DefaultKey, []byte("[]")))
		})
	}
}

func TestShopOptions(t *testing.T) {
	assert.Equal(t, rest.ShopOptions{PriceFilter: rest.PriceFilterRange, DefaultRange: catalog.DefaultPriceRange},
		shopOptions(config.CatalogConfig{}))
	assert.Equal(t, rest.ShopOptions{PriceFilter: rest.PriceFilterBucket, DefaultRange: catalog.PriceRange{Min: 100, Max: 900}},
		shopOptions(config.CatalogConfig{PriceFilter: config.PriceFilterBucket, PriceMin: 100, PriceMax: 900}))
}

func TestSetupDependencies(t *testing.T) {
	// given
	ctx := context.Background()
	blobs := blob.NewMemoryStore()
	require.NoError(t, blobs.Save(ctx, "seeded",
		[]byte(`[{"id":"cms_1","name":"Szal","category":"akcesoria","price":"690","images":["a.jpg"]}]`)))
	cfg := &config.Config{}
	cfg.Storage.Key = "seeded"
	cfg.HTTPServer.Port = 8080
	cfg.HTTPServer.Timeout.Read = time.Second

	// when
	deps, err := SetupDependencies(ctx, cfg, blobs, discard)
	require.NoError(t, err)
	handler := SetupHttpHandler(deps)

	// then
	assert.Len(t, deps.Catalog.Products(), 6)
	assert.Len(t, deps.Store.List(), 1)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/admin/products/cms_1", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/products?sort=price-asc", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	srv := SetupHttpServer(deps, cfg)
	assert.Equal(t, ":8080", srv.Addr)
	assert.Equal(t, time.Second, srv.ReadTimeout)

	grpcServer := SetupGrpcServer(deps, true)
	defer grpcServer.Stop()
	info := grpcServer.GetServiceInfo()
	assert.Contains(t, info, "grpc.health.v1.Health")
	assert.Contains(t, info, "grpc.reflection.v1.ServerReflection")
}

func TestSetupDependencies_BadCatalogFile(t *testing.T) {
	// given
	cfg := &config.Config{}
	cfg.Catalog.File = filepath.Join(t.TempDir(), "missing.yaml")
	// when
	_, err := SetupDependencies(context.Background(), cfg, blob.NewMemoryStore(), discard)
	// then
	assert.ErrorContains(t, err, "failed to load catalog")
}
