package app

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hacchu-app/hacchu/internal/document"
	"github.com/hacchu-app/hacchu/internal/export"
	"github.com/hacchu-app/hacchu/internal/manage"
	"github.com/hacchu-app/hacchu/internal/order"
	"github.com/hacchu-app/hacchu/internal/platform/kv"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:8735", cfg.AppAddr)
	require.Equal(t, StoreBackendFile, cfg.StoreBackend)
	require.Equal(t, "purchaseOrders", cfg.StoreKey)
	require.False(t, cfg.IsProduction())
}

func TestLoadConfigRejectsUnknownBackend(t *testing.T) {
	t.Setenv("STORE_BACKEND", "localstorage")
	_, err := LoadConfig()
	require.Error(t, err)
}

func TestLoadConfigParsesStampRegistry(t *testing.T) {
	t.Setenv("STAMP_REGISTRY", "山田太郎:stamps/yamada.png,佐藤花子:stamps/sato.png")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "stamps/yamada.png", cfg.StampRegistry["山田太郎"])
	require.Equal(t, "stamps/sato.png", cfg.StampRegistry["佐藤花子"])
}

func TestRouterServesHealthAndMountedRoutes(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := kv.NewFileStore(filepath.Join(t.TempDir(), "orders.json"))
	require.NoError(t, err)
	repo := order.NewRepository(store, logger)
	docs := document.NewBuilder(nil, "")

	router := NewRouter(RouterParams{
		Logger:        logger,
		Config:        &Config{AppEnv: "development"},
		OrderHandler:  order.NewHandler(logger, repo, docs, order.CompanyDefaults{}),
		ManageHandler: manage.NewHandler(logger, repo, docs, export.NewExporter("")),
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders/presets/painting", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/manage/orders", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}
