package manage

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/hacchu-app/hacchu/internal/document"
	"github.com/hacchu-app/hacchu/internal/export"
	"github.com/hacchu-app/hacchu/internal/order"
	"github.com/hacchu-app/hacchu/internal/platform/kv"
	"github.com/hacchu-app/hacchu/internal/query"
)

var testNow = time.Date(2025, 9, 15, 12, 0, 0, 0, time.UTC)

func newManageTest(t *testing.T) (http.Handler, *order.Repository) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := kv.NewFileStore(filepath.Join(t.TempDir(), "orders.json"))
	require.NoError(t, err)
	repo := order.NewRepository(store, logger)

	h := NewHandler(logger, repo, document.NewBuilder(nil, ""), export.NewExporter(""))
	h.now = func() time.Time { return testNow }

	r := chi.NewRouter()
	r.Route("/manage", h.MountRoutes)
	return r, repo
}

func seedOrders(t *testing.T, repo *order.Repository) []order.Order {
	t.Helper()
	seed := []order.Order{
		{ID: "PO-20250901-001", OrderDate: "2025-09-01", SupplierName: "田中建装",
			Items: []order.LineItem{{ProjectLabel: "外壁", Name: "下塗り", Quantity: 2, UnitPrice: 500}}},
		{ID: "PO-20250810-002", OrderDate: "2025-08-10", SupplierName: "鈴木工務店",
			Items: []order.LineItem{{ProjectLabel: "屋根", Name: "上塗り", Quantity: 1, UnitPrice: 3000}}},
	}
	for i := range seed {
		seed[i].Recalculate()
	}
	require.NoError(t, repo.SaveAll(t.Context(), seed))
	return seed
}

func TestListReturnsFilteredOrdersWithStats(t *testing.T) {
	srv, repo := newManageTest(t)
	seedOrders(t, repo)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/manage/orders?mode=thisMonth", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Orders        []order.Order `json:"orders"`
		Stats         query.Stats   `json:"stats"`
		SelectedMonth string        `json:"selectedMonth"`
		MonthLabel    string        `json:"monthLabel"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Orders, 1)
	require.Equal(t, "PO-20250901-001", body.Orders[0].ID)

	// stats cover the whole collection, not the filtered view
	require.Equal(t, 2, body.Stats.TotalCount)
	require.Equal(t, 4000.0, body.Stats.TotalAmount)
	require.Equal(t, "2025-09", body.SelectedMonth)
	require.Equal(t, "2025年9月", body.MonthLabel)
}

func TestListTextSearch(t *testing.T) {
	srv, repo := newManageTest(t)
	seedOrders(t, repo)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/manage/orders?query=鈴木&mode=all", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Orders []order.Order `json:"orders"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Orders, 1)
	require.Equal(t, "PO-20250810-002", body.Orders[0].ID)
}

func TestGetAndDeleteOrder(t *testing.T) {
	srv, repo := newManageTest(t)
	seedOrders(t, repo)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/manage/orders/PO-20250901-001", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/manage/orders/PO-20250901-001", nil))
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/manage/orders/PO-20250901-001", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	stored, err := repo.Load(t.Context())
	require.NoError(t, err)
	require.Len(t, stored, 1)
}

func TestClearEmptiesCollection(t *testing.T) {
	srv, repo := newManageTest(t)
	seedOrders(t, repo)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/manage/orders", nil))
	require.Equal(t, http.StatusNoContent, rec.Code)

	stored, err := repo.Load(t.Context())
	require.NoError(t, err)
	require.Empty(t, stored)
}

func TestDocumentEndpointAssemblesOrder(t *testing.T) {
	srv, repo := newManageTest(t)
	seedOrders(t, repo)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/manage/orders/PO-20250901-001/document", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var doc document.Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	require.Equal(t, "PO-20250901-001", doc.OrderID)
	require.Equal(t, "¥1,100", doc.Totals.Total)
}

func TestPDFEndpointStreamsDownload(t *testing.T) {
	srv, repo := newManageTest(t)
	seedOrders(t, repo)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/manage/orders/PO-20250901-001/pdf", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	require.True(t, strings.HasPrefix(rec.Body.String(), "%PDF-"))
}

func TestExportDownloadHonorsWindow(t *testing.T) {
	srv, repo := newManageTest(t)
	seedOrders(t, repo)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/manage/export?format=csv&mode=thisMonth", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")

	body := rec.Body.String()
	require.Contains(t, body, "田中建装")
	require.NotContains(t, body, "鈴木工務店")
}

func TestExportUnknownFormatIsBadRequest(t *testing.T) {
	srv, repo := newManageTest(t)
	seedOrders(t, repo)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/manage/export?format=xml", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportEmptyPDFIsConflict(t *testing.T) {
	srv, _ := newManageTest(t)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/manage/export?format=pdf&mode=all", nil))
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestImportReplacesCollection(t *testing.T) {
	srv, repo := newManageTest(t)
	seedOrders(t, repo)

	payload := `{"orders":[{"id":"PO-20250102-009","orderDate":"2025-01-02","supplierName":"高橋板金",
		"items":[{"projectName":"板金","name":"雨樋交換","quantity":1,"unitPrice":20000}]}]}`
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/manage/import", strings.NewReader(payload)))
	require.Equal(t, http.StatusOK, rec.Code)

	stored, err := repo.Load(t.Context())
	require.NoError(t, err)
	require.Len(t, stored, 1)
	require.Equal(t, "PO-20250102-009", stored[0].ID)
	require.Equal(t, 22000.0, stored[0].Total)
}

func TestImportRoundTripsExportedArtifact(t *testing.T) {
	srv, repo := newManageTest(t)
	seeded := seedOrders(t, repo)

	// download the JSON backup
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/manage/export?format=json&mode=all", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	artifact := rec.Body.Bytes()

	// wipe, then feed the artifact straight back
	require.NoError(t, repo.Clear(t.Context()))

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/manage/import", bytes.NewReader(artifact)))
	require.Equal(t, http.StatusOK, rec.Code)

	stored, err := repo.Load(t.Context())
	require.NoError(t, err)
	require.Len(t, stored, len(seeded))
	require.Equal(t, seeded[0].ID, stored[0].ID)
	require.Equal(t, seeded[0].Total, stored[0].Total)
}

func TestMonthNavigation(t *testing.T) {
	srv, _ := newManageTest(t)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/manage/months?month=2025-01&step=-1", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "2024-12", body["month"])
	require.Equal(t, "2024年12月", body["label"])

	// no month parameter starts from the current month
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/manage/months", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "2025-09", body["month"])

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/manage/months?month=bogus", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
