package order

import (
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

	"github.com/hacchu-app/hacchu/internal/platform/kv"
)

type fakeDocs struct{}

func (fakeDocs) BuildJSON(o Order) (any, error) { return map[string]string{"orderId": o.ID}, nil }
func (fakeDocs) BuildHTML(o Order) ([]byte, error) {
	return []byte("<html>" + o.SupplierName + "</html>"), nil
}
func (fakeDocs) BuildPDF(o Order) ([]byte, error) { return []byte("%PDF-fake"), nil }

func newHandlerTest(t *testing.T) (*Handler, *Repository) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := kv.NewFileStore(filepath.Join(t.TempDir(), "orders.json"))
	require.NoError(t, err)
	repo := NewRepository(store, logger)
	h := NewHandler(logger, repo, fakeDocs{}, CompanyDefaults{
		Name: "株式会社サンプル塗装", Address: "東京都渋谷区2-2-2",
		Phone: "03-1234-5678", Email: "info@example.co.jp",
	})
	h.now = func() time.Time { return time.Date(2025, 9, 15, 12, 0, 0, 0, time.UTC) }
	return h, repo
}

func mountOrderRoutes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Route("/orders", h.MountRoutes)
	return r
}

func validDraftBody() string {
	return `{
		"orderDate": "2025-09-01",
		"staffMember": "山田太郎",
		"supplierName": "田中建装",
		"supplierAddress": "東京都新宿区1-1-1",
		"paymentTerms": "月末締め翌月末払い",
		"rows": [
			{"projectName": "外壁", "name": "下塗り", "quantity": "2", "unit": "缶", "unitPrice": "500"}
		]
	}`
}

func TestHandlerPaintingPresetHasBlankQuantities(t *testing.T) {
	h, _ := newHandlerTest(t)
	srv := mountOrderRoutes(h)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders/presets/painting", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Rows []RowInput `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Rows, len(PaintingPreset()))
	for _, row := range body.Rows {
		require.Empty(t, row.Quantity)
	}
}

func TestHandlerPreviewNeverBlocks(t *testing.T) {
	h, _ := newHandlerTest(t)
	srv := mountOrderRoutes(h)

	// an almost empty draft still previews
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/orders/preview", strings.NewReader(`{"rows":[]}`)))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Order Order `json:"order"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	// company defaults filled in
	require.Equal(t, "株式会社サンプル塗装", body.Order.CompanyName)
}

func TestHandlerSaveRejectsIncompleteOrder(t *testing.T) {
	h, repo := newHandlerTest(t)
	srv := mountOrderRoutes(h)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/orders/", strings.NewReader(`{"rows":[]}`)))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body struct {
		Errors []FieldError `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(t, body.Errors)

	stored, err := repo.Load(t.Context())
	require.NoError(t, err)
	require.Empty(t, stored)
}

func TestHandlerSavePersistsValidOrder(t *testing.T) {
	h, repo := newHandlerTest(t)
	srv := mountOrderRoutes(h)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/orders/", strings.NewReader(validDraftBody())))
	require.Equal(t, http.StatusCreated, rec.Code)

	var saved Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &saved))
	require.True(t, strings.HasPrefix(saved.ID, "PO-20250915-"))
	require.Equal(t, 1000.0, saved.Subtotal)
	require.Equal(t, 1100.0, saved.Total)

	stored, err := repo.Load(t.Context())
	require.NoError(t, err)
	require.Len(t, stored, 1)
	require.Equal(t, saved.ID, stored[0].ID)
}

func TestHandlerSaveRejectsMalformedJSON(t *testing.T) {
	h, _ := newHandlerTest(t)
	srv := mountOrderRoutes(h)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/orders/", strings.NewReader("{broken")))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlerPreviewPDFIsDownload(t *testing.T) {
	h, _ := newHandlerTest(t)
	srv := mountOrderRoutes(h)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/orders/preview/pdf", strings.NewReader(validDraftBody())))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	require.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
	require.Equal(t, "%PDF-fake", rec.Body.String())
}

func TestHandlerCompanyDefaults(t *testing.T) {
	h, _ := newHandlerTest(t)
	srv := mountOrderRoutes(h)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders/defaults", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "info@example.co.jp", body["companyEmail"])
}
