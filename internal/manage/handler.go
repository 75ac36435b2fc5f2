// Package manage serves the management surface: the filterable order list
// with its stats strip, per-order documents, deletion and the export
// downloads.
package manage

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hacchu-app/hacchu/internal/export"
	"github.com/hacchu-app/hacchu/internal/order"
	"github.com/hacchu-app/hacchu/internal/platform/httpx"
	"github.com/hacchu-app/hacchu/internal/query"
)

// Handler manages the stored order collection.
type Handler struct {
	logger   *slog.Logger
	repo     *order.Repository
	docs     order.DocumentBuilder
	exporter *export.Exporter
	now      func() time.Time
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, repo *order.Repository, docs order.DocumentBuilder, exporter *export.Exporter) *Handler {
	return &Handler{logger: logger, repo: repo, docs: docs, exporter: exporter, now: time.Now}
}

// MountRoutes registers management routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/orders", h.handleList)
	r.Get("/orders/{id}", h.handleGet)
	r.Delete("/orders/{id}", h.handleDelete)
	r.Delete("/orders", h.handleClear)
	r.Get("/orders/{id}/document", h.handleDocument)
	r.Get("/orders/{id}/pdf", h.handlePDF)
	r.Get("/export", h.handleExport)
	r.Post("/import", h.handleImport)
	r.Get("/months", h.handleMonths)
}

// handleList applies the text and calendar filters and returns the matching
// orders together with the collection stats.
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	orders, err := h.repo.Load(r.Context())
	if err != nil {
		h.logger.Error("load orders", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "発注書を読み込めませんでした", "")
		return
	}

	now := h.now()
	filter := h.filterFromQuery(r, now)
	matched := filter.Apply(orders)

	selected := filter.Selected
	if selected.IsZero() {
		selected = query.MonthOf(now)
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"orders":        matched,
		"stats":         query.Collect(orders, selected, now),
		"selectedMonth": selected.String(),
		"monthLabel":    selected.Label(),
	})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	o, ok := h.find(w, r)
	if !ok {
		return
	}
	httpx.JSON(w, http.StatusOK, o)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.repo.DeleteByID(r.Context(), id); err != nil {
		if errors.Is(err, order.ErrNotFound) {
			httpx.Problem(w, http.StatusNotFound, "発注書が見つかりません", id)
			return
		}
		h.logger.Error("delete order", slog.Any("error", err), slog.String("id", id))
		httpx.Problem(w, http.StatusInternalServerError, "発注書を削除できませんでした", "")
		return
	}
	h.logger.Info("order deleted", slog.String("id", id))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleClear(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.Clear(r.Context()); err != nil {
		h.logger.Error("clear orders", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "発注書を削除できませんでした", "")
		return
	}
	h.logger.Info("order collection cleared")
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleDocument(w http.ResponseWriter, r *http.Request) {
	o, ok := h.find(w, r)
	if !ok {
		return
	}
	doc, err := h.docs.BuildJSON(o)
	if err != nil {
		h.logger.Error("assemble document", slog.Any("error", err), slog.String("id", o.ID))
		httpx.Problem(w, http.StatusInternalServerError, "発注書を作成できませんでした", "")
		return
	}
	httpx.JSON(w, http.StatusOK, doc)
}

func (h *Handler) handlePDF(w http.ResponseWriter, r *http.Request) {
	o, ok := h.find(w, r)
	if !ok {
		return
	}
	out, err := h.docs.BuildPDF(o)
	if err != nil {
		h.logger.Error("render pdf", slog.Any("error", err), slog.String("id", o.ID))
		httpx.Problem(w, http.StatusInternalServerError, "PDFを作成できませんでした", "")
		return
	}
	httpx.Attachment(w, "発注書_"+o.ID+".pdf", "application/pdf", out)
}

// handleExport filters the collection by the requested window and streams the
// artifact as a download.
func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	format := export.Format(r.URL.Query().Get("format"))
	if format == "" {
		format = export.FormatJSON
	}

	orders, err := h.repo.Load(r.Context())
	if err != nil {
		h.logger.Error("load orders", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "発注書を読み込めませんでした", "")
		return
	}

	filter := h.filterFromQuery(r, h.now())
	matched := filter.Apply(orders)

	art, err := h.exporter.Export(matched, format, export.Window{Mode: filter.Mode, Selected: filter.Selected})
	switch {
	case errors.Is(err, export.ErrNoData):
		httpx.Problem(w, http.StatusConflict, "エクスポートするデータがありません", "")
		return
	case errors.Is(err, export.ErrUnknownFormat):
		httpx.Problem(w, http.StatusBadRequest, "エクスポート形式が正しくありません", string(format))
		return
	case err != nil:
		h.logger.Error("export orders", slog.Any("error", err), slog.String("format", string(format)))
		httpx.Problem(w, http.StatusInternalServerError, "エクスポートに失敗しました", "")
		return
	}
	h.logger.Info("orders exported",
		slog.String("format", string(format)), slog.Int("count", len(matched)), slog.String("filename", art.Filename))
	httpx.Attachment(w, art.Filename, art.ContentType, art.Data)
}

// handleImport replaces the collection with a previously exported JSON
// backup. The downloaded artifact is a bare array; a wrapped
// {"orders": [...]} body is accepted as well.
func (h *Handler) handleImport(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "リクエストの形式が正しくありません", err.Error())
		return
	}
	orders, err := export.Import(raw)
	if err != nil {
		var body struct {
			Orders []order.Order `json:"orders"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			httpx.Problem(w, http.StatusBadRequest, "リクエストの形式が正しくありません", err.Error())
			return
		}
		orders = body.Orders
		for i := range orders {
			orders[i].Recalculate()
		}
	}
	if err := h.repo.SaveAll(r.Context(), orders); err != nil {
		h.logger.Error("import orders", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "インポートに失敗しました", "")
		return
	}
	h.logger.Info("orders imported", slog.Int("count", len(orders)))
	httpx.JSON(w, http.StatusOK, map[string]any{"count": len(orders)})
}

// handleMonths steps the month navigation: ?month=2025-09&step=-1 yields the
// previous month with its display label.
func (h *Handler) handleMonths(w http.ResponseWriter, r *http.Request) {
	m := query.MonthOf(h.now())
	if raw := r.URL.Query().Get("month"); raw != "" {
		parsed, err := query.ParseMonth(raw)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "月の形式が正しくありません", raw)
			return
		}
		m = parsed
	}
	switch r.URL.Query().Get("step") {
	case "", "0":
	case "1":
		m = m.Step(1)
	case "-1":
		m = m.Step(-1)
	default:
		httpx.Problem(w, http.StatusBadRequest, "stepは-1, 0, 1のいずれかを指定してください", "")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"month": m.String(), "label": m.Label()})
}

func (h *Handler) find(w http.ResponseWriter, r *http.Request) (order.Order, bool) {
	id := chi.URLParam(r, "id")
	o, err := h.repo.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			httpx.Problem(w, http.StatusNotFound, "発注書が見つかりません", id)
			return order.Order{}, false
		}
		h.logger.Error("load order", slog.Any("error", err), slog.String("id", id))
		httpx.Problem(w, http.StatusInternalServerError, "発注書を読み込めませんでした", "")
		return order.Order{}, false
	}
	return o, true
}

func (h *Handler) filterFromQuery(r *http.Request, now time.Time) query.Filter {
	f := query.Filter{
		Query: r.URL.Query().Get("query"),
		Mode:  query.Mode(r.URL.Query().Get("mode")),
		Now:   now,
	}
	if raw := r.URL.Query().Get("month"); raw != "" {
		if m, err := query.ParseMonth(raw); err == nil {
			f.Selected = m
		}
	}
	return f
}
