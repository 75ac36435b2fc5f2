package order

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hacchu-app/hacchu/internal/platform/httpx"
)

// DocumentBuilder assembles a preview/print structure from an order. It is
// satisfied by the document package; the indirection keeps this package free
// of renderer imports.
type DocumentBuilder interface {
	BuildJSON(o Order) (any, error)
	BuildHTML(o Order) ([]byte, error)
	BuildPDF(o Order) ([]byte, error)
}

// Handler serves the authoring surface: draft preview, presets and the
// strict-validated save.
type Handler struct {
	logger   *slog.Logger
	repo     *Repository
	docs     DocumentBuilder
	defaults CompanyDefaults
	now      func() time.Time
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, repo *Repository, docs DocumentBuilder, defaults CompanyDefaults) *Handler {
	return &Handler{logger: logger, repo: repo, docs: docs, defaults: defaults, now: time.Now}
}

// MountRoutes registers authoring routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/presets/painting", h.handlePaintingPreset)
	r.Get("/defaults", h.handleCompanyDefaults)
	r.Post("/preview", h.handlePreview)
	r.Post("/preview/html", h.handlePreviewHTML)
	r.Post("/preview/pdf", h.handlePreviewPDF)
	r.Post("/", h.handleSave)
}

func (h *Handler) handlePaintingPreset(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, map[string]any{"rows": PaintingPreset()})
}

func (h *Handler) handleCompanyDefaults(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, map[string]any{
		"companyName":    h.defaults.Name,
		"companyAddress": h.defaults.Address,
		"companyPhone":   h.defaults.Phone,
		"companyEmail":   h.defaults.Email,
	})
}

// handlePreview renders a draft leniently: placeholder rows are dropped,
// missing fields stay blank, nothing blocks.
func (h *Handler) handlePreview(w http.ResponseWriter, r *http.Request) {
	draft, ok := h.decodeDraft(w, r)
	if !ok {
		return
	}
	doc, err := h.docs.BuildJSON(draft)
	if err != nil {
		h.logger.Error("assemble preview", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "プレビューを作成できませんでした", "")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"document": doc, "order": draft})
}

func (h *Handler) handlePreviewHTML(w http.ResponseWriter, r *http.Request) {
	draft, ok := h.decodeDraft(w, r)
	if !ok {
		return
	}
	out, err := h.docs.BuildHTML(draft)
	if err != nil {
		h.logger.Error("render html preview", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "プレビューを作成できませんでした", "")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(out)
}

func (h *Handler) handlePreviewPDF(w http.ResponseWriter, r *http.Request) {
	draft, ok := h.decodeDraft(w, r)
	if !ok {
		return
	}
	out, err := h.docs.BuildPDF(draft)
	if err != nil {
		h.logger.Error("render pdf", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "PDFを作成できませんでした", "")
		return
	}
	httpx.Attachment(w, "発注書_"+draft.OrderDate+".pdf", "application/pdf", out)
}

// handleSave validates strictly and persists. All violations are returned
// together so the form can mark every field at once.
func (h *Handler) handleSave(w http.ResponseWriter, r *http.Request) {
	draft, ok := h.decodeDraft(w, r)
	if !ok {
		return
	}
	if errs := Validate(draft, ModeStrict, h.now()); len(errs) > 0 {
		httpx.JSON(w, http.StatusUnprocessableEntity, map[string]any{
			"title":  "入力内容を確認してください",
			"errors": errs,
		})
		return
	}
	saved, err := h.repo.Upsert(r.Context(), draft)
	if err != nil {
		h.logger.Error("save order", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "発注書を保存できませんでした", "")
		return
	}
	h.logger.Info("order saved", slog.String("id", saved.ID), slog.Float64("total", saved.Total))
	httpx.JSON(w, http.StatusCreated, saved)
}

func (h *Handler) decodeDraft(w http.ResponseWriter, r *http.Request) (Order, bool) {
	var in DraftInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "リクエストの形式が正しくありません", err.Error())
		return Order{}, false
	}
	draft := BuildDraft(in, h.now())
	ApplyCompanyDefaults(&draft, h.defaults)
	return draft, true
}
