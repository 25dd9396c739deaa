package handler

import (
	"careerai/internal/model"
	"careerai/internal/service"
	"careerai/internal/transport/rest/middleware"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"
)

// ProgressHandler handles the stored result, its history and the checklist
type ProgressHandler struct {
	svc    *service.ProgressService
	logger *zap.Logger
}

// NewProgressHandler creates a new progress handler
func NewProgressHandler(svc *service.ProgressService, logger *zap.Logger) *ProgressHandler {
	return &ProgressHandler{svc: svc, logger: logger}
}

// GetResult handles GET /v1/result
func (h *ProgressHandler) GetResult(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.Result(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"result": result})
}

// ClearResult handles DELETE /v1/result
func (h *ProgressHandler) ClearResult(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.ClearResult(r.Context(), middleware.GetUserID(r.Context())); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Export handles GET /v1/result/export?format=markdown
func (h *ProgressHandler) Export(w http.ResponseWriter, r *http.Request) {
	if format := r.URL.Query().Get("format"); format != "" && format != "markdown" {
		writeError(w, http.StatusBadRequest, "unsupported export format")
		return
	}

	md, err := h.svc.ExportMarkdown(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="ikigai.md"`)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(md))
}

// History handles GET /v1/result/history?limit=
func (h *ProgressHandler) History(w http.ResponseWriter, r *http.Request) {
	var limit int64
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	records, err := h.svc.History(r.Context(), middleware.GetUserID(r.Context()), limit)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// GetChecklist handles GET /v1/checklist
func (h *ProgressHandler) GetChecklist(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Checklist(r.Context(), middleware.GetUserID(r.Context()))
	h.respondChecklist(w, items, err)
}

// SetChecklist handles PUT /v1/checklist
func (h *ProgressHandler) SetChecklist(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Checklist []model.ChecklistItem `json:"checklist"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	items, err := h.svc.SetChecklist(r.Context(), middleware.GetUserID(r.Context()), req.Checklist)
	h.respondChecklist(w, items, err)
}

// UpdateChecklist handles PATCH /v1/checklist
func (h *ProgressHandler) UpdateChecklist(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Task   string                `json:"task"`
		Status model.ChecklistStatus `json:"status"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	items, err := h.svc.UpdateChecklistStatus(r.Context(), middleware.GetUserID(r.Context()), req.Task, req.Status)
	h.respondChecklist(w, items, err)
}

func (h *ProgressHandler) respondChecklist(w http.ResponseWriter, items []model.ChecklistItem, err error) {
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"checklist": items})
}

// PageHandler serves the view models behind the session gate
type PageHandler struct {
	progress *service.ProgressService
	wizard   *service.WizardService
	logger   *zap.Logger
}

// NewPageHandler creates a new page handler
func NewPageHandler(progress *service.ProgressService, wizard *service.WizardService, logger *zap.Logger) *PageHandler {
	return &PageHandler{progress: progress, wizard: wizard, logger: logger}
}

// Home handles GET / for signed-out visitors
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"page":    "auth",
		"actions": []string{"/v1/auth/login", "/v1/auth/signup"},
	})
}

// Dashboard handles GET /dashboard
func (h *PageHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	view, err := h.progress.Dashboard(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Ikigai handles GET /ikigai
func (h *PageHandler) Ikigai(w http.ResponseWriter, r *http.Request) {
	view, err := h.wizard.Get(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Results handles GET /ikigai/results, sending visitors without a result home
func (h *PageHandler) Results(w http.ResponseWriter, r *http.Request) {
	result, err := h.progress.ViewResults(r.Context(), middleware.GetUserID(r.Context()))
	if errors.Is(err, service.ErrNoResult) {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Explore handles GET /ikigai/explore, sending visitors without a result to the dashboard
func (h *PageHandler) Explore(w http.ResponseWriter, r *http.Request) {
	view, err := h.progress.ExploreRoles(r.Context(), middleware.GetUserID(r.Context()))
	if errors.Is(err, service.ErrNoResult) {
		http.Redirect(w, r, "/dashboard", http.StatusFound)
		return
	}
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
