package handler

import (
	"careerai/internal/service"
	"careerai/internal/transport/rest/middleware"
	"net/http"

	"go.uber.org/zap"
)

// WizardHandler handles the per-user questionnaire
type WizardHandler struct {
	svc    *service.WizardService
	logger *zap.Logger
}

// NewWizardHandler creates a new wizard handler
func NewWizardHandler(svc *service.WizardService, logger *zap.Logger) *WizardHandler {
	return &WizardHandler{svc: svc, logger: logger}
}

// Start handles POST /v1/wizard
func (h *WizardHandler) Start(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.Start(r.Context(), middleware.GetUserID(r.Context()))
	h.respond(w, http.StatusCreated, view, err)
}

// Get handles GET /v1/wizard
func (h *WizardHandler) Get(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.Get(r.Context(), middleware.GetUserID(r.Context()))
	h.respond(w, http.StatusOK, view, err)
}

// Answer handles PUT /v1/wizard/answer
// @Summary Edit the current category's answer
// @Tags wizard
// @Accept json
// @Produce json
// @Param body body service.AnswerUpdate true "Fields to replace"
// @Success 200 {object} service.WizardView
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /wizard/answer [put]
func (h *WizardHandler) Answer(w http.ResponseWriter, r *http.Request) {
	var update service.AnswerUpdate
	if !decodeJSON(w, r, &update) {
		return
	}
	view, err := h.svc.SetAnswer(r.Context(), middleware.GetUserID(r.Context()), update)
	h.respond(w, http.StatusOK, view, err)
}

// Toggle handles POST /v1/wizard/toggle
func (h *WizardHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Option string `json:"option"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	view, err := h.svc.Toggle(r.Context(), middleware.GetUserID(r.Context()), req.Option)
	h.respond(w, http.StatusOK, view, err)
}

// Advance handles POST /v1/wizard/advance
func (h *WizardHandler) Advance(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.Advance(r.Context(), middleware.GetUserID(r.Context()))
	h.respond(w, http.StatusOK, view, err)
}

// Retreat handles POST /v1/wizard/retreat
func (h *WizardHandler) Retreat(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.Retreat(r.Context(), middleware.GetUserID(r.Context()))
	h.respond(w, http.StatusOK, view, err)
}

// Submit handles POST /v1/wizard/submit
// @Summary Submit the completed questionnaire
// @Tags wizard
// @Produce json
// @Success 200 {object} model.IkigaiResult
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /wizard/submit [post]
func (h *WizardHandler) Submit(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.Submit(r.Context(), middleware.GetUserID(r.Context()))
	h.respond(w, http.StatusOK, result, err)
}

func (h *WizardHandler) respond(w http.ResponseWriter, status int, data interface{}, err error) {
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, status, data)
}
