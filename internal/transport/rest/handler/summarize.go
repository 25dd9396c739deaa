package handler

import (
	"careerai/internal/ikigai"
	"careerai/internal/model"
	"careerai/internal/service"
	"io"
	"net/http"

	"go.uber.org/zap"
)

// SummarizeHandler exposes the stateless summarization pipeline
type SummarizeHandler struct {
	svc    *service.SummarizeService
	logger *zap.Logger
}

// NewSummarizeHandler creates a new summarize handler
func NewSummarizeHandler(svc *service.SummarizeService, logger *zap.Logger) *SummarizeHandler {
	return &SummarizeHandler{svc: svc, logger: logger}
}

// Summarize handles POST /v1/summarize
// @Summary Synthesize an Ikigai result from questionnaire answers
// @Tags summarize
// @Accept json
// @Produce json
// @Param body body ikigai.Submission true "Versioned questionnaire"
// @Success 200 {object} model.IkigaiResult
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /summarize [post]
func (h *SummarizeHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req, err := ikigai.DecodeSubmission(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.svc.Summarize(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Categories handles GET /v1/categories
func Categories(w http.ResponseWriter, r *http.Request) {
	out := make([]model.CategoryMeta, 0, len(model.Categories))
	for _, c := range model.Categories {
		out = append(out, model.CategoryInfo[c])
	}
	writeJSON(w, http.StatusOK, out)
}
