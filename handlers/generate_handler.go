package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/sprachlab/event-gateway/services/generate"
	"github.com/sprachlab/event-gateway/utils"
)

// GenerateHandler handles learning-task generation requests.
type GenerateHandler struct {
	generator generate.ContentGenerator
	logger    *zap.Logger
}

// NewGenerateHandler creates a new GenerateHandler.
func NewGenerateHandler(g generate.ContentGenerator, logger *zap.Logger) *GenerateHandler {
	return &GenerateHandler{
		generator: g,
		logger:    logger,
	}
}

// HandleGenerate handles POST /generate/{skill}?topic=...&level=A1.
// Level defaults to A1 when omitted.
func (h *GenerateHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	requestID := chimiddleware.GetReqID(r.Context())

	req := generate.TaskRequest{
		Skill: chi.URLParam(r, "skill"),
		Topic: r.URL.Query().Get("topic"),
		Level: r.URL.Query().Get("level"),
	}
	if req.Level == "" {
		req.Level = "A1"
	}

	if err := utils.ValidateStruct(&req); err != nil {
		h.logger.Warn("generate request validation failed",
			zap.String("request_id", requestID),
			zap.Error(err))
		_ = utils.WriteUnprocessable(w, utils.GetValidationFields(err))
		return
	}

	out, err := h.generator.Generate(r.Context(), req)
	if err != nil {
		h.logger.Error("content generation failed",
			zap.String("request_id", requestID),
			zap.String("skill", req.Skill),
			zap.Error(err))
		_ = utils.WriteInternalServerError(w, "")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}
