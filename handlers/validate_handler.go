package handlers

import (
	"encoding/json"
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/sprachlab/event-gateway/schema"
	"github.com/sprachlab/event-gateway/services/transcribe"
	"github.com/sprachlab/event-gateway/services/validate"
	"github.com/sprachlab/event-gateway/utils"
)

// ValidateHandler handles speaking-response validation requests.
type ValidateHandler struct {
	transcriber transcribe.Transcriber
	evaluator   validate.SpeakingEvaluator
	logger      *zap.Logger
}

// NewValidateHandler creates a new ValidateHandler.
func NewValidateHandler(t transcribe.Transcriber, e validate.SpeakingEvaluator, logger *zap.Logger) *ValidateHandler {
	return &ValidateHandler{
		transcriber: t,
		evaluator:   e,
		logger:      logger,
	}
}

// HandleValidateSpeaking handles POST /validate/speaking. The audio arrives
// as the multipart field "file" alongside a "speaking_task" form field
// carrying the task as a JSON object. The audio is transcribed, then the
// transcript is evaluated against the task.
func (h *ValidateHandler) HandleValidateSpeaking(w http.ResponseWriter, r *http.Request) {
	requestID := chimiddleware.GetReqID(r.Context())

	if err := r.ParseMultipartForm(maxAudioBytes); err != nil {
		h.logger.Warn("invalid multipart form",
			zap.String("request_id", requestID),
			zap.Error(err))
		_ = utils.WriteUnprocessable(w, []schema.FieldError{{
			Field:    "file",
			Message:  "field required",
			Expected: "file",
			Actual:   "missing",
		}})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		_ = utils.WriteUnprocessable(w, []schema.FieldError{{
			Field:    "file",
			Message:  "field required",
			Expected: "file",
			Actual:   "missing",
		}})
		return
	}
	defer func() { _ = file.Close() }()

	taskRaw := r.FormValue("speaking_task")
	if taskRaw == "" {
		_ = utils.WriteUnprocessable(w, []schema.FieldError{{
			Field:    "speaking_task",
			Message:  "field required",
			Expected: "object",
			Actual:   "missing",
		}})
		return
	}

	var task json.RawMessage
	if err := json.Unmarshal([]byte(taskRaw), &task); err != nil {
		_ = utils.WriteUnprocessable(w, []schema.FieldError{{
			Field:    "speaking_task",
			Message:  "speaking_task must be valid JSON",
			Expected: "object",
			Actual:   "invalid",
		}})
		return
	}

	h.logger.Info("speaking validation requested",
		zap.String("request_id", requestID),
		zap.String("filename", header.Filename),
		zap.Int64("size", header.Size))

	transcript, err := h.transcriber.Transcribe(r.Context(), file)
	if err != nil {
		h.logger.Error("transcription failed",
			zap.String("request_id", requestID),
			zap.Error(err))
		_ = utils.WriteInternalServerError(w, "")
		return
	}

	out, err := h.evaluator.Evaluate(r.Context(), task, transcript)
	if err != nil {
		h.logger.Error("speaking evaluation failed",
			zap.String("request_id", requestID),
			zap.Error(err))
		_ = utils.WriteInternalServerError(w, "")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}
