package handlers

import (
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/sprachlab/event-gateway/models"
	"github.com/sprachlab/event-gateway/schema"
	"github.com/sprachlab/event-gateway/services/transcribe"
	"github.com/sprachlab/event-gateway/utils"
)

// maxAudioBytes caps the multipart form held in memory for transcription.
const maxAudioBytes = 32 << 20

// TranscribeHandler handles audio transcription requests.
type TranscribeHandler struct {
	transcriber transcribe.Transcriber
	logger      *zap.Logger
}

// NewTranscribeHandler creates a new TranscribeHandler.
func NewTranscribeHandler(t transcribe.Transcriber, logger *zap.Logger) *TranscribeHandler {
	return &TranscribeHandler{
		transcriber: t,
		logger:      logger,
	}
}

// HandleTranscribe handles POST /transcribe/. The audio arrives as the
// multipart field "file"; the adapter decides what to do with it.
func (h *TranscribeHandler) HandleTranscribe(w http.ResponseWriter, r *http.Request) {
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

	h.logger.Info("transcription requested",
		zap.String("request_id", requestID),
		zap.String("filename", header.Filename),
		zap.Int64("size", header.Size))

	text, err := h.transcriber.Transcribe(r.Context(), file)
	if err != nil {
		h.logger.Error("transcription failed",
			zap.String("request_id", requestID),
			zap.Error(err))
		_ = utils.WriteInternalServerError(w, "")
		return
	}

	_ = utils.WriteJSON(w, http.StatusOK, models.TranscriptionResponse{Transcription: text})
}
