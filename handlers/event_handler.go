package handlers

import (
	"io"
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/sprachlab/event-gateway/internal/observability"
	"github.com/sprachlab/event-gateway/models"
	"github.com/sprachlab/event-gateway/schema"
	"github.com/sprachlab/event-gateway/services/dispatch"
	"github.com/sprachlab/event-gateway/services/store"
	"github.com/sprachlab/event-gateway/utils"
)

// ackMessage is the fixed acceptance body for POST /events/.
const ackMessage = "Data received!"

// EventHandler handles event ingestion and listing. Per request: validate,
// store, dispatch, acknowledge. No state outlives the request except the
// bounded store snapshot served by HandleList.
type EventHandler struct {
	store        *store.Memory
	dispatcher   *dispatch.Dispatcher
	metrics      *observability.Metrics
	logger       *zap.Logger
	maxBodyBytes int64
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(
	st *store.Memory,
	dispatcher *dispatch.Dispatcher,
	metrics *observability.Metrics,
	logger *zap.Logger,
	maxBodyBytes int64,
) *EventHandler {
	return &EventHandler{
		store:        st,
		dispatcher:   dispatcher,
		metrics:      metrics,
		logger:       logger,
		maxBodyBytes: maxBodyBytes,
	}
}

// HandleIngest handles POST /events/.
//
// Validation is a strict gate: on any schema failure the request is rejected
// with 422 and per-field detail before any acceptance logic runs. A valid,
// authorized event is stored, dispatched to the sinks, and acknowledged with
// 202, which promises structural validity, not completed processing.
func (h *EventHandler) HandleIngest(w http.ResponseWriter, r *http.Request) {
	requestID := chimiddleware.GetReqID(r.Context())

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		h.logger.Warn("failed to read request body",
			zap.String("request_id", requestID),
			zap.Error(err))
		h.metrics.RecordRejected("validation")
		_ = utils.WriteUnprocessable(w, []schema.FieldError{{
			Field:    "body",
			Message:  "request body could not be read",
			Expected: "object",
			Actual:   "invalid",
		}})
		return
	}

	ev, fieldErrs := schema.ParseEvent(body)
	if fieldErrs != nil {
		h.logger.Warn("event validation failed",
			zap.String("request_id", requestID),
			zap.Int("field_errors", len(fieldErrs)))
		h.metrics.RecordRejected("validation")
		_ = utils.WriteUnprocessable(w, fieldErrs)
		return
	}

	// Duplicate event IDs are accepted silently; the store stamps each
	// submission with its own receipt.
	stored := h.store.Append(ev)
	h.metrics.SetStoreSize(h.store.Len())

	if err := h.dispatcher.Dispatch(r.Context(), stored); err != nil {
		h.logger.Error("dispatch failed",
			zap.String("request_id", requestID),
			zap.String("event_id", ev.EventID),
			zap.Error(err))
		_ = utils.WriteInternalServerError(w, "")
		return
	}

	h.metrics.RecordAccepted()
	_ = utils.WriteAccepted(w, ackMessage)
}

// HandleList handles GET /events/ and returns the stored events, oldest
// first.
func (h *EventHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	_ = utils.WriteJSON(w, http.StatusOK, models.ListResponse{Data: h.store.List()})
}
