// Package narrative serves the streamed AI verdict (SSE) and the memo analysis.
package narrative

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"alight_calculator/pkg/api/respond"
	"alight_calculator/pkg/core/calculator"
	coreNarrative "alight_calculator/pkg/core/narrative"
	"alight_calculator/pkg/metrics"
)

// Modes used as the metrics label.
const (
	ModeVerdict = "verdict"
	ModeMemo    = "memo"
)

// StreamRequest is a narrative payload plus the view key that scopes last-write-wins
// cancellation. An empty key uses the calculator type.
type StreamRequest struct {
	Key string `json:"key"`
	calculator.Payload
}

type MemoResponse struct {
	Analysis string `json:"analysis"`
}

// Event is one SSE data frame.
type Event struct {
	ID    string `json:"id,omitempty"`
	Text  string `json:"text,omitempty"`
	Error string `json:"error,omitempty"`
	Done  bool   `json:"done,omitempty"`
}

type Handler struct {
	svc      *coreNarrative.Service
	streamer *coreNarrative.Streamer
	metrics  *metrics.Metrics
	log      zerolog.Logger
}

func NewHandler(svc *coreNarrative.Service, m *metrics.Metrics, log zerolog.Logger) *Handler {
	return &Handler{
		svc:      svc,
		streamer: coreNarrative.NewStreamer(svc),
		metrics:  m,
		log:      log.With().Str("component", "narrative_api").Logger(),
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/narrative/stream", h.HandleStream)
	r.Delete("/narrative/stream/{key}", h.HandleCancel)
	r.Post("/narrative/memo", h.HandleMemo)
}

// HandleStream relays the verdict as server-sent events: one {"text"} frame per delta, then
// {"done":true}. Errors before the first frame are plain JSON errors with a mapped status.
func (h *Handler) HandleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		respond.Error(w, http.StatusInternalServerError, "Streaming not supported")
		return
	}

	var req StreamRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	key := req.Key
	if key == "" {
		key = req.CalculatorType
	}

	task, err := h.streamer.Start(r.Context(), key, req.Payload)
	if err != nil {
		h.observe(ModeVerdict, err)
		respond.Err(w, err)
		return
	}

	// SSE headers - must be set before any write
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	sendEvent := func(ev Event) {
		data, _ := json.Marshal(ev)
		fmt.Fprintf(w, "data: %s\n\n", data)
		flusher.Flush()
	}

	for c := range task.Chunks {
		if c.Err != nil {
			err = c.Err
			task.Cancel()
			break
		}
		sendEvent(Event{ID: task.ID, Text: c.Text})
	}

	switch {
	case err != nil:
		_, body := respond.Classify(err)
		sendEvent(Event{ID: task.ID, Error: body.Error})
	case r.Context().Err() != nil:
		err = r.Context().Err()
	case task.Canceled():
		// superseded by a newer request for the same key, or cancelled explicitly
		err = context.Canceled
		sendEvent(Event{ID: task.ID, Error: "cancelled"})
	default:
		sendEvent(Event{ID: task.ID, Done: true})
	}
	h.observe(ModeVerdict, err)
}

func (h *Handler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	h.streamer.Cancel(chi.URLParam(r, "key"))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleMemo(w http.ResponseWriter, r *http.Request) {
	var p calculator.Payload
	if err := respond.Decode(r, &p); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	text, err := h.svc.Memo(r.Context(), p)
	h.observe(ModeMemo, err)
	if err != nil {
		respond.Err(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, MemoResponse{Analysis: text})
}

func (h *Handler) observe(mode string, err error) {
	if h.metrics != nil {
		h.metrics.ObserveNarrative(mode, err)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		h.log.Warn().Err(err).Str("mode", mode).Msg("narrative request failed")
	}
}
