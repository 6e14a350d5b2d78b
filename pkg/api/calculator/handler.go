// Package calculator serves the five calculators, their scenario sessions and the benchmark
// selectors over HTTP.
package calculator

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"alight_calculator/pkg/api/respond"
	"alight_calculator/pkg/core/benchmark"
	"alight_calculator/pkg/core/calculator"
	"alight_calculator/pkg/core/export"
	"alight_calculator/pkg/core/scenario"
	"alight_calculator/pkg/metrics"
)

// Response wraps a result with the narrative payload and saved-deal headline derived from it.
type Response struct {
	Calculator calculator.Kind    `json:"calculator"`
	SessionID  string             `json:"sessionId,omitempty"`
	Result     calculator.Result  `json:"result"`
	Payload    calculator.Payload `json:"payload"`
	Headline   string             `json:"headline"`
}

// ScenarioRequest switches the scenario of an existing session, or opens one from Inputs when
// SessionID is empty or expired.
type ScenarioRequest struct {
	SessionID string `json:"sessionId"`
	calculator.Request
}

type BenchmarksResponse struct {
	Markets     []benchmark.Option `json:"markets"`
	Industries  []benchmark.Option `json:"industries"`
	Calculators []CalculatorInfo   `json:"calculators"`
}

type CalculatorInfo struct {
	ID        calculator.Kind `json:"id"`
	Name      string          `json:"name"`
	Scenarios bool            `json:"scenarios"`
}

// Handler holds dependencies for calculator endpoints
type Handler struct {
	engine   *calculator.Engine
	sessions *SessionStore
	metrics  *metrics.Metrics
	log      zerolog.Logger
}

func NewHandler(engine *calculator.Engine, m *metrics.Metrics, log zerolog.Logger) *Handler {
	return &Handler{
		engine:   engine,
		sessions: NewSessionStore(),
		metrics:  m,
		log:      log.With().Str("component", "calculator_api").Logger(),
	}
}

// Routes mounts the calculator endpoints on r.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/benchmarks", h.HandleBenchmarks)
	r.Post("/calc/{type}", h.HandleCalculate)
	r.Post("/calc/{type}/scenario", h.HandleScenario)
	r.Delete("/calc/sessions/{id}", h.HandleEndSession)
}

func (h *Handler) HandleBenchmarks(w http.ResponseWriter, r *http.Request) {
	resp := BenchmarksResponse{
		Markets:    h.engine.Benchmarks().Markets(),
		Industries: benchmark.Industries(),
	}
	for _, k := range calculator.Kinds() {
		resp.Calculators = append(resp.Calculators, CalculatorInfo{ID: k, Name: k.DisplayName(), Scenarios: k.SupportsScenarios()})
	}
	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) HandleCalculate(w http.ResponseWriter, r *http.Request) {
	kind, err := calculator.ParseKind(chi.URLParam(r, "type"))
	if err != nil {
		respond.Err(w, err)
		return
	}

	var req calculator.Request
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	start := time.Now()
	res, err := h.engine.Run(kind, req)
	h.observe(kind, res, start, err)
	if err != nil {
		respond.Err(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, newResponse(res, ""))
}

func (h *Handler) HandleScenario(w http.ResponseWriter, r *http.Request) {
	kind, err := calculator.ParseKind(chi.URLParam(r, "type"))
	if err != nil {
		respond.Err(w, err)
		return
	}
	if !kind.SupportsScenarios() {
		respond.Error(w, http.StatusBadRequest, kind.DisplayName()+" has no scenarios")
		return
	}

	var req ScenarioRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	sc, err := scenario.Parse(req.Scenario)
	if err != nil {
		respond.Err(w, &calculator.ValidationError{Calculator: kind, Field: "scenario", Message: err.Error()})
		return
	}

	start := time.Now()
	var res calculator.Result
	switchTo := func(s *calculator.Session) error {
		if s.Kind() != kind {
			return &calculator.ValidationError{Calculator: kind, Field: "sessionId", Message: "session belongs to " + string(s.Kind())}
		}
		var err error
		res, err = s.Switch(sc)
		return err
	}

	id := req.SessionID
	found := false
	if id != "" {
		found, err = h.sessions.With(id, switchTo)
	}
	if !found {
		var s *calculator.Session
		s, err = h.engine.NewSession(kind, req.Request)
		if err == nil {
			err = switchTo(s)
		}
		if err == nil {
			id = h.sessions.Put(s)
			h.log.Debug().Str("session", id).Str("calculator", string(kind)).Msg("scenario session opened")
		}
	}
	h.observe(kind, res, start, err)
	if err != nil {
		respond.Err(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, newResponse(res, id))
}

func (h *Handler) HandleEndSession(w http.ResponseWriter, r *http.Request) {
	if !h.sessions.Delete(chi.URLParam(r, "id")) {
		respond.Error(w, http.StatusNotFound, "session not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) observe(k calculator.Kind, res calculator.Result, start time.Time, err error) {
	if h.metrics != nil {
		h.metrics.ObserveCalculation(k, res, time.Since(start), err)
	}
	if err != nil {
		h.log.Debug().Err(err).Str("calculator", string(k)).Msg("calculation rejected")
	}
}

func newResponse(res calculator.Result, sessionID string) Response {
	return Response{
		Calculator: res.Kind(),
		SessionID:  sessionID,
		Result:     res,
		Payload:    calculator.NewPayload(res),
		Headline:   export.Headline(res),
	}
}
