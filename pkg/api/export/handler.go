// Package export serves investment memo downloads.
package export

import (
	"bytes"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"alight_calculator/pkg/api/respond"
	"alight_calculator/pkg/core/calculator"
	coreExport "alight_calculator/pkg/core/export"
	"alight_calculator/pkg/core/narrative"
)

// Request recalculates the result to export. Narrative is included as given; when it is
// empty and GenerateNarrative is set, the memo analysis is requested first. A failed
// narrative does not fail the export.
type Request struct {
	Type string `json:"type"`
	calculator.Request
	Narrative         string `json:"narrative"`
	GenerateNarrative bool   `json:"generateNarrative"`
}

type Handler struct {
	engine *calculator.Engine
	svc    *narrative.Service
	now    func() time.Time
	log    zerolog.Logger
}

// NewHandler accepts a nil svc; narrative generation is then skipped.
func NewHandler(engine *calculator.Engine, svc *narrative.Service, log zerolog.Logger) *Handler {
	return &Handler{engine: engine, svc: svc, now: time.Now, log: log.With().Str("component", "export_api").Logger()}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/export/{format}", h.HandleExport)
}

func (h *Handler) HandleExport(w http.ResponseWriter, r *http.Request) {
	format, err := coreExport.ParseFormat(chi.URLParam(r, "format"))
	if err != nil {
		respond.Error(w, http.StatusNotFound, err.Error())
		return
	}

	var req Request
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	kind, err := calculator.ParseKind(req.Type)
	if err != nil {
		respond.Err(w, err)
		return
	}
	res, err := h.engine.Run(kind, req.Request)
	if err != nil {
		respond.Err(w, err)
		return
	}

	text := req.Narrative
	if text == "" && req.GenerateNarrative && h.svc != nil {
		p := calculator.NewPayload(res)
		p.DetailedMemo = true
		text, err = h.svc.Memo(r.Context(), p)
		if err != nil {
			h.log.Warn().Err(err).Str("calculator", string(kind)).Msg("memo narrative skipped")
			text = ""
		}
	}

	memo := coreExport.FromResult(res, text, h.now())
	var buf bytes.Buffer
	if err := coreExport.Render(&buf, format, memo); err != nil {
		h.log.Error().Err(err).Str("format", string(format)).Msg("render memo")
		respond.Err(w, err)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", `attachment; filename="`+memo.Filename(format)+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
