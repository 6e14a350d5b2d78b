// Package deals serves the saved-deal book.
package deals

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"alight_calculator/pkg/api/respond"
	"alight_calculator/pkg/core/calculator"
	"alight_calculator/pkg/core/store"
)

// SaveRequest is a deal as sent by the client; ID and timestamp are assigned on save.
type SaveRequest struct {
	Name     string            `json:"name"`
	Type     string            `json:"type"`
	Industry string            `json:"industry"`
	Country  string            `json:"country"`
	Data     map[string]string `json:"data"`
	Result   string            `json:"result"`
}

type ListResponse struct {
	Deals []store.SavedDeal `json:"deals"`
	Count int               `json:"count"`
}

type Handler struct {
	book *store.DealBook
	log  zerolog.Logger
}

func NewHandler(book *store.DealBook, log zerolog.Logger) *Handler {
	return &Handler{book: book, log: log.With().Str("component", "deals_api").Logger()}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/deals", h.HandleList)
	r.Post("/deals", h.HandleSave)
	r.Get("/deals/{id}", h.HandleGet)
	r.Delete("/deals/{id}", h.HandleDelete)
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	deals, err := h.book.List(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("list deals")
		respond.Err(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, ListResponse{Deals: deals, Count: len(deals)})
}

func (h *Handler) HandleSave(w http.ResponseWriter, r *http.Request) {
	var req SaveRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	kind, err := calculator.ParseKind(req.Type)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	deal, err := h.book.Add(r.Context(), store.SavedDeal{
		Name:     req.Name,
		Type:     string(kind),
		Industry: req.Industry,
		Country:  req.Country,
		Data:     req.Data,
		Result:   req.Result,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("save deal")
		respond.Err(w, err)
		return
	}
	h.log.Info().Str("id", deal.ID).Str("name", deal.Name).Msg("deal saved")
	respond.JSON(w, http.StatusCreated, deal)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	deal, err := h.book.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond.Err(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, deal)
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.book.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respond.Err(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
