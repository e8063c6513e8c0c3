package handlers

import (
	"errors"
	"net/http"

	"github.com/AkshayGangurde12/farm-management-system/internal/models"
	"github.com/AkshayGangurde12/farm-management-system/internal/services"
)

type FarmingHandler struct {
	*Web
}

func NewFarmingHandler(web *Web) *FarmingHandler {
	return &FarmingHandler{Web: web}
}

func (h *FarmingHandler) Form(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "farming.html", map[string]interface{}{
		"FarmingTypes": h.Market.Farming.List(),
	})
}

func (h *FarmingHandler) Add(w http.ResponseWriter, r *http.Request) {
	_, err := h.Market.Farming.Add(r.FormValue("farming"))
	switch {
	case errors.Is(err, services.ErrAlreadyExists):
		h.redirectWithFlash(w, r, "/addfarming", FlashWarning, "Farming type already exists")
	case errors.Is(err, services.ErrMissingFields):
		h.redirectWithFlash(w, r, "/addfarming", FlashWarning, "Farming type name is required")
	case err != nil:
		h.Logger.Error().Err(err).Msg("Adding farming type failed")
		h.redirectWithFlash(w, r, "/addfarming", FlashError, "Could not add farming type")
	default:
		h.redirectWithFlash(w, r, "/addfarming", FlashSuccess, "Farming type added successfully!")
	}
}

func (h *FarmingHandler) APIList(w http.ResponseWriter, r *http.Request) {
	h.respondWithJSON(w, http.StatusOK, h.Market.Farming.List())
}

func (h *FarmingHandler) APIAdd(w http.ResponseWriter, r *http.Request) {
	var req models.FarmingTypeRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	ft, err := h.Market.Farming.Add(req.Name)
	if err != nil {
		h.respondWithServiceError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusCreated, ft)
}
