package handlers

import (
	"net/http"
	"strconv"

	"github.com/AkshayGangurde12/farm-management-system/internal/models"
)

type FarmerHandler struct {
	*Web
}

func NewFarmerHandler(web *Web) *FarmerHandler {
	return &FarmerHandler{Web: web}
}

func (h *FarmerHandler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "farmer.html", map[string]interface{}{
		"FarmingTypes": h.Market.Farming.List(),
	})
}

func (h *FarmerHandler) Register(w http.ResponseWriter, r *http.Request) {
	req := farmerRequestFromForm(r)
	if _, err := h.Market.Farmers.Create(&req); err != nil {
		h.Logger.Error().Err(err).Msg("Farmer registration failed")
		h.redirectWithFlash(w, r, "/register", FlashError, "Farmer registration failed")
		return
	}
	h.redirectWithFlash(w, r, "/farmerdetails", FlashSuccess, "Farmer registered successfully!")
}

func (h *FarmerHandler) List(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "farmerdetails.html", map[string]interface{}{
		"Farmers": h.Market.Farmers.List(),
	})
}

func (h *FarmerHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	farmer, ok := h.lookup(w, r)
	if !ok {
		return
	}
	h.render(w, r, http.StatusOK, "edit.html", map[string]interface{}{
		"Farmer":       farmer,
		"FarmingTypes": h.Market.Farming.List(),
	})
}

func (h *FarmerHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.redirectWithFlash(w, r, "/farmerdetails", FlashError, "Farmer not found")
		return
	}

	req := farmerRequestFromForm(r)
	if _, err := h.Market.Farmers.Update(id, &req); err != nil {
		h.redirectWithFlash(w, r, "/farmerdetails", FlashError, "Farmer not found")
		return
	}
	h.redirectWithFlash(w, r, "/farmerdetails", FlashSuccess, "Farmer record updated successfully")
}

func (h *FarmerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err == nil {
		err = h.Market.Farmers.Delete(id)
	}
	if err != nil {
		h.redirectWithFlash(w, r, "/farmerdetails", FlashError, "Farmer record not found")
		return
	}
	h.redirectWithFlash(w, r, "/farmerdetails", FlashSuccess, "Farmer record deleted successfully")
}

func (h *FarmerHandler) lookup(w http.ResponseWriter, r *http.Request) (*models.FarmerRecord, bool) {
	id, err := pathID(r)
	if err == nil {
		var farmer *models.FarmerRecord
		if farmer, err = h.Market.Farmers.Get(id); err == nil {
			return farmer, true
		}
	}
	h.redirectWithFlash(w, r, "/farmerdetails", FlashError, "Farmer not found")
	return nil, false
}

func (h *FarmerHandler) APIList(w http.ResponseWriter, r *http.Request) {
	h.respondWithJSON(w, http.StatusOK, h.Market.Farmers.List())
}

func (h *FarmerHandler) APIGet(w http.ResponseWriter, r *http.Request) {
	id, ok := h.apiFarmerID(w, r)
	if !ok {
		return
	}
	farmer, err := h.Market.Farmers.Get(id)
	if err != nil {
		h.respondWithServiceError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, farmer)
}

func (h *FarmerHandler) APICreate(w http.ResponseWriter, r *http.Request) {
	var req models.FarmerRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	farmer, err := h.Market.Farmers.Create(&req)
	if err != nil {
		h.respondWithServiceError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusCreated, farmer)
}

func (h *FarmerHandler) APIUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.apiFarmerID(w, r)
	if !ok {
		return
	}
	var req models.FarmerRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	farmer, err := h.Market.Farmers.Update(id, &req)
	if err != nil {
		h.respondWithServiceError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, farmer)
}

func (h *FarmerHandler) APIDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.apiFarmerID(w, r)
	if !ok {
		return
	}
	if err := h.Market.Farmers.Delete(id); err != nil {
		h.respondWithServiceError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, map[string]string{
		"message": "Farmer record deleted successfully",
		"id":      strconv.Itoa(id),
	})
}

func (h *FarmerHandler) apiFarmerID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := pathID(r)
	if err != nil {
		h.respondWithError(w, http.StatusBadRequest, "invalid_farmer_id", "Invalid farmer ID")
		return 0, false
	}
	return id, true
}

func farmerRequestFromForm(r *http.Request) models.FarmerRequest {
	return models.FarmerRequest{
		FarmerName:  r.FormValue("farmername"),
		NationalID:  r.FormValue("adharnumber"),
		Age:         r.FormValue("age"),
		Gender:      r.FormValue("gender"),
		Phone:       r.FormValue("phonenumber"),
		Address:     r.FormValue("address"),
		FarmingType: r.FormValue("farmingtype"),
	}
}
