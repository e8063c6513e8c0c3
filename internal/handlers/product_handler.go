package handlers

import (
	"net/http"

	"github.com/AkshayGangurde12/farm-management-system/internal/models"
)

type ProductHandler struct {
	*Web
}

func NewProductHandler(web *Web) *ProductHandler {
	return &ProductHandler{Web: web}
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "agroproducts.html", map[string]interface{}{
		"Products": h.Market.Products.List(),
	})
}

func (h *ProductHandler) AddForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "addagroproduct.html", nil)
}

func (h *ProductHandler) Add(w http.ResponseWriter, r *http.Request) {
	req := productRequestFromForm(r)
	if _, err := h.Market.Products.Create(CurrentUser(r), &req); err != nil {
		h.redirectWithFlash(w, r, "/login", FlashWarning, "Please login first")
		return
	}
	h.redirectWithFlash(w, r, "/agroproducts", FlashSuccess, "Product added successfully!")
}

func (h *ProductHandler) Mine(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "myproducts.html", map[string]interface{}{
		"Products": h.Market.Products.ListByOwnerEmail(CurrentUser(r).Email),
	})
}

func (h *ProductHandler) ToggleAvailability(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.redirectWithFlash(w, r, "/myproducts", FlashError, "Product not found or access denied")
		return
	}

	product, err := h.Market.Products.ToggleAvailability(id, CurrentUser(r))
	if err != nil {
		h.redirectWithFlash(w, r, "/myproducts", FlashError, "Product not found or access denied")
		return
	}
	h.redirectWithFlash(w, r, "/myproducts", FlashSuccess, "Product marked as "+availabilityText(product.Available))
}

func (h *ProductHandler) APIList(w http.ResponseWriter, r *http.Request) {
	h.respondWithJSON(w, http.StatusOK, h.Market.Products.List())
}

func (h *ProductHandler) APICreate(w http.ResponseWriter, r *http.Request) {
	user, ok := h.apiUser(w, r)
	if !ok {
		return
	}
	var req models.ProductRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	product, err := h.Market.Products.Create(user, &req)
	if err != nil {
		h.respondWithServiceError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusCreated, product)
}

func (h *ProductHandler) APIMine(w http.ResponseWriter, r *http.Request) {
	user, ok := h.apiUser(w, r)
	if !ok {
		return
	}
	h.respondWithJSON(w, http.StatusOK, h.Market.Products.ListByOwnerEmail(user.Email))
}

func (h *ProductHandler) APIToggle(w http.ResponseWriter, r *http.Request) {
	user, ok := h.apiUser(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		h.respondWithError(w, http.StatusBadRequest, "invalid_product_id", "Invalid product ID")
		return
	}

	product, err := h.Market.Products.ToggleAvailability(id, user)
	if err != nil {
		h.respondWithServiceError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, product)
}

func productRequestFromForm(r *http.Request) models.ProductRequest {
	return models.ProductRequest{
		Name:        r.FormValue("productname"),
		Description: r.FormValue("productdesc"),
		Price:       r.FormValue("price"),
		Category:    r.FormValue("category"),
		Quantity:    r.FormValue("quantity"),
		BasePrice:   r.FormValue("basePrice"),
		Image:       r.FormValue("image"),
		Available:   r.FormValue("available") == "on",
	}
}

func availabilityText(available bool) string {
	if available {
		return "available"
	}
	return "unavailable"
}
