package handlers

import (
	"fmt"
	"net/http"

	"github.com/AkshayGangurde12/farm-management-system/internal/middleware"
)

type PageHandler struct {
	*Web
}

func NewPageHandler(web *Web) *PageHandler {
	return &PageHandler{Web: web}
}

func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "index.html", nil)
}

func (h *PageHandler) Triggers(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "triggers.html", map[string]interface{}{
		"Entries": h.Market.Activity.List(),
	})
}

// Test is a plain-text liveness check.
func (h *PageHandler) Test(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, "Farm marketplace is running.")
}

func (h *PageHandler) Health(w http.ResponseWriter, r *http.Request) {
	h.respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *PageHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	if middleware.IsAPIRequest(r) {
		h.respondWithError(w, http.StatusNotFound, "not_found", "Resource not found")
		return
	}
	h.render(w, r, http.StatusNotFound, "404.html", nil)
}

func (h *PageHandler) APIActivity(w http.ResponseWriter, r *http.Request) {
	h.respondWithJSON(w, http.StatusOK, h.Market.Activity.List())
}
