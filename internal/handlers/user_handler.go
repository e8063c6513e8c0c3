package handlers

import (
	"net/http"
)

type UserHandler struct {
	*Web
}

func NewUserHandler(web *Web) *UserHandler {
	return &UserHandler{Web: web}
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := h.apiUser(w, r)
	if !ok {
		return
	}
	h.respondWithJSON(w, http.StatusOK, user)
}

// GetUser returns a profile. Accounts carry no roles, so callers may only
// read their own.
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r)
	if err != nil {
		h.respondWithError(w, http.StatusBadRequest, "invalid_user_id", "Invalid user ID")
		return
	}

	current, ok := h.apiUser(w, r)
	if !ok {
		return
	}
	if current.ID != userID {
		h.respondWithError(w, http.StatusForbidden, "forbidden", "You can only view your own profile")
		return
	}

	h.respondWithJSON(w, http.StatusOK, current)
}
