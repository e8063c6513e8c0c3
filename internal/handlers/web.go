package handlers

import (
	"bytes"
	"context"
	"encoding/gob"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/AkshayGangurde12/farm-management-system/internal/middleware"
	"github.com/AkshayGangurde12/farm-management-system/internal/models"
	"github.com/AkshayGangurde12/farm-management-system/internal/services"

	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
	"github.com/rs/zerolog"
)

const (
	sessionName     = "farm-session"
	sessionTokenKey = "token"
)

type userContextKey struct{}

func init() {
	gob.Register(FlashMessage{})
}

type FlashMessage struct {
	Type    string
	Message string
}

const (
	FlashSuccess = "success"
	FlashInfo    = "info"
	FlashWarning = "warning"
	FlashError   = "error"
)

// Web carries what every page and API handler needs.
type Web struct {
	Market    *services.Marketplace
	Sessions  sessions.Store
	Templates *TemplateCache
	Logger    zerolog.Logger
}

// NewSessionStore returns the cookie store that carries the session token
// and flash messages. The session itself lives server side.
func NewSessionStore(key []byte, secure bool, ttl time.Duration) *sessions.CookieStore {
	store := sessions.NewCookieStore(key)
	store.Options.Path = "/"
	store.Options.HttpOnly = true
	store.Options.Secure = secure
	store.Options.SameSite = http.SameSiteLaxMode
	if ttl > 0 {
		store.Options.MaxAge = int(ttl.Seconds())
	}
	return store
}

func (h *Web) session(r *http.Request) *sessions.Session {
	session, err := h.Sessions.Get(r, sessionName)
	if err != nil {
		h.Logger.Debug().Err(err).Msg("Discarding unreadable session cookie")
	}
	return session
}

func (h *Web) sessionToken(r *http.Request) string {
	token, _ := h.session(r).Values[sessionTokenKey].(string)
	return token
}

// LoadUser resolves the session cookie to a user and stores it in the
// request context. Anonymous requests pass through unchanged.
func (h *Web) LoadUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user, ok := h.Market.CurrentUser(h.sessionToken(r)); ok {
			r = r.WithContext(context.WithValue(r.Context(), userContextKey{}, user))
		}
		next.ServeHTTP(w, r)
	})
}

// RequireLogin sends anonymous callers to the login page with a warning.
func (h *Web) RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if CurrentUser(r) == nil {
			h.Logger.Debug().Str("path", r.URL.Path).Msg("Anonymous request to protected page")
			h.redirectWithFlash(w, r, "/login", FlashWarning, "Please login first")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// CurrentUser returns the user loaded by LoadUser, or nil.
func CurrentUser(r *http.Request) *models.User {
	user, _ := r.Context().Value(userContextKey{}).(*models.User)
	return user
}

func (h *Web) redirectWithFlash(w http.ResponseWriter, r *http.Request, url, flashType, message string) {
	session := h.session(r)
	session.AddFlash(FlashMessage{Type: flashType, Message: message})
	if err := session.Save(r, w); err != nil {
		h.Logger.Error().Err(err).Msg("Failed to save session")
	}
	http.Redirect(w, r, url, http.StatusSeeOther)
}

func getFlashes(session *sessions.Session) []FlashMessage {
	var messages []FlashMessage
	for _, f := range session.Flashes() {
		if fm, ok := f.(FlashMessage); ok {
			messages = append(messages, fm)
		}
	}
	return messages
}

// render executes a page inside the layout. Pending flashes are consumed.
func (h *Web) render(w http.ResponseWriter, r *http.Request, status int, name string, data map[string]interface{}) {
	tmpl := h.Templates.Get(name)
	if tmpl == nil {
		h.Logger.Error().Str("template", name).Msg("Template not found")
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	if data == nil {
		data = make(map[string]interface{})
	}
	session := h.session(r)
	data["Flashes"] = getFlashes(session)
	data["User"] = CurrentUser(r)
	data["CsrfField"] = csrf.TemplateField(r)

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		h.Logger.Error().Err(err).Str("template", name).Msg("Failed to render template")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	if err := session.Save(r, w); err != nil {
		h.Logger.Error().Err(err).Msg("Failed to save session")
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

func pathID(r *http.Request) (int, error) {
	return strconv.Atoi(mux.Vars(r)["id"])
}

// apiUser loads the user named by the bearer token. Tokens can outlive the
// in-memory store, so a missing user is treated as unauthenticated.
func (h *Web) apiUser(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		h.respondWithError(w, http.StatusUnauthorized, "unauthorized", "User not authenticated")
		return nil, false
	}
	user, err := h.Market.Users.GetUserByID(userID)
	if err != nil {
		h.respondWithError(w, http.StatusUnauthorized, "unauthorized", "User no longer exists")
		return nil, false
	}
	return user, true
}

func (h *Web) decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.respondWithError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return false
	}
	return true
}

func (h *Web) respondWithServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrMissingFields):
		h.respondWithError(w, http.StatusBadRequest, "missing_fields", err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		h.respondWithError(w, http.StatusUnauthorized, "authentication_failed", "Invalid email or password")
	case errors.Is(err, services.ErrNotAuthenticated):
		h.respondWithError(w, http.StatusUnauthorized, "unauthorized", "User not authenticated")
	case errors.Is(err, services.ErrNotFoundOrForbidden), errors.Is(err, services.ErrNotFound):
		h.respondWithError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, services.ErrDuplicateEmail), errors.Is(err, services.ErrAlreadyExists):
		h.respondWithError(w, http.StatusConflict, "conflict", err.Error())
	default:
		h.Logger.Error().Err(err).Msg("Unhandled service error")
		h.respondWithError(w, http.StatusInternalServerError, "internal_error", "An internal error occurred")
	}
}

func (h *Web) respondWithError(w http.ResponseWriter, code int, errorCode, message string) {
	h.respondWithJSON(w, code, middleware.ErrorResponse{
		Error:   errorCode,
		Message: message,
	})
}

func (h *Web) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}
