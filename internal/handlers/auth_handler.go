package handlers

import (
	"errors"
	"net/http"

	"github.com/AkshayGangurde12/farm-management-system/internal/models"
	"github.com/AkshayGangurde12/farm-management-system/internal/services"
)

type AuthHandler struct {
	*Web
}

func NewAuthHandler(web *Web) *AuthHandler {
	return &AuthHandler{Web: web}
}

func (h *AuthHandler) SignupForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "signup.html", nil)
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	req := models.SignupRequest{
		Username: r.FormValue("username"),
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
	}

	_, err := h.Market.Users.Register(&req)
	switch {
	case errors.Is(err, services.ErrDuplicateEmail):
		h.redirectWithFlash(w, r, "/signup", FlashWarning, "Email already exists")
	case errors.Is(err, services.ErrMissingFields):
		h.redirectWithFlash(w, r, "/signup", FlashWarning, "Username, email and password are required")
	case err != nil:
		h.Logger.Error().Err(err).Msg("Registration failed")
		h.redirectWithFlash(w, r, "/signup", FlashError, "Signup failed, please try again")
	default:
		h.redirectWithFlash(w, r, "/login", FlashSuccess, "Signup successful! Please login.")
	}
}

func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "login.html", nil)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	session, user, err := h.Market.Authenticate(r.FormValue("email"), r.FormValue("password"))
	if err != nil {
		h.redirectWithFlash(w, r, "/login", FlashWarning, "Invalid credentials")
		return
	}

	cookie := h.session(r)
	if previous, ok := cookie.Values[sessionTokenKey].(string); ok && previous != "" {
		h.Market.EndSession(previous)
	}
	cookie.Values[sessionTokenKey] = session.Token

	h.Logger.Info().Int("user_id", user.ID).Msg("Login successful")
	h.redirectWithFlash(w, r, "/", FlashSuccess, "Login successful!")
}

// Logout ends the server-side session. The cookie is kept so the flash
// message reaches the login page.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	cookie := h.session(r)
	if token, ok := cookie.Values[sessionTokenKey].(string); ok {
		h.Market.EndSession(token)
	}
	delete(cookie.Values, sessionTokenKey)

	h.redirectWithFlash(w, r, "/login", FlashInfo, "Logged out successfully")
}

func (h *AuthHandler) APISignup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	user, err := h.Market.Users.Register(&req)
	if err != nil {
		h.respondWithServiceError(w, err)
		return
	}

	h.respondWithToken(w, http.StatusCreated, user)
}

func (h *AuthHandler) APILogin(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	user, err := h.Market.Users.Authenticate(&req)
	if err != nil {
		h.respondWithServiceError(w, err)
		return
	}

	h.respondWithToken(w, http.StatusOK, user)
}

func (h *AuthHandler) APIRefresh(w http.ResponseWriter, r *http.Request) {
	user, ok := h.apiUser(w, r)
	if !ok {
		return
	}
	h.respondWithToken(w, http.StatusOK, user)
}

func (h *AuthHandler) respondWithToken(w http.ResponseWriter, code int, user *models.User) {
	token, err := h.Market.Auth.GenerateToken(user.ID, user.Email)
	if err != nil {
		h.Logger.Error().Err(err).Msg("Token generation failed")
		h.respondWithError(w, http.StatusInternalServerError, "token_generation_failed", "Failed to generate token")
		return
	}

	h.respondWithJSON(w, code, models.AuthResponse{
		User:  user,
		Token: token,
	})
}
