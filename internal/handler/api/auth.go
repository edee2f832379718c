package api

import (
	"net/http"

	"foodstore/internal/cookie"
	"foodstore/internal/domain"
	"foodstore/internal/handler"
	"foodstore/internal/middleware"
	"foodstore/internal/telemetry"
)

// sessionCookieMaxAge matches the session lifetime on the server.
const sessionCookieMaxAge = 30 * 24 * 60 * 60

// AuthHandler serves account registration and session endpoints.
type AuthHandler struct {
	customers domain.CustomerService
	cookies   *cookie.Config
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(customers domain.CustomerService, cookies *cookie.Config) *AuthHandler {
	return &AuthHandler{customers: customers, cookies: cookies}
}

// RegisterRequest is the POST /auth/register body.
type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name"`
}

// LoginRequest is the POST /auth/login body.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Register handles POST /auth/register. A new account gets its cart
// provisioned in the same transaction and is logged in immediately.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decodeJSON(r, "auth.register", &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	customer, err := h.customers.Register(r.Context(), domain.RegisterParams{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	token, err := h.customers.CreateSession(r.Context(), customer.ID.String())
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	telemetry.RecordSignup()
	h.cookies.SetSession(w, middleware.SessionCookieName, token, sessionCookieMaxAge)
	handler.RespondJSON(w, http.StatusCreated, renderCustomer(customer))
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(r, "auth.login", &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	customer, err := h.customers.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		telemetry.RecordLogin(false)
		handler.ErrorResponse(w, r, err)
		return
	}

	token, err := h.customers.CreateSession(r.Context(), customer.ID.String())
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	telemetry.RecordLogin(true)
	h.cookies.SetSession(w, middleware.SessionCookieName, token, sessionCookieMaxAge)
	handler.RespondJSON(w, http.StatusOK, renderCustomer(customer))
}

// Logout handles POST /auth/logout. Logging out without a session is a no-op.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if token := cookie.Get(r, middleware.SessionCookieName); token != "" {
		if err := h.customers.DeleteSession(r.Context(), token); err != nil {
			middleware.GetLogger(r.Context()).Warn("failed to delete session", "error", err)
		}
	}

	h.cookies.ClearSession(w, middleware.SessionCookieName)
	w.WriteHeader(http.StatusNoContent)
}
