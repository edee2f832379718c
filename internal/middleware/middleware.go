// Package middleware provides HTTP middleware for request identification,
// logging, authentication, and cart ownership checks.
package middleware

import (
	"encoding/json"
	"net/http"

	"foodstore/internal/domain"
)

func errorCodeToHTTPStatus(code string) int {
	switch code {
	case domain.EINVALID:
		return http.StatusBadRequest
	case domain.EUNAUTHORIZED:
		return http.StatusUnauthorized
	case domain.EFORBIDDEN:
		return http.StatusForbidden
	case domain.ENOTFOUND:
		return http.StatusNotFound
	case domain.ECONFLICT:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}

// respondWithError maps a domain error to its HTTP status and writes it as
// JSON. Internal errors are logged with their cause; clients only see the
// generic message.
func respondWithError(w http.ResponseWriter, r *http.Request, err error) {
	code := domain.ErrorCode(err)
	message := domain.ErrorMessage(err)
	status := errorCodeToHTTPStatus(code)

	logger := GetLogger(r.Context())
	if status >= 500 {
		logger.Error("request failed", "error", err.Error(), "code", code, "status", status)
	} else {
		logger.Info("request rejected", "code", code, "status", status)
	}

	respondError(w, status, code, message)
}

func respondUnauthorized(w http.ResponseWriter, r *http.Request) {
	respondError(w, http.StatusUnauthorized, domain.EUNAUTHORIZED, "Authentication required.")
}

func respondForbidden(w http.ResponseWriter, r *http.Request) {
	respondError(w, http.StatusForbidden, domain.EFORBIDDEN, "You do not have access to this resource.")
}
