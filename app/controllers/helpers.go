package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"starlog/app/apperr"
	"starlog/app/auth"
	"starlog/app/middleware"
)

func sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// sendError maps the core error kinds to HTTP statuses.
func sendError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case apperr.IsValidation(err) || apperr.IsIndex(err):
		status = http.StatusBadRequest
	case errors.Is(err, apperr.ErrUnauthenticated):
		status = http.StatusUnauthorized
	case errors.Is(err, apperr.ErrUnauthorized):
		status = http.StatusForbidden
	case errors.Is(err, apperr.ErrNotFound):
		status = http.StatusNotFound
	case apperr.IsStore(err):
		status = http.StatusBadGateway
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

// identity pulls the resolved caller off the request context.
func identity(r *http.Request) auth.Identity {
	return middleware.IdentityFrom(r.Context())
}

// requireIdentity rejects anonymous callers with a 401.
func requireIdentity(w http.ResponseWriter, r *http.Request) (auth.Identity, bool) {
	id := identity(r)
	if id.Anonymous() {
		sendError(w, apperr.ErrUnauthenticated)
		return auth.Identity{}, false
	}
	return id, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if apperr.IsValidation(err) {
			sendError(w, err)
		} else {
			sendError(w, apperr.Validation("body", "invalid JSON: "+err.Error()))
		}
		return false
	}
	return true
}
