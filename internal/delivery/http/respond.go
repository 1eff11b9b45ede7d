package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Atharva-Dhavale/FarmConnect-sub000/internal/entity"
	"github.com/Atharva-Dhavale/FarmConnect-sub000/internal/repository"
	"github.com/Atharva-Dhavale/FarmConnect-sub000/internal/service"
	"github.com/Atharva-Dhavale/FarmConnect-sub000/internal/session"
)

// envelope is the single response shape every route uses:
// {"success":true,"data":...} on the happy path,
// {"success":false,"error":"..."} otherwise.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func respond(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(envelope{Success: true, Data: data})
}

func respondError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(envelope{Success: false, Error: msg})
}

// respondServiceError maps sentinel errors to status codes. Anything not
// recognised is a 500 with a generic message; the wrapped detail goes to
// the log, never to the client.
func respondServiceError(w http.ResponseWriter, err error) {
	var forbidden *service.ForbiddenError
	var invalid *entity.ValidationError
	switch {
	case errors.As(err, &invalid):
		respondError(w, http.StatusBadRequest, invalid.Error())
	case errors.Is(err, repository.ErrNotFound):
		respondError(w, http.StatusNotFound, "not found")
	case errors.Is(err, repository.ErrInsufficientStock):
		respondError(w, http.StatusBadRequest, "not enough quantity")
	case errors.Is(err, repository.ErrEmailTaken):
		respondError(w, http.StatusConflict, "email already registered")
	case errors.Is(err, service.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, "invalid email or password")
	case errors.Is(err, session.ErrNoSession):
		respondError(w, http.StatusUnauthorized, "Unauthorized")
	case errors.As(err, &forbidden):
		respondError(w, http.StatusForbidden, forbidden.Error())
	default:
		slog.Error("Request failed", "err", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}
