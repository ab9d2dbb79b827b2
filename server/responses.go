package server

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
	apperrors "github.com/wengro/greenhouse/internal/errors"
)

const contentTypeJSON = "application/json; charset=utf-8"

// envelope is the JSON shape every API response uses.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{Success: true, Data: data})
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Success: status < 400, Message: message})
}

// writeDomainError maps domain sentinel errors onto HTTP statuses. Anything
// unrecognised is logged and surfaces as a generic 500; no internal detail
// crosses the boundary.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case apperrors.Is(err, apperrors.ErrValidation),
		apperrors.Is(err, apperrors.ErrInvalidTweet),
		apperrors.Is(err, apperrors.ErrInvalidWallet),
		apperrors.Is(err, apperrors.ErrMissingParams):
		writeMessage(w, http.StatusBadRequest, err.Error())
	case apperrors.Is(err, apperrors.ErrUnauthenticated),
		apperrors.Is(err, apperrors.ErrSessionInvalid):
		writeMessage(w, http.StatusUnauthorized, "authentication required")
	case apperrors.Is(err, apperrors.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "not found")
	case apperrors.Is(err, apperrors.ErrAlreadySubmitted):
		writeMessage(w, http.StatusConflict, apperrors.ErrAlreadySubmitted.Error())
	default:
		log.Err(err).Msg("unhandled domain error")
		writeMessage(w, http.StatusInternalServerError, "internal server error")
	}
}
