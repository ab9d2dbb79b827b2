package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	apperrors "github.com/wengro/greenhouse/internal/errors"
	"github.com/wengro/greenhouse/users"
)

// ListUsersHandler returns every registered profile, newest joined first.
func (s *Server) ListUsersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		all, err := s.users.List(r.Context())
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeData(w, http.StatusOK, all)
	}
}

// GetUserHandler looks a profile up by handle, case-insensitively.
func (s *Server) GetUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := s.users.GetByHandle(r.Context(), r.PathValue("handle"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeData(w, http.StatusOK, user)
	}
}

// RegisterUserHandler upserts the caller's profile. The handle always comes
// from the authenticated session, never from the request body, so nobody can
// register a profile for an identity they didn't log in as.
func (s *Server) RegisterUserHandler() http.HandlerFunc {
	type registerRequest struct {
		TelegramHandle  string `json:"telegramHandle"`
		XHandleReferral string `json:"xHandleReferral"`
		KaitoYaps       bool   `json:"kaitoYaps"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var body registerRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeMessage(w, http.StatusBadRequest, "invalid request body")
			return
		}

		telegram := users.NormalizeContactHandle(body.TelegramHandle)
		if telegram == "" {
			writeDomainError(w, fmt.Errorf("%w: telegramHandle is required", apperrors.ErrValidation))
			return
		}

		user := &users.User{
			XHandle:         HandleFromContext(r.Context()),
			TelegramHandle:  telegram,
			XHandleReferral: users.NormalizeContactHandle(body.XHandleReferral),
			HasKaitoYaps:    body.KaitoYaps,
		}

		stored, err := s.users.Upsert(r.Context(), user)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeData(w, http.StatusCreated, stored)
	}
}

// ConnectWalletHandler attaches a wallet address to the caller's profile.
func (s *Server) ConnectWalletHandler() http.HandlerFunc {
	type walletRequest struct {
		WalletAddress string `json:"walletAddress"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var body walletRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeMessage(w, http.StatusBadRequest, "invalid request body")
			return
		}

		if !users.ValidWalletAddress(body.WalletAddress) {
			writeDomainError(w, fmt.Errorf("%w: %q", apperrors.ErrInvalidWallet, body.WalletAddress))
			return
		}

		stored, err := s.users.SetWallet(r.Context(), HandleFromContext(r.Context()), body.WalletAddress)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeData(w, http.StatusOK, stored)
	}
}
