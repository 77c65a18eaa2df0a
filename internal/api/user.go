package api

import (
	"errors"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"blogspend/m/internal/logging"
	"blogspend/m/internal/store"
	"blogspend/m/internal/validation"
)

type tokenResponse struct {
	JWT string `json:"jwt"`
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	var in validation.SignupInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := in.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to secure password")
		return
	}

	id, err := h.store.CreateUser(in.Firstname, in.Lastname, in.Email, string(hashed))
	if errors.Is(err, store.ErrDuplicateEmail) {
		respondError(w, http.StatusConflict, "email already exists")
		return
	}
	if err != nil {
		logging.Logger.Errorf("signup failed: %v", err)
		respondError(w, http.StatusInternalServerError, "unable to create user")
		return
	}

	tok, err := h.tokens.Issue(id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to generate token")
		return
	}
	respondJSON(w, http.StatusOK, tokenResponse{JWT: tok})
}

func (h *Handler) signin(w http.ResponseWriter, r *http.Request) {
	var in validation.SigninInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := in.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.store.UserByEmail(in.Email)
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusForbidden, "incorrect credentials")
		return
	}
	if err != nil {
		logging.Logger.Errorf("signin failed: %v", err)
		respondError(w, http.StatusInternalServerError, "unable to sign in")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)) != nil {
		respondError(w, http.StatusForbidden, "incorrect credentials")
		return
	}

	tok, err := h.tokens.Issue(user.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to generate token")
		return
	}
	respondJSON(w, http.StatusOK, tokenResponse{JWT: tok})
}
