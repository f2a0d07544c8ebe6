// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"reviewhub/internal/auth"
)

// Auth groups the signup and token-exchange HTTP handlers.
type Auth struct {
	service *auth.Service
}

// NewAuth creates a new Auth handler group.
func NewAuth(service *auth.Service) *Auth {
	return &Auth{service: service}
}

// Signup handles POST /api/v1/auth/signup. The confirmation code is
// dispatched by email; nothing secret appears in the response.
func (a *Auth) Signup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if err := a.service.RequestSignup(r.Context(), req.Username, req.Email); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"username": req.Username,
		"email":    req.Email,
	})
}

// Token handles POST /api/v1/auth/token, exchanging a valid
// (username, confirmation_code) pair for a bearer token.
func (a *Auth) Token(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Code     string `json:"confirmation_code"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	tok, err := a.service.RedeemToken(r.Context(), req.Username, req.Code)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"token": tok})
}
