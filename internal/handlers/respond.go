// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the JSON API surface. Handlers decode and
// validate input, consult the permission policies with the actor loaded
// by the middleware, and delegate writes to the stores. Error
// classification happens once, in respondError.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"reviewhub/internal/errs"
	"reviewhub/internal/permissions"
)

// errorBody is the wire form of a request error.
type errorBody struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// respondJSON writes v as a JSON response with the given status.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			slog.Error("response encode failed", "error", err)
		}
	}
}

// respondError maps the error taxonomy to HTTP statuses. Unclassified
// errors are logged and returned as opaque 500s.
func respondError(w http.ResponseWriter, err error) {
	var e *errs.Error
	body := errorBody{Error: "internal server error"}
	status := http.StatusInternalServerError

	switch errs.KindOf(err) {
	case errs.KindValidation:
		status = http.StatusBadRequest
	case errs.KindConflict:
		status = http.StatusConflict
	case errs.KindAuthentication:
		status = http.StatusUnauthorized
	case errs.KindNotFound:
		status = http.StatusNotFound
	case errs.KindPermission:
		status = http.StatusForbidden
	default:
		slog.Error("request failed", "error", err)
		respondJSON(w, status, body)
		return
	}

	if errors.As(err, &e) {
		body.Error = e.Msg
		body.Field = e.Field
	}
	respondJSON(w, status, body)
}

// respondDenied writes the policy-denial response: 403 for an
// authenticated actor, 401 for an anonymous one (not authenticated at
// all, rather than not allowed).
func respondDenied(w http.ResponseWriter, actor permissions.Actor) {
	if actor.Authenticated {
		respondError(w, errs.Permission("you do not have permission to perform this action"))
		return
	}
	respondError(w, errs.Authentication("authentication required"))
}

// decodeJSON decodes the request body into dst, rejecting unparseable
// payloads as validation errors.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errs.Validation("body", "invalid JSON payload")
	}
	return nil
}
