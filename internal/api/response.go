// SkinMatch - Skincare Recommendation and Deal Aggregation
// Copyright 2026 Velora Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/velora-labs/skinmatch

package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/velora-labs/skinmatch/internal/logging"
	"github.com/velora-labs/skinmatch/internal/models"
)

// maxRequestBody caps decoded request bodies at 1 MiB.
const maxRequestBody = 1 << 20

// Error codes returned by the API.
const (
	ErrCodeValidation     = "VALIDATION_ERROR"
	ErrCodeBadRequest     = "BAD_REQUEST"
	ErrCodeAuthentication = "AUTHENTICATION_ERROR"
	ErrCodeNotFound       = "NOT_FOUND"
	ErrCodeInternal       = "INTERNAL_ERROR"
)

func respondJSON(w http.ResponseWriter, status int, resp models.APIResponse) {
	resp.Metadata.Timestamp = time.Now().UTC()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logging.Error().Err(err).Msg("Failed to encode response")
	}
}

func respondSuccess(w http.ResponseWriter, data interface{}) {
	respondJSON(w, http.StatusOK, models.APIResponse{Status: "success", Data: data})
}

func respondCached(w http.ResponseWriter, data interface{}, cached bool) {
	respondJSON(w, http.StatusOK, models.APIResponse{
		Status:   "success",
		Data:     data,
		Metadata: models.Metadata{Cached: cached},
	})
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, models.APIResponse{
		Status: "error",
		Error:  &models.APIError{Code: code, Message: message},
	})
}

func respondAPIError(w http.ResponseWriter, status int, apiErr *models.APIError) {
	respondJSON(w, status, models.APIResponse{Status: "error", Error: apiErr})
}

// decodeJSON reads and decodes a request body, rejecting unknown
// fields and oversized payloads.
func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxRequestBody))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("request body is empty")
		}
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return nil
}
