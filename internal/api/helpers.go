package api

import (
	"encoding/json"
	"net/http"

	"github.com/lucasmr/learnpulse/internal/errors"
	"github.com/lucasmr/learnpulse/internal/logger"
)

func respondJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log := logger.FromContext(r.Context())
		log.Error("failed to encode response: %v", err)
	}
}

func invalidTimeParam(name string) error {
	return errors.NewValidationError(name, "must be an RFC 3339 timestamp")
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errors.NewBadRequestError("invalid JSON body: " + err.Error())
	}
	return nil
}
