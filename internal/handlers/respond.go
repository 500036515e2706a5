package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/otcheredev/hospital-console/internal/apiclient"
	"github.com/otcheredev/hospital-console/internal/features"
	"github.com/otcheredev/hospital-console/internal/models"
	"github.com/otcheredev/hospital-console/internal/navigation"
	"github.com/rs/zerolog/log"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

func writeOK[T any](w http.ResponseWriter, status int, data T) {
	writeJSON(w, status, models.OK(data))
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, models.Fail(message))
}

// writeFailure maps err onto a status code and logs it. Upstream client
// errors keep their status, upstream server and parse errors become 502.
func writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	status, message := classify(err)

	event := log.Warn()
	if status >= http.StatusInternalServerError {
		event = log.Error()
	}
	event.Err(err).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Str("request_id", chimiddleware.GetReqID(r.Context())).
		Msg("Request failed")

	writeError(w, status, message)
}

func classify(err error) (int, string) {
	var te *apiclient.TransportError
	switch {
	case errors.As(err, &te):
		if te.StatusCode >= 400 && te.StatusCode < 500 {
			return te.StatusCode, upstreamMessage(te)
		}
		return http.StatusBadGateway, "hospital API error"
	case apiclient.IsParseError(err):
		return http.StatusBadGateway, "hospital API returned an unreadable response"
	case errors.Is(err, navigation.ErrRoleDisabled):
		return http.StatusForbidden, err.Error()
	case errors.Is(err, navigation.ErrUnknownRole):
		return http.StatusInternalServerError, err.Error()
	case errors.Is(err, features.ErrUnknownTier):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusBadGateway, "hospital API unavailable"
	}
}

// upstreamMessage passes through a short {"message": ...} body if the API
// sent one
func upstreamMessage(te *apiclient.TransportError) string {
	var body struct {
		Message string `json:"message"`
	}
	if json.Unmarshal([]byte(te.Body), &body) == nil && body.Message != "" {
		return body.Message
	}
	return http.StatusText(te.StatusCode)
}

func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
