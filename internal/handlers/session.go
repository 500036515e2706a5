package handlers

import (
	"net/http"

	"github.com/otcheredev/hospital-console/internal/middleware"
	"github.com/otcheredev/hospital-console/internal/store"
	"github.com/rs/zerolog/log"
)

// SessionHandler keeps the caller's bearer token in the session store, so
// later requests may authenticate with only the session id
type SessionHandler struct {
	auth *middleware.Authenticator
}

func NewSessionHandler(auth *middleware.Authenticator) *SessionHandler {
	return &SessionHandler{auth: auth}
}

type tokenRequest struct {
	Token string `json:"token"`
}

type sessionInfo struct {
	UserID         string `json:"userId"`
	OrganizationID string `json:"organizationId,omitempty"`
	Role           string `json:"role"`
}

// SetToken verifies and stores the token for the session
func (h *SessionHandler) SetToken(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSessionStore(r.Context())
	if session == nil {
		writeError(w, http.StatusBadRequest, "a session id is required")
		return
	}

	var req tokenRequest
	if err := decode(r, &req); err != nil || req.Token == "" {
		writeError(w, http.StatusBadRequest, "token is required")
		return
	}

	user, err := h.auth.Authenticate(req.Token)
	if err != nil {
		log.Warn().Err(err).Msg("Refused to store session token")
		writeError(w, http.StatusUnauthorized, "invalid bearer token")
		return
	}
	if res, ok := middleware.GetResolution(r.Context()); ok && !middleware.BelongsTo(user, res) {
		writeError(w, http.StatusForbidden, "token does not belong to this organization")
		return
	}

	if err := session.Set(r.Context(), store.KeyAuthToken, req.Token); err != nil {
		log.Error().Err(err).Msg("Failed to store session token")
		writeError(w, http.StatusInternalServerError, "failed to store session token")
		return
	}
	writeOK(w, http.StatusOK, sessionInfo{
		UserID:         user.UserID,
		OrganizationID: user.OrganizationID,
		Role:           user.Role,
	})
}

// ClearToken signs the session out
func (h *SessionHandler) ClearToken(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSessionStore(r.Context())
	if session == nil {
		writeError(w, http.StatusBadRequest, "a session id is required")
		return
	}

	if err := session.Delete(r.Context(), store.KeyAuthToken); err != nil {
		log.Error().Err(err).Msg("Failed to clear session token")
		writeError(w, http.StatusInternalServerError, "failed to clear session token")
		return
	}
	writeOK[any](w, http.StatusOK, nil)
}
