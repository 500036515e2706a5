package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/otcheredev/hospital-console/internal/features"
	"github.com/otcheredev/hospital-console/internal/models"
	"github.com/otcheredev/hospital-console/internal/runtimeconfig"
	"github.com/otcheredev/hospital-console/internal/store"
	"github.com/rs/zerolog/log"
)

// ErrInvalidToken is returned for bearer tokens that fail verification
var ErrInvalidToken = errors.New("invalid bearer token")

// Authenticator verifies HS256 bearer tokens
type Authenticator struct {
	parser *jwt.Parser
	secret []byte
}

// NewAuthenticator creates an authenticator for tokens signed with secret.
// An empty issuer accepts any issuer.
func NewAuthenticator(secret []byte, issuer string) *Authenticator {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	return &Authenticator{parser: jwt.NewParser(opts...), secret: secret}
}

// Authenticate verifies raw and returns the user it was issued to
func (a *Authenticator) Authenticate(raw string) (models.UserContext, error) {
	claims := &models.JWTClaims{}
	if _, err := a.parser.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	}); err != nil {
		return models.UserContext{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	userID := claims.UserID
	if userID == "" {
		userID = claims.Subject
	}
	if userID == "" || claims.Role == "" {
		return models.UserContext{}, fmt.Errorf("%w: missing user or role", ErrInvalidToken)
	}

	return models.UserContext{
		UserID:         userID,
		OrganizationID: claims.OrganizationID,
		Role:           claims.Role,
		Token:          raw,
	}, nil
}

// Auth validates the caller's bearer token. The token is taken from the
// Authorization header, falling back to the one persisted in the session
// store. A token bound to an organization is only accepted on that
// organization's own hosts.
func Auth(secret []byte, issuer string) func(http.Handler) http.Handler {
	return NewAuthenticator(secret, issuer).Middleware
}

// Middleware is Auth over a
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := bearerToken(r)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to read session token")
			writeError(w, http.StatusInternalServerError, "failed to read session")
			return
		}
		if raw == "" {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		user, err := a.Authenticate(raw)
		if err != nil {
			log.Warn().Err(err).Msg("Rejected bearer token")
			writeError(w, http.StatusUnauthorized, "invalid bearer token")
			return
		}

		if res, ok := GetResolution(r.Context()); ok && !BelongsTo(user, res) {
			log.Warn().
				Str("user_id", user.UserID).
				Str("organization_id", user.OrganizationID).
				Str("tenant_id", res.TenantID).
				Msg("Token used on another tenant's host")
			writeError(w, http.StatusForbidden, "token does not belong to this organization")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

// BelongsTo reports whether user may act on the tenant of res. Only hosts
// that resolved to a registered tenant are bound to an organization.
func BelongsTo(user models.UserContext, res runtimeconfig.Resolution) bool {
	if user.OrganizationID == "" {
		return true
	}
	switch res.Source {
	case runtimeconfig.SourceDomain, runtimeconfig.SourceSubdomain:
		return strings.EqualFold(user.OrganizationID, res.TenantID)
	default:
		return true
	}
}

func bearerToken(r *http.Request) (string, error) {
	if h := r.Header.Get("Authorization"); h != "" {
		token, ok := strings.CutPrefix(h, "Bearer ")
		if !ok {
			return "", nil
		}
		return strings.TrimSpace(token), nil
	}

	s := GetSessionStore(r.Context())
	if s == nil {
		return "", nil
	}
	token, err := s.Get(r.Context(), store.KeyAuthToken)
	if errors.Is(err, store.ErrNotFound) {
		return "", nil
	}
	return token, err
}

// RequireFeature rejects requests whose tier does not enable f
func RequireFeature(f features.Feature) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			res, ok := GetResolution(r.Context())
			if !ok || !res.Features.Enabled(f) {
				writeError(w, http.StatusForbidden, "feature "+string(f)+" is not enabled")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole rejects authenticated users outside roles
func RequireRole(roles ...features.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := GetUser(r.Context())
			if !ok {
				writeError(w, http.StatusUnauthorized, "not authenticated")
				return
			}
			role, known := features.ParseRole(user.Role)
			if known {
				for _, allowed := range roles {
					if role == allowed {
						next.ServeHTTP(w, r)
						return
					}
				}
			}
			writeError(w, http.StatusForbidden, "role "+user.Role+" may not access this resource")
		})
	}
}
