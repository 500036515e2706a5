package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/otcheredev/hospital-console/internal/features"
	"github.com/otcheredev/hospital-console/internal/models"
	"github.com/otcheredev/hospital-console/internal/runtimeconfig"
	"github.com/otcheredev/hospital-console/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func signToken(t *testing.T, claims models.JWTClaims, method jwt.SigningMethod, key any) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func validClaims(role string) models.JWTClaims {
	return models.JWTClaims{
		UserID:         "u-1",
		OrganizationID: "org-1",
		Role:           role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func newResolver(t *testing.T) *runtimeconfig.Resolver {
	t.Helper()
	r, err := runtimeconfig.NewResolver(features.DefaultCatalog(), runtimeconfig.Options{
		Tenants: []runtimeconfig.Tenant{
			{ID: "stmary", Tier: features.TierClinic, Domains: []string{"stmary.clinic"}},
		},
	})
	require.NoError(t, err)
	return r
}

func TestAuth(t *testing.T) {
	var got models.UserContext
	handler := Auth(testSecret, "")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = GetUser(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	expired := validClaims("nurse")
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"valid", "Bearer " + signToken(t, validClaims("nurse"), jwt.SigningMethodHS256, testSecret), http.StatusNoContent},
		{"missing", "", http.StatusUnauthorized},
		{"not bearer", "Basic dXNlcjpwYXNz", http.StatusUnauthorized},
		{"wrong secret", "Bearer " + signToken(t, validClaims("nurse"), jwt.SigningMethodHS256, []byte("other")), http.StatusUnauthorized},
		{"wrong algorithm", "Bearer " + signToken(t, validClaims("nurse"), jwt.SigningMethodHS512, testSecret), http.StatusUnauthorized},
		{"expired", "Bearer " + signToken(t, expired, jwt.SigningMethodHS256, testSecret), http.StatusUnauthorized},
		{"no role", "Bearer " + signToken(t, validClaims(""), jwt.SigningMethodHS256, testSecret), http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/navigation", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}

	assert.Equal(t, "u-1", got.UserID)
	assert.Equal(t, "org-1", got.OrganizationID)
	assert.Equal(t, "nurse", got.Role)
	assert.NotEmpty(t, got.Token)
}

func TestAuth_SessionTokenFallback(t *testing.T) {
	backing := store.NewMemoryStore()
	token := signToken(t, validClaims("doctor"), jwt.SigningMethodHS256, testSecret)
	require.NoError(t, store.NewScoped(backing, "session:abc").Set(context.Background(), store.KeyAuthToken, token))

	var got models.UserContext
	handler := RuntimeConfig(newResolver(t), backing)(
		Auth(testSecret, "")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, _ = GetUser(r.Context())
		})))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/navigation", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "abc"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "doctor", got.Role)
	assert.Equal(t, token, got.Token)
}

func TestRuntimeConfig(t *testing.T) {
	backing := store.NewMemoryStore()
	_, err := runtimeconfig.SetOverride(context.Background(), store.NewScoped(backing, "session:dev"), "big_hospital")
	require.NoError(t, err)

	var got runtimeconfig.Resolution
	handler := RuntimeConfig(newResolver(t), backing)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = GetResolution(r.Context())
	}))

	tests := []struct {
		name    string
		host    string
		session string
		tier    features.Tier
		source  runtimeconfig.Source
	}{
		{"tenant domain", "stmary.clinic", "dev", features.TierClinic, runtimeconfig.SourceDomain},
		{"local override", "localhost:3000", "dev", features.TierBigHospital, runtimeconfig.SourceOverride},
		{"local without session", "localhost:3000", "", features.TierHospital, runtimeconfig.SourceDefault},
		{"other session", "localhost", "someone-else", features.TierHospital, runtimeconfig.SourceDefault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/runtime", nil)
			req.Host = tt.host
			if tt.session != "" {
				req.Header.Set(SessionHeader, tt.session)
			}
			handler.ServeHTTP(httptest.NewRecorder(), req)
			assert.Equal(t, tt.tier, got.Tier)
			assert.Equal(t, tt.source, got.Source)
		})
	}
}

func TestRequireFeature(t *testing.T) {
	handler := RuntimeConfig(newResolver(t), nil)(
		RequireFeature(features.BedManagement)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/beds", nil)
	req.Host = "stmary.clinic"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	var body models.APIResponse[any]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Contains(t, body.Message, "bedManagement")

	req = httptest.NewRequest(http.MethodGet, "/api/v1/beds", nil)
	req.Host = "hospital.example"
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestAuth_OrganizationMustOwnHost(t *testing.T) {
	handler := RuntimeConfig(newResolver(t), nil)(
		Auth(testSecret, "")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})))

	send := func(host, organization string) int {
		claims := validClaims("doctor")
		claims.OrganizationID = organization
		req := httptest.NewRequest(http.MethodGet, "/api/v1/navigation", nil)
		req.Host = host
		req.Header.Set("Authorization", "Bearer "+signToken(t, claims, jwt.SigningMethodHS256, testSecret))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusNoContent, send("stmary.clinic", "stmary"))
	assert.Equal(t, http.StatusForbidden, send("stmary.clinic", "org-1"))
	assert.Equal(t, http.StatusNoContent, send("hospital.example", "org-1"))
}

func TestBelongsTo(t *testing.T) {
	tests := []struct {
		name   string
		org    string
		source runtimeconfig.Source
		want   bool
	}{
		{"same tenant", "stmary", runtimeconfig.SourceDomain, true},
		{"case folded", "StMary", runtimeconfig.SourceSubdomain, true},
		{"other tenant", "korlebu", runtimeconfig.SourceDomain, false},
		{"other tenant on subdomain", "korlebu", runtimeconfig.SourceSubdomain, false},
		{"no organization", "", runtimeconfig.SourceDomain, true},
		{"default host", "korlebu", runtimeconfig.SourceDefault, true},
		{"local override", "korlebu", runtimeconfig.SourceOverride, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := models.UserContext{UserID: "u-1", OrganizationID: tt.org, Role: "doctor"}
			res := runtimeconfig.Resolution{Source: tt.source, TenantID: "stmary"}
			assert.Equal(t, tt.want, BelongsTo(user, res))
		})
	}
}

func TestRequireRole(t *testing.T) {
	handler := RequireRole(features.RoleAdmin, features.RoleDoctor)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	send := func(role string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/console/audit-logs", nil)
		if role != "" {
			req = req.WithContext(WithUser(req.Context(), models.UserContext{UserID: "u-1", Role: role}))
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusNoContent, send("admin").Code)
	assert.Equal(t, http.StatusNoContent, send("Doctor").Code)
	assert.Equal(t, http.StatusUnauthorized, send("").Code)
	assert.Equal(t, http.StatusForbidden, send("nurse").Code)
	assert.Equal(t, http.StatusForbidden, send("janitor").Code)

	var body models.APIResponse[any]
	require.NoError(t, json.Unmarshal(send("patient").Body.Bytes(), &body))
	assert.Contains(t, body.Message, "patient")
}

func TestRecovery(t *testing.T) {
	handler := Recovery(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":false`)
}

func TestLogging_PassesThrough(t *testing.T) {
	handler := Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/brew", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}
