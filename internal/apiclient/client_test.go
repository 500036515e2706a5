package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/otcheredev/hospital-console/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captured struct {
	Method        string
	Path          string
	Authorization string
	ContentType   string
	Body          string
}

// recorder is an upstream fake that records every request and replies with
// a fixed status and body.
type recorder struct {
	mu       sync.Mutex
	requests []captured
	status   int
	body     string
}

func (r *recorder) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	body, _ := io.ReadAll(req.Body)
	r.mu.Lock()
	r.requests = append(r.requests, captured{
		Method:        req.Method,
		Path:          req.URL.Path,
		Authorization: req.Header.Get("Authorization"),
		ContentType:   req.Header.Get("Content-Type"),
		Body:          string(body),
	})
	r.mu.Unlock()

	w.WriteHeader(r.status)
	io.WriteString(w, r.body)
}

func (r *recorder) last() captured {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.requests[len(r.requests)-1]
}

func (r *recorder) all() []captured {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]captured(nil), r.requests...)
}

func newFake(t *testing.T, status int, body string) (*recorder, *httptest.Server) {
	rec := &recorder{status: status, body: body}
	srv := httptest.NewServer(rec)
	t.Cleanup(srv.Close)
	return rec, srv
}

func TestSetTokenAddsBearerToEveryVerb(t *testing.T) {
	rec, srv := newFake(t, http.StatusOK, `{"ok":true}`)
	c := New(srv.URL)
	c.SetToken("abc")
	ctx := context.Background()

	require.NoError(t, c.Get(ctx, "/patients", nil))
	assert.Equal(t, "Bearer abc", rec.last().Authorization)

	require.NoError(t, c.Post(ctx, "/patients", map[string]string{"a": "b"}, nil))
	assert.Equal(t, "Bearer abc", rec.last().Authorization)

	require.NoError(t, c.Put(ctx, "/patients/1", map[string]string{"a": "b"}, nil))
	assert.Equal(t, "Bearer abc", rec.last().Authorization)

	require.NoError(t, c.Delete(ctx, "/patients/1"))
	assert.Equal(t, "Bearer abc", rec.last().Authorization)

	for _, r := range rec.all() {
		assert.Equal(t, "application/json", r.ContentType, r.Method)
	}
}

func TestTokenFallsBackToStore(t *testing.T) {
	rec, srv := newFake(t, http.StatusOK, `[]`)
	s := store.NewMemoryStore()
	c := New(srv.URL, WithStore(s))
	ctx := context.Background()

	require.NoError(t, c.Get(ctx, "/beds", nil))
	assert.Empty(t, rec.last().Authorization)

	require.NoError(t, s.Set(ctx, store.KeyAuthToken, "persisted"))
	require.NoError(t, c.Get(ctx, "/beds", nil))
	assert.Equal(t, "Bearer persisted", rec.last().Authorization)

	c.SetToken("explicit")
	require.NoError(t, c.Get(ctx, "/beds", nil))
	assert.Equal(t, "Bearer explicit", rec.last().Authorization)

	c.SetToken("")
	require.NoError(t, c.Get(ctx, "/beds", nil))
	assert.Equal(t, "Bearer persisted", rec.last().Authorization)
}

func TestCloneDoesNotShareToken(t *testing.T) {
	rec, srv := newFake(t, http.StatusOK, `{}`)
	base := New(srv.URL)
	base.SetToken("base")

	clone := base.Clone()
	clone.SetToken("session")
	ctx := context.Background()

	require.NoError(t, clone.Get(ctx, "/users", nil))
	assert.Equal(t, "Bearer session", rec.last().Authorization)

	require.NoError(t, base.Get(ctx, "/users", nil))
	assert.Equal(t, "Bearer base", rec.last().Authorization)
}

func TestPostSendsJSONBody(t *testing.T) {
	rec, srv := newFake(t, http.StatusCreated, `{"id":"p-1"}`)
	c := New(srv.URL)

	var out struct {
		ID string `json:"id"`
	}
	err := c.Post(context.Background(), "/patients", map[string]string{"firstName": "Ama"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "p-1", out.ID)

	var sent map[string]string
	require.NoError(t, json.Unmarshal([]byte(rec.last().Body), &sent))
	assert.Equal(t, "Ama", sent["firstName"])
}

func TestNonSuccessIsTransportError(t *testing.T) {
	_, srv := newFake(t, http.StatusNotFound, `Patient not found`)
	c := New(srv.URL)

	var out map[string]any
	err := c.Get(context.Background(), "/patients/404", &out)
	require.Error(t, err)

	var te *TransportError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, http.StatusNotFound, te.StatusCode)
	assert.Equal(t, "Patient not found", te.Body)
	assert.Equal(t, "API error 404: Patient not found", err.Error())
	assert.True(t, IsNotFound(err))
}

func TestDeleteFailure(t *testing.T) {
	_, srv := newFake(t, http.StatusConflict, `{"error":"bed occupied"}`)
	c := New(srv.URL)

	err := c.Delete(context.Background(), "/beds/1")
	code, ok := StatusCode(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, code)
	assert.False(t, IsNotFound(err))
}

func TestDeleteIgnoresEmptyBody(t *testing.T) {
	_, srv := newFake(t, http.StatusNoContent, ``)
	c := New(srv.URL)
	assert.NoError(t, c.Delete(context.Background(), "/beds/1"))
}

func TestSuccessWithBadBodyIsParseError(t *testing.T) {
	tests := []struct {
		name string
		body string
		out  any
	}{
		{"empty body with target", "", &map[string]any{}},
		{"empty body without target", "   ", nil},
		{"html body", "<html>oops</html>", &map[string]any{}},
		{"html body without target", "<html>oops</html>", nil},
		{"null into struct", "null", &map[string]any{}},
		{"null into slice", " null\n", &[]map[string]any{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, srv := newFake(t, http.StatusOK, tt.body)
			c := New(srv.URL)

			err := c.Get(context.Background(), "/patients", tt.out)
			require.Error(t, err)
			assert.True(t, IsParseError(err))
			_, isTransport := StatusCode(err)
			assert.False(t, isTransport)
		})
	}
}

func TestNullBodyWithoutTarget(t *testing.T) {
	_, srv := newFake(t, http.StatusOK, `null`)
	c := New(srv.URL)
	assert.NoError(t, c.Get(context.Background(), "/patients", nil))
}

func TestNoRetryOnServerError(t *testing.T) {
	rec, srv := newFake(t, http.StatusServiceUnavailable, `down`)
	c := New(srv.URL)

	err := c.Get(context.Background(), "/patients", nil)
	require.Error(t, err)
	assert.Len(t, rec.all(), 1)
}

func TestCancelledContext(t *testing.T) {
	_, srv := newFake(t, http.StatusOK, `{}`)
	c := New(srv.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.Get(ctx, "/patients", nil)
	require.Error(t, err)
	_, isTransport := StatusCode(err)
	assert.False(t, isTransport)
}
