package middleware

import (
	"net/http"
	"strings"

	"github.com/otcheredev/hospital-console/internal/metrics"
	"github.com/otcheredev/hospital-console/internal/runtimeconfig"
	"github.com/otcheredev/hospital-console/internal/store"
)

const (
	SessionHeader = "X-Session-ID"
	SessionCookie = "hms_session"
)

// RuntimeConfig resolves the runtime configuration of every request once,
// from its Host and the caller's session store, and puts it on the context.
// s may be nil, in which case no session state is ever consulted.
func RuntimeConfig(resolver *runtimeconfig.Resolver, s store.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			var session store.Store
			if id := SessionID(r); id != "" && s != nil {
				session = store.NewScoped(s, "session:"+id)
				ctx = contextWithSession(ctx, session)
			}

			res := resolver.Resolve(ctx, &runtimeconfig.Env{Host: r.Host, Store: session})
			metrics.RuntimeResolutionsTotal.WithLabelValues(string(res.Source), string(res.Tier)).Inc()

			next.ServeHTTP(w, r.WithContext(WithResolution(ctx, res)))
		})
	}
}

// SessionID returns the caller's session id from the header or cookie
func SessionID(r *http.Request) string {
	if id := strings.TrimSpace(r.Header.Get(SessionHeader)); id != "" {
		return id
	}
	if c, err := r.Cookie(SessionCookie); err == nil {
		return strings.TrimSpace(c.Value)
	}
	return ""
}
