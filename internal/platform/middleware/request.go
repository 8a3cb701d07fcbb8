// Package middleware provides the request-scoped context middleware shared
// by all routes.
package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"peoplebook/pkg/requestcontext"
)

// RequestContext tags every request with a request ID and captures the
// current time once, so all timestamps written during one request agree.
func RequestContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ctx = requestcontext.WithRequestID(ctx, uuid.NewString())
		ctx = requestcontext.WithTime(ctx, time.Now())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
