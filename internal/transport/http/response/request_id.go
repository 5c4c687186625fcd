package response

import (
	"net/http"

	appCtx "github.com/baechuer/devevent-service/internal/pkg/context"
)

// RequestIDFromRequest prefers the id injected by the request-id middleware and
// falls back to the inbound header.
func RequestIDFromRequest(r *http.Request) string {
	if id := appCtx.GetRequestID(r.Context()); id != "" {
		return id
	}
	return r.Header.Get("X-Request-Id")
}
