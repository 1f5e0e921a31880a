// internal/api/handler/actor.go
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
)

type actorKey struct{}

// ActorID extracts the acting user id from the X-User-ID header and stores
// it in the request context. Token verification happens upstream; this
// service only trusts the forwarded identity. Requests without the header
// are rejected before reaching any handler.
func ActorID(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get("X-User-ID")
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || id <= 0 {
				respondWithJSON(w, logger, http.StatusUnauthorized, map[string]string{"error": "Missing or invalid X-User-ID"})
				return
			}
			ctx := context.WithValue(r.Context(), actorKey{}, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// actorFromContext returns the acting user id stored by ActorID.
func actorFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(actorKey{}).(int64)
	return id, ok
}

// authorizeIssuer verifies the acting user is the issuer named in the
// request body. A mismatch is a 403, not a validation error.
func authorizeIssuer(w http.ResponseWriter, r *http.Request, logger *slog.Logger, issuerID int64) bool {
	actor, ok := actorFromContext(r.Context())
	if !ok || actor != issuerID {
		respondWithJSON(w, logger, http.StatusForbidden, map[string]string{"error": "Issuer does not match acting user"})
		return false
	}
	return true
}
