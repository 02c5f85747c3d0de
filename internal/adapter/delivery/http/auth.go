package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/render"
)

// userIDHeader carries the acting user, set by the upstream gateway after authentication.
const userIDHeader = "X-User-ID"

type ctxKey struct{}

// authenticate stores the acting user ID in the request context and rejects
// requests without a valid one.
func authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.ParseInt(r.Header.Get(userIDHeader), 10, 64)
		if err != nil || userID <= 0 {
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, unauthorizedResponse)
			return
		}

		next.ServeHTTP(w, r.WithContext(withUserID(r.Context(), userID)))
	})
}

func withUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, ctxKey{}, userID)
}

// userIDFromContext returns the acting user stored by authenticate.
func userIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(ctxKey{}).(int64)
	return userID, ok
}
