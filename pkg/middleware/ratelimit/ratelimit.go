// Package ratelimit throttles expensive endpoints with a shared token bucket.
package ratelimit

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/render"
	"golang.org/x/time/rate"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

var tooManyRequestsResponse = errorResponse{
	Error:   "rate_limited",
	Message: "too many requests",
}

// New returns a middleware that admits one request per every, with bursts of
// up to burst requests. A zero every disables limiting.
func New(every time.Duration, burst int) func(http.Handler) http.Handler {
	if every <= 0 {
		return func(next http.Handler) http.Handler {
			return next
		}
	}
	if burst <= 0 {
		burst = 1
	}

	return Middleware(rate.NewLimiter(rate.Every(every), burst))
}

// Middleware rejects requests with 429 and a Retry-After header once limiter
// runs out of tokens.
func Middleware(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter(limiter)))

				render.Status(r, http.StatusTooManyRequests)
				render.JSON(w, r, tooManyRequestsResponse)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func retryAfter(limiter *rate.Limiter) int {
	reservation := limiter.Reserve()
	delay := reservation.Delay()
	reservation.Cancel()

	return max(1, int(math.Ceil(delay.Seconds())))
}
