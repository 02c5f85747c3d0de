// Package usecase holds the application logic of the router monitor. Use cases
// depend on small consumer-side interfaces and are driven by the HTTP layer
// and the scheduler.
package usecase

import "errors"

var ErrMaxRetriesExceeded = errors.New("maximum retries exceeded for generating invite code")
