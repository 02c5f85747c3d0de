package entity

import "time"

// ErrorKind classifies why a probe did not reach its target.
type ErrorKind string

const (
	ErrorKindTimeout           ErrorKind = "timeout"
	ErrorKindConnectionRefused ErrorKind = "connection-refused"
	ErrorKindDNSFailure        ErrorKind = "dns-failure"
	ErrorKindTLSFailure        ErrorKind = "tls-failure"
	ErrorKindNon2xx            ErrorKind = "non-2xx"
	ErrorKindUnknown           ErrorKind = "unknown"
	// ErrorKindCanceled marks a target that was never probed because the batch was cut short.
	ErrorKindCanceled ErrorKind = "canceled"
)

// ProbeTarget is the address of a single health check.
type ProbeTarget struct {
	RouterID int64
	URL      string
}

// ProbeOutcome is the result of one health check attempt. It is never persisted as is.
type ProbeOutcome struct {
	RouterID   int64
	Reachable  bool
	LatencyMs  *int64
	HTTPStatus *int
	CheckedAt  time.Time
	ErrorKind  ErrorKind // ErrorKind is empty when the target was reachable.
}

// Completed reports whether the outcome comes from an actual network attempt.
func (o ProbeOutcome) Completed() bool {
	return o.ErrorKind != ErrorKindCanceled
}

// Health converts the outcome into router health fields. The failure counter is
// left to the persistence layer, which updates it atomically.
func (o ProbeOutcome) Health() RouterHealth {
	checkedAt := o.CheckedAt

	h := RouterHealth{
		LastCheckedAt: &checkedAt,
		Reachable:     o.Reachable,
		HTTPStatus:    o.HTTPStatus,
	}

	if o.Reachable {
		h.LatencyMs = o.LatencyMs
	} else {
		kind := o.ErrorKind
		h.ErrorKind = &kind
	}

	return h
}

// CheckReport is the result of a check pass over a set of routers.
type CheckReport struct {
	Routers  []Router       // Routers are the routers whose health fields were updated.
	Outcomes []ProbeOutcome // Outcomes holds exactly one entry per probed router.
}
