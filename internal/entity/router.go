// Package entity defines the entities and errors used in the application.
// It includes the Router struct, which represents a monitored relay endpoint,
// the like ledger and user records, and the transient probe outcome.
package entity

import (
	"errors"
	"math"
	"time"
)

var (
	// ErrRouterNotFound is returned when a router with the specified ID cannot be found.
	ErrRouterNotFound = errors.New("router not found")
)

// Router represents a registered third-party relay/proxy endpoint being monitored.
type Router struct {
	ID           int64     // ID is the unique identifier of the router in the database.
	Name         string    // Name is the human readable name of the router.
	URL          string    // URL is the absolute endpoint address that gets probed.
	CreatorID    int64     // CreatorID is the ID of the user who registered the router.
	RouterHealth           // RouterHealth contains the result of the latest completed probe.
	LikeCount    int64     // LikeCount mirrors the number of like ledger entries for the router.
	CreatedAt    time.Time // CreatedAt is the timestamp when the router was created.
	UpdatedAt    time.Time // UpdatedAt is the timestamp when the router was last updated.
}

// RouterHealth contains the health fields of a router. They are always written together.
type RouterHealth struct {
	LastCheckedAt       *time.Time // LastCheckedAt is nil until the first probe completes.
	Reachable           bool       // Reachable reports whether the last probe succeeded.
	LatencyMs           *int64     // LatencyMs is nil if the router was never checked or the last check failed.
	HTTPStatus          *int       // HTTPStatus is the status code observed by the last probe, if any.
	ErrorKind           *ErrorKind // ErrorKind classifies the failure of the last probe.
	ConsecutiveFailures int        // ConsecutiveFailures counts failed probes since the last success.
}

// Target returns the probe target of the router.
func (r *Router) Target() ProbeTarget {
	return ProbeTarget{
		RouterID: r.ID,
		URL:      r.URL,
	}
}

// SortBy defines the order in which routers are listed.
type SortBy string

const (
	SortByCreated SortBy = "created"
	SortByLikes   SortBy = "likes"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100

	// MaxPage keeps the row offset of any normalized page within int.
	MaxPage = math.MaxInt/MaxPageSize + 1
)

// ListCriteria describes a page of routers to list.
type ListCriteria struct {
	SortBy    SortBy
	CreatedBy *int64 // CreatedBy restricts the result to routers created by the user.
	LikedBy   *int64 // LikedBy restricts the result to routers the user has liked.
	Page      int
	PageSize  int
}

// Normalize returns a copy of the criteria with the sort order defaulted
// and the pagination parameters clamped to their bounds.
func (c ListCriteria) Normalize() ListCriteria {
	if c.SortBy != SortByLikes {
		c.SortBy = SortByCreated
	}

	switch {
	case c.Page < 1:
		c.Page = 1
	case c.Page > MaxPage:
		c.Page = MaxPage
	}

	switch {
	case c.PageSize == 0:
		c.PageSize = DefaultPageSize
	case c.PageSize < 1:
		c.PageSize = 1
	case c.PageSize > MaxPageSize:
		c.PageSize = MaxPageSize
	}

	return c
}

// Offset returns the number of rows to skip for the criteria page.
// The criteria must be normalized.
func (c ListCriteria) Offset() int {
	return (c.Page - 1) * c.PageSize
}

// PageCount returns the number of pages needed to hold total routers.
func (c ListCriteria) PageCount(total int64) int {
	if total <= 0 || c.PageSize <= 0 {
		return 0
	}

	return int((total + int64(c.PageSize) - 1) / int64(c.PageSize))
}

// BeyondLastPage reports whether the criteria page holds none of total routers.
func (c ListCriteria) BeyondLastPage(total int64) bool {
	return c.Page > c.PageCount(total)
}

// RouterPage is a single page of routers together with pagination metadata.
type RouterPage struct {
	Routers   []Router
	Total     int64
	Page      int
	PageSize  int
	PageCount int
}

// NewRouterPage builds a page for the normalized criteria.
func NewRouterPage(routers []Router, total int64, c ListCriteria) *RouterPage {
	if routers == nil {
		routers = []Router{}
	}

	return &RouterPage{
		Routers:   routers,
		Total:     total,
		Page:      c.Page,
		PageSize:  c.PageSize,
		PageCount: c.PageCount(total),
	}
}
