package entity

import "time"

// Like is a single entry of the like ledger. A user can like a router at most once.
type Like struct {
	UserID    int64
	RouterID  int64
	CreatedAt time.Time
}
