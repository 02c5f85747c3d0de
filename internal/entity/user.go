package entity

import (
	"errors"
	"time"
)

var (
	// ErrUserNotFound is returned when a user with the specified ID cannot be found.
	ErrUserNotFound = errors.New("user not found")
	// ErrInviteCodeExists is returned when a generated invite code collides with an existing one.
	ErrInviteCodeExists = errors.New("invite code exists")
	// ErrInvalidInviteCode is returned when an invite code does not belong to any user.
	ErrInvalidInviteCode = errors.New("invalid invite code")
	// ErrAlreadyInvited is returned when the invitee already has a recorded inviter.
	ErrAlreadyInvited = errors.New("user already invited")
	// ErrSelfInvite is returned when a user applies their own invite code.
	ErrSelfInvite = errors.New("self invite")
)

// User is the part of a user account this service owns: the invite linkage and rewards.
type User struct {
	ID           int64     // ID is the unique identifier of the user.
	InviteCode   string    // InviteCode is the code other users apply to credit this user.
	InvitedBy    *int64    // InvitedBy is written once, when the user applies someone's invite code.
	RewardPoints int64     // RewardPoints accumulates the invitation rewards of the user.
	CreatedAt    time.Time // CreatedAt is the timestamp when the user was created.
}
