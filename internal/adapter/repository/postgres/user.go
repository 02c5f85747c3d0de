package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/vadimbarashkov/router-monitor/internal/entity"
)

type userDB struct {
	ID           int64     `db:"id"`
	InviteCode   string    `db:"invite_code"`
	InvitedBy    *int64    `db:"invited_by"`
	RewardPoints int64     `db:"reward_points"`
	CreatedAt    time.Time `db:"created_at"`
}

func (u *userDB) toEntity() *entity.User {
	return &entity.User{
		ID:           u.ID,
		InviteCode:   u.InviteCode,
		InvitedBy:    u.InvitedBy,
		RewardPoints: u.RewardPoints,
		CreatedAt:    u.CreatedAt,
	}
}

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Save(ctx context.Context, inviteCode string) (*entity.User, error) {
	const op = "adapter.repository.postgres.UserRepository.Save"
	const query = `INSERT INTO users(invite_code) VALUES ($1) RETURNING *`

	var user userDB

	if err := r.db.GetContext(ctx, &user, query, inviteCode); err != nil {
		if isUniqueViolationError(err) {
			return nil, fmt.Errorf("%s: %w", op, entity.ErrInviteCodeExists)
		}

		return nil, fmt.Errorf("%s: failed to insert into users table: %w", op, err)
	}

	return user.toEntity(), nil
}

func (r *UserRepository) RetrieveByID(ctx context.Context, id int64) (*entity.User, error) {
	const op = "adapter.repository.postgres.UserRepository.RetrieveByID"
	const query = `SELECT * FROM users WHERE id = $1`

	var user userDB

	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, entity.ErrUserNotFound)
		}

		return nil, fmt.Errorf("%s: failed to get row from users table: %w", op, err)
	}

	return user.toEntity(), nil
}

// ApplyInvite links the invitee to the owner of the invite code and credits the
// inviter with reward points. The inviter link is written at most once.
func (r *UserRepository) ApplyInvite(ctx context.Context, inviteeID int64, code string, reward int64) (*entity.User, error) {
	const op = "adapter.repository.postgres.UserRepository.ApplyInvite"
	const (
		lockQuery    = `SELECT * FROM users WHERE id = $1 FOR UPDATE`
		inviterQuery = `SELECT id FROM users WHERE invite_code = $1`
		linkQuery    = `UPDATE users SET invited_by = $1 WHERE id = $2 AND invited_by IS NULL RETURNING *`
		rewardQuery  = `UPDATE users SET reward_points = reward_points + $1 WHERE id = $2`
	)

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}
	defer tx.Rollback()

	var invitee userDB

	if err := tx.GetContext(ctx, &invitee, lockQuery, inviteeID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, entity.ErrUserNotFound)
		}

		return nil, fmt.Errorf("%s: failed to lock users table row: %w", op, err)
	}

	if invitee.InvitedBy != nil {
		return nil, fmt.Errorf("%s: %w", op, entity.ErrAlreadyInvited)
	}

	var inviterID int64

	if err := tx.GetContext(ctx, &inviterID, inviterQuery, code); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, entity.ErrInvalidInviteCode)
		}

		return nil, fmt.Errorf("%s: failed to get inviter: %w", op, err)
	}

	if inviterID == inviteeID {
		return nil, fmt.Errorf("%s: %w", op, entity.ErrSelfInvite)
	}

	var linked userDB

	if err := tx.GetContext(ctx, &linked, linkQuery, inviterID, inviteeID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, entity.ErrAlreadyInvited)
		}

		return nil, fmt.Errorf("%s: failed to link inviter: %w", op, err)
	}

	if _, err := tx.ExecContext(ctx, rewardQuery, reward, inviterID); err != nil {
		return nil, fmt.Errorf("%s: failed to reward inviter: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	return linked.toEntity(), nil
}
