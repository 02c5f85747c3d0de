package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/vadimbarashkov/router-monitor/internal/entity"
)

// LikeRepository maintains the like ledger together with the denormalized
// like counter of routers. Both always change in the same transaction.
type LikeRepository struct {
	db *sqlx.DB
}

func NewLikeRepository(db *sqlx.DB) *LikeRepository {
	return &LikeRepository{db: db}
}

// Like records the like of the user and increments the router counter.
// It reports false if the user had already liked the router.
func (r *LikeRepository) Like(ctx context.Context, userID, routerID int64) (bool, error) {
	const op = "adapter.repository.postgres.LikeRepository.Like"
	const (
		insertQuery = `INSERT INTO likes(user_id, router_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
		updateQuery = `UPDATE routers SET like_count = like_count + 1 WHERE id = $1`
	)

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, insertQuery, userID, routerID)
	if err != nil {
		if isForeignKeyViolationError(err) {
			return false, fmt.Errorf("%s: %w", op, entity.ErrRouterNotFound)
		}

		return false, fmt.Errorf("%s: failed to insert into likes table: %w", op, err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: failed to get number of affected rows: %w", op, err)
	}

	if rowsAffected == 0 {
		return false, nil
	}

	if _, err := tx.ExecContext(ctx, updateQuery, routerID); err != nil {
		return false, fmt.Errorf("%s: failed to increment like count: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	return true, nil
}

// Unlike removes the like of the user and decrements the router counter.
// It reports false if the user had not liked the router.
func (r *LikeRepository) Unlike(ctx context.Context, userID, routerID int64) (bool, error) {
	const op = "adapter.repository.postgres.LikeRepository.Unlike"
	const (
		deleteQuery = `DELETE FROM likes WHERE user_id = $1 AND router_id = $2`
		existsQuery = `SELECT EXISTS(SELECT 1 FROM routers WHERE id = $1)`
		updateQuery = `UPDATE routers SET like_count = like_count - 1 WHERE id = $1 AND like_count > 0`
	)

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, deleteQuery, userID, routerID)
	if err != nil {
		return false, fmt.Errorf("%s: failed to delete from likes table: %w", op, err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: failed to get number of affected rows: %w", op, err)
	}

	if rowsAffected == 0 {
		var exists bool
		if err := tx.GetContext(ctx, &exists, existsQuery, routerID); err != nil {
			return false, fmt.Errorf("%s: failed to check router existence: %w", op, err)
		}

		if !exists {
			return false, fmt.Errorf("%s: %w", op, entity.ErrRouterNotFound)
		}

		return false, nil
	}

	if _, err := tx.ExecContext(ctx, updateQuery, routerID); err != nil {
		return false, fmt.Errorf("%s: failed to decrement like count: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	return true, nil
}

// Reconcile recomputes the like counters that diverged from the ledger and
// returns the number of repaired routers.
func (r *LikeRepository) Reconcile(ctx context.Context) (int64, error) {
	const op = "adapter.repository.postgres.LikeRepository.Reconcile"
	const query = `UPDATE routers r SET like_count = c.cnt, updated_at = NOW()
	FROM (
		SELECT rr.id, COUNT(l.router_id) AS cnt
		FROM routers rr LEFT JOIN likes l ON l.router_id = rr.id
		GROUP BY rr.id
	) c
	WHERE r.id = c.id AND r.like_count <> c.cnt`

	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if err != nil {
		return 0, fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("%s: failed to update like counts: %w", op, err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: failed to get number of affected rows: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	return rowsAffected, nil
}
