package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/vadimbarashkov/router-monitor/internal/entity"
)

const (
	orderByCreated = `r.created_at DESC, r.id DESC`
	orderByLikes   = `r.like_count DESC, r.created_at DESC, r.id DESC`
)

type routerDB struct {
	ID                  int64      `db:"id"`
	Name                string     `db:"name"`
	URL                 string     `db:"url"`
	CreatorID           int64      `db:"creator_id"`
	LastCheckedAt       *time.Time `db:"last_checked_at"`
	Reachable           bool       `db:"reachable"`
	LatencyMs           *int64     `db:"latency_ms"`
	HTTPStatus          *int       `db:"http_status"`
	ErrorKind           *string    `db:"error_kind"`
	ConsecutiveFailures int        `db:"consecutive_failures"`
	LikeCount           int64      `db:"like_count"`
	CreatedAt           time.Time  `db:"created_at"`
	UpdatedAt           time.Time  `db:"updated_at"`
}

func (r *routerDB) toEntity() *entity.Router {
	var errorKind *entity.ErrorKind
	if r.ErrorKind != nil {
		kind := entity.ErrorKind(*r.ErrorKind)
		errorKind = &kind
	}

	return &entity.Router{
		ID:        r.ID,
		Name:      r.Name,
		URL:       r.URL,
		CreatorID: r.CreatorID,
		RouterHealth: entity.RouterHealth{
			LastCheckedAt:       r.LastCheckedAt,
			Reachable:           r.Reachable,
			LatencyMs:           r.LatencyMs,
			HTTPStatus:          r.HTTPStatus,
			ErrorKind:           errorKind,
			ConsecutiveFailures: r.ConsecutiveFailures,
		},
		LikeCount: r.LikeCount,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func toEntities(rows []routerDB) []entity.Router {
	routers := make([]entity.Router, 0, len(rows))
	for i := range rows {
		routers = append(routers, *rows[i].toEntity())
	}
	return routers
}

type RouterRepository struct {
	db *sqlx.DB
}

func NewRouterRepository(db *sqlx.DB) *RouterRepository {
	return &RouterRepository{db: db}
}

func (r *RouterRepository) Save(ctx context.Context, creatorID int64, name, url string) (*entity.Router, error) {
	const op = "adapter.repository.postgres.RouterRepository.Save"
	const query = `INSERT INTO routers(creator_id, name, url) VALUES ($1, $2, $3) RETURNING *`

	var router routerDB

	if err := r.db.GetContext(ctx, &router, query, creatorID, name, url); err != nil {
		return nil, fmt.Errorf("%s: failed to insert into routers table: %w", op, err)
	}

	return router.toEntity(), nil
}

func (r *RouterRepository) RetrieveByID(ctx context.Context, id int64) (*entity.Router, error) {
	const op = "adapter.repository.postgres.RouterRepository.RetrieveByID"
	const query = `SELECT * FROM routers WHERE id = $1`

	var router routerDB

	if err := r.db.GetContext(ctx, &router, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, entity.ErrRouterNotFound)
		}

		return nil, fmt.Errorf("%s: failed to get row from routers table: %w", op, err)
	}

	return router.toEntity(), nil
}

func (r *RouterRepository) RetrieveAll(ctx context.Context) ([]entity.Router, error) {
	const op = "adapter.repository.postgres.RouterRepository.RetrieveAll"
	const query = `SELECT * FROM routers ORDER BY id`

	var rows []routerDB

	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("%s: failed to select rows from routers table: %w", op, err)
	}

	return toEntities(rows), nil
}

// List returns one page of routers matching the normalized criteria and the
// total number of matching routers.
func (r *RouterRepository) List(ctx context.Context, c entity.ListCriteria) ([]entity.Router, int64, error) {
	const op = "adapter.repository.postgres.RouterRepository.List"

	var (
		from  = `routers r`
		where []string
		args  []any
	)

	if c.LikedBy != nil {
		from += ` JOIN likes l ON l.router_id = r.id AND l.user_id = ?`
		args = append(args, *c.LikedBy)
	}

	if c.CreatedBy != nil {
		where = append(where, `r.creator_id = ?`)
		args = append(args, *c.CreatedBy)
	}

	var clause string
	if len(where) > 0 {
		clause = ` WHERE ` + strings.Join(where, ` AND `)
	}

	orderBy := orderByCreated
	if c.SortBy == entity.SortByLikes {
		orderBy = orderByLikes
	}

	var total int64

	countQuery := r.db.Rebind(`SELECT COUNT(*) FROM ` + from + clause)
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("%s: failed to count rows of routers table: %w", op, err)
	}

	if c.BeyondLastPage(total) {
		return []entity.Router{}, total, nil
	}

	var rows []routerDB

	listQuery := r.db.Rebind(`SELECT r.* FROM ` + from + clause + ` ORDER BY ` + orderBy + ` LIMIT ? OFFSET ?`)
	if err := r.db.SelectContext(ctx, &rows, listQuery, append(args, c.PageSize, c.Offset())...); err != nil {
		return nil, 0, fmt.Errorf("%s: failed to select rows from routers table: %w", op, err)
	}

	return toEntities(rows), total, nil
}

func (r *RouterRepository) Update(ctx context.Context, id int64, name, url string) (*entity.Router, error) {
	const op = "adapter.repository.postgres.RouterRepository.Update"
	const query = `UPDATE routers SET name = $1, url = $2, updated_at = NOW() WHERE id = $3 RETURNING *`

	var router routerDB

	if err := r.db.GetContext(ctx, &router, query, name, url, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, entity.ErrRouterNotFound)
		}

		return nil, fmt.Errorf("%s: failed to update routers table row: %w", op, err)
	}

	return router.toEntity(), nil
}

func (r *RouterRepository) Remove(ctx context.Context, id int64) error {
	const op = "adapter.repository.postgres.RouterRepository.Remove"
	const query = `DELETE FROM routers WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("%s: failed to delete from routers table: %w", op, err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: failed to get number of affected rows: %w", op, err)
	}

	if rowsAffected != 1 {
		return fmt.Errorf("%s: %w", op, entity.ErrRouterNotFound)
	}

	return nil
}

// UpdateHealth writes all health fields of the outcome's router in one statement.
// Outcomes older than the stored check are rejected with entity.ErrRouterNotFound,
// the same as outcomes for routers that no longer exist.
func (r *RouterRepository) UpdateHealth(ctx context.Context, outcome entity.ProbeOutcome) (*entity.Router, error) {
	const op = "adapter.repository.postgres.RouterRepository.UpdateHealth"
	const query = `UPDATE routers SET
		last_checked_at = $2,
		reachable = $3,
		latency_ms = $4,
		http_status = $5,
		error_kind = $6,
		consecutive_failures = CASE WHEN $3 THEN 0 ELSE consecutive_failures + 1 END,
		updated_at = NOW()
	WHERE id = $1 AND (last_checked_at IS NULL OR last_checked_at <= $2)
	RETURNING *`

	health := outcome.Health()

	var errorKind *string
	if health.ErrorKind != nil {
		kind := string(*health.ErrorKind)
		errorKind = &kind
	}

	var router routerDB

	err := r.db.GetContext(ctx, &router, query,
		outcome.RouterID,
		*health.LastCheckedAt,
		health.Reachable,
		health.LatencyMs,
		health.HTTPStatus,
		errorKind,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, entity.ErrRouterNotFound)
		}

		return nil, fmt.Errorf("%s: failed to update health of routers table row: %w", op, err)
	}

	return router.toEntity(), nil
}
