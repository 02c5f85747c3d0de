//go:build integration

package postgres

import (
	"context"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/vadimbarashkov/router-monitor/internal/config"
	"github.com/vadimbarashkov/router-monitor/internal/entity"
	"github.com/vadimbarashkov/router-monitor/pkg/postgres"
)

func migrationsPath(t testing.TB) string {
	t.Helper()

	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to resolve caller file")
	}

	return "file://" + filepath.Join(filepath.Dir(file), "..", "..", "..", "..", "migrations")
}

func setupDB(t testing.TB) *sqlx.DB {
	t.Helper()

	ctx := context.Background()

	cfg := config.Postgres{
		User:     "test",
		Password: "test",
		DB:       "router_monitor",
		SSLMode:  "disable",
	}

	pgCont, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image: "postgres:16-alpine",
			Env: map[string]string{
				"POSTGRES_USER":     cfg.User,
				"POSTGRES_PASSWORD": cfg.Password,
				"POSTGRES_DB":       cfg.DB,
			},
			ExposedPorts: []string{"5432/tcp"},
			WaitingFor:   wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("Failed to start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := pgCont.Terminate(ctx); err != nil {
			t.Fatalf("Failed to terminate postgres container: %v", err)
		}
	})

	cfg.Host, err = pgCont.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}
	port, err := pgCont.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}
	cfg.Port = port.Int()

	if err := postgres.RunMigrations(migrationsPath(t), cfg.DSN()); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	db, err := postgres.New(ctx, cfg.DSN(), postgres.WithConnectRetry(5, time.Second))
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
		if err := postgres.RollbackMigrations(migrationsPath(t), cfg.DSN()); err != nil {
			t.Errorf("Failed to rollback migrations: %v", err)
		}
	})

	return db
}

func TestRepositories_Integration(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	routerRepo := NewRouterRepository(db)
	likeRepo := NewLikeRepository(db)
	userRepo := NewUserRepository(db)

	t.Run("concurrent likes are counted once per user", func(t *testing.T) {
		router, err := routerRepo.Save(ctx, 1, "core", "http://10.0.0.1")
		require.NoError(t, err)

		var wg sync.WaitGroup
		for userID := int64(1); userID <= 20; userID++ {
			for i := 0; i < 3; i++ {
				wg.Add(1)
				go func(userID int64) {
					defer wg.Done()
					_, err := likeRepo.Like(ctx, userID, router.ID)
					assert.NoError(t, err)
				}(userID)
			}
		}
		wg.Wait()

		got, err := routerRepo.RetrieveByID(ctx, router.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(20), got.LikeCount)

		unliked, err := likeRepo.Unlike(ctx, 1, router.ID)
		require.NoError(t, err)
		assert.True(t, unliked)

		unliked, err = likeRepo.Unlike(ctx, 1, router.ID)
		require.NoError(t, err)
		assert.False(t, unliked)

		got, err = routerRepo.RetrieveByID(ctx, router.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(19), got.LikeCount)
	})

	t.Run("interleaved likes and unlikes keep counter in sync with ledger", func(t *testing.T) {
		router, err := routerRepo.Save(ctx, 1, "mixed", "http://10.0.0.9")
		require.NoError(t, err)

		var wg sync.WaitGroup
		for userID := int64(100); userID < 110; userID++ {
			for i := 0; i < 6; i++ {
				wg.Add(1)
				go func(userID int64, like bool) {
					defer wg.Done()
					if like {
						_, err := likeRepo.Like(ctx, userID, router.ID)
						assert.NoError(t, err)
						return
					}
					_, err := likeRepo.Unlike(ctx, userID, router.ID)
					assert.NoError(t, err)
				}(userID, i%2 == 0)
			}
		}
		wg.Wait()

		var ledger int64
		err = db.GetContext(ctx, &ledger, `SELECT COUNT(*) FROM likes WHERE router_id = $1`, router.ID)
		require.NoError(t, err)

		got, err := routerRepo.RetrieveByID(ctx, router.ID)
		require.NoError(t, err)
		assert.Equal(t, ledger, got.LikeCount)
		assert.LessOrEqual(t, got.LikeCount, int64(10))
	})

	t.Run("reconcile repairs drifted counters", func(t *testing.T) {
		router, err := routerRepo.Save(ctx, 1, "edge", "http://10.0.0.2")
		require.NoError(t, err)

		_, err = likeRepo.Like(ctx, 1, router.ID)
		require.NoError(t, err)

		_, err = db.ExecContext(ctx, `UPDATE routers SET like_count = 42 WHERE id = $1`, router.ID)
		require.NoError(t, err)

		repaired, err := likeRepo.Reconcile(ctx)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, repaired, int64(1))

		got, err := routerRepo.RetrieveByID(ctx, router.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), got.LikeCount)
	})

	t.Run("stale outcome does not overwrite newer health", func(t *testing.T) {
		router, err := routerRepo.Save(ctx, 1, "stale", "http://10.0.0.3")
		require.NoError(t, err)

		newer := time.Now().UTC().Truncate(time.Microsecond)
		older := newer.Add(-time.Minute)
		latency := int64(12)

		_, err = routerRepo.UpdateHealth(ctx, entity.ProbeOutcome{
			RouterID: router.ID, Reachable: true, LatencyMs: &latency, CheckedAt: newer,
		})
		require.NoError(t, err)

		_, err = routerRepo.UpdateHealth(ctx, entity.ProbeOutcome{
			RouterID: router.ID, ErrorKind: entity.ErrorKindTimeout, CheckedAt: older,
		})
		assert.ErrorIs(t, err, entity.ErrRouterNotFound)

		got, err := routerRepo.RetrieveByID(ctx, router.ID)
		require.NoError(t, err)
		assert.True(t, got.Reachable)
		assert.Zero(t, got.ConsecutiveFailures)
		assert.True(t, newer.Equal(*got.LastCheckedAt))
	})

	t.Run("likes ordering breaks ties by creation", func(t *testing.T) {
		_, err := db.ExecContext(ctx, `TRUNCATE routers CASCADE`)
		require.NoError(t, err)

		first, err := routerRepo.Save(ctx, 2, "first", "http://10.0.1.1")
		require.NoError(t, err)
		second, err := routerRepo.Save(ctx, 2, "second", "http://10.0.1.2")
		require.NoError(t, err)
		third, err := routerRepo.Save(ctx, 2, "third", "http://10.0.1.3")
		require.NoError(t, err)

		_, err = likeRepo.Like(ctx, 5, third.ID)
		require.NoError(t, err)

		c := entity.ListCriteria{SortBy: entity.SortByLikes, PageSize: 10}.Normalize()
		routers, total, err := routerRepo.List(ctx, c)
		require.NoError(t, err)
		require.Len(t, routers, 3)
		assert.Equal(t, int64(3), total)
		assert.Equal(t, []int64{third.ID, second.ID, first.ID}, []int64{routers[0].ID, routers[1].ID, routers[2].ID})
	})

	t.Run("invite is applied once", func(t *testing.T) {
		inviter, err := userRepo.Save(ctx, "INVITER1")
		require.NoError(t, err)
		invitee, err := userRepo.Save(ctx, "INVITEE1")
		require.NoError(t, err)

		var wg sync.WaitGroup
		for i := 0; i < 5; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _ = userRepo.ApplyInvite(ctx, invitee.ID, inviter.InviteCode, 10)
			}()
		}
		wg.Wait()

		got, err := userRepo.RetrieveByID(ctx, inviter.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(10), got.RewardPoints)

		_, err = userRepo.ApplyInvite(ctx, invitee.ID, inviter.InviteCode, 10)
		assert.ErrorIs(t, err, entity.ErrAlreadyInvited)
	})
}
