package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vadimbarashkov/router-monitor/internal/entity"
)

type routerRepository interface {
	Save(ctx context.Context, creatorID int64, name, url string) (*entity.Router, error)
	RetrieveByID(ctx context.Context, id int64) (*entity.Router, error)
	RetrieveAll(ctx context.Context) ([]entity.Router, error)
	List(ctx context.Context, c entity.ListCriteria) ([]entity.Router, int64, error)
	Update(ctx context.Context, id int64, name, url string) (*entity.Router, error)
	Remove(ctx context.Context, id int64) error
	UpdateHealth(ctx context.Context, outcome entity.ProbeOutcome) (*entity.Router, error)
}

type prober interface {
	ProbeAll(ctx context.Context, targets []entity.ProbeTarget) []entity.ProbeOutcome
}

type RouterUseCase struct {
	routerRepo   routerRepository
	prober       prober
	batchTimeout time.Duration
}

// NewRouterUseCase creates the router use case. A zero batchTimeout leaves
// check passes bounded by the per-probe timeout only.
func NewRouterUseCase(routerRepo routerRepository, prober prober, batchTimeout time.Duration) *RouterUseCase {
	return &RouterUseCase{
		routerRepo:   routerRepo,
		prober:       prober,
		batchTimeout: batchTimeout,
	}
}

func (uc *RouterUseCase) CreateRouter(ctx context.Context, creatorID int64, name, url string) (*entity.Router, error) {
	const op = "usecase.RouterUseCase.CreateRouter"

	if err := entity.ValidateRouter(name, url); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	router, err := uc.routerRepo.Save(ctx, creatorID, name, url)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create router: %w", op, err)
	}

	return router, nil
}

func (uc *RouterUseCase) GetRouter(ctx context.Context, id int64) (*entity.Router, error) {
	const op = "usecase.RouterUseCase.GetRouter"

	router, err := uc.routerRepo.RetrieveByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get router: %w", op, err)
	}

	return router, nil
}

// UpdateRouter replaces the name and URL of the router. Health fields and
// likes are left untouched.
func (uc *RouterUseCase) UpdateRouter(ctx context.Context, id int64, name, url string) (*entity.Router, error) {
	const op = "usecase.RouterUseCase.UpdateRouter"

	if err := entity.ValidateRouter(name, url); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	router, err := uc.routerRepo.Update(ctx, id, name, url)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to update router: %w", op, err)
	}

	return router, nil
}

func (uc *RouterUseCase) DeleteRouter(ctx context.Context, id int64) error {
	const op = "usecase.RouterUseCase.DeleteRouter"

	if err := uc.routerRepo.Remove(ctx, id); err != nil {
		return fmt.Errorf("%s: failed to delete router: %w", op, err)
	}

	return nil
}

// ListRouters returns one page of routers in the requested order. Out of range
// criteria are normalized rather than rejected.
func (uc *RouterUseCase) ListRouters(ctx context.Context, c entity.ListCriteria) (*entity.RouterPage, error) {
	const op = "usecase.RouterUseCase.ListRouters"

	c = c.Normalize()

	routers, total, err := uc.routerRepo.List(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list routers: %w", op, err)
	}

	return entity.NewRouterPage(routers, total, c), nil
}

// CheckAll probes every registered router and persists the outcomes.
// If ctx is done by the time probing finishes, the outcomes are discarded.
func (uc *RouterUseCase) CheckAll(ctx context.Context) (*entity.CheckReport, error) {
	const op = "usecase.RouterUseCase.CheckAll"

	routers, err := uc.routerRepo.RetrieveAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to retrieve routers: %w", op, err)
	}

	report, err := uc.check(ctx, routers)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return report, nil
}

// CheckRouter probes a single router and persists the outcome.
func (uc *RouterUseCase) CheckRouter(ctx context.Context, id int64) (*entity.CheckReport, error) {
	const op = "usecase.RouterUseCase.CheckRouter"

	router, err := uc.routerRepo.RetrieveByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get router: %w", op, err)
	}

	report, err := uc.check(ctx, []entity.Router{*router})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return report, nil
}

func (uc *RouterUseCase) check(ctx context.Context, routers []entity.Router) (*entity.CheckReport, error) {
	if len(routers) == 0 {
		return &entity.CheckReport{Routers: []entity.Router{}, Outcomes: []entity.ProbeOutcome{}}, nil
	}

	targets := make([]entity.ProbeTarget, 0, len(routers))
	for i := range routers {
		targets = append(targets, routers[i].Target())
	}

	batchCtx := ctx
	if uc.batchTimeout > 0 {
		var cancel context.CancelFunc
		batchCtx, cancel = context.WithTimeout(ctx, uc.batchTimeout)
		defer cancel()
	}

	outcomes := uc.prober.ProbeAll(batchCtx, targets)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("check aborted by caller: %w", err)
	}

	updated, err := uc.ApplyOutcomes(ctx, outcomes)
	if err != nil {
		return nil, err
	}

	return &entity.CheckReport{Routers: updated, Outcomes: outcomes}, nil
}

// ApplyOutcomes writes the health of every completed outcome and returns the
// updated routers. Outcomes of deleted routers and stale outcomes are dropped.
func (uc *RouterUseCase) ApplyOutcomes(ctx context.Context, outcomes []entity.ProbeOutcome) ([]entity.Router, error) {
	const op = "usecase.RouterUseCase.ApplyOutcomes"

	updated := make([]entity.Router, 0, len(outcomes))

	for _, outcome := range outcomes {
		if !outcome.Completed() {
			continue
		}

		router, err := uc.routerRepo.UpdateHealth(ctx, outcome)
		if err != nil {
			if errors.Is(err, entity.ErrRouterNotFound) {
				continue
			}

			return nil, fmt.Errorf("%s: failed to update router health: %w", op, err)
		}

		updated = append(updated, *router)
	}

	return updated, nil
}
