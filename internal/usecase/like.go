package usecase

import (
	"context"
	"fmt"
)

type likeRepository interface {
	Like(ctx context.Context, userID, routerID int64) (bool, error)
	Unlike(ctx context.Context, userID, routerID int64) (bool, error)
	Reconcile(ctx context.Context) (int64, error)
}

type LikeUseCase struct {
	likeRepo likeRepository
}

func NewLikeUseCase(likeRepo likeRepository) *LikeUseCase {
	return &LikeUseCase{likeRepo: likeRepo}
}

// Like is idempotent: liking an already liked router changes nothing.
func (uc *LikeUseCase) Like(ctx context.Context, userID, routerID int64) error {
	const op = "usecase.LikeUseCase.Like"

	if _, err := uc.likeRepo.Like(ctx, userID, routerID); err != nil {
		return fmt.Errorf("%s: failed to like router: %w", op, err)
	}

	return nil
}

// Unlike is idempotent: unliking a router that was not liked changes nothing.
func (uc *LikeUseCase) Unlike(ctx context.Context, userID, routerID int64) error {
	const op = "usecase.LikeUseCase.Unlike"

	if _, err := uc.likeRepo.Unlike(ctx, userID, routerID); err != nil {
		return fmt.Errorf("%s: failed to unlike router: %w", op, err)
	}

	return nil
}

// Reconcile recomputes like counters from the ledger and returns how many were repaired.
func (uc *LikeUseCase) Reconcile(ctx context.Context) (int64, error) {
	const op = "usecase.LikeUseCase.Reconcile"

	repaired, err := uc.likeRepo.Reconcile(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: failed to reconcile like counts: %w", op, err)
	}

	return repaired, nil
}
