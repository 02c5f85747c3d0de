package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vadimbarashkov/router-monitor/internal/entity"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// inviteCodeAlphabet leaves out characters that are easy to confuse when typed by hand.
const inviteCodeAlphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"

type userRepository interface {
	Save(ctx context.Context, inviteCode string) (*entity.User, error)
	RetrieveByID(ctx context.Context, id int64) (*entity.User, error)
	ApplyInvite(ctx context.Context, inviteeID int64, code string, reward int64) (*entity.User, error)
}

type UserUseCase struct {
	inviteCodeLength int
	rewardPoints     int64
	userRepo         userRepository
}

func NewUserUseCase(inviteCodeLength int, rewardPoints int64, userRepo userRepository) *UserUseCase {
	return &UserUseCase{
		inviteCodeLength: inviteCodeLength,
		rewardPoints:     rewardPoints,
		userRepo:         userRepo,
	}
}

// RegisterUser creates a user with a fresh invite code. Every collision makes
// the next generated code one character longer.
func (uc *UserUseCase) RegisterUser(ctx context.Context) (*entity.User, error) {
	const op = "usecase.UserUseCase.RegisterUser"
	const maxRetries = 5

	length := uc.inviteCodeLength

	for i := 0; i < maxRetries; i++ {
		code, err := gonanoid.Generate(inviteCodeAlphabet, length)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to generate invite code: %w", op, err)
		}

		user, err := uc.userRepo.Save(ctx, code)
		if err != nil {
			if errors.Is(err, entity.ErrInviteCodeExists) {
				length++
				continue
			}

			return nil, fmt.Errorf("%s: failed to register user: %w", op, err)
		}

		return user, nil
	}

	return nil, fmt.Errorf("%s: %w", op, ErrMaxRetriesExceeded)
}

func (uc *UserUseCase) GetUser(ctx context.Context, id int64) (*entity.User, error) {
	const op = "usecase.UserUseCase.GetUser"

	user, err := uc.userRepo.RetrieveByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get user: %w", op, err)
	}

	return user, nil
}

// ApplyInviteCode links the user to the owner of code and rewards the owner.
// A user can be invited at most once.
func (uc *UserUseCase) ApplyInviteCode(ctx context.Context, inviteeID int64, code string) (*entity.User, error) {
	const op = "usecase.UserUseCase.ApplyInviteCode"

	code = strings.TrimSpace(code)
	if code == "" {
		return nil, fmt.Errorf("%s: %w", op, &entity.ValidationError{Field: "invite_code", Message: "this field is required"})
	}

	user, err := uc.userRepo.ApplyInvite(ctx, inviteeID, code, uc.rewardPoints)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to apply invite code: %w", op, err)
	}

	return user, nil
}
