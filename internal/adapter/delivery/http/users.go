package http

import (
	"context"
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/vadimbarashkov/router-monitor/internal/entity"
)

type userUseCase interface {
	RegisterUser(ctx context.Context) (*entity.User, error)
	GetUser(ctx context.Context, id int64) (*entity.User, error)
	ApplyInviteCode(ctx context.Context, inviteeID int64, code string) (*entity.User, error)
}

type userHandler struct {
	useCase  userUseCase
	validate *validator.Validate
}

func newUserHandler(useCase userUseCase, validate *validator.Validate) *userHandler {
	return &userHandler{
		useCase:  useCase,
		validate: validate,
	}
}

func (h *userHandler) registerUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.useCase.RegisterUser(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, dataResponse(toUserResponse(user)))
}

func (h *userHandler) getMe(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	user, err := h.useCase.GetUser(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, dataResponse(toUserResponse(user)))
}

func (h *userHandler) applyInviteCode(w http.ResponseWriter, r *http.Request) {
	var req inviteRequest

	if !decodeAndValidate(w, r, h.validate, &req) {
		return
	}

	userID, _ := userIDFromContext(r.Context())

	user, err := h.useCase.ApplyInviteCode(r.Context(), userID, req.InviteCode)
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, dataResponse(toUserResponse(user)))
}
