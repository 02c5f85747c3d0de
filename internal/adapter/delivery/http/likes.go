package http

import (
	"context"
	"net/http"
)

type likeUseCase interface {
	Like(ctx context.Context, userID, routerID int64) error
	Unlike(ctx context.Context, userID, routerID int64) error
}

type likeHandler struct {
	useCase likeUseCase
}

func newLikeHandler(useCase likeUseCase) *likeHandler {
	return &likeHandler{useCase: useCase}
}

func (h *likeHandler) like(w http.ResponseWriter, r *http.Request) {
	routerID, ok := routerIDParam(w, r)
	if !ok {
		return
	}

	userID, _ := userIDFromContext(r.Context())

	if err := h.useCase.Like(r.Context(), userID, routerID); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *likeHandler) unlike(w http.ResponseWriter, r *http.Request) {
	routerID, ok := routerIDParam(w, r)
	if !ok {
		return
	}

	userID, _ := userIDFromContext(r.Context())

	if err := h.useCase.Unlike(r.Context(), userID, routerID); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
