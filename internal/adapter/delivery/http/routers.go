package http

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/vadimbarashkov/router-monitor/internal/entity"
)

type routerUseCase interface {
	CreateRouter(ctx context.Context, creatorID int64, name, url string) (*entity.Router, error)
	GetRouter(ctx context.Context, id int64) (*entity.Router, error)
	UpdateRouter(ctx context.Context, id int64, name, url string) (*entity.Router, error)
	DeleteRouter(ctx context.Context, id int64) error
	ListRouters(ctx context.Context, c entity.ListCriteria) (*entity.RouterPage, error)
	CheckAll(ctx context.Context) (*entity.CheckReport, error)
	CheckRouter(ctx context.Context, id int64) (*entity.CheckReport, error)
}

type routerHandler struct {
	useCase  routerUseCase
	validate *validator.Validate
}

func newRouterHandler(useCase routerUseCase, validate *validator.Validate) *routerHandler {
	return &routerHandler{
		useCase:  useCase,
		validate: validate,
	}
}

func (h *routerHandler) createRouter(w http.ResponseWriter, r *http.Request) {
	var req routerRequest

	if !decodeAndValidate(w, r, h.validate, &req) {
		return
	}

	userID, _ := userIDFromContext(r.Context())

	router, err := h.useCase.CreateRouter(r.Context(), userID, req.Name, req.URL)
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, dataResponse(toRouterResponse(router)))
}

func (h *routerHandler) getRouter(w http.ResponseWriter, r *http.Request) {
	id, ok := routerIDParam(w, r)
	if !ok {
		return
	}

	router, err := h.useCase.GetRouter(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, dataResponse(toRouterResponse(router)))
}

func (h *routerHandler) updateRouter(w http.ResponseWriter, r *http.Request) {
	id, ok := routerIDParam(w, r)
	if !ok {
		return
	}

	var req routerRequest

	if !decodeAndValidate(w, r, h.validate, &req) {
		return
	}

	router, err := h.useCase.UpdateRouter(r.Context(), id, req.Name, req.URL)
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, dataResponse(toRouterResponse(router)))
}

func (h *routerHandler) deleteRouter(w http.ResponseWriter, r *http.Request) {
	id, ok := routerIDParam(w, r)
	if !ok {
		return
	}

	if err := h.useCase.DeleteRouter(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *routerHandler) listRouters(w http.ResponseWriter, r *http.Request) {
	q, errs := parseListRoutersQuery(r.URL.Query())
	if len(errs) == 0 {
		if err := h.validate.Struct(q); err != nil {
			errs = getValidationErrors(err)
		}
	}

	if len(errs) > 0 {
		resp := validationErrorResponse(nil)
		resp.Errors = errs

		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, resp)
		return
	}

	page, err := h.useCase.ListRouters(r.Context(), q.criteria())
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, pageResponse(page))
}

func (h *routerHandler) checkAll(w http.ResponseWriter, r *http.Request) {
	report, err := h.useCase.CheckAll(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, listResponse(toRouterResponses(report.Routers)))
}

func (h *routerHandler) checkRouter(w http.ResponseWriter, r *http.Request) {
	id, ok := routerIDParam(w, r)
	if !ok {
		return
	}

	report, err := h.useCase.CheckRouter(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	// A newer concurrent check may have won the health update.
	if len(report.Routers) == 0 {
		h.getRouter(w, r)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, dataResponse(toRouterResponse(&report.Routers[0])))
}

// parseListRoutersQuery decodes the query string. Values that are not numbers
// or booleans are reported as field errors.
func parseListRoutersQuery(values url.Values) (listRoutersQuery, []validationError) {
	var (
		q    listRoutersQuery
		errs []validationError
	)

	q.SortBy = values.Get("sort_by")

	parseInt := func(field string, dst *int) {
		if v := values.Get(field); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, validationError{Field: field, Message: "must be an integer"})
				return
			}
			*dst = n
		}
	}

	parseInt("page", &q.Page)
	parseInt("page_size", &q.PageSize)

	if v := values.Get("user_id"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			errs = append(errs, validationError{Field: "user_id", Message: "must be an integer"})
		}
		q.UserID = n
	}

	if v := values.Get("liked_by"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, validationError{Field: "liked_by", Message: "must be a boolean"})
		}
		q.LikedBy = b
	}

	return q, errs
}
