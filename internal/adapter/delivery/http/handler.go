package http

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog/v2"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/vadimbarashkov/router-monitor/internal/entity"
)

func handlePing(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "pong")
}

// newValidator returns a validator reporting fields by their json names.
func newValidator() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return validate
}

// decodeAndValidate decodes the JSON body into v and validates it. On failure
// it writes the error response and returns false.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, validate *validator.Validate, v any) bool {
	if err := render.DecodeJSON(r.Body, v); err != nil {
		if errors.Is(err, io.EOF) {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, emptyRequestBodyResponse)
			return false
		}

		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, invalidRequestBodyResponse)
		return false
	}

	if err := validate.Struct(v); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, validationErrorResponse(err))
		return false
	}

	return true
}

// routerIDParam parses the routerID path parameter. Malformed IDs cannot name
// an existing router and are reported as not found.
func routerIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "routerID"), 10, 64)
	if err != nil || id <= 0 {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, routerNotFoundResponse)
		return 0, false
	}

	return id, true
}

// writeError maps use case errors to status codes and error responses.
// Unexpected errors are attached to the request log entry.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var vErr *entity.ValidationError

	switch {
	case errors.As(err, &vErr):
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, validationErrorResponse(err))
	case errors.Is(err, entity.ErrRouterNotFound):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, routerNotFoundResponse)
	case errors.Is(err, entity.ErrUserNotFound):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, userNotFoundResponse)
	case errors.Is(err, entity.ErrInvalidInviteCode):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, invalidInviteCodeResponse)
	case errors.Is(err, entity.ErrAlreadyInvited):
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, alreadyInvitedResponse)
	case errors.Is(err, entity.ErrSelfInvite):
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, selfInviteResponse)
	default:
		httplog.LogEntrySetField(r.Context(), "err", slog.AnyValue(err))

		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, serverErrorResponse)
	}
}
