package http

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/vadimbarashkov/router-monitor/internal/entity"
)

// routerRequest is the body of router create and update requests.
type routerRequest struct {
	Name string `json:"name" validate:"required,max=128"`
	URL  string `json:"url" validate:"required,http_url"`
}

// listRoutersQuery holds the decoded query of the router list endpoint.
type listRoutersQuery struct {
	SortBy   string `json:"sort_by" validate:"omitempty,oneof=created likes"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
	UserID   int64  `json:"user_id" validate:"required_if=LikedBy true,omitempty,min=1"`
	LikedBy  bool   `json:"liked_by"`
}

// criteria maps the query to list criteria. With liked_by set, user_id
// selects the routers liked by the user, otherwise the routers created by them.
// The query must be validated first.
func (q listRoutersQuery) criteria() entity.ListCriteria {
	c := entity.ListCriteria{
		SortBy:   entity.SortBy(q.SortBy),
		Page:     q.Page,
		PageSize: q.PageSize,
	}

	if q.UserID > 0 {
		userID := q.UserID
		if q.LikedBy {
			c.LikedBy = &userID
		} else {
			c.CreatedBy = &userID
		}
	}

	return c
}

type inviteRequest struct {
	InviteCode string `json:"invite_code" validate:"required,max=32"`
}

type healthResponse struct {
	LastCheckedAt       *time.Time `json:"last_checked_at"`
	Reachable           bool       `json:"reachable"`
	LatencyMs           *int64     `json:"latency_ms"`
	HTTPStatus          *int       `json:"http_status"`
	ErrorKind           *string    `json:"error_kind"`
	ConsecutiveFailures int        `json:"consecutive_failures"`
}

type routerResponse struct {
	ID        int64          `json:"id"`
	Name      string         `json:"name"`
	URL       string         `json:"url"`
	CreatorID int64          `json:"creator_id"`
	Health    healthResponse `json:"health"`
	LikeCount int64          `json:"like_count"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func toRouterResponse(r *entity.Router) routerResponse {
	var errorKind *string
	if r.ErrorKind != nil {
		kind := string(*r.ErrorKind)
		errorKind = &kind
	}

	return routerResponse{
		ID:        r.ID,
		Name:      r.Name,
		URL:       r.URL,
		CreatorID: r.CreatorID,
		Health: healthResponse{
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

func toRouterResponses(routers []entity.Router) []routerResponse {
	resp := make([]routerResponse, 0, len(routers))
	for i := range routers {
		resp = append(resp, toRouterResponse(&routers[i]))
	}
	return resp
}

type userResponse struct {
	ID           int64     `json:"id"`
	InviteCode   string    `json:"invite_code"`
	InvitedBy    *int64    `json:"invited_by"`
	RewardPoints int64     `json:"reward_points"`
	CreatedAt    time.Time `json:"created_at"`
}

func toUserResponse(u *entity.User) userResponse {
	return userResponse{
		ID:           u.ID,
		InviteCode:   u.InviteCode,
		InvitedBy:    u.InvitedBy,
		RewardPoints: u.RewardPoints,
		CreatedAt:    u.CreatedAt,
	}
}

type pagination struct {
	Page      int   `json:"page"`
	PageSize  int   `json:"page_size"`
	Total     int64 `json:"total"`
	PageCount int   `json:"page_count"`
}

// successResponse is the envelope of every successful response with a body.
type successResponse struct {
	Success    bool        `json:"success"`
	Data       any         `json:"data"`
	Count      *int        `json:"count,omitempty"`
	Pagination *pagination `json:"pagination,omitempty"`
}

func dataResponse(data any) successResponse {
	return successResponse{Success: true, Data: data}
}

func listResponse[T any](data []T) successResponse {
	count := len(data)
	return successResponse{Success: true, Data: data, Count: &count}
}

func pageResponse(page *entity.RouterPage) successResponse {
	resp := listResponse(toRouterResponses(page.Routers))
	resp.Pagination = &pagination{
		Page:      page.Page,
		PageSize:  page.PageSize,
		Total:     page.Total,
		PageCount: page.PageCount,
	}
	return resp
}

// validationError represents an individual validation error.
type validationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// errorResponse is the envelope of every failed request.
type errorResponse struct {
	Success bool              `json:"success"`
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Errors  []validationError `json:"errors,omitempty"`
}

// Error kinds reported to clients.
const (
	kindBadRequest        = "bad_request"
	kindValidation        = "validation_error"
	kindUnauthorized      = "unauthorized"
	kindNotFound          = "not_found"
	kindInvalidInviteCode = "invalid_invite_code"
	kindAlreadyInvited    = "already_invited"
	kindSelfInvite        = "self_invite"
	kindServerError       = "server_error"
)

// Predefined error responses for common scenarios.
var (
	emptyRequestBodyResponse = errorResponse{
		Error:   kindBadRequest,
		Message: "empty request body",
	}

	invalidRequestBodyResponse = errorResponse{
		Error:   kindBadRequest,
		Message: "invalid request body",
	}

	unauthorizedResponse = errorResponse{
		Error:   kindUnauthorized,
		Message: "missing or invalid " + userIDHeader + " header",
	}

	routerNotFoundResponse = errorResponse{
		Error:   kindNotFound,
		Message: "router not found",
	}

	userNotFoundResponse = errorResponse{
		Error:   kindNotFound,
		Message: "user not found",
	}

	invalidInviteCodeResponse = errorResponse{
		Error:   kindInvalidInviteCode,
		Message: "invite code does not exist",
	}

	alreadyInvitedResponse = errorResponse{
		Error:   kindAlreadyInvited,
		Message: "user has already been invited",
	}

	selfInviteResponse = errorResponse{
		Error:   kindSelfInvite,
		Message: "own invite code cannot be applied",
	}

	serverErrorResponse = errorResponse{
		Error:   kindServerError,
		Message: "server error occurred",
	}
)

// messageForTag returns a user-friendly message based on the validation tag.
func messageForTag(tag string) string {
	switch tag {
	case "required", "required_if":
		return "this field is required"
	case "http_url":
		return "invalid url"
	case "oneof":
		return "unsupported value"
	case "max":
		return "too long"
	case "min":
		return "must be positive"
	default:
		return "invalid value"
	}
}

// getValidationErrors converts validator and entity validation errors into field errors.
func getValidationErrors(err error) []validationError {
	var validationErrs []validationError

	var errs validator.ValidationErrors
	if errors.As(err, &errs) {
		for _, e := range errs {
			validationErrs = append(validationErrs, validationError{
				Field:   e.Field(),
				Message: messageForTag(e.Tag()),
			})
		}
	}

	var vErr *entity.ValidationError
	if errors.As(err, &vErr) {
		validationErrs = append(validationErrs, validationError{
			Field:   vErr.Field,
			Message: vErr.Message,
		})
	}

	return validationErrs
}

// validationErrorResponse constructs an errorResponse for validation errors.
func validationErrorResponse(err error) errorResponse {
	return errorResponse{
		Error:   kindValidation,
		Message: "validation error",
		Errors:  getValidationErrors(err),
	}
}
