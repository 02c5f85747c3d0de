package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gavv/httpexpect/v2"
	"github.com/go-chi/httplog/v2"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/vadimbarashkov/router-monitor/internal/entity"
	"github.com/vadimbarashkov/router-monitor/pkg/middleware/ratelimit"

	httpMock "github.com/vadimbarashkov/router-monitor/mocks/http"
)

type HandlersTestSuite struct {
	suite.Suite
	logger            *httplog.Logger
	routerUseCaseMock *httpMock.MockRouterUseCase
	likeUseCaseMock   *httpMock.MockLikeUseCase
	userUseCaseMock   *httpMock.MockUserUseCase
	server            *httptest.Server
	e                 *httpexpect.Expect
}

func (suite *HandlersTestSuite) SetupSuite() {
	suite.logger = httplog.NewLogger("", httplog.Options{Writer: io.Discard})
}

func (suite *HandlersTestSuite) SetupSubTest() {
	suite.routerUseCaseMock = httpMock.NewMockRouterUseCase(suite.T())
	suite.likeUseCaseMock = httpMock.NewMockLikeUseCase(suite.T())
	suite.userUseCaseMock = httpMock.NewMockUserUseCase(suite.T())

	router := NewRouter(suite.logger, nil, suite.routerUseCaseMock, suite.likeUseCaseMock, suite.userUseCaseMock)
	suite.server = httptest.NewServer(router)
	suite.T().Cleanup(func() {
		suite.server.Close()
	})

	suite.e = httpexpect.Default(suite.T(), suite.server.URL)
}

func (suite *HandlersTestSuite) TearDownSubTest() {
	suite.routerUseCaseMock.AssertExpectations(suite.T())
	suite.likeUseCaseMock.AssertExpectations(suite.T())
	suite.userUseCaseMock.AssertExpectations(suite.T())
}

func (suite *HandlersTestSuite) TestPing() {
	const path = "/api/v1/ping"

	suite.Run("success", func() {
		suite.e.GET(path).
			Expect().
			Status(http.StatusOK).
			Text().IsEqual("pong")
	})
}

func (suite *HandlersTestSuite) TestCreateRouter() {
	const path = "/api/v1/routers"

	suite.Run("unauthorized", func() {
		resp := suite.e.POST(path).
			WithJSON(map[string]string{"name": "relay", "url": "https://relay.example.com"}).
			Expect().
			Status(http.StatusUnauthorized).
			JSON().Object()

		resp.HasValue("success", false)
		resp.HasValue("error", "unauthorized")
	})

	suite.Run("invalid user id", func() {
		suite.e.POST(path).
			WithHeader(userIDHeader, "abc").
			WithJSON(map[string]string{"name": "relay", "url": "https://relay.example.com"}).
			Expect().
			Status(http.StatusUnauthorized)
	})

	suite.Run("empty request body", func() {
		resp := suite.e.POST(path).
			WithHeader(userIDHeader, "7").
			Expect().
			Status(http.StatusBadRequest).
			JSON().Object()

		resp.HasValue("success", false)
		resp.HasValue("message", "empty request body")
	})

	suite.Run("invalid request body", func() {
		resp := suite.e.POST(path).
			WithHeader(userIDHeader, "7").
			WithJSON("invalid body").
			Expect().
			Status(http.StatusBadRequest).
			JSON().Object()

		resp.HasValue("message", "invalid request body")
	})

	suite.Run("validation error", func() {
		resp := suite.e.POST(path).
			WithHeader(userIDHeader, "7").
			WithJSON(map[string]string{"name": "relay", "url": "not-a-url"}).
			Expect().
			Status(http.StatusBadRequest).
			JSON().Object()

		resp.HasValue("error", "validation_error")
		resp.Value("errors").Array().Value(0).Object().
			HasValue("field", "url").
			HasValue("message", "invalid url")
	})

	suite.Run("use case validation error", func() {
		suite.routerUseCaseMock.
			On("CreateRouter", mock.Anything, int64(7), "relay", "https://relay.example.com").
			Once().
			Return(nil, &entity.ValidationError{Field: "url", Message: "unsupported scheme"})

		resp := suite.e.POST(path).
			WithHeader(userIDHeader, "7").
			WithJSON(map[string]string{"name": "relay", "url": "https://relay.example.com"}).
			Expect().
			Status(http.StatusBadRequest).
			JSON().Object()

		resp.Value("errors").Array().Value(0).Object().
			HasValue("field", "url").
			HasValue("message", "unsupported scheme")
	})

	suite.Run("server error", func() {
		suite.routerUseCaseMock.
			On("CreateRouter", mock.Anything, int64(7), "relay", "https://relay.example.com").
			Once().
			Return(nil, errors.New("unknown error"))

		resp := suite.e.POST(path).
			WithHeader(userIDHeader, "7").
			WithJSON(map[string]string{"name": "relay", "url": "https://relay.example.com"}).
			Expect().
			Status(http.StatusInternalServerError).
			JSON().Object()

		resp.HasValue("success", false)
		resp.HasValue("message", "server error occurred")
	})

	suite.Run("success", func() {
		suite.routerUseCaseMock.
			On("CreateRouter", mock.Anything, int64(7), "relay", "https://relay.example.com").
			Once().
			Return(&entity.Router{ID: 1, Name: "relay", URL: "https://relay.example.com", CreatorID: 7}, nil)

		resp := suite.e.POST(path).
			WithHeader(userIDHeader, "7").
			WithJSON(map[string]string{"name": "relay", "url": "https://relay.example.com"}).
			Expect().
			Status(http.StatusCreated).
			JSON().Object()

		resp.HasValue("success", true)
		data := resp.Value("data").Object()
		data.HasValue("id", 1)
		data.HasValue("creator_id", 7)
		data.HasValue("like_count", 0)
		data.Value("health").Object().HasValue("reachable", false)
	})
}

func (suite *HandlersTestSuite) TestGetRouter() {
	const path = "/api/v1/routers/%s"

	suite.Run("malformed id", func() {
		suite.e.GET(fmt.Sprintf(path, "abc")).
			Expect().
			Status(http.StatusNotFound).
			JSON().Object().
			HasValue("error", "not_found")
	})

	suite.Run("router not found", func() {
		suite.routerUseCaseMock.
			On("GetRouter", mock.Anything, int64(1)).
			Once().
			Return(nil, entity.ErrRouterNotFound)

		suite.e.GET(fmt.Sprintf(path, "1")).
			Expect().
			Status(http.StatusNotFound).
			JSON().Object().
			HasValue("message", "router not found")
	})

	suite.Run("success", func() {
		latency := int64(25)

		suite.routerUseCaseMock.
			On("GetRouter", mock.Anything, int64(1)).
			Once().
			Return(&entity.Router{
				ID:           1,
				Name:         "relay",
				RouterHealth: entity.RouterHealth{Reachable: true, LatencyMs: &latency},
				LikeCount:    5,
			}, nil)

		data := suite.e.GET(fmt.Sprintf(path, "1")).
			Expect().
			Status(http.StatusOK).
			JSON().Object().
			Value("data").Object()

		data.HasValue("like_count", 5)
		data.Value("health").Object().
			HasValue("reachable", true).
			HasValue("latency_ms", 25)
	})
}

func (suite *HandlersTestSuite) TestUpdateRouter() {
	const path = "/api/v1/routers/1"

	suite.Run("unauthorized", func() {
		suite.e.PUT(path).
			WithJSON(map[string]string{"name": "relay", "url": "https://relay.example.com"}).
			Expect().
			Status(http.StatusUnauthorized)
	})

	suite.Run("router not found", func() {
		suite.routerUseCaseMock.
			On("UpdateRouter", mock.Anything, int64(1), "relay", "https://relay.example.com").
			Once().
			Return(nil, entity.ErrRouterNotFound)

		suite.e.PUT(path).
			WithHeader(userIDHeader, "7").
			WithJSON(map[string]string{"name": "relay", "url": "https://relay.example.com"}).
			Expect().
			Status(http.StatusNotFound)
	})

	suite.Run("success", func() {
		suite.routerUseCaseMock.
			On("UpdateRouter", mock.Anything, int64(1), "relay", "https://relay.example.com").
			Once().
			Return(&entity.Router{ID: 1, Name: "relay", URL: "https://relay.example.com"}, nil)

		suite.e.PUT(path).
			WithHeader(userIDHeader, "7").
			WithJSON(map[string]string{"name": "relay", "url": "https://relay.example.com"}).
			Expect().
			Status(http.StatusOK).
			JSON().Object().
			Value("data").Object().
			HasValue("name", "relay")
	})
}

func (suite *HandlersTestSuite) TestDeleteRouter() {
	const path = "/api/v1/routers/1"

	suite.Run("router not found", func() {
		suite.routerUseCaseMock.
			On("DeleteRouter", mock.Anything, int64(1)).
			Once().
			Return(entity.ErrRouterNotFound)

		suite.e.DELETE(path).
			WithHeader(userIDHeader, "7").
			Expect().
			Status(http.StatusNotFound)
	})

	suite.Run("success", func() {
		suite.routerUseCaseMock.
			On("DeleteRouter", mock.Anything, int64(1)).
			Once().
			Return(nil)

		suite.e.DELETE(path).
			WithHeader(userIDHeader, "7").
			Expect().
			Status(http.StatusNoContent).
			NoContent()
	})
}

func (suite *HandlersTestSuite) TestListRouters() {
	const path = "/api/v1/routers"

	suite.Run("unsupported sort", func() {
		suite.e.GET(path).
			WithQuery("sort_by", "name").
			Expect().
			Status(http.StatusBadRequest).
			JSON().Object().
			Value("errors").Array().Value(0).Object().
			HasValue("field", "sort_by")
	})

	suite.Run("malformed page", func() {
		suite.e.GET(path).
			WithQuery("page", "two").
			Expect().
			Status(http.StatusBadRequest).
			JSON().Object().
			Value("errors").Array().Value(0).Object().
			HasValue("field", "page")
	})

	suite.Run("liked by without user", func() {
		suite.e.GET(path).
			WithQuery("liked_by", true).
			Expect().
			Status(http.StatusBadRequest).
			JSON().Object().
			HasValue("error", "validation_error").
			Value("errors").Array().Value(0).Object().
			HasValue("field", "user_id").
			HasValue("message", "this field is required")
	})

	suite.Run("server error", func() {
		suite.routerUseCaseMock.
			On("ListRouters", mock.Anything, entity.ListCriteria{}).
			Once().
			Return(nil, errors.New("unknown error"))

		suite.e.GET(path).
			Expect().
			Status(http.StatusInternalServerError)
	})

	suite.Run("liked by user sorted by likes", func() {
		userID := int64(9)
		c := entity.ListCriteria{SortBy: entity.SortByLikes, LikedBy: &userID, Page: 2, PageSize: 1}
		page := entity.NewRouterPage([]entity.Router{{ID: 3, LikeCount: 5}}, 2, c)

		suite.routerUseCaseMock.
			On("ListRouters", mock.Anything, c).
			Once().
			Return(page, nil)

		resp := suite.e.GET(path).
			WithQuery("sort_by", "likes").
			WithQuery("user_id", 9).
			WithQuery("liked_by", true).
			WithQuery("page", 2).
			WithQuery("page_size", 1).
			Expect().
			Status(http.StatusOK).
			JSON().Object()

		resp.HasValue("success", true)
		resp.HasValue("count", 1)
		resp.Value("data").Array().Value(0).Object().HasValue("id", 3)
		resp.Value("pagination").Object().
			HasValue("page", 2).
			HasValue("total", 2).
			HasValue("page_count", 2)
	})

	suite.Run("created by user", func() {
		userID := int64(9)
		c := entity.ListCriteria{CreatedBy: &userID}

		suite.routerUseCaseMock.
			On("ListRouters", mock.Anything, c).
			Once().
			Return(entity.NewRouterPage(nil, 0, c.Normalize()), nil)

		resp := suite.e.GET(path).
			WithQuery("user_id", 9).
			Expect().
			Status(http.StatusOK).
			JSON().Object()

		resp.HasValue("count", 0)
		resp.Value("data").Array().IsEmpty()
	})
}

func (suite *HandlersTestSuite) TestCheckAll() {
	const path = "/api/v1/routers/check"

	suite.Run("server error", func() {
		suite.routerUseCaseMock.
			On("CheckAll", mock.Anything).
			Once().
			Return(nil, errors.New("unknown error"))

		suite.e.POST(path).
			Expect().
			Status(http.StatusInternalServerError)
	})

	suite.Run("timeout server error and success", func() {
		timeout := entity.ErrorKindTimeout
		non2xx := entity.ErrorKindNon2xx
		status := 500
		latency := int64(30)

		suite.routerUseCaseMock.
			On("CheckAll", mock.Anything).
			Once().
			Return(&entity.CheckReport{
				Routers: []entity.Router{
					{ID: 1, RouterHealth: entity.RouterHealth{ErrorKind: &timeout, ConsecutiveFailures: 1}},
					{ID: 2, RouterHealth: entity.RouterHealth{ErrorKind: &non2xx, HTTPStatus: &status}},
					{ID: 3, RouterHealth: entity.RouterHealth{Reachable: true, LatencyMs: &latency}},
				},
			}, nil)

		resp := suite.e.POST(path).
			Expect().
			Status(http.StatusOK).
			JSON().Object()

		resp.HasValue("success", true)
		resp.HasValue("count", 3)
		data := resp.Value("data").Array()
		data.Value(0).Object().Value("health").Object().HasValue("error_kind", "timeout")
		data.Value(1).Object().Value("health").Object().HasValue("http_status", 500)
		data.Value(2).Object().Value("health").Object().HasValue("latency_ms", 30)
	})

	suite.Run("rate limited", func() {
		router := NewRouter(suite.logger, ratelimit.New(time.Hour, 1),
			suite.routerUseCaseMock, suite.likeUseCaseMock, suite.userUseCaseMock)
		server := httptest.NewServer(router)
		defer server.Close()

		e := httpexpect.Default(suite.T(), server.URL)

		suite.routerUseCaseMock.
			On("CheckAll", mock.Anything).
			Once().
			Return(&entity.CheckReport{}, nil)

		e.POST(path).Expect().Status(http.StatusOK)
		e.POST(path).Expect().
			Status(http.StatusTooManyRequests).
			JSON().Object().
			HasValue("error", "rate_limited")
	})
}

func (suite *HandlersTestSuite) TestCheckRouter() {
	const path = "/api/v1/routers/1/check"

	suite.Run("router not found", func() {
		suite.routerUseCaseMock.
			On("CheckRouter", mock.Anything, int64(1)).
			Once().
			Return(nil, entity.ErrRouterNotFound)

		suite.e.POST(path).
			Expect().
			Status(http.StatusNotFound)
	})

	suite.Run("newer check won", func() {
		suite.routerUseCaseMock.
			On("CheckRouter", mock.Anything, int64(1)).
			Once().
			Return(&entity.CheckReport{}, nil)
		suite.routerUseCaseMock.
			On("GetRouter", mock.Anything, int64(1)).
			Once().
			Return(&entity.Router{ID: 1, RouterHealth: entity.RouterHealth{Reachable: true}}, nil)

		suite.e.POST(path).
			Expect().
			Status(http.StatusOK).
			JSON().Object().
			Value("data").Object().
			HasValue("id", 1)
	})

	suite.Run("success", func() {
		latency := int64(12)

		suite.routerUseCaseMock.
			On("CheckRouter", mock.Anything, int64(1)).
			Once().
			Return(&entity.CheckReport{
				Routers: []entity.Router{{ID: 1, RouterHealth: entity.RouterHealth{Reachable: true, LatencyMs: &latency}}},
			}, nil)

		suite.e.POST(path).
			Expect().
			Status(http.StatusOK).
			JSON().Object().
			Value("data").Object().
			Value("health").Object().
			HasValue("latency_ms", 12)
	})
}

func (suite *HandlersTestSuite) TestLike() {
	const path = "/api/v1/routers/1/like"

	suite.Run("unauthorized", func() {
		suite.e.PUT(path).
			Expect().
			Status(http.StatusUnauthorized)
	})

	suite.Run("router not found", func() {
		suite.likeUseCaseMock.
			On("Like", mock.Anything, int64(9), int64(1)).
			Once().
			Return(entity.ErrRouterNotFound)

		suite.e.PUT(path).
			WithHeader(userIDHeader, "9").
			Expect().
			Status(http.StatusNotFound)
	})

	suite.Run("success", func() {
		suite.likeUseCaseMock.
			On("Like", mock.Anything, int64(9), int64(1)).
			Once().
			Return(nil)

		suite.e.PUT(path).
			WithHeader(userIDHeader, "9").
			Expect().
			Status(http.StatusNoContent)
	})
}

func (suite *HandlersTestSuite) TestUnlike() {
	const path = "/api/v1/routers/1/like"

	suite.Run("server error", func() {
		suite.likeUseCaseMock.
			On("Unlike", mock.Anything, int64(9), int64(1)).
			Once().
			Return(errors.New("unknown error"))

		suite.e.DELETE(path).
			WithHeader(userIDHeader, "9").
			Expect().
			Status(http.StatusInternalServerError)
	})

	suite.Run("success", func() {
		suite.likeUseCaseMock.
			On("Unlike", mock.Anything, int64(9), int64(1)).
			Once().
			Return(nil)

		suite.e.DELETE(path).
			WithHeader(userIDHeader, "9").
			Expect().
			Status(http.StatusNoContent)
	})
}

func (suite *HandlersTestSuite) TestRegisterUser() {
	const path = "/api/v1/users"

	suite.Run("server error", func() {
		suite.userUseCaseMock.
			On("RegisterUser", mock.Anything).
			Once().
			Return(nil, errors.New("unknown error"))

		suite.e.POST(path).
			Expect().
			Status(http.StatusInternalServerError)
	})

	suite.Run("success", func() {
		suite.userUseCaseMock.
			On("RegisterUser", mock.Anything).
			Once().
			Return(&entity.User{ID: 1, InviteCode: "ABCDEFGH"}, nil)

		data := suite.e.POST(path).
			Expect().
			Status(http.StatusCreated).
			JSON().Object().
			Value("data").Object()

		data.HasValue("id", 1)
		data.HasValue("invite_code", "ABCDEFGH")
		data.HasValue("reward_points", 0)
	})
}

func (suite *HandlersTestSuite) TestGetMe() {
	const path = "/api/v1/users/me"

	suite.Run("unauthorized", func() {
		suite.e.GET(path).
			Expect().
			Status(http.StatusUnauthorized)
	})

	suite.Run("user not found", func() {
		suite.userUseCaseMock.
			On("GetUser", mock.Anything, int64(9)).
			Once().
			Return(nil, entity.ErrUserNotFound)

		suite.e.GET(path).
			WithHeader(userIDHeader, "9").
			Expect().
			Status(http.StatusNotFound).
			JSON().Object().
			HasValue("message", "user not found")
	})

	suite.Run("success", func() {
		suite.userUseCaseMock.
			On("GetUser", mock.Anything, int64(9)).
			Once().
			Return(&entity.User{ID: 9, InviteCode: "ABCDEFGH", RewardPoints: 30}, nil)

		suite.e.GET(path).
			WithHeader(userIDHeader, "9").
			Expect().
			Status(http.StatusOK).
			JSON().Object().
			Value("data").Object().
			HasValue("reward_points", 30)
	})
}

func (suite *HandlersTestSuite) TestApplyInviteCode() {
	const path = "/api/v1/users/me/invite"

	suite.Run("validation error", func() {
		suite.e.POST(path).
			WithHeader(userIDHeader, "9").
			WithJSON(map[string]string{"invite_code": ""}).
			Expect().
			Status(http.StatusBadRequest).
			JSON().Object().
			Value("errors").Array().Value(0).Object().
			HasValue("field", "invite_code")
	})

	tests := []struct {
		name   string
		err    error
		status int
		kind   string
	}{
		{"invalid invite code", entity.ErrInvalidInviteCode, http.StatusNotFound, "invalid_invite_code"},
		{"already invited", entity.ErrAlreadyInvited, http.StatusConflict, "already_invited"},
		{"self invite", entity.ErrSelfInvite, http.StatusConflict, "self_invite"},
		{"server error", errors.New("unknown error"), http.StatusInternalServerError, "server_error"},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.userUseCaseMock.
				On("ApplyInviteCode", mock.Anything, int64(9), "INVITER").
				Once().
				Return(nil, tt.err)

			suite.e.POST(path).
				WithHeader(userIDHeader, "9").
				WithJSON(map[string]string{"invite_code": "INVITER"}).
				Expect().
				Status(tt.status).
				JSON().Object().
				HasValue("success", false).
				HasValue("error", tt.kind)
		})
	}

	suite.Run("success", func() {
		inviterID := int64(2)

		suite.userUseCaseMock.
			On("ApplyInviteCode", mock.Anything, int64(9), "INVITER").
			Once().
			Return(&entity.User{ID: 9, InvitedBy: &inviterID}, nil)

		suite.e.POST(path).
			WithHeader(userIDHeader, "9").
			WithJSON(map[string]string{"invite_code": "INVITER"}).
			Expect().
			Status(http.StatusOK).
			JSON().Object().
			Value("data").Object().
			HasValue("invited_by", 2)
	})
}

func TestHandlers(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}
