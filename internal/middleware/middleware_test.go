package middleware_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"quiz-hub/internal/domain"
	"quiz-hub/internal/dto"
	"quiz-hub/internal/middleware"
	"quiz-hub/internal/service"
	"quiz-hub/internal/util"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	args := m.Called(ctx, email, password)
	user, _ := args.Get(1).(*domain.User)
	return args.String(0), user, args.Error(2)
}

func (m *MockAuthService) Logout(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockAuthService) CreateJWT(ctx context.Context, user *domain.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	args := m.Called(ctx, tokenString)
	claims, _ := args.Get(0).(*dto.AuthClaims)
	return claims, args.Error(1)
}

func (m *MockAuthService) CurrentActor(ctx context.Context, claims *dto.AuthClaims) (service.Actor, error) {
	args := m.Called(ctx, claims)
	return args.Get(0).(service.Actor), args.Error(1)
}

func (m *MockAuthService) SessionUser(ctx context.Context) (*domain.User, error) {
	args := m.Called(ctx)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func newApp(handlers ...fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	handlers = append(handlers, func(c *fiber.Ctx) error {
		actor, _ := middleware.ActorFrom(c)
		return c.JSON(actor)
	})
	app.Get("/t/:id?", handlers...)
	return app
}

func decode[T any](t *testing.T, body io.Reader) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(body).Decode(&out))
	return out
}

func TestProtected(t *testing.T) {
	member := service.Actor{UserID: "u1", Role: domain.RoleUser, TenantID: "t1"}
	claims := &dto.AuthClaims{UserID: "u1", TokenType: "access"}
	suspended := &dto.AuthClaims{UserID: "u2", TokenType: "access"}

	auth := new(MockAuthService)
	auth.On("ValidateJWT", mock.Anything, "good").Return(claims, nil)
	auth.On("ValidateJWT", mock.Anything, "gone").Return(suspended, nil)
	auth.On("ValidateJWT", mock.Anything, "bad").Return(nil, service.ErrInvalidJWTToken)
	auth.On("CurrentActor", mock.Anything, claims).Return(member, nil)
	auth.On("CurrentActor", mock.Anything, suspended).Return(service.Actor{}, domain.NewUnauthorizedError("Account is not active"))

	app := newApp(middleware.Protected(auth))

	tests := []struct {
		name     string
		header   string
		status   int
		wantCode string
	}{
		{"missing header", "", fiber.StatusUnauthorized, "MISSING_AUTH_HEADER"},
		{"wrong scheme", "Basic abc", fiber.StatusUnauthorized, "INVALID_AUTH_SCHEME"},
		{"empty token", "Bearer ", fiber.StatusUnauthorized, "EMPTY_TOKEN"},
		{"invalid token", "Bearer bad", fiber.StatusUnauthorized, "INVALID_TOKEN"},
		{"inactive account", "Bearer gone", fiber.StatusUnauthorized, "INACTIVE_ACCOUNT"},
		{"valid token", "Bearer good", fiber.StatusOK, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/t", nil)
			if tt.header != "" {
				req.Header.Set(middleware.AuthorizationHeader, tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decode[middleware.ErrorResponse](t, resp.Body).Code)
				return
			}
			got := decode[service.Actor](t, resp.Body)
			assert.Equal(t, member, got)
		})
	}
}

func TestRequireRole(t *testing.T) {
	setActor := func(actor service.Actor) fiber.Handler {
		return func(c *fiber.Ctx) error {
			c.Locals(middleware.ActorKey, actor)
			return c.Next()
		}
	}
	admin := service.Actor{UserID: "a", Role: domain.RoleAdmin, TenantID: "t1"}
	user := service.Actor{UserID: "u", Role: domain.RoleUser, TenantID: "t1"}

	resp, err := newApp(setActor(admin), middleware.RequireRole(domain.RoleAdmin, domain.RoleProductAdmin)).
		Test(httptest.NewRequest("GET", "/t", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = newApp(setActor(user), middleware.RequireRole(domain.RoleAdmin)).
		Test(httptest.NewRequest("GET", "/t", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, err = newApp(middleware.RequireRole(domain.RoleAdmin)).Test(httptest.NewRequest("GET", "/t", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestErrorHandlerStatusMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{domain.NewNotFoundError("x"), fiber.StatusNotFound},
		{domain.NewInvalidInputError("x"), fiber.StatusBadRequest},
		{domain.NewUnauthorizedError("x"), fiber.StatusUnauthorized},
		{domain.NewForbiddenError("x"), fiber.StatusForbidden},
		{domain.NewDuplicateEmailError("a@b.c"), fiber.StatusConflict},
		{domain.NewTenantHasUsersError("t", 2), fiber.StatusConflict},
		{domain.NewInvalidTransitionError("t", domain.TenantApproved), fiber.StatusConflict},
		{domain.NewLimitExceededError("users", 3), fiber.StatusUnprocessableEntity},
		{domain.NewStorageError("x", errors.New("disk")), fiber.StatusServiceUnavailable},
		{fiber.ErrMethodNotAllowed, fiber.StatusMethodNotAllowed},
		{errors.New("boom"), fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			err := tt.err
			app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
			app.Get("/", func(c *fiber.Ctx) error { return err })

			resp, testErr := app.Test(httptest.NewRequest("GET", "/", nil))
			require.NoError(t, testErr)
			assert.Equal(t, tt.status, resp.StatusCode)
			body := decode[middleware.ErrorResponse](t, resp.Body)
			assert.Equal(t, tt.status, body.Status)
		})
	}
}

func TestValidateIDParams(t *testing.T) {
	app := newApp(middleware.ValidateIDParams("id"))

	resp, err := app.Test(httptest.NewRequest("GET", "/t/not-an-id", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	body := decode[middleware.ErrorResponse](t, resp.Body)
	assert.Equal(t, "id", body.Details["param"])

	resp, err = app.Test(httptest.NewRequest("GET", "/t/"+util.NewULID(), nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
