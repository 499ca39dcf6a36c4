package user

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stagedesk/internal/application/user/usecases"
	"stagedesk/internal/interfaces/http/handlers/testutil"
	"stagedesk/internal/shared/errors"
)

type mockRegisterUC struct {
	result *usecases.RegisterUserResult
	err    error
}

func (m *mockRegisterUC) Execute(_ context.Context, _ usecases.RegisterUserCommand) (*usecases.RegisterUserResult, error) {
	return m.result, m.err
}

type mockLoginUC struct {
	result *usecases.LoginUserResult
	err    error
}

func (m *mockLoginUC) Execute(_ context.Context, _ usecases.LoginUserCommand) (*usecases.LoginUserResult, error) {
	return m.result, m.err
}

type mockProfileUC struct {
	result *usecases.ProfileResult
	err    error
}

func (m *mockProfileUC) Execute(_ context.Context, _ usecases.GetProfileQuery) (*usecases.ProfileResult, error) {
	return m.result, m.err
}

type testDeps struct {
	registerUC usecases.RegisterUserExecutor
	loginUC    usecases.LoginUserExecutor
	profileUC  usecases.GetProfileExecutor
}

func newTestUserHandler(deps testDeps) *UserHandler {
	return NewUserHandler(deps.registerUC, deps.loginUC, deps.profileUC)
}

func TestUserHandler_Register_Success(t *testing.T) {
	mockUC := &mockRegisterUC{
		result: &usecases.RegisterUserResult{
			UserID:    1,
			UUID:      "7f2cdc70-1111-4a4a-9b9b-000000000001",
			Email:     "alice@example.com",
			Name:      "Alice",
			Role:      "growth",
			CreatedAt: time.Now().UTC(),
		},
	}
	handler := newTestUserHandler(testDeps{registerUC: mockUC})

	reqBody := RegisterRequest{
		Email:    "alice@example.com",
		Password: "s3cret-pass",
		Name:     "Alice",
		Role:     "growth",
	}
	c, w := testutil.NewTestContext(http.MethodPost, "/auth/register", reqBody)

	handler.Register(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.True(t, resp.Success)
}

func TestUserHandler_Register_BindError(t *testing.T) {
	handler := newTestUserHandler(testDeps{})

	reqBody := map[string]string{"email": "not-an-email"}
	c, w := testutil.NewTestContext(http.MethodPost, "/auth/register", reqBody)

	handler.Register(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.False(t, resp.Success)
}

func TestUserHandler_Register_DuplicateEmail(t *testing.T) {
	mockUC := &mockRegisterUC{
		err: errors.NewConflictError("email is already registered"),
	}
	handler := newTestUserHandler(testDeps{registerUC: mockUC})

	reqBody := RegisterRequest{
		Email:    "alice@example.com",
		Password: "s3cret-pass",
		Name:     "Alice",
		Role:     "growth",
	}
	c, w := testutil.NewTestContext(http.MethodPost, "/auth/register", reqBody)

	handler.Register(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "email is already registered", resp.Error.Message)
}

func TestUserHandler_Login_Success(t *testing.T) {
	mockUC := &mockLoginUC{
		result: &usecases.LoginUserResult{
			UserID:       1,
			UUID:         "7f2cdc70-1111-4a4a-9b9b-000000000001",
			Email:        "alice@example.com",
			Name:         "Alice",
			Role:         "growth",
			IsManager:    true,
			AccessToken:  "access-token",
			RefreshToken: "refresh-token",
			ExpiresIn:    900,
		},
	}
	handler := newTestUserHandler(testDeps{loginUC: mockUC})

	reqBody := LoginRequest{Email: "alice@example.com", Password: "s3cret-pass"}
	c, w := testutil.NewTestContext(http.MethodPost, "/auth/login", reqBody)

	handler.Login(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.True(t, resp.Success)
	assert.Contains(t, string(resp.Data), "access_token")
}

func TestUserHandler_Login_InvalidCredentials(t *testing.T) {
	mockUC := &mockLoginUC{
		err: errors.NewUnauthorizedError("invalid email or password"),
	}
	handler := newTestUserHandler(testDeps{loginUC: mockUC})

	reqBody := LoginRequest{Email: "alice@example.com", Password: "wrong"}
	c, w := testutil.NewTestContext(http.MethodPost, "/auth/login", reqBody)

	handler.Login(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.False(t, resp.Success)
}

func TestUserHandler_GetProfile_Success(t *testing.T) {
	mockUC := &mockProfileUC{
		result: &usecases.ProfileResult{
			UserID:    1,
			Email:     "alice@example.com",
			Name:      "Alice",
			Role:      "growth",
			IsActive:  true,
			CreatedAt: time.Now().UTC(),
		},
	}
	handler := newTestUserHandler(testDeps{profileUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/auth/profile", nil)
	testutil.SetAuthContext(c, 1, "growth", false)

	handler.GetProfile(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.True(t, resp.Success)
}

func TestUserHandler_GetProfile_NotAuthenticated(t *testing.T) {
	handler := newTestUserHandler(testDeps{})

	c, w := testutil.NewTestContext(http.MethodGet, "/auth/profile", nil)

	handler.GetProfile(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.False(t, resp.Success)
}
