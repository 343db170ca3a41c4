package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"geotrack/internal/auth"
	"geotrack/internal/errors"
	"geotrack/internal/model"
	"geotrack/internal/service"
)

// MockUserService is a mock implementation of service.UserService.
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) UpdateInfo(ctx context.Context, userID, name, email, password string) (*model.User, error) {
	args := m.Called(ctx, userID, name, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) ChangeRole(ctx context.Context, userID string, role model.Role) (*model.User, error) {
	args := m.Called(ctx, userID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) Delete(ctx context.Context, userID string) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *MockUserService) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserService) MyInfo(ctx context.Context, userID string) (*service.UserInfo, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.UserInfo), args.Error(1)
}

// MockAuthService is a mock implementation of service.AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, name, email, password string) (*model.User, error) {
	args := m.Called(ctx, name, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

func userClaims(role model.Role) *auth.Claims {
	return &auth.Claims{UserID: "caller", Email: "caller@x.com", Role: role}
}

const updateBody = `{"name":"new name","email":"new@example.com","password":"newpassword"}`

func TestUserHandler_Update(t *testing.T) {
	t.Run("admin without target id", func(t *testing.T) {
		mockUsers := new(MockUserService)
		h := NewUserHandler(mockUsers, new(MockAuthService))
		e := newTestEcho()

		c, _ := putJSON(e, updateBody)
		c.Set("user", userClaims(model.RoleAdmin))

		err := h.Update(c)
		require.Error(t, err)
		he := err.(*echo.HTTPError)
		assert.Equal(t, http.StatusBadRequest, he.Code)
		assert.Contains(t, he.Message, "user_id is required")
		mockUsers.AssertNotCalled(t, "UpdateInfo", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("non-admin updates self implicitly", func(t *testing.T) {
		mockUsers := new(MockUserService)
		mockUsers.On("UpdateInfo", mock.Anything, "caller", "new name", "new@example.com", "newpassword").
			Return(&model.User{ID: "caller", Name: "new name", Email: "new@example.com", Role: model.RoleUser}, nil)

		h := NewUserHandler(mockUsers, new(MockAuthService))
		e := newTestEcho()
		c, rec := putJSON(e, updateBody)
		c.Set("user", userClaims(model.RoleUser))

		require.NoError(t, h.Update(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		mockUsers.AssertExpectations(t)
	})

	t.Run("admin with explicit target id", func(t *testing.T) {
		mockUsers := new(MockUserService)
		mockUsers.On("UpdateInfo", mock.Anything, "target", "new name", "new@example.com", "newpassword").
			Return(&model.User{ID: "target", Name: "new name", Email: "new@example.com", Role: model.RoleUser}, nil)

		h := NewUserHandler(mockUsers, new(MockAuthService))
		e := newTestEcho()
		c, rec := putJSON(e, `{"user_id":"target","name":"new name","email":"new@example.com","password":"newpassword"}`)
		c.Set("user", userClaims(model.RoleAdmin))

		require.NoError(t, h.Update(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		mockUsers.AssertExpectations(t)
	})

	t.Run("unknown target", func(t *testing.T) {
		mockUsers := new(MockUserService)
		mockUsers.On("UpdateInfo", mock.Anything, "target", "new name", "new@example.com", "newpassword").
			Return(nil, errors.ErrUserNotFound)

		h := NewUserHandler(mockUsers, new(MockAuthService))
		e := newTestEcho()
		c, _ := putJSON(e, `{"user_id":"target","name":"new name","email":"new@example.com","password":"newpassword"}`)
		c.Set("user", userClaims(model.RoleAdmin))

		err := h.Update(c)
		require.Error(t, err)
		he := err.(*echo.HTTPError)
		assert.Equal(t, http.StatusBadRequest, he.Code)
	})
}

func putJSON(e *echo.Echo, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPut, "/user", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestUserHandler_ChangeRole(t *testing.T) {
	t.Run("invalid role value", func(t *testing.T) {
		mockUsers := new(MockUserService)
		h := NewUserHandler(mockUsers, new(MockAuthService))
		e := newTestEcho()
		c, _ := postJSON(e, "/user/target/", `{"role":"Superuser"}`)
		c.SetParamNames("id")
		c.SetParamValues("target")

		err := h.ChangeRole(c)
		require.Error(t, err)
		he := err.(*echo.HTTPError)
		assert.Equal(t, http.StatusBadRequest, he.Code)
		assert.Contains(t, he.Message, "invalid role")
		mockUsers.AssertNotCalled(t, "ChangeRole", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("role updated", func(t *testing.T) {
		mockUsers := new(MockUserService)
		mockUsers.On("ChangeRole", mock.Anything, "target", model.RoleAdmin).
			Return(&model.User{ID: "target", Role: model.RoleAdmin}, nil)

		h := NewUserHandler(mockUsers, new(MockAuthService))
		e := newTestEcho()
		c, rec := postJSON(e, "/user/target/", `{"role":"Admin"}`)
		c.SetParamNames("id")
		c.SetParamValues("target")

		require.NoError(t, h.ChangeRole(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		mockUsers.AssertExpectations(t)
	})
}

func TestUserHandler_Delete(t *testing.T) {
	t.Run("unknown id", func(t *testing.T) {
		mockUsers := new(MockUserService)
		mockUsers.On("Delete", mock.Anything, "missing").Return("", errors.ErrUserNotFound)

		h := NewUserHandler(mockUsers, new(MockAuthService))
		e := newTestEcho()
		req := httptest.NewRequest(http.MethodDelete, "/user/missing/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues("missing")

		err := h.Delete(c)
		require.Error(t, err)
		he := err.(*echo.HTTPError)
		assert.Equal(t, http.StatusBadRequest, he.Code)
		assert.Contains(t, he.Message, "missing")
	})

	t.Run("deleted id echoed back", func(t *testing.T) {
		mockUsers := new(MockUserService)
		mockUsers.On("Delete", mock.Anything, "target").Return("target", nil)

		h := NewUserHandler(mockUsers, new(MockAuthService))
		e := newTestEcho()
		req := httptest.NewRequest(http.MethodDelete, "/user/target/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues("target")

		require.NoError(t, h.Delete(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"target"`)
	})
}

func TestUserHandler_List(t *testing.T) {
	t.Run("empty list is 404", func(t *testing.T) {
		mockUsers := new(MockUserService)
		mockUsers.On("List", mock.Anything).Return([]model.User{}, nil)

		h := NewUserHandler(mockUsers, new(MockAuthService))
		e := newTestEcho()
		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := h.List(c)
		require.Error(t, err)
		he := err.(*echo.HTTPError)
		assert.Equal(t, http.StatusNotFound, he.Code)
	})

	t.Run("users returned", func(t *testing.T) {
		mockUsers := new(MockUserService)
		mockUsers.On("List", mock.Anything).Return([]model.User{{ID: "u1"}, {ID: "u2"}}, nil)

		h := NewUserHandler(mockUsers, new(MockAuthService))
		e := newTestEcho()
		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		require.NoError(t, h.List(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestUserHandler_MyInfo(t *testing.T) {
	mockUsers := new(MockUserService)
	mockUsers.On("MyInfo", mock.Anything, "caller").Return(&service.UserInfo{
		User:   &model.User{ID: "caller", Name: "test"},
		Tracks: []model.GpsTrack{{ID: "t1", UserID: "caller"}},
	}, nil)

	h := NewUserHandler(mockUsers, new(MockAuthService))
	e := newTestEcho()
	req := httptest.NewRequest(http.MethodGet, "/info", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user", userClaims(model.RoleUser))

	require.NoError(t, h.MyInfo(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"test"`)
	assert.Contains(t, rec.Body.String(), `"t1"`)
}
