package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/user-management/internal/core/domain"
	"github.com/99minutos/user-management/internal/core/ports"
	"github.com/99minutos/user-management/internal/core/validation"
)

const testUserID = "3f1c2a9e-8a0b-4b55-9a3e-6f1d2c3b4a5d"

type stubUserService struct {
	createFn func(ctx context.Context, in validation.UserCreate) (*domain.User, error)
	getFn    func(ctx context.Context, id string) (*domain.User, error)
	listFn   func(ctx context.Context, skip, limit int) (*ports.UserPage, error)
	updateFn func(ctx context.Context, id string, in validation.UserUpdate) (*domain.User, error)
	deleteFn func(ctx context.Context, id string) error
}

func (s *stubUserService) Create(ctx context.Context, in validation.UserCreate) (*domain.User, error) {
	return s.createFn(ctx, in)
}

func (s *stubUserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.getFn(ctx, id)
}

func (s *stubUserService) List(ctx context.Context, skip, limit int) (*ports.UserPage, error) {
	return s.listFn(ctx, skip, limit)
}

func (s *stubUserService) Update(ctx context.Context, id string, in validation.UserUpdate) (*domain.User, error) {
	return s.updateFn(ctx, id, in)
}

func (s *stubUserService) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func sampleUser() *domain.User {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return &domain.User{
		ID:        testUserID,
		Email:     "dana@example.com",
		Nickname:  "dana_01",
		Role:      domain.RoleAuthenticated,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func withUserID(c echo.Context, id string) echo.Context {
	c.SetPath("/users/:user_id")
	c.SetParamNames("user_id")
	c.SetParamValues(id)
	return c
}

func TestUserHandler_Create_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		createFn: func(_ context.Context, in validation.UserCreate) (*domain.User, error) {
			u := sampleUser()
			u.Email = in.Email
			return u, nil
		},
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/users/", `{"email":"dana@example.com","password":"Secure*1234"}`), rec)

	if err := NewUserHandler(stub).Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestUserHandler_Create_ValidationRunsBeforeService(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		createFn: func(context.Context, validation.UserCreate) (*domain.User, error) {
			t.Fatalf("service must not be called")
			return nil, nil
		},
	}
	c := e.NewContext(jsonRequest(http.MethodPost, "/users/", `{"email":"dana@example.com","password":"password"}`), httptest.NewRecorder())

	err := NewUserHandler(stub).Create(c)
	var ve *domain.ValidationError
	if !errors.As(err, &ve) || ve.Field != "password" {
		t.Fatalf("expected password validation error, got %v", err)
	}
}

func TestUserHandler_List(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		listFn: func(_ context.Context, skip, limit int) (*ports.UserPage, error) {
			if skip != 20 || limit != 10 {
				t.Fatalf("unexpected paging: skip=%d limit=%d", skip, limit)
			}
			return &ports.UserPage{Items: []*domain.User{sampleUser()}, Total: 21, Page: 3, Size: 1}, nil
		},
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/users/?skip=20&limit=10", nil), rec)

	if err := NewUserHandler(stub).List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp userListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Total != 21 || resp.Page != 3 || resp.Size != 1 || len(resp.Items) != 1 {
		t.Fatalf("unexpected page: %+v", resp)
	}
}

func TestUserHandler_List_BadQuery(t *testing.T) {
	e := newTestEcho()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/users/?limit=ten", nil), httptest.NewRecorder())

	err := NewUserHandler(&stubUserService{}).List(c)
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestUserHandler_Get_NotFound(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		getFn: func(context.Context, string) (*domain.User, error) { return nil, domain.ErrUserNotFound },
	}
	c := withUserID(e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder()), testUserID)

	if err := NewUserHandler(stub).Get(c); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserHandler_Get_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		getFn: func(_ context.Context, id string) (*domain.User, error) {
			if id != testUserID {
				t.Fatalf("unexpected id: %s", id)
			}
			return sampleUser(), nil
		},
	}
	rec := httptest.NewRecorder()
	c := withUserID(e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec), testUserID)

	if err := NewUserHandler(stub).Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp userResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Email != "dana@example.com" || resp.Links.Self != "/users/"+testUserID {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestUserHandler_Get_BadID(t *testing.T) {
	e := newTestEcho()
	c := withUserID(e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder()), "42")

	err := NewUserHandler(&stubUserService{}).Get(c)
	var ve *domain.ValidationError
	if !errors.As(err, &ve) || ve.Field != "user_id" {
		t.Fatalf("expected user_id validation error, got %v", err)
	}
}

func TestUserHandler_Update_EmptyPayload(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		updateFn: func(context.Context, string, validation.UserUpdate) (*domain.User, error) {
			t.Fatalf("service must not be called")
			return nil, nil
		},
	}
	body := `{"email":null,"nickname":"","bio":null}`
	c := withUserID(e.NewContext(jsonRequest(http.MethodPut, "/", body), httptest.NewRecorder()), testUserID)

	err := NewUserHandler(stub).Update(c)
	var ve *domain.ValidationError
	if !errors.As(err, &ve) || ve.Reason != "At least one field must be provided for update" {
		t.Fatalf("expected empty-update validation error, got %v", err)
	}
}

func TestUserHandler_Update_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		updateFn: func(_ context.Context, id string, in validation.UserUpdate) (*domain.User, error) {
			if in.Bio == nil || *in.Bio != "hi" || in.Email != nil {
				t.Fatalf("unexpected update: %+v", in)
			}
			u := sampleUser()
			u.Bio = *in.Bio
			return u, nil
		},
	}
	rec := httptest.NewRecorder()
	c := withUserID(e.NewContext(jsonRequest(http.MethodPut, "/", `{"bio":"hi"}`), rec), testUserID)

	if err := NewUserHandler(stub).Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUserHandler_Update_Unlock(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		updateFn: func(_ context.Context, id string, in validation.UserUpdate) (*domain.User, error) {
			if in.IsLocked == nil || *in.IsLocked {
				t.Fatalf("expected is_locked=false, got %+v", in)
			}
			return sampleUser(), nil
		},
	}
	rec := httptest.NewRecorder()
	c := withUserID(e.NewContext(jsonRequest(http.MethodPut, "/", `{"is_locked":false}`), rec), testUserID)

	if err := NewUserHandler(stub).Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUserHandler_Delete(t *testing.T) {
	e := newTestEcho()
	deleted := ""
	stub := &stubUserService{
		deleteFn: func(_ context.Context, id string) error {
			deleted = id
			return nil
		},
	}
	rec := httptest.NewRecorder()
	c := withUserID(e.NewContext(httptest.NewRequest(http.MethodDelete, "/", nil), rec), testUserID)

	if err := NewUserHandler(stub).Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent || deleted != testUserID {
		t.Fatalf("unexpected result: code=%d deleted=%q", rec.Code, deleted)
	}
}
