package handler

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	apimw "github.com/keijiban/bulletin-board/internal/api/middleware"
	"github.com/keijiban/bulletin-board/internal/core/domain"
	"github.com/keijiban/bulletin-board/internal/core/ports"
)

// stubAuthService lets each test script the one call it cares about.
type stubAuthService struct {
	loginFn func(ctx context.Context, username, password string) (string, error)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (string, error) {
	return s.loginFn(ctx, username, password)
}

type stubUserService struct {
	createFn  func(ctx context.Context, username, password, role string) (*domain.User, error)
	getByIDFn func(ctx context.Context, id string) (*domain.User, error)
	listFn    func(ctx context.Context) ([]*domain.User, error)
	updateFn  func(ctx context.Context, id string, input ports.UpdateUserInput) (*domain.User, error)
	deleteFn  func(ctx context.Context, id string) error
}

func (s *stubUserService) Create(ctx context.Context, username, password, role string) (*domain.User, error) {
	return s.createFn(ctx, username, password, role)
}

func (s *stubUserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return s.getByIDFn(ctx, id)
}

func (s *stubUserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.listFn(ctx)
}

func (s *stubUserService) Update(ctx context.Context, id string, input ports.UpdateUserInput) (*domain.User, error) {
	return s.updateFn(ctx, id, input)
}

func (s *stubUserService) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

type stubPostService struct {
	createFn       func(ctx context.Context, actor ports.Actor, title, message string) (*domain.Post, error)
	getByIDFn      func(ctx context.Context, id string) (*domain.Post, error)
	listFn         func(ctx context.Context, limit int) ([]*domain.Post, error)
	listByAuthorFn func(ctx context.Context, authorID string) ([]*domain.Post, error)
	updateFn       func(ctx context.Context, actor ports.Actor, id string, fields ports.UpdatePostFields) (*domain.Post, error)
	deleteFn       func(ctx context.Context, actor ports.Actor, id string) error
}

func (s *stubPostService) Create(ctx context.Context, actor ports.Actor, title, message string) (*domain.Post, error) {
	return s.createFn(ctx, actor, title, message)
}

func (s *stubPostService) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	return s.getByIDFn(ctx, id)
}

func (s *stubPostService) List(ctx context.Context, limit int) ([]*domain.Post, error) {
	return s.listFn(ctx, limit)
}

func (s *stubPostService) ListByAuthor(ctx context.Context, authorID string) ([]*domain.Post, error) {
	return s.listByAuthorFn(ctx, authorID)
}

func (s *stubPostService) Update(ctx context.Context, actor ports.Actor, id string, fields ports.UpdatePostFields) (*domain.Post, error) {
	return s.updateFn(ctx, actor, id, fields)
}

func (s *stubPostService) Delete(ctx context.Context, actor ports.Actor, id string) error {
	return s.deleteFn(ctx, actor, id)
}

// newJSONContext builds an echo context with the validator wired, the way the
// router configures the real instance.
func newJSONContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// asActor injects the context keys the Auth middleware would have set.
func asActor(c echo.Context, actor ports.Actor) {
	c.Set(apimw.CtxUserID, actor.UserID)
	c.Set(apimw.CtxUsername, actor.Username)
	c.Set(apimw.CtxRole, actor.Role)
}
