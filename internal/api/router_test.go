package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/keijiban/bulletin-board/internal/core/auth"
	"github.com/keijiban/bulletin-board/internal/core/domain"
	"github.com/keijiban/bulletin-board/internal/core/ports"
	"github.com/keijiban/bulletin-board/internal/infrastructure/config"
)

// memUserRepo is an in-memory ports.UserRepository for router tests.
type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*domain.User)}
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == user.Username {
			return nil, domain.ErrUserExists
		}
	}
	cp := *user
	r.users[user.ID] = &cp
	return user, nil
}

func (r *memUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUserRepo) FindAll(_ context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memUserRepo) Update(_ context.Context, id string, fields ports.UpdateUserFields) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if fields.Username != nil && *fields.Username != "" {
		u.Username = *fields.Username
	}
	if fields.PasswordHash != nil && *fields.PasswordHash != "" {
		u.PasswordHash = *fields.PasswordHash
	}
	if fields.Role != nil && *fields.Role != "" {
		u.Role = *fields.Role
	}
	u.UpdatedAt = time.Now().UTC()
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

// memPostRepo is an in-memory ports.PostRepository for router tests.
type memPostRepo struct {
	mu    sync.Mutex
	posts map[string]*domain.Post
}

func newMemPostRepo() *memPostRepo {
	return &memPostRepo{posts: make(map[string]*domain.Post)}
}

func (r *memPostRepo) Create(_ context.Context, post *domain.Post) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *post
	r.posts[post.ID] = &cp
	return post, nil
}

func (r *memPostRepo) FindByID(_ context.Context, id string) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *memPostRepo) FindAll(_ context.Context, limit int) ([]*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Post, 0, len(r.posts))
	for _, p := range r.posts {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memPostRepo) FindByAuthor(_ context.Context, authorID string) ([]*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Post, 0)
	for _, p := range r.posts {
		if p.AuthorID == authorID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memPostRepo) Update(_ context.Context, id string, fields ports.UpdatePostFields) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	if fields.Title != nil && *fields.Title != "" {
		p.Title = *fields.Title
	}
	if fields.Message != nil && *fields.Message != "" {
		p.Message = *fields.Message
	}
	p.UpdatedAt = time.Now().UTC()
	cp := *p
	return &cp, nil
}

func (r *memPostRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[id]; !ok {
		return domain.ErrPostNotFound
	}
	delete(r.posts, id)
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		Port:            "8080",
		Env:             "test",
		JWTSecret:       "router-test-secret",
		TokenTTLMinutes: 60,
		CORSOrigins:     "*",
	}
}

func do(e *echo.Echo, method, path, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, e *echo.Echo, username, password string) string {
	t.Helper()
	rec := do(e, http.MethodPost, "/auth/login", "", fmt.Sprintf(`{"username":%q,"password":%q}`, username, password))
	if rec.Code != http.StatusOK {
		t.Fatalf("login as %s failed: %d %s", username, rec.Code, rec.Body.String())
	}
	var body struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad login response: %v", err)
	}
	if body.TokenType != "bearer" || body.AccessToken == "" {
		t.Fatalf("bad token envelope: %+v", body)
	}
	return body.AccessToken
}

// TestRouter_EndToEnd walks the whole board lifecycle over the HTTP surface:
// bootstrap admin, account management, posting, the owner-or-admin rule, and
// the auth failure paths.
func TestRouter_EndToEnd(t *testing.T) {
	users := newMemUserRepo()
	posts := newMemPostRepo()

	hash, err := auth.HashPassword("adminpass")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	now := time.Now().UTC()
	if _, err := users.Create(context.Background(), &domain.User{
		ID: "admin-1", Username: "root", PasswordHash: hash,
		Role: domain.RoleAdmin, CreatedAt: now, UpdatedAt: now,
	}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	e := newRouter(testConfig(), zerolog.Nop(), users, posts, nil, nil)

	// Liveness is open.
	if rec := do(e, http.MethodGet, "/", "", ""); rec.Code != http.StatusOK {
		t.Fatalf("liveness: expected 200, got %d", rec.Code)
	}

	// Everything else requires a token.
	if rec := do(e, http.MethodGet, "/posts", "", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	adminToken := login(t, e, "root", "adminpass")

	// Bad password stays a 401 with a challenge.
	rec := do(e, http.MethodPost, "/auth/login", "", `{"username":"root","password":"nope99"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 on bad password, got %d", rec.Code)
	}

	// Admin provisions two accounts.
	rec = do(e, http.MethodPost, "/users", adminToken, `{"username":"alice","password":"alicepw"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create alice: expected 201, got %d %s", rec.Code, rec.Body.String())
	}
	var aliceAccount struct {
		UserID string `json:"user_id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &aliceAccount); err != nil {
		t.Fatalf("bad create response: %v", err)
	}
	rec = do(e, http.MethodPost, "/users", adminToken, `{"username":"bob","password":"bobpass"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create bob: expected 201, got %d", rec.Code)
	}

	// Duplicate usernames are rejected with 400.
	rec = do(e, http.MethodPost, "/users", adminToken, `{"username":"alice","password":"other1"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("duplicate username: expected 400, got %d", rec.Code)
	}

	aliceToken := login(t, e, "alice", "alicepw")
	bobToken := login(t, e, "bob", "bobpass")

	// Plain users cannot touch account management.
	if rec := do(e, http.MethodGet, "/users", aliceToken, ""); rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 on /users for plain user, got %d", rec.Code)
	}

	// /auth/me reflects the token subject.
	rec = do(e, http.MethodGet, "/auth/me", aliceToken, "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"username":"alice"`) {
		t.Fatalf("me: %d %s", rec.Code, rec.Body.String())
	}

	// Alice posts twice; listing comes back newest first.
	rec = do(e, http.MethodPost, "/posts", aliceToken, `{"title":"first","message":"hello"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create post: expected 201, got %d %s", rec.Code, rec.Body.String())
	}
	var created struct {
		PostID string `json:"post_id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("bad post response: %v", err)
	}

	time.Sleep(5 * time.Millisecond)
	rec = do(e, http.MethodPost, "/posts", aliceToken, `{"title":"second","message":"again"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create post: expected 201, got %d", rec.Code)
	}

	rec = do(e, http.MethodGet, "/posts", bobToken, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list posts: expected 200, got %d", rec.Code)
	}
	var listed []struct {
		Title string `json:"title"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &listed); err != nil {
		t.Fatalf("bad list response: %v", err)
	}
	if len(listed) != 2 || listed[0].Title != "second" {
		t.Fatalf("not newest-first: %+v", listed)
	}

	// The author filter narrows the listing.
	rec = do(e, http.MethodGet, "/posts?author="+aliceAccount.UserID, bobToken, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("author filter: expected 200, got %d", rec.Code)
	}
	var byAuthor []struct {
		UserID string `json:"user_id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &byAuthor); err != nil {
		t.Fatalf("bad filtered response: %v", err)
	}
	if len(byAuthor) != 2 || byAuthor[0].UserID != aliceAccount.UserID {
		t.Fatalf("author filter wrong: %+v", byAuthor)
	}
	if rec = do(e, http.MethodGet, "/posts?author=nobody", bobToken, ""); rec.Code != http.StatusOK {
		t.Fatalf("unknown author: expected 200 with empty list, got %d", rec.Code)
	}

	// Bob cannot touch Alice's post, the admin can.
	rec = do(e, http.MethodPut, "/posts/"+created.PostID, bobToken, `{"title":"hijack"}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("foreign update: expected 403, got %d", rec.Code)
	}
	rec = do(e, http.MethodDelete, "/posts/"+created.PostID, bobToken, "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("foreign delete: expected 403, got %d", rec.Code)
	}
	rec = do(e, http.MethodPut, "/posts/"+created.PostID, adminToken, `{"title":"moderated"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("admin update: expected 200, got %d %s", rec.Code, rec.Body.String())
	}

	// The author deletes their own post.
	rec = do(e, http.MethodDelete, "/posts/"+created.PostID, aliceToken, "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("owner delete: expected 204, got %d", rec.Code)
	}
	rec = do(e, http.MethodGet, "/posts/"+created.PostID, aliceToken, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("deleted post: expected 404, got %d", rec.Code)
	}
}
