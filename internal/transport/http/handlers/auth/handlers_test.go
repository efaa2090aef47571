package authhandler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	"hrrecords/internal/domain/auth"
	"hrrecords/internal/transport/http/middleware"
)

type memUsers struct {
	users map[string]auth.User
}

func (m *memUsers) FindActiveUserByEmail(_ context.Context, email string) (auth.User, error) {
	u, ok := m.users[email]
	if !ok {
		return auth.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func (m *memUsers) UpdateLastLogin(context.Context, string) error { return nil }

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	hash, err := auth.HashPassword("Stronger123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	users := &memUsers{users: map[string]auth.User{
		"mgr@example.com": {ID: "u-mgr", Email: "mgr@example.com", DisplayName: "Mia", RoleName: auth.RoleManager, PasswordHash: hash},
	}}
	r := chi.NewRouter()
	r.Use(middleware.Auth("secret"))
	NewHandler(auth.NewService(users, "secret", time.Hour)).RegisterRoutes(r)
	return r
}

func post(t *testing.T, router http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestLogin(t *testing.T) {
	router := newRouter(t)

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{name: "valid credentials", body: `{"email":"mgr@example.com","password":"Stronger123"}`, status: http.StatusOK},
		{name: "wrong password", body: `{"email":"mgr@example.com","password":"nope"}`, status: http.StatusUnauthorized},
		{name: "unknown user", body: `{"email":"who@example.com","password":"Stronger123"}`, status: http.StatusUnauthorized},
		{name: "missing fields", body: `{}`, status: http.StatusBadRequest},
		{name: "malformed", body: `{`, status: http.StatusBadRequest},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := post(t, router, tc.body)
			if rec.Code != tc.status {
				t.Fatalf("expected %d, got %d: %s", tc.status, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestLoginTokenAuthenticatesMe(t *testing.T) {
	router := newRouter(t)
	rec := post(t, router, `{"email":"mgr@example.com","password":"Stronger123"}`)
	var env struct {
		Data auth.Session `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Data.Token == "" {
		t.Fatal("expected token")
	}

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+env.Data.Token)
	me := httptest.NewRecorder()
	router.ServeHTTP(me, req)
	if me.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", me.Code)
	}
	var body struct {
		Data struct {
			ID   string `json:"id"`
			Role string `json:"role"`
		} `json:"data"`
	}
	if err := json.Unmarshal(me.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Data.ID != "u-mgr" || body.Data.Role != auth.RoleManager {
		t.Fatalf("unexpected identity: %+v", body.Data)
	}

	anon := httptest.NewRecorder()
	router.ServeHTTP(anon, httptest.NewRequest(http.MethodGet, "/auth/me", nil))
	if anon.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", anon.Code)
	}
}
