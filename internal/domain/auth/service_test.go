package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
)

type fakeUsers struct {
	users    map[string]User
	lastSeen string
}

func (f *fakeUsers) FindActiveUserByEmail(_ context.Context, email string) (User, error) {
	u, ok := f.users[email]
	if !ok {
		return User{}, pgx.ErrNoRows
	}
	return u, nil
}

func (f *fakeUsers) UpdateLastLogin(_ context.Context, userID string) error {
	f.lastSeen = userID
	return nil
}

func TestLogin(t *testing.T) {
	hash, err := HashPassword("pa55word")
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}
	store := &fakeUsers{users: map[string]User{
		"hr@example.com": {ID: "u-1", Email: "hr@example.com", DisplayName: "Ana", RoleName: RoleHR, PasswordHash: hash},
	}}
	svc := NewService(store, "secret", time.Hour)

	session, err := svc.Login(context.Background(), " hr@example.com ", "pa55word")
	if err != nil {
		t.Fatalf("login error: %v", err)
	}
	if session.User.ID != "u-1" || session.User.Role != RoleHR {
		t.Fatalf("unexpected session user: %+v", session.User)
	}
	claims, err := ParseToken("secret", session.Token)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if claims.UserID != "u-1" || claims.Name != "Ana" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if store.lastSeen != "u-1" {
		t.Fatal("expected last login to be recorded")
	}

	if _, err := svc.Login(context.Background(), "hr@example.com", "nope"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "ghost@example.com", "pa55word"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
}
