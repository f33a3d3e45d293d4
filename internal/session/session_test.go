package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, role string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":  "admin",
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func tempSession(t *testing.T) *Session {
	t.Helper()
	s, err := Open(Store{Path: filepath.Join(t.TempDir(), "session.json")})
	if err != nil {
		t.Fatalf("open session: %v", err)
	}
	return s
}

func TestLoginPersistsAndReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	s, err := Open(Store{Path: path})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	token := signedToken(t, AdminRole)
	if err := s.Login(token); err != nil {
		t.Fatalf("login: %v", err)
	}

	reopened, err := Open(Store{Path: path})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if reopened.Token() != token {
		t.Fatalf("token not persisted")
	}
	if !reopened.IsAdmin() {
		t.Fatalf("expected admin role from token")
	}
}

func TestLogoutWipesEverything(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	s, err := Open(Store{Path: path})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.Login(signedToken(t, AdminRole)); err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := s.SetTheme("indigo"); err != nil {
		t.Fatalf("set theme: %v", err)
	}
	if err := s.Logout(); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if s.LoggedIn() || s.Theme() != "" {
		t.Fatalf("state not cleared: token=%q theme=%q", s.Token(), s.Theme())
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("session file should be removed, stat err=%v", err)
	}
}

func TestExpireDropsTokenInMemory(t *testing.T) {
	s := tempSession(t)
	if err := s.Login(signedToken(t, AdminRole)); err != nil {
		t.Fatalf("login: %v", err)
	}
	s.Expire()
	if s.LoggedIn() {
		t.Fatalf("expired session still has a token")
	}
}

func TestRoleFromMalformedTokenIsEmpty(t *testing.T) {
	if RoleFromToken("not-a-jwt") != "" {
		t.Fatalf("malformed token should read as no role")
	}
	if RoleFromToken("") != "" {
		t.Fatalf("empty token should read as no role")
	}
	if RoleFromToken(signedToken(t, "USER")) != "USER" {
		t.Fatalf("expected USER role claim")
	}
}

func TestNonAdminRoleIsRefused(t *testing.T) {
	s := tempSession(t)
	if err := s.Login(signedToken(t, "USER")); err != nil {
		t.Fatalf("login: %v", err)
	}
	if s.IsAdmin() {
		t.Fatalf("USER role must not pass the admin gate")
	}
}
