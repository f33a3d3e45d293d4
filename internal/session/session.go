package session

import (
	"sync"

	"github.com/golang-jwt/jwt/v5"
)

const AdminRole = "ADMIN"

// Session is the explicit session-context object injected into the API
// client: it owns the persisted bearer token and exposes login/logout
// lifecycle instead of ambient storage reads.
type Session struct {
	mu    sync.Mutex
	store Store
	state State
}

func Open(store Store) (*Session, error) {
	st, err := store.Load()
	if err != nil {
		return nil, err
	}
	return &Session{store: store, state: st}, nil
}

func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Token
}

func (s *Session) LoggedIn() bool {
	return s.Token() != ""
}

func (s *Session) Login(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Token = token
	return s.store.Save(s.state)
}

// Logout removes all persisted client state, theme preference included.
func (s *Session) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = State{}
	return s.store.Clear()
}

// Expire drops the session after the backend rejected the credential. The
// file is cleared best-effort; the in-memory token is always dropped so no
// further request carries it.
func (s *Session) Expire() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Token = ""
	_ = s.store.Clear()
}

func (s *Session) Theme() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Theme
}

func (s *Session) SetTheme(theme string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Theme = theme
	return s.store.Save(s.state)
}

// Role reads the role claim from the bearer token without verifying the
// signature; verification is the server's job, this gate is UX only. A
// missing or undecodable token reads as no role, not as an error.
func (s *Session) Role() string {
	return RoleFromToken(s.Token())
}

func (s *Session) IsAdmin() bool {
	return s.Role() == AdminRole
}

func RoleFromToken(token string) string {
	if token == "" {
		return ""
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return ""
	}
	role, _ := claims["role"].(string)
	return role
}
