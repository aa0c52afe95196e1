// Package session holds the client side of authentication: the persisted
// token, the signed-in user and the one-time introduction prompt.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"sunnah-steps/models"
)

type State int

const (
	Unauthenticated State = iota
	Verifying
	Authenticated
)

func (s State) String() string {
	switch s {
	case Unauthenticated:
		return "unauthenticated"
	case Verifying:
		return "verifying"
	case Authenticated:
		return "authenticated"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// ErrNotAuthenticated is returned by operations that need a signed-in user.
var ErrNotAuthenticated = errors.New("not authenticated")

// Session is safe for concurrent use.
type Session struct {
	api   API
	store Store

	mu        sync.Mutex
	state     State
	token     string
	user      *models.User
	showIntro bool
}

func New(api API, store Store) *Session {
	return &Session{api: api, store: store}
}

// Start restores a persisted token and verifies it with the server. A token
// the server rejects is discarded and the session stays unauthenticated; only
// store failures are returned.
func (s *Session) Start(ctx context.Context) error {
	token, err := s.store.LoadToken()
	if err != nil {
		return fmt.Errorf("load token: %w", err)
	}
	if token == "" {
		s.reset()
		return nil
	}

	s.mu.Lock()
	s.state = Verifying
	s.mu.Unlock()

	user, err := s.api.Me(ctx, token)
	if err != nil {
		s.reset()
		if clearErr := s.store.ClearToken(); clearErr != nil {
			return fmt.Errorf("clear token: %w", clearErr)
		}
		return nil
	}

	s.mu.Lock()
	s.state = Authenticated
	s.token = token
	s.user = user
	s.mu.Unlock()
	return nil
}

// Login raises the introduction prompt the first time a user signs in on
// this client.
func (s *Session) Login(ctx context.Context, email, password string) error {
	resp, err := s.api.Login(ctx, email, password)
	if err != nil {
		return err
	}

	seen, err := s.store.HasSeenIntroduction(resp.User.ID)
	if err != nil {
		return fmt.Errorf("read introduction flag: %w", err)
	}
	if !seen {
		if err := s.store.MarkIntroductionSeen(resp.User.ID); err != nil {
			return fmt.Errorf("write introduction flag: %w", err)
		}
	}

	return s.authenticate(resp, !seen)
}

// Signup always raises the introduction prompt.
func (s *Session) Signup(ctx context.Context, name, email, password string) error {
	resp, err := s.api.Signup(ctx, name, email, password)
	if err != nil {
		return err
	}

	if err := s.store.MarkIntroductionSeen(resp.User.ID); err != nil {
		return fmt.Errorf("write introduction flag: %w", err)
	}

	return s.authenticate(resp, true)
}

// Logout is local only; the server keeps no session to end.
func (s *Session) Logout() error {
	s.reset()
	if err := s.store.ClearToken(); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

func (s *Session) DismissIntroduction() {
	s.mu.Lock()
	s.showIntro = false
	s.mu.Unlock()
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Token returns "" unless authenticated.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// User returns a copy of the signed-in user, or nil.
func (s *Session) User() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Session) ShouldShowIntroduction() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.showIntro
}

func (s *Session) Close() error {
	return s.store.Close()
}

func (s *Session) authenticate(resp *models.AuthResponse, showIntro bool) error {
	if err := s.store.SaveToken(resp.Token); err != nil {
		return fmt.Errorf("save token: %w", err)
	}

	user := resp.User
	s.mu.Lock()
	s.state = Authenticated
	s.token = resp.Token
	s.user = &user
	s.showIntro = showIntro
	s.mu.Unlock()
	return nil
}

func (s *Session) reset() {
	s.mu.Lock()
	s.state = Unauthenticated
	s.token = ""
	s.user = nil
	s.showIntro = false
	s.mu.Unlock()
}
