package authstore

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/go-playground/validator/v10"

	"fakestore/internal/models"
	"fakestore/pkg/lib/logger/sl"
)

type AuthClient interface {
	Login(ctx context.Context, creds models.Credentials) (string, models.User, error)
	Signup(ctx context.Context, creds models.SignupCredentials) (models.User, error)
}

// TokenSink receives the bearer token on login so subsequent requests
// carry it. The shared api.Client satisfies this.
type TokenSink interface {
	SetToken(token string)
	ClearToken()
}

type Session struct {
	User  *models.User
	Token string
	Err   string
}

type Store struct {
	log      *slog.Logger
	client   AuthClient
	sink     TokenSink
	validate *validator.Validate

	mu    sync.RWMutex
	user  *models.User
	token string
	err   string
}

func New(log *slog.Logger, client AuthClient, sink TokenSink) *Store {
	return &Store{
		log:      log,
		client:   client,
		sink:     sink,
		validate: validator.New(),
	}
}

func (s *Store) Login(ctx context.Context, creds models.Credentials) (models.User, error) {
	const op = "store.auth.Login"
	log := s.log.With("op", op, "username", creds.Username)

	if err := s.validate.Struct(creds); err != nil {
		wrapped := fmt.Errorf("%s: %w", op, err)
		s.recordErr(wrapped)
		return models.User{}, wrapped
	}

	token, user, err := s.client.Login(ctx, creds)
	if err != nil {
		log.Error("Login failed", sl.Err(err))
		wrapped := fmt.Errorf("%s: %w", op, err)
		s.recordErr(wrapped)
		return models.User{}, wrapped
	}

	s.sink.SetToken(token)

	s.mu.Lock()
	s.user = &user
	s.token = token
	s.err = ""
	s.mu.Unlock()

	log.Info("Logged in", "userId", user.Id)
	return user, nil
}

// Signup registers a new account and records the created user in the
// session. It does not log the user in; no token is issued.
func (s *Store) Signup(ctx context.Context, creds models.SignupCredentials) (models.User, error) {
	const op = "store.auth.Signup"
	log := s.log.With("op", op, "username", creds.Username)

	if err := s.validate.Struct(creds); err != nil {
		wrapped := fmt.Errorf("%s: %w", op, err)
		s.recordErr(wrapped)
		return models.User{}, wrapped
	}

	user, err := s.client.Signup(ctx, creds)
	if err != nil {
		log.Error("Signup failed", sl.Err(err))
		wrapped := fmt.Errorf("%s: %w", op, err)
		s.recordErr(wrapped)
		return models.User{}, wrapped
	}

	s.mu.Lock()
	s.user = &user
	s.err = ""
	s.mu.Unlock()

	log.Info("Signed up", "userId", user.Id)
	return user, nil
}

func (s *Store) Logout() {
	s.sink.ClearToken()

	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.err = ""
	s.mu.Unlock()
}

func (s *Store) Session() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess := Session{
		Token: s.token,
		Err:   s.err,
	}
	if s.user != nil {
		u := *s.user
		sess.User = &u
	}
	return sess
}

func (s *Store) recordErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err.Error()
}
