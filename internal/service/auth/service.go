// Package auth implements account signup, password login and the signed
// session tokens stored in the session cookie.
//
// The service is framework-agnostic; the HTTP side lives in
// internal/handler/http/auth.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"newsnotes/internal/domain/entity"
	"newsnotes/internal/observability/logging"
	"newsnotes/internal/repository"
)

// Credentials represents authentication credentials.
type Credentials struct {
	Username string
	Password string
}

// CredentialRequirements defines password policy requirements.
type CredentialRequirements struct {
	MinPasswordLength int
	WeakPasswords     []string
}

// DefaultRequirements mirrors the usual web-framework password validators.
func DefaultRequirements() CredentialRequirements {
	return CredentialRequirements{
		MinPasswordLength: 8,
		WeakPasswords:     []string{"password", "12345678", "qwertyui", "11111111"},
	}
}

// bcrypt ignores everything after 72 bytes.
const maxPasswordBytes = 72

// Service handles signup, login and sessions.
type Service struct {
	users        repository.UserRepository
	hasher       PasswordHasher
	secret       []byte
	ttl          time.Duration
	requirements CredentialRequirements
	now          func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithHasher replaces the default bcrypt hasher.
func WithHasher(h PasswordHasher) Option {
	return func(s *Service) { s.hasher = h }
}

// WithRequirements replaces DefaultRequirements.
func WithRequirements(r CredentialRequirements) Option {
	return func(s *Service) { s.requirements = r }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates an auth service signing sessions with secret.
func NewService(users repository.UserRepository, secret string, ttl time.Duration, opts ...Option) *Service {
	s := &Service{
		users:        users,
		hasher:       NewBcryptHasher(0),
		secret:       []byte(secret),
		ttl:          ttl,
		requirements: DefaultRequirements(),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Signup registers a new user. Field problems are returned as
// *entity.ValidationError keyed by the form field.
func (s *Service) Signup(ctx context.Context, username, password1, password2 string) (*entity.User, error) {
	const op = "auth.Signup"

	username = strings.TrimSpace(username)
	if err := s.validateSignup(username, password1, password2); err != nil {
		logging.FromContext(ctx).Warn("signup rejected",
			slog.String("op", op),
			slog.String("username", username),
			slog.String("reason", err.Error()))
		return nil, err
	}

	existing, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	hash, err := s.hasher.Hash(password1)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &entity.User{
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    s.now(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	logging.FromContext(ctx).Info("user signed up",
		slog.Int64("user_id", user.ID),
		slog.String("username", user.Username))
	return user, nil
}

func (s *Service) validateSignup(username, password1, password2 string) error {
	if username == "" {
		return &entity.ValidationError{Field: "username", Message: "Обязательное поле."}
	}
	if utf8.RuneCountInString(username) > entity.MaxUsernameLength {
		return &entity.ValidationError{Field: "username", Message: "Имя пользователя слишком длинное."}
	}
	if password1 == "" {
		return &entity.ValidationError{Field: "password1", Message: "Обязательное поле."}
	}
	if password1 != password2 {
		return &entity.ValidationError{Field: "password2", Message: "Введенные пароли не совпадают."}
	}
	if len(password1) < s.requirements.MinPasswordLength {
		return &entity.ValidationError{Field: "password2", Message: fmt.Sprintf("Пароль слишком короткий. Он должен содержать как минимум %d символов.", s.requirements.MinPasswordLength)}
	}
	if len(password1) > maxPasswordBytes {
		return &entity.ValidationError{Field: "password2", Message: "Пароль слишком длинный."}
	}
	for _, weak := range s.requirements.WeakPasswords {
		if strings.EqualFold(password1, weak) {
			return &entity.ValidationError{Field: "password2", Message: "Введённый пароль слишком широко распространён."}
		}
	}
	if strings.EqualFold(password1, username) {
		return &entity.ValidationError{Field: "password2", Message: "Введённый пароль слишком похож на имя пользователя."}
	}
	return nil
}

// Authenticate checks creds and returns the matching user.
func (s *Service) Authenticate(ctx context.Context, creds Credentials) (*entity.User, error) {
	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(creds.Username))
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := s.hasher.Verify(creds.Password, user.PasswordHash); err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("verify password: %w", err)
	}
	return user, nil
}

// Resolve parses token and loads the session user.
func (s *Service) Resolve(ctx context.Context, token string) (*entity.User, error) {
	sess, err := s.ParseSession(token)
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, sess.UserID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidSession
	}
	return user, nil
}
