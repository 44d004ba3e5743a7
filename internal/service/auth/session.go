package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"newsnotes/internal/domain/entity"
)

// Session is the decoded content of a session cookie.
type Session struct {
	UserID    int64
	Username  string
	ExpiresAt time.Time
}

type sessionClaims struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// IssueSession signs an HS256 token for user, valid for the service TTL.
func (s *Service) IssueSession(user *entity.User) (string, time.Time, error) {
	if user == nil || user.ID <= 0 {
		return "", time.Time{}, errors.New("issue session: user required")
	}
	now := s.now()
	exp := now.Add(s.ttl)

	claims := sessionClaims{
		Name: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign session: %w", err)
	}
	return token, exp, nil
}

// ParseSession verifies the signature and expiry of token.
func (s *Service) ParseSession(token string) (*Session, error) {
	var claims sessionClaims
	tok, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	},
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !tok.Valid {
		return nil, ErrInvalidSession
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id <= 0 {
		return nil, ErrInvalidSession
	}
	return &Session{
		UserID:    id,
		Username:  claims.Name,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
