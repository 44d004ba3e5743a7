package auth_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"newsnotes/internal/domain/entity"
	"newsnotes/internal/infra/adapter/persistence/memory"
	"newsnotes/internal/service/auth"
)

const secret = "test-secret-test-secret-test-secret"

func newService(t *testing.T, opts ...auth.Option) (*auth.Service, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	opts = append([]auth.Option{auth.WithHasher(auth.NewBcryptHasher(bcrypt.MinCost))}, opts...)
	return auth.NewService(store.Users(), secret, time.Hour, opts...), store
}

/* ───────── Signup / Authenticate ───────── */

func TestSignupAndAuthenticate(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	user, err := svc.Signup(ctx, "  reader ", "Str0ng-pass", "Str0ng-pass")
	require.NoError(t, err)
	assert.Equal(t, "reader", user.Username)
	assert.NotEqual(t, "Str0ng-pass", user.PasswordHash)

	got, err := svc.Authenticate(ctx, auth.Credentials{Username: "reader", Password: "Str0ng-pass"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = svc.Authenticate(ctx, auth.Credentials{Username: "reader", Password: "wrong-pass"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, auth.Credentials{Username: "nobody", Password: "Str0ng-pass"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestSignup_UsernameTaken(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, "author", "Str0ng-pass", "Str0ng-pass")
	require.NoError(t, err)

	_, err = svc.Signup(ctx, "author", "0ther-pass", "0ther-pass")
	assert.ErrorIs(t, err, auth.ErrUsernameTaken)
}

func TestSignup_Validation(t *testing.T) {
	tests := []struct {
		name      string
		username  string
		p1, p2    string
		wantField string
	}{
		{name: "empty username", username: "", p1: "Str0ng-pass", p2: "Str0ng-pass", wantField: "username"},
		{name: "long username", username: strings.Repeat("u", entity.MaxUsernameLength+1), p1: "Str0ng-pass", p2: "Str0ng-pass", wantField: "username"},
		{name: "empty password", username: "u", p1: "", p2: "", wantField: "password1"},
		{name: "mismatch", username: "u", p1: "Str0ng-pass", p2: "Str0ng-pasS", wantField: "password2"},
		{name: "too short", username: "u", p1: "short", p2: "short", wantField: "password2"},
		{name: "too long", username: "u", p1: strings.Repeat("x", 73), p2: strings.Repeat("x", 73), wantField: "password2"},
		{name: "common", username: "u", p1: "password", p2: "password", wantField: "password2"},
		{name: "same as username", username: "longusername", p1: "LongUsername", p2: "LongUsername", wantField: "password2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store := newService(t)

			_, err := svc.Signup(context.Background(), tt.username, tt.p1, tt.p2)

			var vErr *entity.ValidationError
			require.True(t, errors.As(err, &vErr), "err=%v", err)
			assert.Equal(t, tt.wantField, vErr.Field)

			n, _ := store.Users().Count(context.Background())
			assert.Zero(t, n)
		})
	}
}

/* ───────── Sessions ───────── */

func TestSession_RoundTrip(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	user, err := svc.Signup(ctx, "author", "Str0ng-pass", "Str0ng-pass")
	require.NoError(t, err)

	token, exp, err := svc.IssueSession(user)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, time.Minute)

	sess, err := svc.ParseSession(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, sess.UserID)
	assert.Equal(t, "author", sess.Username)

	resolved, err := svc.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)
}

func TestSession_Expired(t *testing.T) {
	now := time.Now()
	clock := func() time.Time { return now }
	svc, _ := newService(t, auth.WithClock(clock))

	token, _, err := svc.IssueSession(&entity.User{ID: 1, Username: "author"})
	require.NoError(t, err)

	now = now.Add(2 * time.Hour)
	_, err = svc.ParseSession(token)
	assert.ErrorIs(t, err, auth.ErrInvalidSession)
}

func TestSession_Rejected(t *testing.T) {
	svc, _ := newService(t)

	other := auth.NewService(memory.NewStore().Users(), "another-secret-another-secret-xx", time.Hour)
	forged, _, err := other.IssueSession(&entity.User{ID: 1, Username: "author"})
	require.NoError(t, err)

	noneAlg, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": "1",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	badSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "not-a-number",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(secret))
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "1"}).SignedString([]byte(secret))
	require.NoError(t, err)

	for name, token := range map[string]string{
		"garbage":     "not-a-jwt",
		"foreign key": forged,
		"alg none":    noneAlg,
		"bad subject": badSubject,
		"no expiry":   noExpiry,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.ParseSession(token)
			assert.ErrorIs(t, err, auth.ErrInvalidSession)
		})
	}
}

func TestResolve_DeletedUser(t *testing.T) {
	svc, _ := newService(t)

	token, _, err := svc.IssueSession(&entity.User{ID: 42, Username: "ghost"})
	require.NoError(t, err)

	_, err = svc.Resolve(context.Background(), token)
	assert.ErrorIs(t, err, auth.ErrInvalidSession)
}

func TestIssueSession_RequiresUser(t *testing.T) {
	svc, _ := newService(t)
	_, _, err := svc.IssueSession(nil)
	assert.Error(t, err)
}

func TestBcryptHasher(t *testing.T) {
	h := auth.NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("Str0ng-pass")
	require.NoError(t, err)
	assert.NoError(t, h.Verify("Str0ng-pass", hash))
	assert.ErrorIs(t, h.Verify("nope", hash), auth.ErrInvalidCredentials)

	assert.Equal(t, bcrypt.DefaultCost, auth.NewBcryptHasher(100).Cost)
}
