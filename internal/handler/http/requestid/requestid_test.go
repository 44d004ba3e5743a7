package requestid

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContext_Empty(t *testing.T) {
	assert.Empty(t, FromContext(context.Background()))
}

func TestWithRequestID(t *testing.T) {
	ctx := WithRequestID(context.Background(), "abc")
	assert.Equal(t, "abc", FromContext(ctx))
}

func TestValid(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want bool
	}{
		{"uuid", uuid.NewString(), true},
		{"token", "req-42_a.b", true},
		{"empty", "", false},
		{"space", "a b", false},
		{"newline", "a\nb", false},
		{"non ascii", "запрос", false},
		{"too long", strings.Repeat("a", MaxLength+1), false},
		{"max length", strings.Repeat("a", MaxLength), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Valid(tt.id))
		})
	}
}

func TestMiddleware(t *testing.T) {
	tests := []struct {
		name    string
		inbound string
		reuse   bool
	}{
		{"generates when missing", "", false},
		{"propagates valid", "client-id-1", true},
		{"replaces invalid", "bad id\r\n", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			h := Middleware(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
				seen = FromContext(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.inbound != "" {
				req.Header.Set(RequestIDHeader, tt.inbound)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			require.NotEmpty(t, seen)
			assert.Equal(t, seen, rr.Header().Get(RequestIDHeader))
			if tt.reuse {
				assert.Equal(t, tt.inbound, seen)
			} else {
				_, err := uuid.Parse(seen)
				assert.NoError(t, err)
			}
		})
	}
}
