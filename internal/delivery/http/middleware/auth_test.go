package middleware

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"eventplanner/internal/delivery/http/helpers"
	"eventplanner/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTokenVerifier implements domain.TokenVerifier for tests.
type fakeTokenVerifier struct {
	username string
	err      error
	seen     string
}

func (f *fakeTokenVerifier) Verify(token string) (string, error) {
	f.seen = token
	if f.err != nil {
		return "", f.err
	}
	return f.username, nil
}

func TestRequireAuth(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	tests := []struct {
		name         string
		authHeader   string
		cookie       string
		verifier     *fakeTokenVerifier
		wantStatus   int
		wantBodyCode string
		nextCalled   bool
		wantUsername string
		wantToken    string
	}{
		{
			name:         "bearer token sets context and calls next",
			authHeader:   "Bearer valid-token",
			verifier:     &fakeTokenVerifier{username: "alice"},
			wantStatus:   http.StatusOK,
			nextCalled:   true,
			wantUsername: "alice",
			wantToken:    "valid-token",
		},
		{
			name:         "session cookie is accepted",
			cookie:       "cookie-token",
			verifier:     &fakeTokenVerifier{username: "bob"},
			wantStatus:   http.StatusOK,
			nextCalled:   true,
			wantUsername: "bob",
			wantToken:    "cookie-token",
		},
		{
			name:         "header wins over cookie",
			authHeader:   "Bearer header-token",
			cookie:       "cookie-token",
			verifier:     &fakeTokenVerifier{username: "alice"},
			wantStatus:   http.StatusOK,
			nextCalled:   true,
			wantUsername: "alice",
			wantToken:    "header-token",
		},
		{
			name:         "no credentials",
			verifier:     &fakeTokenVerifier{username: "alice"},
			wantStatus:   http.StatusUnauthorized,
			wantBodyCode: helpers.ErrCodeUnauthorized,
		},
		{
			name:         "invalid authorization format no Bearer prefix",
			authHeader:   "Basic abc",
			verifier:     &fakeTokenVerifier{username: "alice"},
			wantStatus:   http.StatusUnauthorized,
			wantBodyCode: helpers.ErrCodeUnauthorized,
		},
		{
			name:         "empty token after Bearer",
			authHeader:   "Bearer ",
			verifier:     &fakeTokenVerifier{username: "alice"},
			wantStatus:   http.StatusUnauthorized,
			wantBodyCode: helpers.ErrCodeUnauthorized,
		},
		{
			name:         "verifier returns error",
			authHeader:   "Bearer bad-token",
			verifier:     &fakeTokenVerifier{err: errors.New("expired")},
			wantStatus:   http.StatusUnauthorized,
			wantBodyCode: helpers.ErrCodeUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextCalled := false
			var captured string
			next := func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				captured, _ = UsernameFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			}
			var verifier domain.TokenVerifier = tt.verifier
			handler := RequireAuth(verifier, logger)(next)

			req := httptest.NewRequest(http.MethodGet, "http://test/home", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: tt.cookie})
			}
			rr := httptest.NewRecorder()

			handler(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			assert.Equal(t, tt.nextCalled, nextCalled, "next handler called")
			if tt.nextCalled {
				assert.Equal(t, tt.wantUsername, captured)
				assert.Equal(t, tt.wantToken, tt.verifier.seen)
			}
			if tt.wantBodyCode != "" {
				var envelope helpers.APIResponse
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
				require.NotNil(t, envelope.Error)
				assert.Equal(t, tt.wantBodyCode, envelope.Error.Code)
			}
		})
	}
}

func TestUsernameFromContext_empty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := UsernameFromContext(req.Context())
	assert.False(t, ok)

	_, ok = UsernameFromContext(SetUsername(req.Context(), ""))
	assert.False(t, ok)
}
