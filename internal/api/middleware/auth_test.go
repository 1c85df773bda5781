package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"photo_contest/internal/common/security"
	"photo_contest/internal/domain/model"
	"photo_contest/internal/platform/config"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
)

type memRevoker struct {
	revoked map[string]bool
	err     error
}

func (m *memRevoker) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if m.revoked == nil {
		m.revoked = make(map[string]bool)
	}
	m.revoked[token] = true
	return nil
}

func (m *memRevoker) IsRevoked(ctx context.Context, token string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	return m.revoked[token], nil
}

func setupAuth(t *testing.T) {
	t.Helper()
	config.AppConfig = &config.Config{JWTKey: []byte("test-secret"), JWTExp: time.Hour}
	security.InitJWT()
}

// protectedStack wires Verifier -> Authenticator the way the router does.
func protectedStack(revoker *memRevoker, final http.Handler) http.Handler {
	return jwtauth.Verifier(security.TokenAuth)(Authenticator(revoker)(final))
}

func TestAuthenticator(t *testing.T) {
	setupAuth(t)

	echoIdentity := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetUserIDFromContext(r.Context())
		if !ok {
			t.Error("user id missing from context")
		}
		role, ok := GetUserRoleFromContext(r.Context())
		if !ok {
			t.Error("role missing from context")
		}
		w.Header().Set("X-Test-User", id)
		w.Header().Set("X-Test-Role", role)
	})

	token, err := security.GenerateToken("user-1", model.RoleUser)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	t.Run("missing token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		protectedStack(&memRevoker{}, echoIdentity).ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("garbage token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer not.a.jwt")
		protectedStack(&memRevoker{}, echoIdentity).ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("valid token reaches handler with identity", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		protectedStack(&memRevoker{}, echoIdentity).ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if got := rec.Header().Get("X-Test-User"); got != "user-1" {
			t.Errorf("user id = %q, want user-1", got)
		}
		if got := rec.Header().Get("X-Test-Role"); got != model.RoleUser {
			t.Errorf("role = %q, want %q", got, model.RoleUser)
		}
	})

	t.Run("revoked token rejected", func(t *testing.T) {
		revoker := &memRevoker{}
		revoker.Revoke(context.Background(), token, time.Hour)
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		protectedStack(revoker, echoIdentity).ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("revocation check failure does not widen access", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		protectedStack(&memRevoker{err: errors.New("redis down")}, echoIdentity).ServeHTTP(rec, req)
		if rec.Code != http.StatusInternalServerError {
			t.Errorf("status = %d, want 500", rec.Code)
		}
	})
}

func TestAdminOnly(t *testing.T) {
	setupAuth(t)

	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	tests := []struct {
		name string
		role string
		want int
	}{
		{"admin passes", model.RoleAdmin, http.StatusNoContent},
		{"user rejected", model.RoleUser, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := security.GenerateToken("subject-1", tt.role)
			if err != nil {
				t.Fatalf("GenerateToken: %v", err)
			}
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			protectedStack(&memRevoker{}, AdminOnly(ok)).ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}

	t.Run("no identity in context", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		AdminOnly(ok).ServeHTTP(rec, req)
		if rec.Code != http.StatusForbidden {
			t.Errorf("status = %d, want 403", rec.Code)
		}
	})
}
