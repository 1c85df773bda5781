package security

import (
	"context"
	"photo_contest/internal/platform/config"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func setupJWT(t *testing.T) {
	t.Helper()
	config.AppConfig = &config.Config{
		JWTKey: []byte("test-secret"),
		JWTExp: time.Hour,
	}
	InitJWT()
}

func TestGenerateTokenRoundTrip(t *testing.T) {
	setupJWT(t)

	tokenString, err := GenerateToken("user-123", "user")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	token, err := TokenAuth.Decode(tokenString)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	claims, err := token.AsMap(context.Background())
	if err != nil {
		t.Fatalf("AsMap: %v", err)
	}

	id, err := GetUserIDFromClaims(jwt.MapClaims(claims))
	if err != nil {
		t.Fatalf("GetUserIDFromClaims: %v", err)
	}
	if id != "user-123" {
		t.Errorf("user_id = %q, want %q", id, "user-123")
	}
	role, err := GetUserRoleFromClaims(jwt.MapClaims(claims))
	if err != nil {
		t.Fatalf("GetUserRoleFromClaims: %v", err)
	}
	if role != "user" {
		t.Errorf("role = %q, want %q", role, "user")
	}
}

func TestClaimsMissing(t *testing.T) {
	if _, err := GetUserIDFromClaims(jwt.MapClaims{}); err == nil {
		t.Error("expected error for missing user_id claim")
	}
	if _, err := GetUserRoleFromClaims(jwt.MapClaims{"role": 42}); err == nil {
		t.Error("expected error for non-string role claim")
	}
}
