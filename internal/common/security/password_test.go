package security

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "" || hash == "s3cret" {
		t.Fatalf("expected a non-empty hash distinct from the password")
	}
	if !CheckPasswordHash("s3cret", hash) {
		t.Error("expected correct password to verify")
	}
	if CheckPasswordHash("wrong", hash) {
		t.Error("expected wrong password to fail")
	}
}
