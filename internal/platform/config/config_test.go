package config

import (
	"testing"
	"time"
)

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("API_PORT", "9999")
	t.Setenv("JWT_SECRET", "supersecret")
	t.Setenv("JWT_EXPIRATION_HOURS", "24")
	t.Setenv("ALLOWED_EXTENSIONS", "png, jpg")
	t.Setenv("SIGNUP_BONUS_COINS", "25")

	Load()

	if AppConfig.APIPort != "9999" {
		t.Errorf("APIPort = %q", AppConfig.APIPort)
	}
	if string(AppConfig.JWTKey) != "supersecret" {
		t.Errorf("JWTKey = %q", AppConfig.JWTKey)
	}
	if AppConfig.JWTExp != 24*time.Hour {
		t.Errorf("JWTExp = %v", AppConfig.JWTExp)
	}
	if len(AppConfig.AllowedExtensions) != 2 || AppConfig.AllowedExtensions[0] != "png" || AppConfig.AllowedExtensions[1] != "jpg" {
		t.Errorf("AllowedExtensions = %v", AppConfig.AllowedExtensions)
	}
	if AppConfig.SignupBonusCoins != 25 {
		t.Errorf("SignupBonusCoins = %d", AppConfig.SignupBonusCoins)
	}
	if AppConfig.DBConnStr == "" {
		t.Error("DBConnStr not assembled")
	}
}

func TestGetEnvAsIntFallsBackOnGarbage(t *testing.T) {
	t.Setenv("SOME_INT", "not-a-number")
	if got := getEnvAsInt("SOME_INT", 42); got != 42 {
		t.Errorf("getEnvAsInt = %d, want fallback 42", got)
	}
}
