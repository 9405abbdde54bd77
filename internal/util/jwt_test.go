package util

import (
	"testing"
	"time"

	"school_backend/internal/model"
)

func TestJWTRoundTrip(t *testing.T) {
	secret := "test-secret"

	token, err := GenerateJWT(42, model.RoleTeacher, "t@school.example", secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	claims, err := ParseJWT(token, secret)
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if claims.UserID != 42 || claims.Role != model.RoleTeacher || claims.Email != "t@school.example" {
		t.Errorf("claims = %+v", claims)
	}

	if _, err := ParseJWT(token, "wrong-secret"); err == nil {
		t.Error("token accepted with the wrong secret")
	}
}

func TestJWTExpiry(t *testing.T) {
	token, err := GenerateJWT(1, model.RoleStudent, "s@school.example", "secret", -time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ParseJWT(token, "secret"); err == nil {
		t.Error("expired token accepted")
	}
}
