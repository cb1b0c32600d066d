package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestNewAccessToken_Claims(t *testing.T) {
	const secret = "test-secret"
	tok, err := NewAccessToken(secret, 42, "Dr. Rahimi", "ADMIN", 15)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if time.Until(tok.Exp) <= 0 {
		t.Fatalf("expiry must be in the future: %v", tok.Exp)
	}

	parsed, err := jwt.Parse(tok.Token, func(tk *jwt.Token) (interface{}, error) {
		if _, ok := tk.Method.(*jwt.SigningMethodHMAC); !ok {
			t.Fatalf("unexpected signing method %v", tk.Method)
		}
		return []byte(secret), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("parse: %v", err)
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatalf("unexpected claims type %T", parsed.Claims)
	}
	if sub, _ := claims["sub"].(float64); uint64(sub) != 42 {
		t.Fatalf("sub claim: %v", claims["sub"])
	}
	if claims["name"] != "Dr. Rahimi" || claims["role"] != "ADMIN" {
		t.Fatalf("identity claims: %v / %v", claims["name"], claims["role"])
	}
}

func TestNewAccessToken_WrongSecretFails(t *testing.T) {
	tok, err := NewAccessToken("right-secret", 1, "x", "FACULTY", 15)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	_, err = jwt.Parse(tok.Token, func(tk *jwt.Token) (interface{}, error) {
		return []byte("wrong-secret"), nil
	})
	if err == nil {
		t.Fatalf("token signed with another secret must not validate")
	}
}

func TestRefreshTokenHashing(t *testing.T) {
	a, err := NewRefreshToken(7)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	b, err := NewRefreshToken(7)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if a.Raw == b.Raw {
		t.Fatalf("refresh tokens must be unique")
	}
	if len(a.Raw) != 96 {
		t.Fatalf("expected 96 hex chars, got %d", len(a.Raw))
	}
	if HashRefreshRaw(a.Raw) == a.Raw {
		t.Fatalf("hash must differ from the raw token")
	}
	if HashRefreshRaw(a.Raw) != HashRefreshRaw(a.Raw) {
		t.Fatalf("hashing must be deterministic")
	}
}
