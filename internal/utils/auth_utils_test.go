package utils

import (
	"testing"
	"time"
)

func TestHashAndComparePassword(t *testing.T) {
	hash, err := HashPassword("s3cretPass!")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if hash == "s3cretPass!" {
		t.Fatalf("password stored in clear")
	}
	if err := CompareHashAndPassword(hash, "s3cretPass!"); err != nil {
		t.Fatalf("expected password to match, got %v", err)
	}
	if err := CompareHashAndPassword(hash, "wrongPass!"); err == nil {
		t.Fatalf("expected mismatch error")
	}
}

func TestJwtTokenRoundTrip(t *testing.T) {
	key := []byte("test-signing-key")
	token, err := CreateJwtToken(7, "alice@example.com", "Alice", "Tester", key, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	claims, err := VerifyToken(token, key)
	if err != nil {
		t.Fatalf("expected valid token, got %v", err)
	}
	if claims.ID != 7 || claims.Email != "alice@example.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestVerifyTokenRejectsExpired(t *testing.T) {
	key := []byte("test-signing-key")
	token, err := CreateJwtToken(7, "alice@example.com", "Alice", "Tester", key, time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := VerifyToken(token, key); err == nil {
		t.Fatalf("expected expired token to be rejected")
	}
}

func TestVerifyTokenRejectsWrongKey(t *testing.T) {
	token, err := CreateJwtToken(7, "alice@example.com", "Alice", "Tester", []byte("key-a"), time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := VerifyToken(token, []byte("key-b")); err == nil {
		t.Fatalf("expected token signed with another key to be rejected")
	}
}
