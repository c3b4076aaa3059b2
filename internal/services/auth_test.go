package services

import (
	"testing"
	"time"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("thruster-pr-95kg")
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	if hash == "thruster-pr-95kg" {
		t.Fatal("Hash must not equal the plaintext")
	}
	if !CheckPassword(hash, "thruster-pr-95kg") {
		t.Error("Correct password rejected")
	}
	if CheckPassword(hash, "wrong") {
		t.Error("Wrong password accepted")
	}
}

func TestSessionLifecycle(t *testing.T) {
	m := NewSessionManager(time.Hour)

	token := m.Create(42)
	if token == "" {
		t.Fatal("Expected a session token")
	}

	userID, ok := m.Resolve(token)
	if !ok || userID != 42 {
		t.Errorf("Expected session for user 42, got %d (ok=%v)", userID, ok)
	}

	if _, ok := m.Resolve("no-such-token"); ok {
		t.Error("Unknown token resolved")
	}

	m.Destroy(token)
	if _, ok := m.Resolve(token); ok {
		t.Error("Destroyed session still resolves")
	}
}

func TestSessionExpiry(t *testing.T) {
	m := NewSessionManager(time.Millisecond)

	token := m.Create(7)
	time.Sleep(5 * time.Millisecond)

	if _, ok := m.Resolve(token); ok {
		t.Error("Expired session still resolves")
	}
}
