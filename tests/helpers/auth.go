package helpers

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/crossbox/wodtracker/internal/models"
	"github.com/crossbox/wodtracker/internal/services"
	"github.com/crossbox/wodtracker/internal/store"
)

func randInt(max int) int {
	n, _ := rand.Int(rand.Reader, big.NewInt(int64(max)))
	return int(n.Int64())
}

// GeneratePassword generates a 10 character password with a capital and special char
func GeneratePassword() string {
	const (
		lower   = "abcdefghijklmnopqrstuvwxyz"
		upper   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
		special = "!@#$%^&*"
		numbers = "0123456789"
		all     = lower + upper + special + numbers
	)

	password := make([]byte, 10)
	password[0] = upper[randInt(len(upper))]
	password[1] = special[randInt(len(special))]
	password[2] = numbers[randInt(len(numbers))]

	for i := 3; i < 10; i++ {
		password[i] = all[randInt(len(all))]
	}

	for i := range password {
		j := randInt(len(password))
		password[i], password[j] = password[j], password[i]
	}

	return string(password)
}

// AcquireAccount creates a user with a hashed password and an active
// session, returning the user and the session token for the cookie.
func AcquireAccount(t *testing.T, st store.Store, sessions *services.SessionManager, username, role string) (*models.User, string) {
	t.Helper()

	hash, err := services.HashPassword(GeneratePassword())
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	u, err := st.CreateUser(&models.User{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
	})
	if err != nil {
		t.Fatalf("Failed to create user %s: %v", username, err)
	}

	token := sessions.Create(u.ID)
	return u, token
}
