package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher turns a plaintext password into an opaque stored hash.
type Hasher func(plaintext string) (string, error)

// NewHasher returns a bcrypt Hasher at the given cost. Out-of-range costs
// fall back to bcrypt.DefaultCost.
func NewHasher(cost int) Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return func(plaintext string) (string, error) {
		return hashPassword(plaintext, cost)
	}
}

func HashPassword(password string) (string, error) {
	return hashPassword(password, bcrypt.DefaultCost)
}

func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func hashPassword(password string, cost int) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(bytes), nil
}
