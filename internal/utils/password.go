package utils

import "golang.org/x/crypto/bcrypt"

// passwordHashCost is the bcrypt work factor for stored credentials. Raising
// it only affects newly hashed passwords; existing hashes keep their cost.
const passwordHashCost = bcrypt.DefaultCost

// HashPassword returns the bcrypt hash to persist for a plaintext password.
// OAuth-only accounts store an empty hash and never pass through here.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPasswordHash reports whether the plaintext password matches the
// stored bcrypt hash.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
