package auth

import (
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword returns the bcrypt hash of password at the given cost.
func HashPassword(password string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword reports whether password matches hash. An empty hash never matches.
func CheckPassword(hash, password string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// CheckAdminCredentials compares email case-insensitively and in constant time,
// and always runs the bcrypt comparison so a wrong email costs the same as a
// wrong password.
func CheckAdminCredentials(adminEmail, adminHash, email, password string) bool {
	want := strings.ToLower(strings.TrimSpace(adminEmail))
	got := strings.ToLower(strings.TrimSpace(email))
	emailOK := subtle.ConstantTimeCompare([]byte(want), []byte(got)) == 1
	passwordOK := CheckPassword(adminHash, password)
	return emailOK && passwordOK && want != ""
}
