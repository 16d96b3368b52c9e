package auth

import "golang.org/x/crypto/bcrypt"

// ErrPasswordTooLong is returned for passwords longer than bcrypt's 72-byte
// input limit.
var ErrPasswordTooLong = bcrypt.ErrPasswordTooLong

// HashPassword returns a bcrypt hash of the plain-text password.
func HashPassword(plain string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPassword compares a bcrypt hash against the plain-text candidate.
func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
