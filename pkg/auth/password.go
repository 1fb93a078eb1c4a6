package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword uses bcrypt.DefaultCost (10), roughly 100ms per verify on
// commodity hardware. The salt is embedded in the returned hash.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
