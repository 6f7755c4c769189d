package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword возвращает bcrypt-хеш пароля
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// CheckPassword сравнивает пароль с сохраненным хешем
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
