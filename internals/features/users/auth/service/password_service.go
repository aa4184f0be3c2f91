package service

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var ErrWrongCredential = errors.New("kredensial salah")

// HashPassword: bcrypt untuk password admin maupun PIN siswa
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPasswordHash → ErrWrongCredential kalau tidak cocok
func CheckPasswordHash(hash, plain string) error {
	if hash == "" {
		return ErrWrongCredential
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrWrongCredential
		}
		return err
	}
	return nil
}
