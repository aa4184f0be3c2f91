// internals/features/users/auth/service/token_service.go
package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	userModel "presensiku_backend/internals/features/users/users/model"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

var (
	ErrTokenExpired = errors.New("token kedaluwarsa")
	ErrTokenInvalid = errors.New("token tidak valid")
)

// Claims access token. sub = user id.
type Claims struct {
	Role       string `json:"role"`
	UserName   string `json:"user_name,omitempty"`
	ClassID    string `json:"class_id,omitempty"`
	RollNumber string `json:"roll_number,omitempty"`
	jwt.RegisteredClaims
}

func (c *Claims) UserID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}

func (c *Claims) ExpiresAtTime() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}

// BuildClaims dari user; class_id/roll_number hanya untuk siswa
func BuildClaims(u *userModel.UserModel, now time.Time, ttl time.Duration) Claims {
	cl := Claims{
		Role:     u.Role,
		UserName: u.UserName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
	}
	if u.ClassID != nil {
		cl.ClassID = u.ClassID.String()
	}
	cl.RollNumber = u.RollNumberValue()
	return cl
}

// IssueAccessToken: HS256
func IssueAccessToken(secret string, u *userModel.UserModel, now time.Time, ttl time.Duration) (string, time.Time, error) {
	if strings.TrimSpace(secret) == "" {
		return "", time.Time{}, errors.New("JWT_SECRET belum diset")
	}
	cl := BuildClaims(u, now, ttl)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, cl).SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, cl.ExpiresAt.Time, nil
}

// ParseAccessToken: verifikasi signature + exp, hanya HS256
func ParseAccessToken(secret, raw string) (*Claims, error) {
	var cl Claims
	tok, err := jwt.ParseWithClaims(raw, &cl, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	if !tok.Valid {
		return nil, ErrTokenInvalid
	}
	if _, err := cl.UserID(); err != nil {
		return nil, ErrTokenInvalid
	}
	return &cl, nil
}
