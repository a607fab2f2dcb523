package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"starlog/app/apperr"
	"starlog/app/models"
)

// TokenIssuer signs and verifies the bearer tokens the HTTP surface uses to
// carry identity. HS256 with a shared secret.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenIssuer creates a TokenIssuer with the given signing secret and
// token lifetime.
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl}
}

// Issue creates a signed token for the user.
func (t *TokenIssuer) Issue(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"id":       user.ID,
		"username": user.Username,
		"role":     string(user.Role),
		"iat":      now.Unix(),
		"exp":      now.Add(t.ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// Verify parses a token and resolves it to an Identity. Any failure (bad
// signature, expired, malformed claims) yields ErrUnauthenticated.
func (t *TokenIssuer) Verify(tokenString string) (Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperr.ErrUnauthenticated
		}
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return Identity{}, apperr.ErrUnauthenticated
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, apperr.ErrUnauthenticated
	}
	id, _ := claims["id"].(string)
	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)
	if id == "" {
		return Identity{}, apperr.ErrUnauthenticated
	}
	return Identity{ID: id, Username: username, Role: models.Role(role)}, nil
}
