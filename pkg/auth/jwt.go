package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid session token")

const userUUIDClaim = "user_uuid"

// JWT signs session tokens binding an account uuid. Tokens carry no
// expiry in current scope; revocation happens through the per-user
// allow-list, and an exp claim can be added later without changing
// callers of Issue/Verify.
type JWT struct {
	secret []byte
}

func NewJWT(secret string) *JWT {
	return &JWT{secret: []byte(secret)}
}

func (j *JWT) Issue(userUUID string) (string, error) {
	// jti makes every issued token distinct, so revoking one session
	// leaves the others on the allow-list even when two logins land in
	// the same second.
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		userUUIDClaim: userUUID,
		"jti":         uuid.New().String(),
		"iat":         time.Now().Unix(),
	})

	return token.SignedString(j.secret)
}

func (j *JWT) Verify(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.secret, nil
	})

	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)

	if !ok {
		return "", ErrInvalidToken
	}

	userUUID, ok := claims[userUUIDClaim].(string)

	if !ok || userUUID == "" {
		return "", ErrInvalidToken
	}

	return userUUID, nil
}
