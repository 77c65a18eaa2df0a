package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for any token that cannot be verified.
var ErrInvalidToken = errors.New("invalid token")

type claims struct {
	UserID int64 `json:"id"`
	jwt.RegisteredClaims
}

// Service signs and verifies bearer tokens carrying a user id.
type Service struct {
	secret []byte
}

func New(secret string) *Service {
	return &Service{secret: []byte(secret)}
}

// Issue signs an HS256 token embedding the user id. Tokens carry no
// expiration; sessions live until the secret rotates.
func (s *Service) Issue(userID int64) (string, error) {
	c := claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return tok.SignedString(s.secret)
}

// Verify parses the token and returns the embedded user id.
func (s *Service) Verify(tokenString string) (int64, error) {
	tok, err := jwt.ParseWithClaims(tokenString, &claims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil || !tok.Valid {
		return 0, ErrInvalidToken
	}
	c, ok := tok.Claims.(*claims)
	if !ok || c.UserID <= 0 {
		return 0, ErrInvalidToken
	}
	return c.UserID, nil
}
