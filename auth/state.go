package auth

import (
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const stateTTL = 10 * time.Minute

type stateClaims struct {
	Nonce string `json:"nonce"`
	jwt.RegisteredClaims
}

// StateSigner issues the OAuth state parameter as a short lived HS256 token. The nonce inside
// is also kept in the session, so a state is only accepted by the browser that started the login.
type StateSigner struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewStateSigner(secret string) *StateSigner {
	return &StateSigner{secret: []byte(secret), ttl: stateTTL, now: time.Now}
}

// Issue returns the signed state and the nonce to remember in the session.
func (s *StateSigner) Issue() (string, string, error) {
	nonce := uuid.NewString()
	now := s.now()

	claims := stateClaims{
		Nonce: nonce,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			Issuer:    "table-reservation",
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", "", err
	}
	return signed, nonce, nil
}

// Verify checks the signature, expiry and nonce of state.
func (s *StateSigner) Verify(state, nonce string) error {
	if state == "" || nonce == "" {
		return ErrStateMismatch
	}

	var claims stateClaims
	_, err := jwt.ParseWithClaims(state, &claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStateMismatch, err)
	}

	if subtle.ConstantTimeCompare([]byte(claims.Nonce), []byte(nonce)) != 1 {
		return ErrStateMismatch
	}
	return nil
}
