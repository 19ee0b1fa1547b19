package auth

import (
	"errors"

	jwt "github.com/golang-jwt/jwt/v5"
)

// The session cookie carries an HS256-signed token whose only payload is the
// session id. All session state (user identity, admin flag) stays server-side
// in the sessions table; the token exists so the cookie cannot be forged or
// tampered with.

type sessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// SignSessionID returns a signed token embedding the session id.
func SignSessionID(sessionID, secret string) (string, error) {
	if secret == "" {
		return "", errors.New("session secret is empty")
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{SessionID: sessionID})
	return token.SignedString([]byte(secret))
}

// ParseSessionID validates a token and extracts the session id.
func ParseSessionID(tokenStr, secret string) (string, error) {
	if secret == "" {
		return "", errors.New("session secret is empty")
	}
	c := &sessionClaims{}
	tok, err := jwt.ParseWithClaims(tokenStr, c, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		if err == nil {
			err = errors.New("invalid token")
		}
		return "", err
	}
	if c.SessionID == "" {
		return "", errors.New("invalid claims")
	}
	return c.SessionID, nil
}
