package utils // package utils provides helper functions for token creation and hashing

import (
	"errors" // sentinel error definitions and errors.Is mapping
	"fmt"    // error formatting for unknown algorithm names
	"time"   // time utilities for generating expirations

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// AccessToken represents a signed JWT access token along with its expiry.
// The Token field contains the JWT string.  Exp stores the expiration
// timestamp as a time.Time.  Access tokens are the only credential the
// API issues: they are self-contained bearer tokens with no server-side
// session record and no revocation: a leaked token stays valid until
// its natural expiry.
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// Validation failures are collapsed into three sentinels so that callers
// can decide how much detail to expose.  HTTP middleware deliberately
// reports all three identically to avoid leaking token validity
// information; tests and logs may distinguish them.
var (
	// ErrTokenExpired indicates a structurally valid, correctly signed
	// token whose exp claim is in the past.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenSignature indicates tampering or a token signed with a
	// different key or algorithm.
	ErrTokenSignature = errors.New("token signature invalid")
	// ErrTokenMalformed indicates the string is not a parseable JWT or
	// carries no usable subject claim.
	ErrTokenMalformed = errors.New("token malformed")
)

// SigningMethodFromName maps a configured algorithm name (JWT_ALGORITHM)
// onto an HMAC signing method.  Only the HS* family is supported because
// the signing key is a single shared secret.  An unknown name is a
// misconfiguration and should abort startup.
func SigningMethodFromName(name string) (jwt.SigningMethod, error) {
	switch name {
	case "HS256":
		return jwt.SigningMethodHS256, nil
	case "HS384":
		return jwt.SigningMethodHS384, nil
	case "HS512":
		return jwt.SigningMethodHS512, nil
	}
	return nil, fmt.Errorf("unsupported JWT algorithm %q", name)
}

// NewAccessToken builds and signs a JWT for a user.  It takes the signing
// secret, the HMAC method, the subject (the user's email) and a TTL in
// minutes.  The claims are kept minimal on purpose: subject (sub),
// absolute expiry (exp) and issued-at (iat).  Role information is NOT
// embedded; the admin flag is re-read from the users table on every
// request, so privilege changes apply immediately.
func NewAccessToken(secret string, method jwt.SigningMethod, subject string, ttlMin int) (AccessToken, error) {
	// Calculate the expiration time by adding the TTL to the current UTC time.
	exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sub": subject,
		"exp": exp.Unix(),
		"iat": time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(method, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// ParseAccessToken verifies the signature and expiry of a token and
// returns its subject.  Validation is entirely self-contained: no store
// is consulted.  Errors are normalized to the three sentinels above.
func ParseAccessToken(secret, raw string) (string, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		// Accept only HMAC tokens; an attacker must not be able to switch
		// the algorithm on us (e.g. to "none" or an RSA public-key trick).
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenSignature
		}
		return []byte(secret), nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, ErrTokenSignature):
			return "", ErrTokenSignature
		default:
			return "", ErrTokenMalformed
		}
	}
	if !tok.Valid {
		return "", ErrTokenSignature
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrTokenMalformed
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", ErrTokenMalformed
	}
	return sub, nil
}
