// Package sessionx implements stateless, tamper-evident session tokens.
//
// A session is an HMAC-signed JWT whose subject is the user id. Nothing is
// stored server-side: the token is minted at login, travels back on every
// request as a cookie, and any token that fails to verify simply degrades to
// "anonymous". Revocation is limited to secret rotation or the user row
// disappearing.
package sessionx

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/aussiebroadwan/forum/pkg/idx"
)

// DefaultTTL is the session lifetime for authentication cookies.
const DefaultTTL = 7 * 24 * time.Hour

// ErrMissingSecret reports a codec constructed without a signing secret.
// This is a startup precondition, not a per-request condition.
var ErrMissingSecret = errors.New("sessionx: signing secret is required")

var signingMethods = []string{jwt.SigningMethodHS256.Alg()}

// Codec signs and verifies session tokens with a single shared secret loaded
// at process start. It is safe for concurrent use.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

func NewCodec(secret string, ttl time.Duration) (*Codec, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Codec{secret: []byte(secret), ttl: ttl}, nil
}

// TTL returns the configured token lifetime.
func (c *Codec) TTL() time.Duration { return c.ttl }

// EncodeSubject signs an arbitrary subject string into a token.
func (c *Codec) EncodeSubject(subject string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		ID:        idx.New().String(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// DecodeSubject verifies a token and returns its subject. The second return
// is false when the token is empty, malformed, expired, signed with another
// secret or algorithm, or otherwise unverifiable. It never returns an error:
// bad input degrades to "no subject".
func (c *Codec) DecodeSubject(token string) (string, bool) {
	if token == "" {
		return "", false
	}

	claims := jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, &claims,
		func(t *jwt.Token) (any, error) { return c.secret, nil },
		jwt.WithValidMethods(signingMethods),
	)
	if err != nil || !parsed.Valid || claims.Subject == "" {
		return "", false
	}
	return claims.Subject, true
}

// Encode signs a session token asserting the given user id.
func (c *Codec) Encode(userID int64) (string, error) {
	return c.EncodeSubject(strconv.FormatInt(userID, 10))
}

// Decode verifies a session token and returns the asserted user id. Returns
// (0, false) under the same conditions as DecodeSubject, and additionally
// when the subject is not a positive integer.
func (c *Codec) Decode(token string) (int64, bool) {
	subject, ok := c.DecodeSubject(token)
	if !ok {
		return 0, false
	}

	id, err := strconv.ParseInt(subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
