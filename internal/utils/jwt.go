package utils // package utils provides helper functions for token creation and hashing

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
	"github.com/google/uuid"
)

// Token types carried in the "typ" claim. The access token authorizes
// API writes; the refresh token may only be exchanged for a new access
// token. Keeping the type inside the signed payload stops a client from
// presenting a refresh token where an access token is expected.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Signed is a serialized JWT together with the metadata a caller needs
// without re-parsing it: the token's unique id (jti) used by the
// revocation deny-list and its UTC expiration time.
type Signed struct {
	Token string    // the serialized JWT string
	JTI   string    // unique token id, recorded on revocation
	Exp   time.Time // the UTC expiration time
}

// Claims is the decoded identity carried by a verified token.
type Claims struct {
	UserID   uint64
	Username string
	JTI      string
	Type     string
}

// Verification failures. Handlers treat both identically (no identity,
// fail closed) so a client cannot tell a forged token from an expired
// one; the split exists for internal logging only.
var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// NewToken builds and signs an HS256 JWT for a user. The JWT carries
// the subject (sub), username, a random jti, the token type and the
// standard exp/iat pair. The same signing path serves both access and
// refresh tokens; only the type and TTL differ.
func NewToken(secret string, userID uint64, username, typ string, ttl time.Duration) (Signed, error) {
	now := time.Now().UTC()
	exp := now.Add(ttl)
	jti := uuid.NewString()
	claims := jwt.MapClaims{
		"sub":      userID,
		"username": username,
		"jti":      jti,
		"typ":      typ,
		"exp":      exp.Unix(),
		"iat":      now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return Signed{}, err
	}
	return Signed{Token: signed, JTI: jti, Exp: exp}, nil
}

// ParseToken verifies signature and expiry of a serialized JWT and
// returns its claims. It fails closed: anything short of a fully valid
// token comes back as ErrTokenExpired or ErrTokenInvalid with zero
// claims. Revocation is not checked here; that requires storage and
// lives in the middleware.
func ParseToken(secret, raw string) (Claims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrTokenInvalid
	}
	if !tok.Valid {
		return Claims{}, ErrTokenInvalid
	}
	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrTokenInvalid
	}
	sub, ok := mc["sub"].(float64)
	if !ok || sub <= 0 {
		return Claims{}, ErrTokenInvalid
	}
	jti, ok := mc["jti"].(string)
	if !ok || jti == "" {
		return Claims{}, ErrTokenInvalid
	}
	typ, ok := mc["typ"].(string)
	if !ok || (typ != TokenTypeAccess && typ != TokenTypeRefresh) {
		return Claims{}, ErrTokenInvalid
	}
	username, _ := mc["username"].(string)
	return Claims{
		UserID:   uint64(sub),
		Username: username,
		JTI:      jti,
		Type:     typ,
	}, nil
}
