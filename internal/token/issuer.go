// Package token mints and verifies the signed access and refresh tokens that
// make up a session. Tokens are stateless: validity is a function of the
// signature and expiry alone.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken covers bad signatures, malformed tokens and wrong claim shapes.
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken means the signature checked out but exp is in the past.
	ErrExpiredToken = errors.New("token expired")
)

// Use names the class a token was issued for. An access token must not be
// accepted where a refresh token is expected, so the class is an explicit
// claim rather than being inferred from TTLs.
type Use string

const (
	UseAccess  Use = "access"
	UseRefresh Use = "refresh"
)

// Claims is the claim shape of every token: {sub, iat, exp} plus the use class.
type Claims struct {
	jwt.RegisteredClaims
	Use Use `json:"use"`
}

// Pair is the access/refresh token pair handed out on login and refresh.
type Pair struct {
	Access  string
	Refresh string
}

// Issuer signs and verifies token pairs with a shared HS256 secret.
type Issuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration

	// Now is the clock used for iat/exp and verification; tests override it.
	Now func() time.Time
}

func NewIssuer(secret []byte, accessTTL, refreshTTL time.Duration) *Issuer {
	return &Issuer{
		secret:     secret,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		Now:        time.Now,
	}
}

// IssuePair signs a fresh access+refresh pair with userID as subject.
func (i *Issuer) IssuePair(userID string) (Pair, error) {
	access, err := i.sign(userID, UseAccess, i.accessTTL)
	if err != nil {
		return Pair{}, err
	}

	refresh, err := i.sign(userID, UseRefresh, i.refreshTTL)
	if err != nil {
		return Pair{}, err
	}

	return Pair{Access: access, Refresh: refresh}, nil
}

func (i *Issuer) sign(userID string, use Use, ttl time.Duration) (string, error) {
	now := i.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Use: use,
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

// Verify checks signature, expiry and use class, returning the subject user id.
func (i *Issuer) Verify(tokenString string, use Use) (string, error) {
	claims := &Claims{}

	tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(i.Now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpiredToken
		}
		return "", ErrInvalidToken
	}

	if !tok.Valid || claims.Use != use || claims.Subject == "" {
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}
