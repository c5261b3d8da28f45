package userservice

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken   = errors.New("invalid or expired token")
	ErrMalformedToken = errors.New("malformed token")
)

// TokenMaker signs and verifies HS256 access tokens whose subject is the user ID.
type TokenMaker struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

type accessClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

func NewTokenMaker(cfg TokenConfig) (*TokenMaker, error) {
	if len(cfg.Secret) == 0 {
		return nil, errors.New("token secret must not be empty")
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = AccessTokenTime
	}

	return &TokenMaker{secret: cfg.Secret, ttl: ttl, now: time.Now}, nil
}

func (tm *TokenMaker) createToken(u *User) (*AuthToken, error) {
	now := tm.now()
	expiry := now.Add(tm.ttl)

	claims := accessClaims{
		Username: u.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(u.ID),
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiry),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tm.secret)
	if err != nil {
		return nil, fmt.Errorf("could not sign token: %w", err)
	}

	return &AuthToken{
		Token:    signed,
		Expiry:   expiry,
		Username: u.Username,
		Name:     u.Name,
	}, nil
}

// parseToken returns the user ID carried by a valid token.
func (tm *TokenMaker) parseToken(token string) (int, error) {
	claims := &accessClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return tm.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithTimeFunc(tm.now),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return 0, ErrMalformedToken
		default:
			return 0, ErrInvalidToken
		}
	}

	id, err := strconv.Atoi(claims.Subject)
	if err != nil || id < 1 {
		return 0, ErrInvalidToken
	}

	return id, nil
}
