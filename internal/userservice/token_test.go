package userservice

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func newTestTokenMaker(t *testing.T, secret string) *TokenMaker {
	t.Helper()

	tm, err := NewTokenMaker(TokenConfig{Secret: []byte(secret), TTL: time.Hour})
	assert.NoError(t, err)

	return tm
}

func TestNewTokenMaker(t *testing.T) {
	_, err := NewTokenMaker(TokenConfig{})
	assert.Error(t, err)

	tm, err := NewTokenMaker(TokenConfig{Secret: []byte("secret")})
	assert.NoError(t, err)
	assert.Equal(t, AccessTokenTime, tm.ttl)
}

func TestTokenRoundTrip(t *testing.T) {
	tm := newTestTokenMaker(t, "secret")

	token, err := tm.createToken(&User{ID: 42, Username: "testuser", Name: "Test User"})
	assert.NoError(t, err)
	assert.NotEmpty(t, token.Token)
	assert.Equal(t, "testuser", token.Username)
	assert.Equal(t, "Test User", token.Name)

	id, err := tm.parseToken(token.Token)
	assert.NoError(t, err)
	assert.Equal(t, 42, id)
}

func TestParseTokenFailures(t *testing.T) {
	tm := newTestTokenMaker(t, "secret")
	other := newTestTokenMaker(t, "other-secret")

	signedByOther, err := other.createToken(&User{ID: 1, Username: "testuser"})
	assert.NoError(t, err)

	expired := newTestTokenMaker(t, "secret")
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredToken, err := expired.createToken(&User{ID: 1, Username: "testuser"})
	assert.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "1", Issuer: tokenIssuer}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	assert.NoError(t, err)

	badSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "abc",
		Issuer:    tokenIssuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("secret"))
	assert.NoError(t, err)

	testCases := []struct {
		name    string
		token   string
		wantErr error
	}{
		{name: "garbage", token: "not-a-token", wantErr: ErrMalformedToken},
		{name: "empty", token: "", wantErr: ErrMalformedToken},
		{name: "wrong signature", token: signedByOther.Token, wantErr: ErrInvalidToken},
		{name: "expired", token: expiredToken.Token, wantErr: ErrInvalidToken},
		{name: "none algorithm", token: noneToken, wantErr: ErrInvalidToken},
		{name: "non numeric subject", token: badSubject, wantErr: ErrInvalidToken},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			id, err := tm.parseToken(tc.token)
			assert.Equal(t, 0, id)
			assert.Equal(t, tc.wantErr, err)
		})
	}
}
