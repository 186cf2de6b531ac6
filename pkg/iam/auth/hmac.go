package auth

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
)

// HMACVerifier accepts HS256 tokens with the Firebase claim layout. It is
// meant for local development and tests where no Firebase project exists.
type HMACVerifier struct {
	secret []byte
	issuer string
}

func NewHMACVerifier(secret string, issuer string) *HMACVerifier {
	return &HMACVerifier{secret: []byte(secret), issuer: issuer}
}

func (v *HMACVerifier) Verify(_ context.Context, token string) (*Claims, error) {
	if token == "" {
		return nil, ErrMissingToken()
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		return nil, ErrInvalidToken().WithCause(err)
	}
	return claimsFromMap(claims)
}
