// Package authtest signs HS256 identity tokens for handler tests.
package authtest

import (
	"testing"
	"time"

	"github.com/Abraxas-365/careerlens/pkg/iam"
	"github.com/Abraxas-365/careerlens/pkg/iam/auth"
	"github.com/golang-jwt/jwt/v5"
)

const Secret = "test-secret"

// Verifier accepts tokens produced by Token
func Verifier() *auth.HMACVerifier {
	return auth.NewHMACVerifier(Secret, "")
}

// Middleware is a TokenMiddleware backed by Verifier
func Middleware() *auth.TokenMiddleware {
	return auth.NewTokenMiddleware(Verifier())
}

// Token returns a signed token for uid with the given role
func Token(t testing.TB, uid string, role iam.Role) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":      uid,
		"email":    uid + "@example.com",
		"name":     "Test " + uid,
		"role":     role.String(),
		"exp":      time.Now().Add(time.Hour).Unix(),
		"firebase": map[string]any{"sign_in_provider": "password"},
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(Secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

// Bearer is Token formatted for the Authorization header
func Bearer(t testing.TB, uid string, role iam.Role) string {
	return "Bearer " + Token(t, uid, role)
}
