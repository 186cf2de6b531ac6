package auth

import (
	"github.com/Abraxas-365/careerlens/pkg/iam"
	"github.com/Abraxas-365/careerlens/pkg/kernel"
	"github.com/golang-jwt/jwt/v5"
)

// claimsFromMap reads the Firebase ID token layout: sub, email, name, an
// optional custom "role" claim and firebase.sign_in_provider.
func claimsFromMap(m jwt.MapClaims) (*Claims, error) {
	sub, err := m.GetSubject()
	if err != nil || sub == "" {
		return nil, ErrInvalidToken().WithDetail("reason", "missing subject")
	}

	c := &Claims{
		UID:      kernel.NewUserID(sub),
		Email:    kernel.Email(stringClaim(m, "email")),
		Name:     stringClaim(m, "name"),
		Role:     iam.RoleOrDefault(stringClaim(m, "role")),
		Provider: "unknown",
	}
	if fb, ok := m["firebase"].(map[string]any); ok {
		if p, ok := fb["sign_in_provider"].(string); ok && p != "" {
			c.Provider = p
		}
	}
	return c, nil
}

func stringClaim(m jwt.MapClaims, key string) string {
	s, _ := m[key].(string)
	return s
}
