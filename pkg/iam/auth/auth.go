package auth

import (
	"context"
	"net/http"

	"github.com/Abraxas-365/careerlens/pkg/errx"
	"github.com/Abraxas-365/careerlens/pkg/iam"
	"github.com/Abraxas-365/careerlens/pkg/kernel"
)

// Claims is the identity extracted from a verified token
type Claims struct {
	UID      kernel.UserID
	Email    kernel.Email
	Name     string
	Role     iam.Role
	Provider string
}

// Verifier validates an identity token issued elsewhere
type Verifier interface {
	Verify(ctx context.Context, token string) (*Claims, error)
}

var ErrRegistry = errx.NewRegistry("AUTH")

var (
	CodeMissingToken     = ErrRegistry.Register("MISSING_TOKEN", errx.TypeUnauthorized, http.StatusUnauthorized, "Missing token")
	CodeInvalidToken     = ErrRegistry.Register("INVALID_TOKEN", errx.TypeUnauthorized, http.StatusUnauthorized, "Invalid token")
	CodeForbidden        = ErrRegistry.Register("FORBIDDEN", errx.TypeAuthorization, http.StatusForbidden, "Forbidden: insufficient role")
	CodeKeysUnavailable  = ErrRegistry.Register("KEYS_UNAVAILABLE", errx.TypeExternal, http.StatusBadGateway, "Token signing keys unavailable")
	CodeMissingAuthState = ErrRegistry.Register("MISSING_AUTH_CONTEXT", errx.TypeUnauthorized, http.StatusUnauthorized, "Authentication required")
)

func ErrMissingToken() *errx.Error {
	return ErrRegistry.New(CodeMissingToken)
}

func ErrInvalidToken() *errx.Error {
	return ErrRegistry.New(CodeInvalidToken)
}

func ErrForbidden() *errx.Error {
	return ErrRegistry.New(CodeForbidden)
}

func ErrAuthRequired() *errx.Error {
	return ErrRegistry.New(CodeMissingAuthState)
}
