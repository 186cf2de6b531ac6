package profile

import (
	"net/http"

	"github.com/Abraxas-365/careerlens/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("PROFILE")

var (
	CodeUserNotFound      = ErrRegistry.Register("USER_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "User not found")
	CodeUserAlreadyExists = ErrRegistry.Register("USER_ALREADY_EXISTS", errx.TypeConflict, http.StatusConflict, "User already exists")
	CodeMissingIDToken    = ErrRegistry.Register("MISSING_ID_TOKEN", errx.TypeValidation, http.StatusBadRequest, "idToken is required")
	CodeInvalidProfile    = ErrRegistry.Register("INVALID_PROFILE", errx.TypeValidation, http.StatusBadRequest, "Invalid profile")
)

func ErrUserNotFound() *errx.Error {
	return ErrRegistry.New(CodeUserNotFound)
}

func ErrUserAlreadyExists() *errx.Error {
	return ErrRegistry.New(CodeUserAlreadyExists)
}

func ErrMissingIDToken() *errx.Error {
	return ErrRegistry.New(CodeMissingIDToken)
}

func ErrInvalidProfile() *errx.Error {
	return ErrRegistry.New(CodeInvalidProfile)
}
