package interview

import (
	"net/http"

	"github.com/Abraxas-365/careerlens/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("INTERVIEW")

var (
	CodeMissingFields  = ErrRegistry.Register("MISSING_FIELDS", errx.TypeValidation, http.StatusBadRequest, "Missing required fields")
	CodeInvalidSession = ErrRegistry.Register("INVALID_SESSION", errx.TypeValidation, http.StatusBadRequest, "Invalid data")
	CodeEmptyQuestion  = ErrRegistry.Register("EMPTY_QUESTION", errx.TypeExternal, http.StatusBadGateway, "Model returned no question")
)

func ErrMissingFields() *errx.Error {
	return ErrRegistry.New(CodeMissingFields)
}

func ErrInvalidSession() *errx.Error {
	return ErrRegistry.New(CodeInvalidSession)
}

func ErrEmptyQuestion() *errx.Error {
	return ErrRegistry.New(CodeEmptyQuestion)
}
