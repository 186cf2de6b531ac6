package job

import (
	"net/http"

	"github.com/Abraxas-365/careerlens/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("JOB")

var (
	CodeMissingTitle = ErrRegistry.Register("MISSING_TITLE", errx.TypeValidation, http.StatusBadRequest, "A job title is required")
	CodeProvider     = ErrRegistry.Register("PROVIDER", errx.TypeExternal, http.StatusBadGateway, "Failed to fetch jobs")
)

func ErrMissingTitle() *errx.Error {
	return ErrRegistry.New(CodeMissingTitle)
}

func ErrProvider(cause error) *errx.Error {
	return ErrRegistry.NewWithCause(CodeProvider, cause)
}
