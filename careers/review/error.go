package review

import (
	"net/http"

	"github.com/Abraxas-365/careerlens/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("REVIEW")

var (
	CodeInvalidJobURL    = ErrRegistry.Register("INVALID_JOB_URL", errx.TypeValidation, http.StatusBadRequest, "jobUrl must be an http or https URL")
	CodeNoJobDescription = ErrRegistry.Register("NO_JOB_DESCRIPTION", errx.TypeExternal, http.StatusBadGateway, "No job description found at the given URL")
	CodeJobFetchFailed   = ErrRegistry.Register("JOB_FETCH_FAILED", errx.TypeExternal, http.StatusBadGateway, "Job posting could not be fetched")
)

func ErrInvalidJobURL() *errx.Error {
	return ErrRegistry.New(CodeInvalidJobURL)
}

func ErrNoJobDescription() *errx.Error {
	return ErrRegistry.New(CodeNoJobDescription)
}

func ErrJobFetchFailed(cause error) *errx.Error {
	return ErrRegistry.NewWithCause(CodeJobFetchFailed, cause)
}
