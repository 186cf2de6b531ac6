package course

import (
	"net/http"

	"github.com/Abraxas-365/careerlens/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("COURSE")

var (
	CodeCacheMiss     = ErrRegistry.Register("CACHE_MISS", errx.TypeNotFound, http.StatusNotFound, "No cached courses for skill")
	CodeScrapeFailed  = ErrRegistry.Register("SCRAPE_FAILED", errx.TypeExternal, http.StatusBadGateway, "Course provider failed")
	CodeInvalidSkills = ErrRegistry.Register("INVALID_SKILLS", errx.TypeValidation, http.StatusBadRequest, "skills must be a list of strings")
)

func ErrCacheMiss() *errx.Error {
	return ErrRegistry.New(CodeCacheMiss)
}

func ErrScrapeFailed(cause error) *errx.Error {
	return ErrRegistry.NewWithCause(CodeScrapeFailed, cause)
}

func ErrInvalidSkills() *errx.Error {
	return ErrRegistry.New(CodeInvalidSkills)
}
