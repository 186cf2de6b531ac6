package resume

import (
	"net/http"

	"github.com/Abraxas-365/careerlens/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("RESUME")

var (
	CodeMissingFile       = ErrRegistry.Register("MISSING_FILE", errx.TypeValidation, http.StatusBadRequest, "A file is required")
	CodeEmptyFile         = ErrRegistry.Register("EMPTY_FILE", errx.TypeValidation, http.StatusBadRequest, "Uploaded file is empty")
	CodeFileTooLarge      = ErrRegistry.Register("FILE_TOO_LARGE", errx.TypeValidation, http.StatusRequestEntityTooLarge, "Uploaded file is too large")
	CodeInvalidFileFormat = ErrRegistry.Register("INVALID_FILE_FORMAT", errx.TypeValidation, http.StatusBadRequest, "Invalid file format")
	CodeParseFailed       = ErrRegistry.Register("PARSE_FAILED", errx.TypeExternal, http.StatusBadGateway, "Résumé parsing service failed")
	CodeNoText            = ErrRegistry.Register("NO_TEXT", errx.TypeValidation, http.StatusUnprocessableEntity, "No text could be extracted from the résumé")
)

func ErrMissingFile() *errx.Error {
	return ErrRegistry.New(CodeMissingFile)
}

func ErrEmptyFile() *errx.Error {
	return ErrRegistry.New(CodeEmptyFile)
}

func ErrFileTooLarge() *errx.Error {
	return ErrRegistry.New(CodeFileTooLarge)
}

func ErrInvalidFileFormat() *errx.Error {
	return ErrRegistry.New(CodeInvalidFileFormat)
}

func ErrParseFailed(cause error) *errx.Error {
	return ErrRegistry.NewWithCause(CodeParseFailed, cause)
}

func ErrNoText() *errx.Error {
	return ErrRegistry.New(CodeNoText)
}
