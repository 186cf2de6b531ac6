// Package fsx abstracts the object storage used for uploaded files.
package fsx

import (
	"context"
	"net/http"

	"github.com/Abraxas-365/careerlens/pkg/errx"
)

// FileSystem stores opaque blobs under slash-separated paths
type FileSystem interface {
	WriteFile(ctx context.Context, path string, data []byte) error
	ReadFile(ctx context.Context, path string) ([]byte, error)
	DeleteFile(ctx context.Context, path string) error
}

var ErrRegistry = errx.NewRegistry("FS")

var (
	CodeNotFound = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "File not found")
	CodeStorage  = ErrRegistry.Register("STORAGE", errx.TypeExternal, http.StatusBadGateway, "File storage failed")
)

func ErrNotFound(path string) *errx.Error {
	return ErrRegistry.New(CodeNotFound).WithDetail("path", path)
}

func ErrStorage(cause error) *errx.Error {
	return ErrRegistry.NewWithCause(CodeStorage, cause)
}
