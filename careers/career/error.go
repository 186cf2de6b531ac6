package career

import (
	"net/http"

	"github.com/Abraxas-365/careerlens/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("CAREER")

var (
	CodeVectorSearch     = ErrRegistry.Register("VECTOR_SEARCH", errx.TypeExternal, http.StatusBadGateway, "Vector search failed")
	CodeVectorInsert     = ErrRegistry.Register("VECTOR_INSERT", errx.TypeExternal, http.StatusBadGateway, "Vector index write failed")
	CodeDimension        = ErrRegistry.Register("DIMENSION_MISMATCH", errx.TypeInternal, http.StatusInternalServerError, "Embedding dimension does not match the index")
	CodeDuplicateResult  = ErrRegistry.Register("DUPLICATE_RESULT", errx.TypeConflict, http.StatusConflict, "Result already saved")
	CodeResultNotFound   = ErrRegistry.Register("RESULT_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Career result not found")
	CodeInvalidResults   = ErrRegistry.Register("INVALID_RESULTS", errx.TypeValidation, http.StatusBadRequest, "results must be a non-empty list of suggestions")
	CodeInvalidDataset   = ErrRegistry.Register("INVALID_DATASET", errx.TypeValidation, http.StatusBadRequest, "Invalid career dataset")
	CodeQueueUnavailable = ErrRegistry.Register("QUEUE_UNAVAILABLE", errx.TypeExternal, http.StatusBadGateway, "Ingestion queue unavailable")
)

func ErrVectorSearch(cause error) *errx.Error {
	return ErrRegistry.NewWithCause(CodeVectorSearch, cause)
}

func ErrVectorInsert(cause error) *errx.Error {
	return ErrRegistry.NewWithCause(CodeVectorInsert, cause)
}

func ErrDimension() *errx.Error {
	return ErrRegistry.New(CodeDimension)
}

func ErrDuplicateResult() *errx.Error {
	return ErrRegistry.New(CodeDuplicateResult)
}

func ErrResultNotFound() *errx.Error {
	return ErrRegistry.New(CodeResultNotFound)
}

func ErrInvalidResults() *errx.Error {
	return ErrRegistry.New(CodeInvalidResults)
}

func ErrInvalidDataset() *errx.Error {
	return ErrRegistry.New(CodeInvalidDataset)
}

func ErrQueueUnavailable(cause error) *errx.Error {
	return ErrRegistry.NewWithCause(CodeQueueUnavailable, cause)
}
