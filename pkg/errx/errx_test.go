package errx

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRegistry = NewRegistry("TEST")

var (
	codeMissing  = testRegistry.Register("MISSING", TypeNotFound, http.StatusNotFound, "thing not found")
	codeUpstream = testRegistry.Register("UPSTREAM", TypeExternal, http.StatusBadGateway, "upstream failed")
)

func TestRegistryNew(t *testing.T) {
	e := testRegistry.New(codeMissing)

	assert.Equal(t, "TEST.MISSING", e.Code)
	assert.Equal(t, TypeNotFound, e.Type)
	assert.Equal(t, http.StatusNotFound, e.HTTPStatus)
	assert.Equal(t, "thing not found", e.Message)
}

func TestRegisterDuplicatePanics(t *testing.T) {
	r := NewRegistry("DUP")
	r.Register("A", TypeInternal, http.StatusInternalServerError, "a")

	assert.Panics(t, func() {
		r.Register("A", TypeInternal, http.StatusInternalServerError, "a")
	})
}

func TestWithDetailDoesNotMutateOriginal(t *testing.T) {
	base := testRegistry.New(codeMissing)
	withID := base.WithDetail("id", "42")

	assert.Empty(t, base.Details)
	assert.Equal(t, "42", withID.Details["id"])

	merged := withID.WithDetails(map[string]any{"kind": "user"})
	assert.Len(t, merged.Details, 2)
	assert.Len(t, withID.Details, 1)
}

func TestCauseChain(t *testing.T) {
	root := errors.New("connection refused")
	e := testRegistry.NewWithCause(codeUpstream, root)
	wrapped := fmt.Errorf("handler: %w", e)

	require.ErrorIs(t, wrapped, root)
	assert.True(t, IsCode(wrapped, codeUpstream))
	assert.False(t, IsCode(wrapped, codeMissing))
	assert.True(t, IsType(wrapped, TypeExternal))
	assert.ErrorIs(t, wrapped, testRegistry.New(codeUpstream))
}

func TestWrap(t *testing.T) {
	assert.Nil(t, Wrap(nil, "ignored", TypeInternal))

	e := Wrap(errors.New("boom"), "failed to load", TypeInternal)
	assert.Equal(t, http.StatusInternalServerError, e.HTTPStatus)
	assert.Contains(t, e.Error(), "boom")
}

func TestToHTTPResponse(t *testing.T) {
	resp := testRegistry.New(codeMissing).WithDetail("uid", "u1").ToHTTPResponse()

	assert.Equal(t, "TEST.MISSING", resp["code"])
	assert.Equal(t, TypeNotFound, resp["type"])
	assert.Equal(t, map[string]any{"uid": "u1"}, resp["details"])
}

func TestDefaultStatus(t *testing.T) {
	cases := map[Type]int{
		TypeValidation:    http.StatusBadRequest,
		TypeUnauthorized:  http.StatusUnauthorized,
		TypeAuthorization: http.StatusForbidden,
		TypeNotFound:      http.StatusNotFound,
		TypeExternal:      http.StatusBadGateway,
		TypeInternal:      http.StatusInternalServerError,
	}
	for typ, want := range cases {
		assert.Equal(t, want, typ.DefaultStatus(), typ)
	}
}
