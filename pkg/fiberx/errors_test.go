package fiberx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Abraxas-365/careerlens/pkg/errx"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var reg = errx.NewRegistry("FIBERX_TEST")

var codeGone = reg.Register("GONE", errx.TypeNotFound, http.StatusNotFound, "gone")

func serve(t *testing.T, err error) (int, map[string]any) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/", func(c *fiber.Ctx) error { return err })

	resp, reqErr := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, reqErr)
	defer resp.Body.Close()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestErrorHandlerErrx(t *testing.T) {
	status, body := serve(t, fmt.Errorf("wrapped: %w", reg.New(codeGone).WithDetail("id", "x")))

	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "FIBERX_TEST.GONE", body["code"])
	assert.Equal(t, "NOT_FOUND", body["type"])
	assert.Equal(t, map[string]any{"id": "x"}, body["details"])
}

func TestErrorHandlerFiberError(t *testing.T) {
	status, body := serve(t, fiber.NewError(fiber.StatusRequestEntityTooLarge, "too big"))

	assert.Equal(t, http.StatusRequestEntityTooLarge, status)
	assert.Equal(t, "too big", body["error"])
}

func TestErrorHandlerUnknown(t *testing.T) {
	status, body := serve(t, errors.New("nil pointer somewhere"))

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "INTERNAL_ERROR", body["code"])
}
