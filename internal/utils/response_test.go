package utils_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/NovaSyntax753/promptmaster/internal/utils"
)

func performRequest(t *testing.T, handler fiber.Handler) (*http.Response, utils.APIResponse) {
	t.Helper()

	app := fiber.New()
	app.Get("/", handler)

	response, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)

	body, err := io.ReadAll(response.Body)
	require.NoError(t, err)

	var decoded utils.APIResponse
	require.NoError(t, json.Unmarshal(body, &decoded))
	return response, decoded
}

func TestSendSuccess(t *testing.T) {
	response, decoded := performRequest(t, func(c *fiber.Ctx) error {
		return utils.SendSuccess(c, "all good", map[string]int{"count": 3})
	})

	require.Equal(t, http.StatusOK, response.StatusCode)
	require.True(t, decoded.Success)
	require.Equal(t, "all good", decoded.Message)
	require.NotNil(t, decoded.Data)
}

func TestSendSuccessDefaultsMessage(t *testing.T) {
	_, decoded := performRequest(t, func(c *fiber.Ctx) error {
		return utils.SendSuccess(c, "", nil)
	})

	require.Equal(t, "success", decoded.Message)
}

func TestSendError(t *testing.T) {
	response, decoded := performRequest(t, func(c *fiber.Ctx) error {
		return utils.SendError(c, fiber.StatusBadGateway, "upstream failed")
	})

	require.Equal(t, http.StatusBadGateway, response.StatusCode)
	require.False(t, decoded.Success)
	require.Equal(t, "upstream failed", decoded.Message)
	require.Nil(t, decoded.Data)
}
