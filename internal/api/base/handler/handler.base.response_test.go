package basehdl

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nova_crm/internal/common"
)

func TestFailKeepsApplicationErrorStatus(t *testing.T) {
	app := fiber.New()
	app.Get("/missing", func(c fiber.Ctx) error {
		return Fail(c, common.ErrNotFound)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/missing", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, common.StatusNotFound, resp.StatusCode)
}

func TestFailHidesUnclassifiedErrorDetail(t *testing.T) {
	app := fiber.New()
	app.Get("/boom", func(c fiber.Ctx) error {
		return Fail(c, errors.New("failed to sign token: key material"))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, common.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, string(body), common.MsgInternalError)
	assert.NotContains(t, string(body), "key material")
}
