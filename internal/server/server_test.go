package server_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"catalog/internal/dto"
	"catalog/internal/repositories"
	"catalog/internal/server"
	"catalog/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp() *fiber.App {
	logger := zerolog.Nop()
	repo := repositories.NewInMemoryProductRepository()
	return server.New(server.Options{
		ProductService: services.NewProductService(repo, nil, logger),
		Logger:         logger,
	})
}

func TestServer_ProductLifecycle(t *testing.T) {
	app := newApp()

	body, err := json.Marshal(map[string]interface{}{"name": "Apple iPhone", "price": 999.0})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	_, err = uuid.Parse(resp.Header.Get(fiber.HeaderXRequestID))
	assert.NoError(t, err, "request id should be a UUID")
	resp.Body.Close()

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/products/search?name=IPHONE&minPrice=500&maxPrice=1500", nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var products []dto.ProductDTO
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&products))
	resp.Body.Close()
	require.Len(t, products, 1)
	assert.Equal(t, "Apple iPhone", products[0].Name)
}

func TestServer_Health(t *testing.T) {
	app := newApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServer_UnknownRoute(t *testing.T) {
	app := newApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/nope", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, http.StatusNotFound, body.StatusCode)
}

func TestServer_RecoversFromPanic(t *testing.T) {
	app := newApp()
	app.Get("/boom", func(c *fiber.Ctx) error {
		panic("boom")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}
