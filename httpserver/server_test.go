// nolint: funlen
package httpserver_test

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"top250/errs"
	"top250/httpserver"
	"top250/pkg/config"
	"top250/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	// Act
	server, err := httpserver.New()

	// Assert
	require.NoError(t, err)
	assert.NotNil(t, server.Router, "Router should be initialized")
	assert.Equal(t, ":8080", server.Addr, "Default address should be :8080")
	assert.Empty(t, server.AllowOrigins, "CORS is off without configured origins")
	assert.Equal(t, logger.NOOPLogger, server.Logger)
}

func TestNew_Options(t *testing.T) {
	cfg := new(config.Config)
	cfg.Port = 9090
	cfg.AllowOrigins = "https://a.example, https://b.example,"

	server, err := httpserver.New(httpserver.WithConfig(cfg))

	require.NoError(t, err)
	assert.Equal(t, ":9090", server.Addr)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, server.AllowOrigins)

	_, err = httpserver.New(httpserver.WithConfig(nil))
	assert.EqualError(t, err, "httpserver: config is nil")

	_, err = httpserver.New(httpserver.WithLogger(nil))
	assert.EqualError(t, err, "httpserver: logger is nil")
}

func TestServerStartAndShutdown(t *testing.T) {
	// Arrange
	server := newTestServer(t)
	port := allocateRandomPort(t)
	server.Addr = fmt.Sprintf(":%d", port)

	// Act
	errChan := startServerAsync(server)
	waitForServerReady(port)

	// Assert
	assertServerIsRunning(t, port)
	assertServerStopsGracefully(t, server, errChan)
}

func TestRegisterGlobalMiddlewares(t *testing.T) {
	// Arrange
	server := newTestServer(t)
	addTestRoute(server)

	// Act
	response := makeRequest(server, http.MethodGet, "/test", nil)

	// Assert
	assert.Equal(t, http.StatusOK, response.Code)
	assertRequestIDMiddlewareApplied(t, response)
	assertSecurityMiddlewareApplied(t, response)
}

func TestCORSConfiguration(t *testing.T) {
	tests := []struct {
		name          string
		allowOrigins  string
		requestOrigin string
		expectCORS    bool
	}{
		{
			name:          "wildcard allows all origins",
			allowOrigins:  "*",
			requestOrigin: "https://example.com",
			expectCORS:    true,
		},
		{
			name:          "specific origin is allowed",
			allowOrigins:  "https://example.com",
			requestOrigin: "https://example.com",
			expectCORS:    true,
		},
		{
			name:          "other origin is not allowed",
			allowOrigins:  "https://example.com",
			requestOrigin: "https://evil.example",
			expectCORS:    false,
		},
		{
			name:          "empty origins disables CORS",
			allowOrigins:  "",
			requestOrigin: "https://example.com",
			expectCORS:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			server := configureServerWithCORS(t, tt.allowOrigins)
			addTestRoute(server)

			// Act
			response := makeRequestWithOrigin(server, "/test", tt.requestOrigin)

			// Assert
			assertCORSBehavior(t, response, tt.expectCORS)
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	server := newTestServer(t)

	response := makeRequest(server, http.MethodOptions, "/doAdd", map[string]string{
		"Origin":                        "https://example.com",
		"Access-Control-Request-Method": http.MethodPost,
	})

	assert.Equal(t, http.StatusNoContent, response.Code)
	methods := response.Header().Get(echo.HeaderAccessControlAllowMethods)
	for _, m := range []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"} {
		assert.Contains(t, methods, m)
	}
	headers := response.Header().Get(echo.HeaderAccessControlAllowHeaders)
	assert.Contains(t, headers, echo.HeaderContentType)
	assert.Contains(t, headers, echo.HeaderAuthorization)
}

func TestMiddlewareRecoveryBehavior(t *testing.T) {
	// Arrange
	server := newTestServer(t)
	addPanicRoute(server)

	// Act
	response := makeRequest(server, http.MethodGet, "/panic", nil)

	// Assert
	assertPanicIsRecovered(t, response)
}

func TestCustomErrorHandler(t *testing.T) {
	tests := []struct {
		name               string
		error              error
		expectedStatusCode int
		expectedMessage    string
	}{
		{
			name:               "invalid error returns 400",
			error:              errs.Errorf(errs.EINVALID, "invalid input"),
			expectedStatusCode: http.StatusBadRequest,
			expectedMessage:    "invalid input",
		},
		{
			name:               "not found error returns 404",
			error:              errs.Errorf(errs.ENOTFOUND, "resource not found"),
			expectedStatusCode: http.StatusNotFound,
			expectedMessage:    "resource not found",
		},
		{
			name:               "conflict error returns 400",
			error:              errs.Errorf(errs.ECONFLICT, "resource already exists"),
			expectedStatusCode: http.StatusBadRequest,
			expectedMessage:    "resource already exists",
		},
		{
			name:               "unauthorized error returns 401",
			error:              errs.Errorf(errs.EUNAUTHORIZED, "unauthorized access"),
			expectedStatusCode: http.StatusUnauthorized,
			expectedMessage:    "unauthorized access",
		},
		{
			name:               "not implemented error returns 501",
			error:              errs.Errorf(errs.ENOTIMPLEMENTED, "feature not implemented"),
			expectedStatusCode: http.StatusNotImplemented,
			expectedMessage:    "feature not implemented",
		},
		{
			name:               "internal error returns 500 with generic message",
			error:              errs.Errorf(errs.EINTERNAL, "database connection failed"),
			expectedStatusCode: http.StatusInternalServerError,
			expectedMessage:    "Internal server error",
		},
		{
			name:               "unknown error returns 500 with generic message",
			error:              errors.New("some random error"),
			expectedStatusCode: http.StatusInternalServerError,
			expectedMessage:    "Internal server error",
		},
		{
			name:               "wrapped application error keeps its code",
			error:              fmt.Errorf("lookup: %w", errs.Errorf(errs.ENOTFOUND, "movie: not found")),
			expectedStatusCode: http.StatusNotFound,
			expectedMessage:    "movie: not found",
		},
		{
			name:               "context error returns 500",
			error:              context.DeadlineExceeded,
			expectedStatusCode: http.StatusInternalServerError,
			expectedMessage:    "Internal server error",
		},
		{
			name:               "echo http error preserves status code",
			error:              echo.NewHTTPError(http.StatusForbidden, "forbidden"),
			expectedStatusCode: http.StatusForbidden,
			expectedMessage:    "forbidden",
		},
		{
			name:               "echo http error with non-string message",
			error:              echo.NewHTTPError(http.StatusTeapot, 42),
			expectedStatusCode: http.StatusTeapot,
			expectedMessage:    "42",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			server := newTestServer(t)
			addErrorRoute(server, tt.error)

			// Act
			response := makeRequest(server, http.MethodGet, "/error", nil)

			// Assert
			assert.Equal(t, tt.expectedStatusCode, response.Code)
			resp := decodeAPIResponse(t, response)
			assert.Equal(t, tt.expectedStatusCode, resp.Code)
			assert.Equal(t, tt.expectedMessage, resp.Msg)
			assert.Nil(t, resp.Res)
			assert.Nil(t, resp.Data)
		})
	}
}

func TestUnknownRoute(t *testing.T) {
	server := newTestServer(t)

	response := makeRequest(server, http.MethodGet, "/nope", nil)

	assert.Equal(t, http.StatusNotFound, response.Code)
	assert.JSONEq(t, `{"code":404,"msg":"Not Found"}`, response.Body.String())
}

func TestStaticPosters(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Upload.Dir, "1700000000.jpg"), []byte("jpeg-bytes"), 0o644))
	server, err := httpserver.New(httpserver.WithConfig(cfg))
	require.NoError(t, err)

	response := makeRequest(server, http.MethodGet, "/1700000000.jpg", nil)
	assert.Equal(t, http.StatusOK, response.Code)
	assert.Equal(t, "jpeg-bytes", response.Body.String())

	response = makeRequest(server, http.MethodGet, "/missing.jpg", nil)
	assert.Equal(t, http.StatusNotFound, response.Code)
}

func TestUploadBodyLimit(t *testing.T) {
	server := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/doAdd", strings.NewReader(strings.Repeat("x", 4096)))
	req.Header.Set(echo.HeaderContentType, "multipart/form-data; boundary=xyz")
	rec := httptest.NewRecorder()
	server.Router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, http.StatusRequestEntityTooLarge, decodeAPIResponse(t, rec).Code)
}

// Helper functions for test setup and assertions

func allocateRandomPort(t *testing.T) int {
	t.Helper()
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := listener.Addr().(*net.TCPAddr).Port
	listener.Close()
	return port
}

func startServerAsync(server *httpserver.Server) chan error {
	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Start()
	}()
	time.Sleep(100 * time.Millisecond) // Wait for server to start
	return errChan
}

func waitForServerReady(port int) {
	resp, err := http.Get(fmt.Sprintf("http://127.0.0.1:%d/healthcheck", port))
	if err == nil {
		resp.Body.Close()
	}
}

func assertServerIsRunning(t *testing.T, port int) {
	t.Helper()
	resp, err := http.Get(fmt.Sprintf("http://127.0.0.1:%d/healthcheck", port))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func assertServerStopsGracefully(t *testing.T, server *httpserver.Server, errChan chan error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := server.Shutdown(ctx)
	assert.NoError(t, err, "Shutdown should complete without error")

	select {
	case err := <-errChan:
		if err != nil && err != http.ErrServerClosed {
			t.Errorf("Unexpected error during shutdown: %v", err)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("Server did not stop within timeout")
	}
}

func makeRequest(server *httpserver.Server, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	rec := httptest.NewRecorder()
	server.Router.ServeHTTP(rec, req)
	return rec
}

func makeRequestWithOrigin(server *httpserver.Server, path, origin string) *httptest.ResponseRecorder {
	return makeRequest(server, http.MethodGet, path, map[string]string{"Origin": origin})
}

func addTestRoute(server *httpserver.Server) {
	server.Router.GET("/test", func(c echo.Context) error {
		return c.String(http.StatusOK, "test")
	})
}

func addPanicRoute(server *httpserver.Server) {
	server.Router.GET("/panic", func(c echo.Context) error {
		panic("test panic")
	})
}

func addErrorRoute(server *httpserver.Server, err error) {
	server.Router.GET("/error", func(c echo.Context) error {
		return err
	})
}

func configureServerWithCORS(t *testing.T, allowOrigins string) *httpserver.Server {
	t.Helper()
	cfg := testConfig(t)
	cfg.AllowOrigins = allowOrigins
	server, err := httpserver.New(httpserver.WithConfig(cfg))
	require.NoError(t, err)
	return server
}

func assertRequestIDMiddlewareApplied(t *testing.T, response *httptest.ResponseRecorder) {
	t.Helper()
	assert.NotEmpty(t, response.Header().Get("X-Request-Id"), "Request ID middleware should add header")
}

func assertSecurityMiddlewareApplied(t *testing.T, response *httptest.ResponseRecorder) {
	t.Helper()
	assert.NotEmpty(t, response.Header().Get("X-Content-Type-Options"), "Secure middleware should add headers")
}

func assertCORSBehavior(t *testing.T, response *httptest.ResponseRecorder, expectCORS bool) {
	t.Helper()
	corsHeader := response.Header().Get("Access-Control-Allow-Origin")
	if expectCORS {
		assert.NotEmpty(t, corsHeader, "CORS header should be present")
	} else {
		assert.Empty(t, corsHeader, "CORS header should not be present")
	}
}

func assertPanicIsRecovered(t *testing.T, response *httptest.ResponseRecorder) {
	t.Helper()
	assert.Equal(t, http.StatusInternalServerError, response.Code, "Should return 500 on panic")
}
