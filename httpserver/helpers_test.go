package httpserver_test

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"top250/httpserver"
	"top250/pkg/config"

	"github.com/stretchr/testify/require"
)

func testConfig(t testing.TB) *config.Config {
	t.Helper()
	cfg := new(config.Config)
	cfg.AllowOrigins = "*"
	cfg.Upload.Dir = t.TempDir()
	cfg.Upload.MaxSize = "1K"
	return cfg
}

func newTestServer(t testing.TB, options ...httpserver.Options) *httpserver.Server {
	t.Helper()
	opts := append([]httpserver.Options{httpserver.WithConfig(testConfig(t))}, options...)
	server, err := httpserver.New(opts...)
	require.NoError(t, err)
	return server
}

type apiResponse struct {
	Code  int             `json:"code"`
	Msg   string          `json:"msg"`
	Res   json.RawMessage `json:"res"`
	Data  json.RawMessage `json:"data"`
	Total *int64          `json:"total"`
	Start *int            `json:"start"`
	Limit *int            `json:"limit"`
}

func decodeAPIResponse(t testing.TB, rec *httptest.ResponseRecorder) apiResponse {
	t.Helper()
	var resp apiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return resp
}
