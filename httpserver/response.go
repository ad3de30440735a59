package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const successMessage = "OK"

// APIResponse is the envelope of every JSON reply. Code mirrors the HTTP
// status for errors; a 200 reply may carry code 400 for a no-op.
type APIResponse struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Res  interface{} `json:"res,omitempty"`
	Data interface{} `json:"data,omitempty"`
}

type PagedResponse struct {
	APIResponse
	Total int64 `json:"total"`
	Start int   `json:"start"`
	Limit int   `json:"limit"`
}

// writeMessage replies with HTTP 200 and the given body code.
func writeMessage(c echo.Context, code int, msg string) error {
	return c.JSON(http.StatusOK, APIResponse{
		Code: code,
		Msg:  msg,
	})
}

func writeSuccess(c echo.Context, msg string, data interface{}) error {
	return c.JSON(http.StatusOK, APIResponse{
		Code: http.StatusOK,
		Msg:  msg,
		Data: data,
	})
}

func writeResult(c echo.Context, msg string, res interface{}) error {
	return c.JSON(http.StatusOK, APIResponse{
		Code: http.StatusOK,
		Msg:  msg,
		Res:  res,
	})
}

func writePage(c echo.Context, msg string, res interface{}, total int64, start, limit int) error {
	return c.JSON(http.StatusOK, PagedResponse{
		APIResponse: APIResponse{
			Code: http.StatusOK,
			Msg:  msg,
			Res:  res,
		},
		Total: total,
		Start: start,
		Limit: limit,
	})
}

func writeError(c echo.Context, status int, msg string) error {
	return c.JSON(status, APIResponse{
		Code: status,
		Msg:  msg,
	})
}
