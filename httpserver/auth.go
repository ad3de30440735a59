package httpserver

import (
	"top250/auth"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterAuthRoutes() {
	s.Router.POST("/login", s.handleLogin)
}

// handleLogin godoc
// @Summary Login
// @Description Verify a username or email with its password. No token is issued.
// @Tags auth
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param credentials body LoginRequest true "Login credentials"
// @Success 200 {object} APIResponse{data=user.User}
// @Failure 400 {object} APIResponse
// @Failure 401 {object} APIResponse
// @Router /login [post]
func (s *Server) handleLogin(c echo.Context) error {
	if s.AuthService == nil {
		return auth.ErrServiceNotReady
	}

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	u, err := s.AuthService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return writeSuccess(c, "Logged in", u)
}
