package httpserver

import (
	"net/http"

	"top250/user"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterUserRoutes() {
	s.Router.POST("/register", s.handleRegister)
	s.Router.POST("/password", s.handleChangePassword)
}

// handleRegister godoc
// @Summary Register
// @Description Create an account. Username and email must both be unused.
// @Tags users
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param payload body RegisterRequest true "Account data"
// @Success 200 {object} APIResponse{data=user.User}
// @Failure 400 {object} APIResponse
// @Router /register [post]
func (s *Server) handleRegister(c echo.Context) error {
	if s.UserService == nil {
		return user.ErrServiceNotReady
	}

	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	u, err := s.UserService.Register(c.Request().Context(), req.Username, req.Email, req.Password)
	if err != nil {
		return err
	}

	return writeSuccess(c, "Registered", u)
}

// handleChangePassword godoc
// @Summary Change Password
// @Description Re-authenticate with the current password and set a new one
// @Tags users
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param payload body ChangePasswordRequest true "Credentials and new password"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 401 {object} APIResponse
// @Router /password [post]
func (s *Server) handleChangePassword(c echo.Context) error {
	if s.UserService == nil {
		return user.ErrServiceNotReady
	}

	var req ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := s.UserService.ChangePassword(c.Request().Context(), req.Username, req.Password, req.NewPassword); err != nil {
		return err
	}

	return writeMessage(c, http.StatusOK, "Password changed")
}
