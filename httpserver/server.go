package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"top250/auth"
	"top250/errs"
	"top250/movie"
	"top250/pkg/config"
	"top250/pkg/logger"
	"top250/pkg/sentry"
	"top250/user"

	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

const (
	defaultAddr          = ":8080"
	defaultUploadMaxSize = "2M"
	internalErrorMessage = "Internal server error"
)

type Server struct {
	// Router is the Echo router instance
	Router *echo.Echo

	// Addr represents the address the server will listen on
	Addr string

	// Allowed origins for CORS
	AllowOrigins []string

	Config *config.Config
	Logger *zap.SugaredLogger

	MovieService movie.Service

	UserService user.Service

	AuthService auth.Service
}

func New(options ...Options) (*Server, error) {
	s := Server{
		Router: echo.New(),
		Config: config.Empty,
		Logger: logger.NOOPLogger,
	}

	for _, fn := range options {
		if err := fn(&s); err != nil {
			return nil, err
		}
	}

	s.Addr = defaultAddr
	if s.Config.Port > 0 {
		s.Addr = fmt.Sprintf(":%d", s.Config.Port)
	}
	s.AllowOrigins = splitOrigins(s.Config.AllowOrigins)

	s.Router.HideBanner = true
	s.Router.JSONSerializer = new(JSONSerializer)
	s.Router.Validator = NewValidator()
	s.Router.HTTPErrorHandler = s.handleHTTPError

	s.RegisterGlobalMiddlewares()
	s.RegisterHealthRoutes()
	s.RegisterMetricsRoutes()
	s.RegisterSwaggerRoutes()
	s.RegisterMovieRoutes()
	s.RegisterUserRoutes()
	s.RegisterAuthRoutes()

	return &s, nil
}

func (s *Server) RegisterGlobalMiddlewares() {
	s.Router.Use(middleware.Recover())
	s.Router.Use(middleware.Secure())
	s.Router.Use(middleware.RequestID())
	s.Router.Use(s.requestLogger())
	s.Router.Use(middleware.Gzip())
	s.Router.Use(sentryecho.New(sentryecho.Options{Repanic: true}))

	// CORS
	if len(s.AllowOrigins) > 0 {
		s.Router.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: s.AllowOrigins,
			AllowMethods: []string{
				http.MethodGet,
				http.MethodPost,
				http.MethodPut,
				http.MethodDelete,
				http.MethodOptions,
			},
			AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
		}))
	}

	// uploaded posters are served from the root path
	if s.Config.Upload.Dir != "" {
		s.Router.Use(middleware.StaticWithConfig(middleware.StaticConfig{
			Root: s.Config.Upload.Dir,
			Skipper: func(c echo.Context) bool {
				m := c.Request().Method
				return m != http.MethodGet && m != http.MethodHead
			},
		}))
	}
}

func (s *Server) Start() error {
	return s.Router.Start(s.Addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.Router.Shutdown(ctx)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

// requestLogger logs one line per request and feeds the request metrics.
// Errors are rendered here so the logged status is the one sent.
func (s *Server) requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		Skipper:       func(c echo.Context) bool { return c.Path() == metricsPath },
		HandleError:   true,
		LogMethod:     true,
		LogURI:        true,
		LogRoutePath:  true,
		LogStatus:     true,
		LogLatency:    true,
		LogRequestID:  true,
		LogRemoteIP:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			recordRequest(v.Method, v.RoutePath, v.Status, v.Latency)
			s.Logger.Infow("request",
				zap.String("request_id", v.RequestID),
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("remote_ip", v.RemoteIP),
			)
			return nil
		},
	})
}

// handleHTTPError maps application errors to HTTP status codes and writes
// the {code,msg} body. Server side failures are logged and reported.
func (s *Server) handleHTTPError(err error, c echo.Context) {
	// Don't write response if already committed
	if c.Response().Committed {
		return
	}

	code, message := errorStatus(err)
	if code >= http.StatusInternalServerError {
		s.Logger.Errorw(
			err.Error(),
			zap.String("request_id", s.requestID(c)),
			zap.String("method", c.Request().Method),
			zap.String("uri", c.Request().RequestURI),
		)
		sentry.WithContext(c).Error(err)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = writeError(c, code, message)
	}
	if err != nil {
		s.Logger.Errorw("write error response", zap.Error(err))
	}
}

func errorStatus(err error) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if msg, ok := he.Message.(string); ok {
			return he.Code, msg
		}
		if he.Message != nil {
			return he.Code, fmt.Sprint(he.Message)
		}
		return he.Code, http.StatusText(he.Code)
	}

	// Map application error codes to HTTP status codes
	switch errs.ErrorCode(err) {
	case errs.EINVALID, errs.ECONFLICT:
		return http.StatusBadRequest, errs.ErrorMessage(err)
	case errs.ENOTFOUND:
		return http.StatusNotFound, errs.ErrorMessage(err)
	case errs.EUNAUTHORIZED:
		return http.StatusUnauthorized, errs.ErrorMessage(err)
	case errs.ENOTIMPLEMENTED:
		return http.StatusNotImplemented, errs.ErrorMessage(err)
	default:
		return http.StatusInternalServerError, internalErrorMessage
	}
}

func (s *Server) requestID(c echo.Context) string {
	return c.Response().Header().Get(echo.HeaderXRequestID)
}

func (s *Server) uploadMaxSize() string {
	if s.Config.Upload.MaxSize == "" {
		return defaultUploadMaxSize
	}
	return s.Config.Upload.MaxSize
}

func splitOrigins(value string) []string {
	var origins []string
	for _, o := range strings.Split(value, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
