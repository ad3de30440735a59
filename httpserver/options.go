package httpserver

import (
	"errors"

	"top250/auth"
	"top250/movie"
	"top250/pkg/config"
	"top250/user"

	"go.uber.org/zap"
)

type Options func(s *Server) error

func WithConfig(cfg *config.Config) Options {
	return func(s *Server) error {
		if cfg == nil {
			return errors.New("httpserver: config is nil")
		}
		s.Config = cfg
		return nil
	}
}

func WithLogger(l *zap.SugaredLogger) Options {
	return func(s *Server) error {
		if l == nil {
			return errors.New("httpserver: logger is nil")
		}
		s.Logger = l
		return nil
	}
}

func WithMovieService(svc movie.Service) Options {
	return func(s *Server) error {
		s.MovieService = svc
		return nil
	}
}

func WithUserService(svc user.Service) Options {
	return func(s *Server) error {
		s.UserService = svc
		return nil
	}
}

func WithAuthService(svc auth.Service) Options {
	return func(s *Server) error {
		s.AuthService = svc
		return nil
	}
}
