package httpserver

import (
	"errors"
	"net/http"

	"top250/errs"
	"top250/movie"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

var ErrInvalidForm = errs.Errorf(errs.EINVALID, "invalid form data")

func (s *Server) RegisterMovieRoutes() {
	s.Router.GET("/top250", s.handleListMovies)
	s.Router.GET("/detail", s.handleMovieDetail)
	s.Router.POST("/doAdd", s.handleAddMovie, middleware.BodyLimit(s.uploadMaxSize()))
	s.Router.POST("/update", s.handleUpdateMovie)
	s.Router.POST("/collect", s.handleCollectMovie)
	s.Router.POST("/collect/cancel", s.handleCancelCollectMovie)
	s.Router.POST("/delete", s.handleDeleteMovie)
}

// handleListMovies godoc
// @Summary List Movies
// @Description Page through the catalog, optionally filtered by a title substring
// @Tags movies
// @Produce json
// @Param start query int false "Offset" default(0)
// @Param limit query int false "Page size" default(15)
// @Param search query string false "Case-insensitive title substring"
// @Success 200 {object} PagedResponse
// @Failure 400 {object} APIResponse
// @Router /top250 [get]
func (s *Server) handleListMovies(c echo.Context) error {
	if s.MovieService == nil {
		return movie.ErrServiceNotReady
	}

	var req ListMoviesRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	q, err := req.ToQuery()
	if err != nil {
		return err
	}

	page, err := s.MovieService.List(c.Request().Context(), q)
	if err != nil {
		return err
	}

	return writePage(c, "Movies fetched", page.Movies, page.Total, page.Start, page.Limit)
}

// handleMovieDetail godoc
// @Summary Movie Detail
// @Tags movies
// @Produce json
// @Param id query string true "Movie ID"
// @Success 200 {object} APIResponse{res=movie.Movie}
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /detail [get]
func (s *Server) handleMovieDetail(c echo.Context) error {
	if s.MovieService == nil {
		return movie.ErrServiceNotReady
	}

	var req MovieIDRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	m, err := s.MovieService.Get(c.Request().Context(), req.ID)
	if err != nil {
		return err
	}

	return writeResult(c, "Movie detail fetched", m)
}

// handleAddMovie godoc
// @Summary Create Movie
// @Description Add a movie with its poster image
// @Tags movies
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Title"
// @Param slogo formData string false "Tagline"
// @Param evaluate formData number false "Number of reviews"
// @Param rating formData number true "Rating"
// @Param collected formData bool false "Collected flag"
// @Param year formData string true "Release year"
// @Param label formData []string false "Country and genre labels" collectionFormat(multi)
// @Param file formData file true "Poster image"
// @Success 200 {object} APIResponse{data=movie.Movie}
// @Failure 400 {object} APIResponse
// @Failure 413 {object} APIResponse
// @Router /doAdd [post]
func (s *Server) handleAddMovie(c echo.Context) error {
	if s.MovieService == nil {
		return movie.ErrServiceNotReady
	}

	params, err := c.FormParams()
	if err != nil {
		return formError(err)
	}

	// browsers and form libraries send repeated fields as label or label[]
	var labels []string
	labels = append(labels, params["label"]...)
	labels = append(labels, params["label[]"]...)

	draft := movie.Draft{
		Title:     params.Get("title"),
		Slogo:     params.Get("slogo"),
		Evaluate:  params.Get("evaluate"),
		Rating:    params.Get("rating"),
		Collected: params.Get("collected"),
		Year:      params.Get("year"),
		Labels:    labels,
	}

	var poster *movie.Poster
	fh, err := c.FormFile("file")
	switch {
	case err == nil:
		f, err := fh.Open()
		if err != nil {
			return err
		}
		defer f.Close()
		poster = &movie.Poster{Filename: fh.Filename, Content: f}
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		// reported by the usecase after the field checks
	default:
		return formError(err)
	}

	m, err := s.MovieService.Add(c.Request().Context(), draft, poster)
	if err != nil {
		return err
	}

	return writeSuccess(c, "Movie added", m)
}

// handleUpdateMovie godoc
// @Summary Update Movie
// @Description Change the title and tagline of a movie
// @Tags movies
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param movie body UpdateMovieRequest true "Movie fields"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /update [post]
func (s *Server) handleUpdateMovie(c echo.Context) error {
	if s.MovieService == nil {
		return movie.ErrServiceNotReady
	}

	var req UpdateMovieRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := s.MovieService.UpdateInfo(c.Request().Context(), req.ID, req.Title, req.Slogo); err != nil {
		return err
	}

	return writeMessage(c, http.StatusOK, "Movie updated")
}

// handleCollectMovie godoc
// @Summary Collect Movie
// @Description Mark a movie as collected. Body code 400 means nothing changed.
// @Tags movies
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param movie body MovieIDRequest true "Movie ID"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Router /collect [post]
func (s *Server) handleCollectMovie(c echo.Context) error {
	if s.MovieService == nil {
		return movie.ErrServiceNotReady
	}

	var req MovieIDRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	changed, err := s.MovieService.Collect(c.Request().Context(), req.ID)
	if err != nil {
		return err
	}
	if !changed {
		return writeMessage(c, http.StatusBadRequest, "Movie is already collected or does not exist")
	}

	return writeMessage(c, http.StatusOK, "Movie collected")
}

// handleCancelCollectMovie godoc
// @Summary Cancel Collect
// @Description Unmark a collected movie. Body code 400 means nothing changed.
// @Tags movies
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param movie body MovieIDRequest true "Movie ID"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Router /collect/cancel [post]
func (s *Server) handleCancelCollectMovie(c echo.Context) error {
	if s.MovieService == nil {
		return movie.ErrServiceNotReady
	}

	var req MovieIDRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	changed, err := s.MovieService.CancelCollect(c.Request().Context(), req.ID)
	if err != nil {
		return err
	}
	if !changed {
		return writeMessage(c, http.StatusBadRequest, "Movie is not collected or does not exist")
	}

	return writeMessage(c, http.StatusOK, "Collection canceled")
}

// handleDeleteMovie godoc
// @Summary Delete Movie
// @Tags movies
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param movie body MovieIDRequest true "Movie ID"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /delete [post]
func (s *Server) handleDeleteMovie(c echo.Context) error {
	if s.MovieService == nil {
		return movie.ErrServiceNotReady
	}

	var req MovieIDRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := s.MovieService.Delete(c.Request().Context(), req.ID); err != nil {
		return err
	}

	return writeMessage(c, http.StatusOK, "Movie deleted")
}

// formError keeps echo errors such as the body limit intact.
func formError(err error) error {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he
	}
	return ErrInvalidForm
}
