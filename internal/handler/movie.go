package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-booking-api/internal/model"
	"github.com/iliyamo/movie-booking-api/internal/repository"
)

// MovieHandler exposes catalog CRUD and search for movies. Create,
// Update and Delete are admin-gated by middleware; Get and Search only
// require a valid token.
type MovieHandler struct {
	Movies *repository.MovieRepo
}

func NewMovieHandler(m *repository.MovieRepo) *MovieHandler { return &MovieHandler{Movies: m} }

type movieReq struct {
	Title       string    `json:"title"`
	Genre       string    `json:"genre"`
	Rating      float64   `json:"rating"`
	DurationMin int       `json:"duration"`
	ReleaseDate time.Time `json:"release_date"`
}

type movieUpdateReq struct {
	Title       *string    `json:"title"`
	Genre       *string    `json:"genre"`
	Rating      *float64   `json:"rating"`
	DurationMin *int       `json:"duration"`
	ReleaseDate *time.Time `json:"release_date"`
}

type movieResp struct {
	ID          uint64    `json:"movie_id"`
	Title       string    `json:"title"`
	Genre       string    `json:"genre"`
	Rating      float64   `json:"rating"`
	DurationMin int       `json:"duration"`
	ReleaseDate time.Time `json:"release_date"`
}

func toMovieResp(m model.Movie) movieResp {
	return movieResp{
		ID:          m.ID,
		Title:       m.Title,
		Genre:       m.Genre,
		Rating:      m.Rating,
		DurationMin: m.DurationMin,
		ReleaseDate: m.ReleaseDate,
	}
}

// Create handles POST /api/movies (admin).
func (h *MovieHandler) Create(c echo.Context) error {
	var req movieReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	m := model.Movie{
		Title:       req.Title,
		Genre:       req.Genre,
		Rating:      req.Rating,
		DurationMin: req.DurationMin,
		ReleaseDate: req.ReleaseDate,
	}
	if err := h.Movies.Create(ctx, &m); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create movie failed"})
	}
	return c.JSON(http.StatusCreated, toMovieResp(m))
}

// Get handles GET /api/movies/:id.
func (h *MovieHandler) Get(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	m, err := h.Movies.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, toMovieResp(m))
}

// Update handles PUT /api/movies/:id (admin). Absent fields keep their
// stored values.
func (h *MovieHandler) Update(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	var req movieUpdateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	upd := repository.MovieUpdate{
		Title:       req.Title,
		Genre:       req.Genre,
		Rating:      req.Rating,
		DurationMin: req.DurationMin,
		ReleaseDate: req.ReleaseDate,
	}
	if err := h.Movies.Update(ctx, id, upd); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update movie failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "movie updated"})
}

// Delete handles DELETE /api/movies/:id (admin). Dependent shows are
// removed in a best-effort second step; see MovieRepo.Delete.
func (h *MovieHandler) Delete(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Movies.Delete(ctx, id); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete movie failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "movie and related shows deleted"})
}

// Search handles GET /api/movies with optional title, genre and rating
// query parameters. The rating value is a lower bound.
func (h *MovieHandler) Search(c echo.Context) error {
	q := repository.MovieSearchQuery{
		Title: c.QueryParam("title"),
		Genre: c.QueryParam("genre"),
	}
	if s := c.QueryParam("rating"); s != "" {
		r, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid rating"})
		}
		q.Rating = r
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	movies, err := h.Movies.Search(ctx, q)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]movieResp, 0, len(movies))
	for _, m := range movies {
		out = append(out, toMovieResp(m))
	}
	return c.JSON(http.StatusOK, out)
}
