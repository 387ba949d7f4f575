package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-booking-api/internal/model"
	"github.com/iliyamo/movie-booking-api/internal/repository"
)

// ShowHandler exposes CRUD and search for scheduled shows. Mutations are
// admin-gated by middleware; search requires only a valid token.
type ShowHandler struct {
	Shows   *repository.ShowRepo
	Movies  *repository.MovieRepo
	Screens *repository.ScreenRepo
}

func NewShowHandler(s *repository.ShowRepo, m *repository.MovieRepo, sc *repository.ScreenRepo) *ShowHandler {
	return &ShowHandler{Shows: s, Movies: m, Screens: sc}
}

type showReq struct {
	MovieID  uint64    `json:"movie_id"`
	ScreenID uint64    `json:"screen_id"`
	ShowTime time.Time `json:"show_time"`
}

type showResp struct {
	ID         uint64    `json:"show_id"`
	MovieID    uint64    `json:"movie_id"`
	ScreenID   uint64    `json:"screen_id"`
	ShowTime   time.Time `json:"show_time"`
	MovieTitle *string   `json:"movie_title,omitempty"`
}

// Create handles POST /api/shows (admin). Both the movie and the screen
// must exist before a screening can be scheduled.
func (h *ShowHandler) Create(c echo.Context) error {
	var req showReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.MovieID == 0 || req.ScreenID == 0 || req.ShowTime.IsZero() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "movie_id/screen_id/show_time required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if _, err := h.Movies.GetByID(ctx, req.MovieID); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if _, err := h.Screens.GetByID(ctx, req.ScreenID); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "screen not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	s := model.Show{MovieID: req.MovieID, ScreenID: req.ScreenID, ShowTime: req.ShowTime}
	if err := h.Shows.Create(ctx, &s); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create show failed"})
	}
	return c.JSON(http.StatusCreated, showResp{ID: s.ID, MovieID: s.MovieID, ScreenID: s.ScreenID, ShowTime: s.ShowTime})
}

// Update handles PUT /api/shows/:id (admin).
func (h *ShowHandler) Update(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid show id"})
	}
	var req showReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	err := h.Shows.Update(ctx, model.Show{ID: id, MovieID: req.MovieID, ScreenID: req.ScreenID, ShowTime: req.ShowTime})
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "show not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update show failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "show updated"})
}

// Delete handles DELETE /api/shows/:id (admin).
func (h *ShowHandler) Delete(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid show id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Shows.Delete(ctx, id); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "show not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete show failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "show deleted"})
}

// Search handles GET /api/shows with optional movie_id and show_time
// (YYYY-MM-DD) query parameters. Each result carries the movie title for
// display; a nil title marks a show orphaned by an interrupted cascade.
func (h *ShowHandler) Search(c echo.Context) error {
	var q repository.ShowSearchQuery
	if s := c.QueryParam("movie_id"); s != "" {
		id, err := strconv.ParseUint(s, 10, 64)
		if err != nil || id == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie_id"})
		}
		q.MovieID = id
	}
	if s := c.QueryParam("show_time"); s != "" {
		day, err := time.Parse("2006-01-02", s)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid show_time, expected YYYY-MM-DD"})
		}
		q.Day = &day
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	shows, err := h.Shows.Search(ctx, q)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]showResp, 0, len(shows))
	for _, s := range shows {
		out = append(out, showResp{ID: s.ID, MovieID: s.MovieID, ScreenID: s.ScreenID, ShowTime: s.ShowTime, MovieTitle: s.MovieTitle})
	}
	return c.JSON(http.StatusOK, out)
}
