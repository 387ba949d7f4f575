package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-booking-api/internal/model"
	"github.com/iliyamo/movie-booking-api/internal/repository"
)

// ScreenHandler exposes CRUD for screens. Mutations are admin-gated by
// middleware.
type ScreenHandler struct {
	Screens *repository.ScreenRepo
	Halls   *repository.HallRepo
}

func NewScreenHandler(s *repository.ScreenRepo, h *repository.HallRepo) *ScreenHandler {
	return &ScreenHandler{Screens: s, Halls: h}
}

type screenReq struct {
	HallID     uint64 `json:"hall_id"`
	Name       string `json:"name"`
	TotalSeats uint32 `json:"total_seats"`
}

type screenResp struct {
	ID         uint64 `json:"screen_id"`
	HallID     uint64 `json:"hall_id"`
	Name       string `json:"name"`
	TotalSeats uint32 `json:"total_seats"`
}

// Create handles POST /api/screens (admin). The referenced hall must
// exist.
func (h *ScreenHandler) Create(c echo.Context) error {
	var req screenReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.HallID == 0 || req.Name == "" || req.TotalSeats == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "hall_id/name/total_seats required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if _, err := h.Halls.GetByID(ctx, req.HallID); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hall not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	s := model.Screen{HallID: req.HallID, Name: req.Name, TotalSeats: req.TotalSeats}
	if err := h.Screens.Create(ctx, &s); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create screen failed"})
	}
	return c.JSON(http.StatusCreated, screenResp{ID: s.ID, HallID: s.HallID, Name: s.Name, TotalSeats: s.TotalSeats})
}

// ListByHall handles GET /api/cinemahalls/:id/screens.
func (h *ScreenHandler) ListByHall(c echo.Context) error {
	hallID, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hall id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	screens, err := h.Screens.ListByHall(ctx, hallID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]screenResp, 0, len(screens))
	for _, s := range screens {
		out = append(out, screenResp{ID: s.ID, HallID: s.HallID, Name: s.Name, TotalSeats: s.TotalSeats})
	}
	return c.JSON(http.StatusOK, out)
}

// Update handles PUT /api/screens/:id (admin).
func (h *ScreenHandler) Update(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid screen id"})
	}
	var req screenReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	err := h.Screens.Update(ctx, model.Screen{ID: id, HallID: req.HallID, Name: req.Name, TotalSeats: req.TotalSeats})
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "screen not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update screen failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "screen updated"})
}

// Delete handles DELETE /api/screens/:id (admin).
func (h *ScreenHandler) Delete(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid screen id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Screens.Delete(ctx, id); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "screen not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete screen failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "screen deleted"})
}
