package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-booking-api/internal/model"
	"github.com/iliyamo/movie-booking-api/internal/repository"
)

// HallHandler exposes CRUD for cinema halls. All mutations are
// admin-gated by middleware.
type HallHandler struct {
	Halls *repository.HallRepo
}

func NewHallHandler(h *repository.HallRepo) *HallHandler { return &HallHandler{Halls: h} }

type hallReq struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

type hallResp struct {
	ID      uint64 `json:"hall_id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// Create handles POST /api/cinemahalls (admin).
func (h *HallHandler) Create(c echo.Context) error {
	var req hallReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	hall := model.Hall{Name: req.Name, Address: req.Address, Phone: req.Phone}
	if err := h.Halls.Create(ctx, &hall); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create hall failed"})
	}
	return c.JSON(http.StatusCreated, hallResp{ID: hall.ID, Name: hall.Name, Address: hall.Address, Phone: hall.Phone})
}

// List handles GET /api/cinemahalls.
func (h *HallHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	halls, err := h.Halls.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]hallResp, 0, len(halls))
	for _, hall := range halls {
		out = append(out, hallResp{ID: hall.ID, Name: hall.Name, Address: hall.Address, Phone: hall.Phone})
	}
	return c.JSON(http.StatusOK, out)
}

// Update handles PUT /api/cinemahalls/:id (admin).
func (h *HallHandler) Update(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hall id"})
	}
	var req hallReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	err := h.Halls.Update(ctx, model.Hall{ID: id, Name: req.Name, Address: req.Address, Phone: req.Phone})
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hall not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update hall failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "hall updated"})
}

// Delete handles DELETE /api/cinemahalls/:id (admin).
func (h *HallHandler) Delete(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hall id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Halls.Delete(ctx, id); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hall not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete hall failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "hall deleted"})
}
