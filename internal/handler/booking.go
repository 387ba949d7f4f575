package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-booking-api/internal/middleware"
	"github.com/iliyamo/movie-booking-api/internal/queue"
	"github.com/iliyamo/movie-booking-api/internal/repository"
	queue_publisher "github.com/iliyamo/movie-booking-api/internal/service"
)

// BookingHandler converts booking requests into ledger inserts. The
// caller's identity always comes from the resolved token: a user_id in
// the request body is ignored, so nobody can book on someone else's
// account. The uniqueness of a (show, seat) slot is enforced entirely
// by BookingRepo.Reserve; this handler only validates the request shape
// and the catalog references around it.
type BookingHandler struct {
	Bookings *repository.BookingRepo
	Shows    *repository.ShowRepo
	Screens  *repository.ScreenRepo
	Movies   *repository.MovieRepo
	// PublishEvent is swappable for tests; defaults to the RabbitMQ
	// publisher.
	PublishEvent func(context.Context, queue.SeatBookedEvent) error
}

func NewBookingHandler(b *repository.BookingRepo, s *repository.ShowRepo, sc *repository.ScreenRepo, m *repository.MovieRepo) *BookingHandler {
	return &BookingHandler{
		Bookings:     b,
		Shows:        s,
		Screens:      sc,
		Movies:       m,
		PublishEvent: queue_publisher.PublishSeatBooked,
	}
}

type bookingReq struct {
	ShowID     uint64 `json:"show_id"`
	SeatNumber uint32 `json:"seat_number"`
}

type bookingResp struct {
	Message    string `json:"message"`
	BookingID  uint64 `json:"booking_id"`
	ShowID     uint64 `json:"show_id"`
	SeatNumber uint32 `json:"seat_number"`
}

type bookingItem struct {
	BookingID  uint64    `json:"booking_id"`
	ShowID     uint64    `json:"show_id"`
	SeatNumber uint32    `json:"seat_number"`
	CreatedAt  time.Time `json:"created_at"`
}

// Create handles POST /api/bookings (authenticated).
//
// The flow is: validate the request shape, confirm the show exists and
// the seat number is within the screen's seat count, then hand the slot
// to Reserve. Everything before Reserve is advisory; only the unique
// key decides the race. Exactly one concurrent caller per slot gets the
// 201; the rest get 400 "Seat already booked", including a caller
// retrying its own successful booking.
func (h *BookingHandler) Create(c echo.Context) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "could not validate credentials"})
	}

	var req bookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.ShowID == 0 || req.SeatNumber == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "show_id and seat_number required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	show, err := h.Shows.GetByID(ctx, req.ShowID)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "show not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	screen, err := h.Screens.GetByID(ctx, show.ScreenID)
	if err == nil && req.SeatNumber > screen.TotalSeats {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "seat number out of range"})
	}
	// A missing screen row is tolerated: the bound check is advisory
	// and the unique key still protects the slot.

	booking, err := h.Bookings.Reserve(ctx, req.ShowID, req.SeatNumber, u.ID)
	if err != nil {
		if err == repository.ErrSeatTaken {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Seat already booked"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "booking failed"})
	}

	// Publish off the request path. The event enriches the audit trail
	// with the movie title when the catalog still has it.
	if h.PublishEvent != nil {
		ev := queue.SeatBookedEvent{
			BookingID:  booking.ID,
			ShowID:     booking.ShowID,
			SeatNumber: booking.SeatNumber,
			UserID:     u.ID,
			UserEmail:  u.Email,
			ShowTime:   show.ShowTime.UTC().Format(time.RFC3339),
			BookedAt:   time.Now().UTC().Format(time.RFC3339),
		}
		if m, err := h.Movies.GetByID(ctx, show.MovieID); err == nil {
			ev.MovieTitle = m.Title
		}
		go func() {
			pubCtx, pubCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer pubCancel()
			_ = h.PublishEvent(pubCtx, ev)
		}()
	}

	return c.JSON(http.StatusCreated, bookingResp{
		Message:    "Booking successful",
		BookingID:  booking.ID,
		ShowID:     booking.ShowID,
		SeatNumber: booking.SeatNumber,
	})
}

// List handles GET /api/bookings (authenticated): the caller's own
// bookings, newest first.
func (h *BookingHandler) List(c echo.Context) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "could not validate credentials"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	bookings, err := h.Bookings.ListByUser(ctx, u.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]bookingItem, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, bookingItem{BookingID: b.ID, ShowID: b.ShowID, SeatNumber: b.SeatNumber, CreatedAt: b.CreatedAt})
	}
	return c.JSON(http.StatusOK, out)
}
