package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/movie-booking-api/internal/handler"    // handlers that implement the endpoints
	"github.com/iliyamo/movie-booking-api/internal/middleware" // middleware for authentication and the admin gate
	"github.com/iliyamo/movie-booking-api/internal/repository" // user repository needed by the auth middleware
)

// Handlers bundles every handler the router wires up. All fields must
// be non-nil.
type Handlers struct {
	Auth     *handler.AuthHandler
	Movies   *handler.MovieHandler
	Halls    *handler.HallHandler
	Screens  *handler.ScreenHandler
	Shows    *handler.ShowHandler
	Bookings *handler.BookingHandler
}

// Register wires up the full route table. Three tiers of access exist:
//
//   - public: health check, signup and the token endpoint;
//   - authenticated: catalog reads and booking, behind Authenticate;
//   - admin: catalog mutations, behind Authenticate + RequireAdmin.
//
// The guards compose as plain middleware so each tier is visible here
// in one place rather than scattered through the handlers. cacheMW
// wraps only the catalog read routes; passing nil (or the no-op
// middleware) leaves them uncached.
func Register(e *echo.Echo, h Handlers, users *repository.UserRepo, jwtSecret string, cacheMW echo.MiddlewareFunc) {
	// Public endpoints: no token required.
	e.GET("/healthz", handler.Health)
	e.POST("/api/signup", h.Auth.Signup)
	e.POST("/token", h.Auth.Token)

	// Everything under /api (except signup above) requires a resolved
	// identity.
	api := e.Group("/api")
	api.Use(middleware.Authenticate(jwtSecret, users))

	// Reads available to any authenticated user. The search endpoints
	// are the only cached routes.
	if cacheMW != nil {
		api.GET("/movies", h.Movies.Search, cacheMW)
		api.GET("/shows", h.Shows.Search, cacheMW)
	} else {
		api.GET("/movies", h.Movies.Search)
		api.GET("/shows", h.Shows.Search)
	}
	api.GET("/movies/:id", h.Movies.Get)
	api.GET("/cinemahalls", h.Halls.List)
	api.GET("/cinemahalls/:id/screens", h.Screens.ListByHall)

	// Booking: identity comes from the token, never the body.
	api.POST("/bookings", h.Bookings.Create)
	api.GET("/bookings", h.Bookings.List)

	// Catalog mutations require the admin flag on the resolved user.
	admin := api.Group("", middleware.RequireAdmin())
	admin.POST("/movies", h.Movies.Create)
	admin.PUT("/movies/:id", h.Movies.Update)
	admin.DELETE("/movies/:id", h.Movies.Delete)
	admin.POST("/cinemahalls", h.Halls.Create)
	admin.PUT("/cinemahalls/:id", h.Halls.Update)
	admin.DELETE("/cinemahalls/:id", h.Halls.Delete)
	admin.POST("/screens", h.Screens.Create)
	admin.PUT("/screens/:id", h.Screens.Update)
	admin.DELETE("/screens/:id", h.Screens.Delete)
	admin.POST("/shows", h.Shows.Create)
	admin.PUT("/shows/:id", h.Shows.Update)
	admin.DELETE("/shows/:id", h.Shows.Delete)
}
