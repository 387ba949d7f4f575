package handler

// common.go holds small helpers shared across handler files: a bounded
// request context for database calls and path-parameter parsing.

import (
	"context"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
)

// reqCtx derives a context from the request with a five second timeout.
// Every storage call made by a handler goes through this bound so a slow
// database cannot pin request goroutines indefinitely. Client
// disconnects cancel the parent context and abort in-flight queries; a
// booking insert that already committed is unaffected by cancellation.
func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), 5*time.Second)
}

// pathID parses the ":id" path parameter as a positive integer.
func pathID(c echo.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}
