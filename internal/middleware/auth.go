package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"context"      // lookup timeout plumbing
	"database/sql" // sentinel for missing-user lookups
	"net/http"     // HTTP status codes for responses
	"strings"      // string utilities for prefix checking and trimming
	"time"         // timeout for the user lookup

	"github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

	"github.com/iliyamo/movie-booking-api/internal/model"
	"github.com/iliyamo/movie-booking-api/internal/repository"
	"github.com/iliyamo/movie-booking-api/internal/utils"
)

// userContextKey is where Authenticate stores the resolved user for
// handlers and downstream middleware.
const userContextKey = "current_user"

// challenge writes the single undifferentiated 401 used for every
// authentication failure. Missing header, malformed token, bad
// signature, expired token and unknown subject all produce this exact
// response so that a caller cannot probe which part of a stolen token
// is wrong. The WWW-Authenticate header carries the Bearer challenge
// required by RFC 6750.
func challenge(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
	return c.JSON(http.StatusUnauthorized, echo.Map{"error": "could not validate credentials"})
}

// Authenticate returns an Echo middleware that validates a Bearer access
// token and resolves its subject into a full user record. Token
// validation itself is stateless (signature + expiry only); the store is
// consulted afterwards so that a token whose subject was deleted stops
// working immediately. On success the *model.User is stored in the
// request context under userContextKey for CurrentUser to retrieve.
func Authenticate(secret string, users *repository.UserRepo) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// A valid header starts with "Bearer " followed by the JWT.
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return challenge(c)
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			// Verify signature and expiry; the error variants are
			// deliberately collapsed here.
			subject, err := utils.ParseAccessToken(secret, raw)
			if err != nil {
				return challenge(c)
			}

			ctx, cancel := context5s(c)
			defer cancel()
			u, err := users.GetByEmail(ctx, subject)
			if err != nil {
				if err == sql.ErrNoRows {
					return challenge(c)
				}
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
			}

			c.Set(userContextKey, u)
			return next(c)
		}
	}
}

// RequireAdmin returns a middleware that allows the request through only
// when the resolved user carries the admin flag. It must run after
// Authenticate. Unlike authentication failures, the 403 is distinct and
// explicit: the caller is known, just not privileged.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			u, ok := CurrentUser(c)
			if !ok {
				return challenge(c)
			}
			if !u.IsAdmin {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "not enough permissions"})
			}
			return next(c)
		}
	}
}

// CurrentUser retrieves the user resolved by Authenticate. The boolean
// is false when the middleware did not run or failed.
func CurrentUser(c echo.Context) (model.User, bool) {
	u, ok := c.Get(userContextKey).(model.User)
	return u, ok
}

// context5s bounds a store lookup to five seconds, matching the timeout
// the handlers use for their own database calls.
func context5s(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), 5*time.Second)
}
