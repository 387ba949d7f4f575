package handler

import (
	"database/sql" // sentinel errors returned from the repository
	"net/http"     // HTTP status codes and primitives
	"strings"      // string manipulation utilities

	"github.com/golang-jwt/jwt/v5" // signing method passed through to token issuing
	"github.com/labstack/echo/v4"  // Echo framework for HTTP routing

	"github.com/iliyamo/movie-booking-api/internal/config"
	"github.com/iliyamo/movie-booking-api/internal/repository"
	"github.com/iliyamo/movie-booking-api/internal/utils"
)

// AuthHandler bundles dependencies for the signup and login endpoints.
// SignMethod is resolved once at startup from JWT_ALGORITHM.
type AuthHandler struct {
	Cfg        config.Config
	SignMethod jwt.SigningMethod
	Users      *repository.UserRepo
}

func NewAuthHandler(cfg config.Config, method jwt.SigningMethod, u *repository.UserRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, SignMethod: method, Users: u}
}

// ----- DTOs -----

type signupReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	IsAdmin  bool   `json:"is_admin"`
}

// signupResp mirrors the stored profile minus the password hash. The
// hash never leaves the service.
type signupResp struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	IsAdmin  bool   `json:"is_admin"`
}

type tokenResp struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Signup handles POST /api/signup. The password is bcrypt-hashed inside
// the repository before storage; the response echoes the profile without
// any credential material.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username/email/password required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	uid, err := h.Users.Create(ctx, req.Username, req.Email, req.Password, req.Phone, req.IsAdmin, h.Cfg.BcryptCost)
	if err != nil {
		if err == repository.ErrEmailExists {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}

	return c.JSON(http.StatusCreated, signupResp{
		ID:       uid,
		Username: req.Username,
		Email:    req.Email,
		Phone:    req.Phone,
		IsAdmin:  req.IsAdmin,
	})
}

// Token handles POST /token. The request is form-encoded in the OAuth2
// password-grant shape: `username` carries the email and `password` the
// plaintext password. On success a bearer access token is returned; its
// TTL comes from ACCESS_TOKEN_TTL_MIN. Both unknown-email and
// wrong-password failures produce the same 401 so the endpoint cannot be
// used to enumerate accounts.
func (h *AuthHandler) Token(c echo.Context) error {
	email := strings.ToLower(strings.TrimSpace(c.FormValue("username")))
	password := c.FormValue("password")
	if email == "" || password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username/password required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return loginRejected(c)
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !utils.VerifyPassword(u.PasswordHash, password) {
		return loginRejected(c)
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, h.SignMethod, u.Email, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
	}

	return c.JSON(http.StatusOK, tokenResp{AccessToken: access.Token, TokenType: "bearer"})
}

// loginRejected answers a failed login with the same Bearer challenge an
// unauthenticated request receives.
func loginRejected(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
	return c.JSON(http.StatusUnauthorized, echo.Map{"error": "incorrect username or password"})
}
