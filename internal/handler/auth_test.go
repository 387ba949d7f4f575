package handler

import (
	"database/sql/driver"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/movie-booking-api/internal/config"
	"github.com/iliyamo/movie-booking-api/internal/repository"
	"github.com/iliyamo/movie-booking-api/internal/utils"
)

var fixedTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func testConfig() config.Config {
	return config.Config{
		JWTSecret:    "handler-test-secret",
		AccessTTLMin: 15,
		BcryptCost:   bcrypt.MinCost,
	}
}

func newAuthHandler(t *testing.T) (*AuthHandler, sqlmock.Sqlmock, func()) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	h := NewAuthHandler(testConfig(), jwt.SigningMethodHS256, repository.NewUserRepo(conn))
	return h, mock, func() { conn.Close() }
}

// anyBcryptHash matches any well-formed bcrypt digest.
type anyBcryptHash struct{}

func (anyBcryptHash) Match(v driver.Value) bool {
	s, ok := v.(string)
	return ok && strings.HasPrefix(s, "$2")
}

func doJSON(e *echo.Echo, method, path, body string) (*httptest.ResponseRecorder, echo.Context) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return rec, e.NewContext(req, rec)
}

func doForm(e *echo.Echo, path string, form url.Values) (*httptest.ResponseRecorder, echo.Context) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	return rec, e.NewContext(req, rec)
}

func TestSignupCreated(t *testing.T) {
	h, mock, closeDB := newAuthHandler(t)
	defer closeDB()

	mock.ExpectExec(regexp.QuoteMeta(
		"INSERT INTO users (username, email, password_hash, phone, is_admin) VALUES (?,?,?,?,?)")).
		WithArgs("alice", "alice@example.com", anyBcryptHash{}, "555-0100", false).
		WillReturnResult(sqlmock.NewResult(1, 1))

	e := echo.New()
	rec, c := doJSON(e, http.MethodPost, "/api/signup",
		`{"username":"alice","email":"Alice@Example.com","password":"s3cret","phone":"555-0100"}`)
	require.NoError(t, h.Signup(c))

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "alice@example.com", resp["email"])
	assert.Equal(t, float64(1), resp["id"])
	// No credential material in the response, hashed or otherwise.
	assert.NotContains(t, rec.Body.String(), "s3cret")
	assert.NotContains(t, rec.Body.String(), "password")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSignupDuplicateEmail(t *testing.T) {
	h, mock, closeDB := newAuthHandler(t)
	defer closeDB()

	mock.ExpectExec("INSERT INTO users .+").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	e := echo.New()
	rec, c := doJSON(e, http.MethodPost, "/api/signup",
		`{"username":"alice","email":"alice@example.com","password":"s3cret"}`)
	require.NoError(t, h.Signup(c))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "email already exists")
}

func TestSignupMissingFields(t *testing.T) {
	h, _, closeDB := newAuthHandler(t)
	defer closeDB()

	e := echo.New()
	rec, c := doJSON(e, http.MethodPost, "/api/signup", `{"username":"alice"}`)
	require.NoError(t, h.Signup(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTokenIssuesParsableJWT(t *testing.T) {
	h, mock, closeDB := newAuthHandler(t)
	defer closeDB()

	hash, err := utils.HashPassword("s3cret", bcrypt.MinCost)
	require.NoError(t, err)
	mock.ExpectQuery("SELECT .+ FROM users WHERE email=.+").
		WithArgs("alice@example.com").
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "username", "email", "password_hash", "phone", "is_admin", "created_at"}).
			AddRow(1, "alice", "alice@example.com", hash, "", false, fixedTime))

	e := echo.New()
	rec, c := doForm(e, "/token", url.Values{
		"username": {"alice@example.com"},
		"password": {"s3cret"},
	})
	require.NoError(t, h.Token(c))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "bearer", resp["token_type"])

	// The issued token must validate against the same secret and carry
	// the email as its subject.
	sub, err := utils.ParseAccessToken(testConfig().JWTSecret, resp["access_token"])
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", sub)
}

func TestTokenWrongPassword(t *testing.T) {
	h, mock, closeDB := newAuthHandler(t)
	defer closeDB()

	hash, err := utils.HashPassword("s3cret", bcrypt.MinCost)
	require.NoError(t, err)
	mock.ExpectQuery("SELECT .+ FROM users WHERE email=.+").
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "username", "email", "password_hash", "phone", "is_admin", "created_at"}).
			AddRow(1, "alice", "alice@example.com", hash, "", false, fixedTime))

	e := echo.New()
	rec, c := doForm(e, "/token", url.Values{
		"username": {"alice@example.com"},
		"password": {"wrong"},
	})
	require.NoError(t, h.Token(c))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Bearer", rec.Header().Get(echo.HeaderWWWAuthenticate))
	assert.Contains(t, rec.Body.String(), "incorrect username or password")
}

func TestTokenUnknownEmailSameRejection(t *testing.T) {
	h, mock, closeDB := newAuthHandler(t)
	defer closeDB()

	mock.ExpectQuery("SELECT .+ FROM users WHERE email=.+").
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "username", "email", "password_hash", "phone", "is_admin", "created_at"}))

	e := echo.New()
	rec, c := doForm(e, "/token", url.Values{
		"username": {"nobody@example.com"},
		"password": {"whatever"},
	})
	require.NoError(t, h.Token(c))

	// Indistinguishable from the wrong-password case.
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "incorrect username or password")
}
