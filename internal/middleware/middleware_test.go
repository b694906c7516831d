package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/clinic-scheduler/internal/config"
	"github.com/BruksfildServices01/clinic-scheduler/internal/identity"
)

const secret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func sign(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return tok
}

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	chain := append([]gin.HandlerFunc{AuthMiddleware(&config.Config{JWTSecret: secret})}, handlers...)
	chain = append(chain, func(c *gin.Context) {
		c.JSON(http.StatusOK, CallerFrom(c))
	})
	r.GET("/x", chain...)
	return r
}

func get(r http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareBuildsCaller(t *testing.T) {
	var got identity.Caller
	r := gin.New()
	r.GET("/x", AuthMiddleware(&config.Config{JWTSecret: secret}), func(c *gin.Context) {
		got = CallerFrom(c)
		c.Status(http.StatusNoContent)
	})

	w := get(r, sign(t, jwt.MapClaims{
		"sub": 7, "role": "doctor", "doctorId": 3,
		"exp": time.Now().Add(time.Hour).Unix(),
	}))
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, uint(7), got.UserID)
	assert.Equal(t, identity.RoleDoctor, got.Role)
	require.NotNil(t, got.DoctorID)
	assert.Equal(t, uint(3), *got.DoctorID)
	assert.Nil(t, got.PatientID)
}

func TestAuthMiddlewareRejects(t *testing.T) {
	r := newRouter()

	assert.Equal(t, http.StatusUnauthorized, get(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "garbage").Code)

	expired := sign(t, jwt.MapClaims{"sub": 7, "role": "admin", "exp": time.Now().Add(-time.Hour).Unix()})
	assert.Equal(t, http.StatusUnauthorized, get(r, expired).Code)

	badRole := sign(t, jwt.MapClaims{"sub": 7, "role": "nurse"})
	w := get(r, badRole)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_token_payload")

	other, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": 7, "role": "admin"}).SignedString([]byte("other"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, get(r, other).Code)
}

func TestRequireRole(t *testing.T) {
	r := newRouter(RequireRole(identity.RoleAdmin))

	assert.Equal(t, http.StatusOK, get(r, sign(t, jwt.MapClaims{"sub": 1, "role": "admin"})).Code)
	assert.Equal(t, http.StatusForbidden, get(r, sign(t, jwt.MapClaims{"sub": 2, "role": "patient", "patientId": 4})).Code)
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/x", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(ContextRequestID)) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.NotEmpty(t, w.Header().Get(HeaderRequestID))
	assert.Equal(t, w.Header().Get(HeaderRequestID), w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(HeaderRequestID, "abc")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc", w.Body.String())
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"https://app.clinic.test"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "https://app.clinic.test")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.clinic.test", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://evil.test")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
