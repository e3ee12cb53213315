package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamp-aid/backend/internal/auth"
)

func newRouter(jwtService *auth.JWTService, types ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := []gin.HandlerFunc{JWT(jwtService)}
	if len(types) > 0 {
		handlers = append(handlers, RequireType(types...))
	}
	handlers = append(handlers, func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/protected", handlers...)
	return r
}

func TestJWTMiddleware(t *testing.T) {
	svc := auth.NewJWTService("test-secret", 1)
	router := newRouter(svc)

	t.Run("missing header", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/protected", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Token abc")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		token, err := svc.Generate(uuid.New(), "admin@kamp.com", "Admin")
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRequireType(t *testing.T) {
	svc := auth.NewJWTService("test-secret", 1)
	router := newRouter(svc, "Admin")

	t.Run("allowed type", func(t *testing.T) {
		token, err := svc.Generate(uuid.New(), "admin@kamp.com", "Admin")
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("forbidden type", func(t *testing.T) {
		token, err := svc.Generate(uuid.New(), "supporter@kamp.com", "Individual")
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestOptionalJWT(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := auth.NewJWTService("test-secret", 1)
	r := gin.New()
	r.GET("/projects", OptionalJWT(svc), func(c *gin.Context) {
		userType, _ := c.Get(ContextUserType)
		typ, _ := userType.(string)
		c.String(http.StatusOK, typ)
	})

	t.Run("anonymous passes through", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/projects", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("valid token sets claims", func(t *testing.T) {
		token, err := svc.Generate(uuid.New(), "admin@kamp.com", "Admin")
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/projects", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		assert.Equal(t, "Admin", rec.Body.String())
	})

	t.Run("bad token treated as anonymous", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/projects", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Body.String())
	})
}
