package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRouter_SetupRegistersUnderVersionPrefix(t *testing.T) {
	engine := gin.New()
	group := NewDomainGroup("/products").
		GET("", func(c *gin.Context) { c.String(http.StatusOK, "list") })

	NewRouter(engine).Register(group).Setup()

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/products", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "list", w.Body.String())
}

func TestRouter_WithAPIVersion(t *testing.T) {
	engine := gin.New()
	group := NewDomainGroup("/products").
		GET("", func(c *gin.Context) { c.String(http.StatusOK, "list") })

	NewRouter(engine, WithAPIVersion("v2")).Register(group).Setup()

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest("GET", "/api/v2/products", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/products", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDomainGroup_AppliesMiddleware(t *testing.T) {
	engine := gin.New()

	group := NewDomainGroup("/billing").
		Use(func(c *gin.Context) {
			if c.GetHeader("Authorization") == "" {
				c.AbortWithStatus(http.StatusUnauthorized)
				return
			}
			c.Next()
		}).
		POST("/invoices", func(c *gin.Context) { c.Status(http.StatusCreated) })

	NewRouter(engine).Register(group).Setup()

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest("POST", "/api/v1/billing/invoices", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest("POST", "/api/v1/billing/invoices", nil)
	req.Header.Set("Authorization", "Bearer token")
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestDomainGroup_PerRouteMiddleware(t *testing.T) {
	engine := gin.New()

	deny := func(c *gin.Context) { c.AbortWithStatus(http.StatusForbidden) }
	group := NewDomainGroup("/products").
		GET("", func(c *gin.Context) { c.Status(http.StatusOK) }).
		DELETE("/:id", deny, func(c *gin.Context) { c.Status(http.StatusNoContent) })

	NewRouter(engine).Register(group).Setup()

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/products", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest("DELETE", "/api/v1/products/123", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}
