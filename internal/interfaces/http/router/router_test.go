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

func TestNewRouter(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	assert.NotNil(t, r)
	assert.Equal(t, "v1", r.apiVersion)
	assert.Empty(t, r.registrars)
}

func TestRouterWithAPIVersion(t *testing.T) {
	r := NewRouter(gin.New(), WithAPIVersion("v2"))
	assert.Equal(t, "v2", r.apiVersion)
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, WithMiddleware(func(c *gin.Context) {
		c.Header("X-Versioned", "yes")
		c.Next()
	}))

	group := NewDomainGroup("test", "/test")
	group.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	r.Register(group)
	catalog := r.Setup()
	assert.Equal(t, []RouteInfo{{Group: "test", Method: http.MethodGet, Path: "/api/v1/test/ping"}}, catalog)
	assert.Equal(t, catalog, r.Routes())

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/test/ping", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
	assert.Equal(t, "yes", w.Header().Get("X-Versioned"))
}

func TestDomainGroup(t *testing.T) {
	t.Run("creates group with name and prefix", func(t *testing.T) {
		g := NewDomainGroup("vendor", "/vendors")
		assert.Equal(t, "vendor", g.Name())
		assert.Equal(t, "/vendors", g.Prefix())
	})

	t.Run("registers every method", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("test", "/test")
		g.GET("/items", func(c *gin.Context) { c.String(http.StatusOK, "get") })
		g.POST("/items", func(c *gin.Context) { c.String(http.StatusCreated, "post") })
		g.PATCH("/items/:id", func(c *gin.Context) { c.String(http.StatusOK, "patch "+c.Param("id")) })
		g.RegisterRoutes(engine.Group("/api/v1"))

		cases := []struct {
			method, path, body string
			status             int
		}{
			{http.MethodGet, "/api/v1/test/items", "get", http.StatusOK},
			{http.MethodPost, "/api/v1/test/items", "post", http.StatusCreated},
			{http.MethodPatch, "/api/v1/test/items/7", "patch 7", http.StatusOK},
		}
		for _, tc := range cases {
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
			assert.Equal(t, tc.status, w.Code, tc.method)
			assert.Equal(t, tc.body, w.Body.String(), tc.method)
		}
	})

	t.Run("group middleware runs before subgroup routes", func(t *testing.T) {
		engine := gin.New()
		var order []string
		g := NewDomainGroup("outer", "/outer").Use(func(c *gin.Context) {
			order = append(order, "outer")
			c.Next()
		})
		g.Group("inner", "/inner").GET("/x", func(c *gin.Context) {
			order = append(order, "handler")
			c.Status(http.StatusNoContent)
		})
		g.RegisterRoutes(engine.Group(""))

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/outer/inner/x", nil))

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, []string{"outer", "handler"}, order)
	})
}
