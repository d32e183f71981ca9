package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func preflight(r *gin.Engine, origin, method string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodOptions, "/api/admin/sellers/x/status", nil)
	req.Header.Set("Origin", origin)
	req.Header.Set("Access-Control-Request-Method", method)
	req.Header.Set("Access-Control-Request-Headers", "Authorization, Content-Type")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCORSPreflightAllowsEveryRouteMethod(t *testing.T) {
	for _, origins := range [][]string{{"*"}, {"https://shop.example.in"}} {
		r := gin.New()
		r.Use(CORS(origins))
		r.PATCH("/api/admin/sellers/:id/status", func(c *gin.Context) { c.Status(http.StatusOK) })

		for _, method := range []string{"GET", "POST", "PUT", "PATCH", "DELETE"} {
			w := preflight(r, "https://shop.example.in", method)
			if w.Code != http.StatusNoContent {
				t.Fatalf("%v %s: status %d", origins, method, w.Code)
			}
			if allowed := w.Header().Get("Access-Control-Allow-Methods"); !strings.Contains(allowed, method) {
				t.Errorf("%v %s: allow-methods %q", origins, method, allowed)
			}
		}
	}
}

func TestCORSRejectsUnknownOrigin(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"https://shop.example.in"}))
	r.GET("/api/products", func(c *gin.Context) { c.Status(http.StatusOK) })

	if w := preflight(r, "https://evil.example.com", "GET"); w.Code != http.StatusForbidden {
		t.Fatalf("status %d, want 403", w.Code)
	}
}
