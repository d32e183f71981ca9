package routes

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// StaticRoutes serves uploaded images under /assets and the storefront
// pages, falling back to index.html for unknown non-API paths.
func StaticRoutes(r *gin.Engine, assetsDir, frontendDir string) {
	if assetsDir != "" {
		r.Static("/assets", assetsDir)
	}

	r.NoRoute(func(c *gin.Context) {
		p := c.Request.URL.Path
		if strings.HasPrefix(p, "/api/") || strings.HasPrefix(p, "/ws/") || frontendDir == "" {
			c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
			return
		}
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
			return
		}

		file := filepath.Join(frontendDir, filepath.FromSlash(path.Clean("/"+p)))
		if info, err := os.Stat(file); err == nil && !info.IsDir() {
			c.File(file)
			return
		}
		index := filepath.Join(frontendDir, "index.html")
		if _, err := os.Stat(index); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
			return
		}
		c.File(index)
	})
}
