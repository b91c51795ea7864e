package server

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// mountStatic serves the web client from the configured directory.
func (s *Server) mountStatic() {
	if s.staticDir == "" {
		s.logger.Warn("static directory not configured; API only mode")
		return
	}

	info, err := os.Stat(s.staticDir)
	if err != nil || !info.IsDir() {
		s.logger.Warn("static directory missing; API only mode", "path", s.staticDir)
		return
	}

	indexPath := filepath.Join(s.staticDir, "index.html")
	if _, err := os.Stat(indexPath); err == nil {
		s.engine.GET("/", func(c *gin.Context) {
			c.File(indexPath)
		})
	}

	for _, page := range []string{"login.html", "signup.html"} {
		pagePath := filepath.Join(s.staticDir, page)
		if _, err := os.Stat(pagePath); err == nil {
			route := "/" + page
			s.engine.GET(route, func(c *gin.Context) {
				c.File(pagePath)
			})
		}
	}

	for _, dir := range []string{"js", "css"} {
		assetDir := filepath.Join(s.staticDir, dir)
		if _, err := os.Stat(assetDir); err == nil {
			s.engine.StaticFS("/"+dir, gin.Dir(assetDir, false))
		}
	}

	s.engine.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"error": "endpoint not found"})
			return
		}
		if _, err := os.Stat(indexPath); err == nil {
			c.File(indexPath)
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})
}
