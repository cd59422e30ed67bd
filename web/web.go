// Package web serves the browser client: static role dashboards embedded in
// the binary. The pages hold only ephemeral UI state plus a localStorage
// login marker; all authorization happens server-side.
package web

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed static
var staticFS embed.FS

// RegisterRoutes mounts the client pages under /app.
func RegisterRoutes(r *gin.Engine) {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}

	r.StaticFS("/app", http.FS(sub))
	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/app/login.html")
	})
}
