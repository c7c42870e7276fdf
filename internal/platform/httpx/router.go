package httpx

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tutorcast/internal/platform/logger"
)

// Registrar mounts a module's routes under /api.
type Registrar interface {
	Register(api *gin.RouterGroup)
}

func NewRouter(log *logger.Logger, registrars ...Registrar) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(log))

	r.GET("/healthcheck", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	api := r.Group("/api")
	for _, reg := range registrars {
		reg.Register(api)
	}
	return r
}
