package routes

import (
	"github.com/gin-gonic/gin"
)

func WebSocketRoutes(r *gin.Engine, h Handlers) {
	ws := r.Group("/ws")
	{
		ws.GET("/signaling", h.Signaling.Handle)
	}
}
