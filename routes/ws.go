package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lostfound-server/database"
	"lostfound-server/models"
	"lostfound-server/utils"
	ws "lostfound-server/websocket"
)

// RegisterWebSocketRoutes exposes the live notification stream. Browsers
// cannot set headers on WebSocket upgrades, so the JWT rides in a query
// parameter.
func RegisterWebSocketRoutes(router *gin.RouterGroup, hub *ws.Hub) {
	router.GET("/ws/notifications", func(c *gin.Context) {
		tokenString := c.Query("token")
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Token required"})
			return
		}

		claims, err := utils.VerifyToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Token is invalid or expired"})
			return
		}

		var user models.User
		if err := database.DB.First(&user, claims.UserID).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "User associated with token not found"})
			return
		}

		ws.ServeWebSocket(hub, c.Writer, c.Request, user.ID)
	})
}
