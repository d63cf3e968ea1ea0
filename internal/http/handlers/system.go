package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	intconfig "quickrent/internal/config"
)

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func DBCheck(c *gin.Context) {
	if err := intconfig.EnsureDB(); err != nil {
		RespondError(c, http.StatusServiceUnavailable, "database unreachable", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
