package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response envelopes are part of the external contract consumed by the
// dashboard frontend; keep them stable.
func respondData(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"data": data, "status": "ok"})
}

func respondError(c *gin.Context, status int, err error) {
	c.JSON(status, gin.H{"error": err.Error(), "status": "error"})
}
