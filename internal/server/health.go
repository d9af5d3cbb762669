package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary      Health
// @Description  Liveness check; never touches the data source
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (s *Server) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
