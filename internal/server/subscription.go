package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	subscriptiondomain "github.com/railzwaylabs/mrrboard/internal/subscription/domain"
)

// @Summary      List Subscriptions
// @Description  List extracted subscription records
// @Tags         subscriptions
// @Produce      json
// @Param        status  query  string  false  "Status"
// @Param        limit   query  int     false  "Limit"
// @Success      200  {object}  DataResponse
// @Router       /subscriptions [get]
func (s *Server) ListSubscriptions(c *gin.Context) {
	var query struct {
		Status string `form:"status"`
		Limit  int    `form:"limit"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	records, err := s.subRepo.List(c.Request.Context(), s.db, subscriptiondomain.ListRequest{
		Status: strings.TrimSpace(query.Status),
		Limit:  query.Limit,
	})
	if err != nil {
		respondError(c, http.StatusServiceUnavailable, err)
		return
	}

	respondData(c, records)
}
