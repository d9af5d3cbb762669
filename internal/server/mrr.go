package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	mrrdomain "github.com/railzwaylabs/mrrboard/internal/mrr/domain"
)

// @Summary      Monthly MRR Series
// @Description  Monthly recurring revenue with active subscription and customer counts
// @Tags         mrr
// @Produce      json
// @Param        as_of  query  string  false  "Reporting date (YYYY-MM-DD), defaults to today"
// @Success      200  {object}  DataResponse
// @Router       /mrr [get]
func (s *Server) GetMonthlySeries(c *gin.Context) {
	var req mrrdomain.SeriesRequest

	if raw := strings.TrimSpace(c.Query("as_of")); raw != "" {
		asOf, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
		if err != nil {
			respondError(c, http.StatusBadRequest, errors.New("as_of must be YYYY-MM-DD"))
			return
		}
		req.AsOf = asOf
	}

	buckets, err := s.mrrSvc.MonthlySeries(c.Request.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, mrrdomain.ErrSourceUnavailable) {
			status = http.StatusServiceUnavailable
		}
		respondError(c, status, err)
		return
	}

	respondData(c, buckets)
}
