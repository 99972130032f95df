package api

import (
	"net/http"

	resdto "ntzs-issuer/internal/handler/dto/response"
	"ntzs-issuer/internal/handler/httperr"
	"ntzs-issuer/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	statsQueries queries.StatsQueries
}

func NewStatsHandler(statsQueries queries.StatsQueries) *StatsHandler {
	return &StatsHandler{statsQueries: statsQueries}
}

// @Summary Issuance statistics
// @Description Aggregated pipeline state, today's budget utilization and on-chain supply
// @Tags stats
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.StatsResponse
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /admin/stats [get]
func (h *StatsHandler) Get(c *gin.Context) {
	stats, err := h.statsQueries.Get(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, resdto.FromIssuanceStats(stats))
}
