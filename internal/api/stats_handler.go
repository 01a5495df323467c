package api

import (
	"errors"
	"net/http"
	"time"

	"traintrack/training-app/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type StatsHandler struct {
	statsService service.StatsService
}

func NewStatsHandler(statsService service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// GetWeeklyStats handles GET /stats.
func (h *StatsHandler) GetWeeklyStats(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller from token.")
		return
	}

	summary, err := h.statsService.WeeklyStats(c.Request.Context(), userID, time.Now())
	if err != nil {
		if errors.Is(err, service.ErrNoActivePlan) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			logrus.WithError(err).Error("weekly stats computation failed")
			abortWithError(c, http.StatusInternalServerError, "Failed to compute stats.")
		}
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetProgressStats handles GET /stats/progress.
func (h *StatsHandler) GetProgressStats(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller from token.")
		return
	}

	summary, err := h.statsService.ProgressStats(c.Request.Context(), userID, time.Now())
	if err != nil {
		if errors.Is(err, service.ErrNoActivePlan) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			logrus.WithError(err).Error("progress stats computation failed")
			abortWithError(c, http.StatusInternalServerError, "Failed to compute progress stats.")
		}
		return
	}

	c.JSON(http.StatusOK, summary)
}
