package controllers

import (
	"net/http"
	"time"

	"dinepro-backend/config"
	"dinepro-backend/models"
	"dinepro-backend/services"
	"dinepro-backend/utils"

	"github.com/gin-gonic/gin"
)

// AnalyticsController serves the dashboard summary endpoint.
type AnalyticsController struct{}

// GetAnalytics recomputes the summary for the requested period on every call.
func (ac *AnalyticsController) GetAnalytics(c *gin.Context) {
	period := c.DefaultQuery("period", "week")
	if period != "week" && period != "month" {
		utils.RespondWithError(c, http.StatusBadRequest, "Period must be week or month")
		return
	}

	now := time.Now().UTC()
	windowStart := utils.PeriodWindowStart(now, period)

	var feedbacks []models.Feedback
	err := config.DB.Preload("Visits", "created_at >= ?", windowStart).
		Find(&feedbacks).Error
	if err != nil {
		utils.RespondWithServerError(c, "Failed to compute analytics", err)
		return
	}

	c.JSON(http.StatusOK, services.BuildAnalytics(feedbacks, windowStart))
}
