package controllers

import (
	"net/http"
	"time"

	"backend/services"

	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	Analytics *services.AnalyticsService
}

func NewAnalyticsController(a *services.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{Analytics: a}
}

func (ac *AnalyticsController) rangeFromQuery(c *gin.Context) (time.Time, time.Time, bool) {
	to := time.Now()
	from := to.AddDate(0, 0, -6) // default: last 7 days

	if fromStr := c.Query("from"); fromStr != "" {
		f, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "from must be YYYY-MM-DD"})
			return from, to, false
		}
		from = f
	}
	if toStr := c.Query("to"); toStr != "" {
		t, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "to must be YYYY-MM-DD"})
			return from, to, false
		}
		to = t
	}
	return from, to, true
}

// GET /analytics/summary?from=&to=
func (ac *AnalyticsController) Summary(c *gin.Context) {
	uid := c.GetUint("userID")

	from, to, ok := ac.rangeFromQuery(c)
	if !ok {
		return
	}

	out, err := ac.Analytics.Summary(c.Request.Context(), uid, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /analytics/daily?from=&to=
func (ac *AnalyticsController) DailyTrend(c *gin.Context) {
	uid := c.GetUint("userID")

	from, to, ok := ac.rangeFromQuery(c)
	if !ok {
		return
	}

	out, err := ac.Analytics.DailyTrend(c.Request.Context(), uid, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, out)
}
