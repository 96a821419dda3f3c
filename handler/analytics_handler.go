package handler

import (
	"strconv"
	"time"

	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

func GetAnalyticsForMonthHandler(c *gin.Context, analyticsService *usecase.AnalyticsService) {
	userID := c.GetString("user_id")
	if userID == "" {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	year, errYear := strconv.Atoi(c.Param("year"))
	month, errMonth := strconv.Atoi(c.Param("month"))
	if errYear != nil || errMonth != nil || year < 1900 || year > 9999 || month < 1 || month > 12 {
		utils.BadRequest(c, "Invalid request", "Invalid year or month")
		return
	}

	monthDate := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	analytics, err := analyticsService.GetAnalyticsForMonth(c.Request.Context(), userID, monthDate)
	if err != nil {
		respondError(c, err, "Failed to load analytics")
		return
	}

	utils.Success(c, analytics)
}

func GetTasksForDateHandler(c *gin.Context, analyticsService *usecase.AnalyticsService) {
	userID := c.GetString("user_id")
	if userID == "" {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	year, errYear := strconv.Atoi(c.Param("year"))
	month, errMonth := strconv.Atoi(c.Param("month"))
	day, errDay := strconv.Atoi(c.Param("day"))
	if errYear != nil || errMonth != nil || errDay != nil ||
		year < 1900 || year > 9999 || month < 1 || month > 12 || day < 1 || day > 31 {
		utils.BadRequest(c, "Invalid request", "Invalid date")
		return
	}

	// Reject days that normalize into the next month (e.g. Feb 30)
	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if date.Day() != day || date.Month() != time.Month(month) {
		utils.BadRequest(c, "Invalid request", "Invalid date")
		return
	}

	tasks, err := analyticsService.GetTasksForDate(c.Request.Context(), userID, date)
	if err != nil {
		respondError(c, err, "Failed to load tasks")
		return
	}

	utils.Success(c, tasks)
}
