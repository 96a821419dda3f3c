package handler

import (
	"net/http"
	"time"

	"main/utils"

	"github.com/gin-gonic/gin"
)

var startTime = time.Now()

func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"uptime":         time.Since(startTime).String(),
		"memory_percent": utils.GetMemoryUsage(),
		"cpu_percent":    utils.GetCPUUsage(),
		"goroutines":     utils.GetGoroutineCount(),
	})
}
