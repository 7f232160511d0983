package controllers

import (
	"net/http"

	"backend/services"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

type MonitoringController struct {
	monitoring *services.MonitoringService
}

func NewMonitoringController(monitoring *services.MonitoringService) *MonitoringController {
	return &MonitoringController{monitoring: monitoring}
}

type submitEntryReq struct {
	Metrics datatypes.JSON `json:"metrics" binding:"required"`
}

// POST /monitoring — log today's vitals (replaces an earlier submission
// for the same day).
func (mc *MonitoringController) Submit(c *gin.Context) {
	uid := c.GetUint("userID")

	var req submitEntryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	entry, err := mc.monitoring.SubmitEntry(c.Request.Context(), uid, req.Metrics)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// GET /monitoring/today
func (mc *MonitoringController) Today(c *gin.Context) {
	uid := c.GetUint("userID")

	entry, err := mc.monitoring.TodayEntry(c.Request.Context(), uid)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}
