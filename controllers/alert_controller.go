package controllers

import (
	"net/http"
	"strconv"

	"backend/models"
	"backend/services"

	"github.com/gin-gonic/gin"
)

type AlertController struct {
	alerts *services.AlertService
}

func NewAlertController(alerts *services.AlertService) *AlertController {
	return &AlertController{alerts: alerts}
}

type createAlertReq struct {
	Type     models.AlertType   `json:"type"`
	Severity int                `json:"severity"`
	Title    string             `json:"title"`
	Message  string             `json:"message"`
	Channels models.ChannelList `json:"channels"`
}

// POST /alerts — manual alert creation; goes through the same intake as
// the producers, so it is dispatched immediately.
func (ac *AlertController) Create(c *gin.Context) {
	uid := c.GetUint("userID")

	var req createAlertReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	alert, err := ac.alerts.Handle(c.Request.Context(), services.AlertRequest{
		UserID:   uid,
		Type:     req.Type,
		Severity: req.Severity,
		Title:    req.Title,
		Message:  req.Message,
		Channels: req.Channels,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, alert)
}

// GET /alerts?status=&limit=
func (ac *AlertController) List(c *gin.Context) {
	uid := c.GetUint("userID")

	var status *models.AlertStatus
	if s := c.Query("status"); s != "" {
		st := models.AlertStatus(s)
		status = &st
	}
	limit, _ := strconv.Atoi(c.Query("limit"))

	alerts, err := ac.alerts.ListForUser(c.Request.Context(), uid, status, limit)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"alerts": alerts})
}

type updateStatusReq struct {
	Status models.AlertStatus `json:"status" binding:"required"`
}

// PATCH /alerts/:id/status
func (ac *AlertController) UpdateStatus(c *gin.Context) {
	uid := c.GetUint("userID")
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid alert id"})
		return
	}

	var req updateStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	alert, err := ac.alerts.UpdateStatus(c.Request.Context(), uint(id), uid, req.Status)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, alert)
}

// DELETE /alerts/:id
func (ac *AlertController) Delete(c *gin.Context) {
	uid := c.GetUint("userID")
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid alert id"})
		return
	}

	if err := ac.alerts.Delete(c.Request.Context(), uint(id), uid); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "alert deleted"})
}
