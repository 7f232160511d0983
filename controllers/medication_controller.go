package controllers

import (
	"net/http"
	"strconv"
	"time"

	"backend/models"
	"backend/services"

	"github.com/gin-gonic/gin"
)

type MedicationController struct {
	meds *services.MedicationService
}

func NewMedicationController(meds *services.MedicationService) *MedicationController {
	return &MedicationController{meds: meds}
}

// POST /medications
func (mc *MedicationController) Create(c *gin.Context) {
	uid := c.GetUint("userID")

	var in services.ScheduleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	s, err := mc.meds.CreateSchedule(c.Request.Context(), uid, in)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, s)
}

// GET /medications
func (mc *MedicationController) List(c *gin.Context) {
	uid := c.GetUint("userID")
	schedules, err := mc.meds.ListSchedules(c.Request.Context(), uid)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"schedules": schedules})
}

// PUT /medications/:id
func (mc *MedicationController) Update(c *gin.Context) {
	uid := c.GetUint("userID")
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid schedule id"})
		return
	}

	var in services.ScheduleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	s, err := mc.meds.UpdateSchedule(c.Request.Context(), uint(id), uid, in)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

// DELETE /medications/:id
func (mc *MedicationController) Delete(c *gin.Context) {
	uid := c.GetUint("userID")
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid schedule id"})
		return
	}

	if err := mc.meds.DeleteSchedule(c.Request.Context(), uint(id), uid); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "schedule deleted"})
}

type adherenceReq struct {
	Date   string                 `json:"date"` // "2006-01-02", defaults to today
	Status models.AdherenceStatus `json:"status" binding:"required"`
}

// POST /medications/:id/adherence
func (mc *MedicationController) RecordAdherence(c *gin.Context) {
	uid := c.GetUint("userID")
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid schedule id"})
		return
	}

	var req adherenceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	var day time.Time
	if req.Date != "" {
		day, err = time.ParseInLocation("2006-01-02", req.Date, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
			return
		}
	}

	if err := mc.meds.RecordAdherence(c.Request.Context(), uint(id), uid, day, req.Status); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "adherence recorded", "status": req.Status})
}
