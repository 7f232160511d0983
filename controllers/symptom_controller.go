package controllers

import (
	"net/http"
	"strconv"

	"backend/services"

	"github.com/gin-gonic/gin"
)

type SymptomController struct {
	assessments *services.AssessmentService
	images      services.ImageStore
}

func NewSymptomController(assessments *services.AssessmentService, images services.ImageStore) *SymptomController {
	return &SymptomController{assessments: assessments, images: images}
}

type assessReq struct {
	Description string `json:"description" binding:"required"`
	ImageBase64 string `json:"image_base64"`
}

// POST /symptoms/assess — run the external assessment; a severe score
// escalates into an alert before this returns.
func (sc *SymptomController) Assess(c *gin.Context) {
	uid := c.GetUint("userID")

	var req assessReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	report, err := sc.assessments.AssessSymptom(c.Request.Context(), uid, req.Description, req.ImageBase64)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// GET /symptoms/reports?limit=
func (sc *SymptomController) ListReports(c *gin.Context) {
	uid := c.GetUint("userID")
	limit, _ := strconv.Atoi(c.Query("limit"))

	reports, err := sc.assessments.ListReports(c.Request.Context(), uid, limit)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reports": reports})
}

type uploadReq struct {
	ImageBase64 string `json:"image_base64" binding:"required"`
}

// POST /symptoms/upload — standalone image upload, returns the public URL.
func (sc *SymptomController) Upload(c *gin.Context) {
	uid := c.GetUint("userID")

	var req uploadReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	url, err := sc.images.UploadBase64Image(c.Request.Context(), req.ImageBase64, "symptoms/"+strconv.Itoa(int(uid)))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed", "detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}
