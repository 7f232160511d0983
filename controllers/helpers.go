package controllers

import (
	"errors"
	"log"
	"net/http"

	"backend/services"

	"github.com/gin-gonic/gin"
)

// abortWithError maps service errors onto the standard HTTP outcomes:
// validation -> 400, not found -> 404, anything unexpected -> 500.
func abortWithError(c *gin.Context, err error) {
	var ve *services.ValidationError
	var nf *services.NotFoundError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Msg})
	case errors.As(err, &nf):
		c.JSON(http.StatusNotFound, gin.H{"error": nf.Error()})
	default:
		log.Printf("ERROR (API): %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
