package utils

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

func RespondWithError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// RespondWithServerError logs the underlying store failure and returns a
// generic 500. Nothing is retried.
func RespondWithServerError(c *gin.Context, message string, err error) {
	log.Printf("%s %s | %s: %v", c.Request.Method, c.Request.URL.Path, message, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": message})
}

// RespondWithFieldError reports a validation failure with the offending field.
func RespondWithFieldError(c *gin.Context, status int, ferr *FieldError) {
	c.JSON(status, gin.H{"message": ferr.Message, "field": ferr.Field})
}
