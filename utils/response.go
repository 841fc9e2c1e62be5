package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status   int         `json:"-"`                  // HTTP status code
	Message  string      `json:"message,omitempty"`  // Optional message
	Error    string      `json:"error,omitempty"`    // Error message
	Warnings []string    `json:"warnings,omitempty"` // Non-fatal notices (e.g. skipped uploads)
	Data     interface{} `json:"data,omitempty"`     // Response data
}

// Success responses
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, &Response{
		Status: http.StatusOK,
		Data:   data,
	})
}

func SuccessMessage(c *gin.Context, message string, warnings []string) {
	c.JSON(http.StatusOK, &Response{
		Status:   http.StatusOK,
		Message:  message,
		Warnings: warnings,
	})
}

func Created(c *gin.Context, message string, warnings []string, data interface{}) {
	c.JSON(http.StatusCreated, &Response{
		Status:   http.StatusCreated,
		Message:  message,
		Warnings: warnings,
		Data:     data,
	})
}

// Error responses
func Unauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, &Response{
		Status: http.StatusUnauthorized,
		Error:  message,
	})
}

func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, &Response{
		Status: http.StatusBadRequest,
		Error:  message,
	})
}

func NotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, &Response{
		Status: http.StatusNotFound,
		Error:  message,
	})
}

func InternalError(c *gin.Context, message string) {
	c.JSON(http.StatusInternalServerError, &Response{
		Status: http.StatusInternalServerError,
		Error:  message,
	})
}
