package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// OK writes payload as a 200 JSON response.
func OK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// Created writes payload as a 201 JSON response.
func Created(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}

// JSON writes payload with an explicit status.
func JSON(c *gin.Context, status int, payload any) {
	c.JSON(status, payload)
}
