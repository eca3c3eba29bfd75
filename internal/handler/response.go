package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"stocksim/internal/quote"
	"stocksim/internal/service"
)

func Ok(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

func Error(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// Fail maps service sentinels onto HTTP status codes: validation 400,
// not-found 404, upstream 502, no-valid-data 500.
func Fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotFound):
		Error(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrUpstream):
		Error(c, http.StatusBadGateway, err.Error())
	case errors.Is(err, quote.ErrNoValidData):
		Error(c, http.StatusInternalServerError, err.Error())
	default:
		Error(c, http.StatusInternalServerError, err.Error())
	}
}

func intQuery(c *gin.Context, name string, fallback int) int {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func uint64Param(c *gin.Context, name string) uint64 {
	v, err := strconv.ParseUint(strings.TrimSpace(c.Param(name)), 10, 64)
	if err != nil {
		return 0
	}
	return v
}

func uint64Query(c *gin.Context, name string) uint64 {
	v, err := strconv.ParseUint(strings.TrimSpace(c.Query(name)), 10, 64)
	if err != nil {
		return 0
	}
	return v
}

func uint64Form(c *gin.Context, name string) uint64 {
	v, err := strconv.ParseUint(strings.TrimSpace(c.PostForm(name)), 10, 64)
	if err != nil {
		return 0
	}
	return v
}

func boolPtr(v bool) *bool { return &v }
