package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Response is the canonical JSON envelope for every API reply.
type Response struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Data    any      `json:"data,omitempty"`
	Meta    *Meta    `json:"meta,omitempty"`
	Errors  []string `json:"errors,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// Meta carries pagination details for list endpoints.
type Meta struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int   `json:"pages"`
}

// NewMeta derives page math from a total row count and page parameters.
func NewMeta(total int64, page, limit int) *Meta {
	pages := 0
	if limit > 0 {
		pages = int((total + int64(limit) - 1) / int64(limit))
	}
	return &Meta{Total: total, Page: page, Limit: limit, Pages: pages}
}

func respondOK(c echo.Context, message string, data any) error {
	return c.JSON(http.StatusOK, Response{Success: true, Message: message, Data: data})
}

func respondCreated(c echo.Context, message string, data any) error {
	return c.JSON(http.StatusCreated, Response{Success: true, Message: message, Data: data})
}

func respondPaged(c echo.Context, message string, data any, meta *Meta) error {
	return c.JSON(http.StatusOK, Response{Success: true, Message: message, Data: data, Meta: meta})
}
