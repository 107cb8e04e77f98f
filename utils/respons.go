package utils

import (
	"github.com/gin-gonic/gin"
)

// Meta is the pagination block attached to list responses.
type Meta struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// JSONResponse is the single response shape of every JSON endpoint.
// Data and Meta are left out of the body when they are nil.
type JSONResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

// FormatResponse builds the envelope. A nil data or meta is omitted, never rendered as null.
func FormatResponse(success bool, message string, data interface{}, meta *Meta) JSONResponse {
	return JSONResponse{
		Success: success,
		Message: message,
		Data:    data,
		Meta:    meta,
	}
}

func RespondJSON(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, FormatResponse(code >= 200 && code < 300, message, data, nil))
}

// RespondList -> 200 dengan data dan metadata paginasi
func RespondList(c *gin.Context, code int, message string, data interface{}, meta Meta) {
	c.JSON(code, FormatResponse(true, message, data, &meta))
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, FormatResponse(false, message, nil, nil))
}
