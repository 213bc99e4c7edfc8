package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/stanielhristov/medical-reservation-sub004/pkg/errors"
)

// Response defines the base API payload.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

// ErrorInfo holds error details to send to clients.
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Meta describes offset pagination and the locale the payload was rendered in.
type Meta struct {
	Limit   int    `json:"limit"`
	Offset  int    `json:"offset"`
	Total   int64  `json:"total"`
	HasMore bool   `json:"has_more"`
	Locale  string `json:"locale,omitempty"`
}

// NewMeta computes HasMore from the page window and total row count.
func NewMeta(limit, offset int, total int64) *Meta {
	return &Meta{
		Limit:   limit,
		Offset:  offset,
		Total:   total,
		HasMore: int64(offset+limit) < total,
	}
}

// Success writes a JSON success response.
func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Data:    data,
	})
}

// SuccessWithMeta writes a JSON success response including metadata.
func SuccessWithMeta(c *gin.Context, statusCode int, data interface{}, meta *Meta) {
	c.JSON(statusCode, Response{
		Success: true,
		Data:    data,
		Meta:    meta,
	})
}

// Error writes a JSON error response derived from an AppError.
func Error(c *gin.Context, err error) {
	if err == nil {
		err = appErrors.ErrInternalServer
	}

	appErr := appErrors.FromError(err)
	status := appErr.StatusCode
	if status == 0 {
		status = http.StatusInternalServerError
	}

	c.JSON(status, Response{
		Success: false,
		Error: &ErrorInfo{
			Code:    appErr.Code,
			Message: appErr.Message,
		},
	})
}
