package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resumeforge/models"
)

// StandardResponse represents a standard API response
type StandardResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponse represents an error response. Error always carries a
// user-safe message; internal diagnostics go to the logs only.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
	Code    int    `json:"code"`
}

// SuccessResponse sends a successful response
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, StandardResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponseWithCode sends an error response with a custom status code
func ErrorResponseWithCode(c *gin.Context, statusCode int, message string, detail string) {
	c.JSON(statusCode, ErrorResponse{
		Success: false,
		Message: message,
		Error:   detail,
		Code:    statusCode,
	})
}

// BadRequestError sends a 400 error response
func BadRequestError(c *gin.Context, message string) {
	ErrorResponseWithCode(c, http.StatusBadRequest, message, "")
}

// InternalServerError sends a 500 error response
func InternalServerError(c *gin.Context, message string) {
	ErrorResponseWithCode(c, http.StatusInternalServerError, message, "")
}

// UnauthorizedError sends a 401 error response
func UnauthorizedError(c *gin.Context, message string) {
	ErrorResponseWithCode(c, http.StatusUnauthorized, message, "")
}

// NotFoundError sends a 404 error response
func NotFoundError(c *gin.Context, message string) {
	ErrorResponseWithCode(c, http.StatusNotFound, message, "")
}

// pipelineStatus maps pipeline error kinds onto HTTP statuses.
var pipelineStatus = map[models.ErrorKind]int{
	models.KindInvalidInput:      http.StatusBadRequest,
	models.KindUnsupportedFormat: http.StatusUnprocessableEntity,
	models.KindEmptyContent:      http.StatusUnprocessableEntity,
	models.KindEmptyInput:        http.StatusUnprocessableEntity,
	models.KindModelUnavailable:  http.StatusServiceUnavailable,
	models.KindMalformedResponse: http.StatusBadGateway,
	models.KindInvalidProfile:    http.StatusConflict,
}

// PipelineErrorResponse translates a pipeline error into the right
// status and its user-safe message. Non-pipeline errors fall back to a
// generic 500; their details stay server-side.
func PipelineErrorResponse(c *gin.Context, err error) {
	var pe *models.PipelineError
	if errors.As(err, &pe) {
		status, ok := pipelineStatus[pe.Kind]
		if !ok {
			status = http.StatusInternalServerError
		}
		ErrorResponseWithCode(c, status, pe.UserMessage(), string(pe.Kind))
		return
	}
	InternalServerError(c, "An unexpected error occurred. Please try again.")
}
