package common

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SuccessResponse 成功响应体，status 字段回显 HTTP 状态码
type SuccessResponse struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Token   string      `json:"token,omitempty"`
}

// ErrorResponse 错误响应体
type ErrorResponse struct {
	Error string `json:"error"`
}

// Respond sends a success response with message and data.
func Respond(c *gin.Context, httpStatus int, message string, data interface{}) {
	c.JSON(httpStatus, SuccessResponse{
		Status:  httpStatus,
		Message: message,
		Data:    data,
	})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, message string, data interface{}) {
	Respond(c, http.StatusCreated, message, data)
}

// RespondCreatedWithToken sends a 201 success response carrying an access token.
func RespondCreatedWithToken(c *gin.Context, message string, data interface{}, token string) {
	c.JSON(http.StatusCreated, SuccessResponse{
		Status:  http.StatusCreated,
		Message: message,
		Data:    data,
		Token:   token,
	})
}

// RespondError sends an error response with message.
func RespondError(c *gin.Context, httpStatus int, message string) {
	c.JSON(httpStatus, ErrorResponse{Error: message})
}

// RespondErrorAbort sends an error response and aborts the request chain.
func RespondErrorAbort(c *gin.Context, httpStatus int, message string) {
	c.AbortWithStatusJSON(httpStatus, ErrorResponse{Error: message})
}
