// Package response 提供统一的 HTTP 响应包装
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Body 统一响应结构。所有变更类接口的结果都收敛到该形态，
// 可恢复的失败通过 RedirectTo 指向修复前置条件的页面。
type Body struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message,omitempty"`
	Data       interface{} `json:"data,omitempty"`
	RedirectTo string      `json:"redirect_to,omitempty"`
}

// Success 返回成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Body{
		Success: true,
		Data:    data,
	})
}

// SuccessWithMessage 返回带提示消息的成功响应
func SuccessWithMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Body{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// SuccessWithRedirect 返回成功响应并携带跳转目标
func SuccessWithRedirect(c *gin.Context, message, redirectTo string, data interface{}) {
	c.JSON(http.StatusOK, Body{
		Success:    true,
		Message:    message,
		Data:       data,
		RedirectTo: redirectTo,
	})
}

// Error 返回失败响应
func Error(c *gin.Context, status int, message string) {
	c.JSON(status, Body{
		Success: false,
		Message: message,
	})
}

// ErrorWithRedirect 返回可恢复的失败响应，调用方应跳转到 redirectTo
func ErrorWithRedirect(c *gin.Context, status int, message, redirectTo string) {
	c.JSON(status, Body{
		Success:    false,
		Message:    message,
		RedirectTo: redirectTo,
	})
}
