// Package api defines the shared HTTP response envelope.
package api

import "github.com/gin-gonic/gin"

// Response is the envelope returned by every endpoint.
// Error carries an internal error string on failure; callers must not parse it.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// OK writes a success envelope with the given status, message and payload.
func OK(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Response{Success: true, Message: message, Data: data})
}

// Fail writes a failure envelope. err may be nil for pure validation failures.
func Fail(c *gin.Context, status int, message string, err error) {
	resp := Response{Success: false, Message: message}
	if err != nil {
		resp.Error = err.Error()
	}
	c.JSON(status, resp)
}

// Abort writes a failure envelope and stops the handler chain.
// Intended for middleware.
func Abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, Response{Success: false, Message: message})
}
