package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quickrent/internal/config"
	"quickrent/internal/gateway"
	"quickrent/internal/http/middleware"
)

var (
	env        config.Env
	payGateway *gateway.Client
)

// Configure wires the handler package once at router construction.
func Configure(e config.Env, gw *gateway.Client) {
	env = e
	payGateway = gw
}

// RespondError sends the standard error payload with request_id included.
func RespondError(c *gin.Context, status int, message string, err error) {
	payload := gin.H{
		"error":      message,
		"request_id": middleware.GetRequestID(c),
	}
	if err != nil {
		payload["details"] = err.Error()
	}
	c.JSON(status, payload)
}

// BindJSONOrError ensures the body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		RespondError(c, http.StatusBadRequest, "empty body", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid payload", err)
		return false
	}
	return true
}
