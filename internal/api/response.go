package api

import "github.com/gin-gonic/gin"

// APIError is the uniform error envelope for every route.
type APIError struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeError(c *gin.Context, status int, msg string, details ...string) {
	e := APIError{Error: msg}
	if len(details) > 0 {
		e.Details = details[0]
	}
	c.JSON(status, e)
}
