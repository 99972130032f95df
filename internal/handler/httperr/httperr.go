package httperr

import (
	"github.com/gin-gonic/gin"
)

// Response is the flat error body every endpoint returns. Status travels on
// the wire line only, never in the JSON.
type Response struct {
	Status int    `json:"-"`
	Error  string `json:"error"`
}

// AbortWithError writes the error body and keeps the cause on the gin error
// stack so the request logger records it.
func AbortWithError(c *gin.Context, status int, err error, msg string) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status, Error: msg}

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}
