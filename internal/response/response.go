package response

import (
	"github.com/gin-gonic/gin"
)

// The API speaks the original portal contract: success responses carry the
// resource itself, failures carry a bare {"message": …} body. Request ids
// travel in the X-Request-ID header rather than the body.

// MessageBody is the error/confirmation body shape.
type MessageBody struct {
	Message string `json:"message"`
}

// JSON sends data as-is with the given status code.
func JSON(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// Message sends a {"message": …} body with the given status code.
func Message(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, MessageBody{Message: message})
}

// Fail sends the canonical message for an error code.
func Fail(c *gin.Context, statusCode int, code ErrCode) {
	Message(c, statusCode, GetMessage(code))
}

// AbortFail aborts the middleware chain and sends an error response.
func AbortFail(c *gin.Context, statusCode int, code ErrCode) {
	c.AbortWithStatusJSON(statusCode, MessageBody{Message: GetMessage(code)})
}
