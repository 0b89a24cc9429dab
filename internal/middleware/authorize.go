package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/acadsphere/acadsphere-backend/internal/response"
)

// Authorizer decides whether a mutating request may proceed. It is the
// seam where an authentication scheme plugs in ahead of the content API;
// the service itself does not bake one in.
type Authorizer interface {
	Authorize(c *gin.Context) error
}

// AllowAll authorizes every request. It is the default: all mutating
// operations are currently open.
type AllowAll struct{}

// Authorize always succeeds.
func (AllowAll) Authorize(*gin.Context) error { return nil }

// RequireAuthorization gates a route group behind the given Authorizer.
func RequireAuthorization(authz Authorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := authz.Authorize(c); err != nil {
			response.AbortFail(c, http.StatusForbidden, response.ErrForbidden)
			return
		}
		c.Next()
	}
}
