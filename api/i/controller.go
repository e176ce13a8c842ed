package i

import "github.com/gin-gonic/gin"

// Controller registers a group of HTTP routes.
type Controller interface {
	// RegisterPublic registers routes that need no authentication.
	RegisterPublic(*gin.RouterGroup)
	// RegisterProtected registers routes behind the authorization middleware.
	RegisterProtected(*gin.RouterGroup)
}
