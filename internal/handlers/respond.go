package handlers

import (
	"log"

	"estate-market/internal/apperr"

	"github.com/gin-gonic/gin"
)

// respondError maps a service error onto the HTTP taxonomy. Unexpected
// errors are logged server-side and never leak details to the client.
func respondError(c *gin.Context, err error) {
	appErr := apperr.From(err)
	if appErr.Kind == apperr.KindUnexpected || appErr.Kind == apperr.KindExternal {
		log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(appErr.HTTPStatus(), gin.H{"message": appErr.Message})
}
