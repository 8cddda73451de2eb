package ginmw

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/reoring/conform"
	"github.com/reoring/conform/middleware"
)

// Validate judges the request JSON with v. On success the document is stored
// in the request context; otherwise the request is aborted with 400 (413 for
// oversized bodies) and the Errors payload.
func Validate(v conform.Checker, opt middleware.Options) gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, errs, err := middleware.Judge(c.Request.Body, v, opt)
		if err != nil {
			c.AbortWithStatusJSON(middleware.StatusFor(err), gin.H{"error": err.Error()})
			return
		}
		if len(errs) > 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, middleware.ErrorPayload(errs))
			return
		}
		c.Request = c.Request.WithContext(middleware.ContextWithDocument(c.Request.Context(), doc))
		c.Next()
	}
}

// GetDocument fetches the judged document from gin.Context.
func GetDocument(c *gin.Context) (any, bool) {
	return middleware.DocumentFromContext(c.Request.Context())
}
