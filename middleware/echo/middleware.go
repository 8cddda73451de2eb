package echomw

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/reoring/conform"
	"github.com/reoring/conform/middleware"
)

// Validate judges the request JSON with v, stores the document in the request
// context on success, or answers 400 (413 for oversized bodies) with the
// Errors payload.
func Validate(v conform.Checker, opt middleware.Options) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			doc, errs, err := middleware.Judge(c.Request().Body, v, opt)
			if err != nil {
				return c.JSON(middleware.StatusFor(err), map[string]any{"error": err.Error()})
			}
			if len(errs) > 0 {
				return c.JSON(http.StatusBadRequest, middleware.ErrorPayload(errs))
			}
			c.SetRequest(c.Request().WithContext(middleware.ContextWithDocument(c.Request().Context(), doc)))
			return next(c)
		}
	}
}

// GetDocument fetches the judged document from echo.Context.
func GetDocument(c echo.Context) (any, bool) {
	return middleware.DocumentFromContext(c.Request().Context())
}
