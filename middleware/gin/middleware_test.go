package ginmw_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/reoring/conform/internal/fleet"
	"github.com/reoring/conform/middleware"
	ginmw "github.com/reoring/conform/middleware/gin"
)

func TestValidate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/captains", ginmw.Validate(fleet.CaptainValidator(), middleware.Options{}), func(c *gin.Context) {
		doc, ok := ginmw.GetDocument(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, doc.(map[string]any)["name"].(string))
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/captains", strings.NewReader(`{"name":"Holden","rank":"Captain"}`)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Holden", rec.Body.String())

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/captains", strings.NewReader(`{"name":"","rank":"Ensign"}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"path":"rank"`)
	assert.Contains(t, rec.Body.String(), `"path":"name"`)
}
