package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestValidateContentType(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/json-only", ValidateContentType("application/json"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.GET("/json-only", ValidateContentType("application/json"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	cases := []struct {
		name        string
		method      string
		contentType string
		want        int
	}{
		{"accepted type", http.MethodPost, "application/json", http.StatusOK},
		{"with charset", http.MethodPost, "application/json; charset=utf-8", http.StatusOK},
		{"wrong type", http.MethodPost, "text/plain", http.StatusBadRequest},
		{"missing type", http.MethodPost, "", http.StatusBadRequest},
		{"get is exempt", http.MethodGet, "", http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, "/json-only", strings.NewReader("{}"))
			if tc.contentType != "" {
				req.Header.Set("Content-Type", tc.contentType)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

func TestMaxRequestSize(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/small", MaxRequestSize(16), func(c *gin.Context) {
		var body map[string]any
		if err := c.ShouldBindJSON(&body); err != nil {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}
		c.Status(http.StatusOK)
	})

	small := httptest.NewRequest(http.MethodPost, "/small", strings.NewReader(`{"a":1}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, small)
	assert.Equal(t, http.StatusOK, rec.Code)

	big := httptest.NewRequest(http.MethodPost, "/small", strings.NewReader(`{"a":"`+strings.Repeat("x", 64)+`"}`))
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, big)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}
