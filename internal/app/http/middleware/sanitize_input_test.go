package middleware

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sanitizeRouter(seen *string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(SanitizeAndCleanInputMiddleware())
	handler := func(c *gin.Context) {
		raw, _ := io.ReadAll(c.Request.Body)
		*seen = string(raw)
		c.Status(http.StatusNoContent)
	}
	r.POST("/plans", handler)
	r.GET("/plans", handler)
	return r
}

func TestSanitize_StripsHTMLKeepsNumbers(t *testing.T) {
	var seen string
	r := sanitizeRouter(&seen)

	body := `{"name":"<script>alert(1)</script>Basic <b>Plan</b>","price":19.99,"tags":["<i>x</i>"],"meta":{"note":"<a href='x'>hi</a>"}}`
	req := httptest.NewRequest(http.MethodPost, "/plans", bytes.NewBufferString(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNoContent, w.Code)
	assert.JSONEq(t, `{"name":"Basic Plan","price":19.99,"tags":["x"],"meta":{"note":"hi"}}`, seen)
}

func TestSanitize_KeepsPlainTextVerbatim(t *testing.T) {
	var seen string
	r := sanitizeRouter(&seen)

	body := `{"name":"Basic & Pro's \"Plan\" <b>1 < 2</b>"}`
	req := httptest.NewRequest(http.MethodPost, "/plans", bytes.NewBufferString(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNoContent, w.Code)
	assert.JSONEq(t, `{"name":"Basic & Pro's \"Plan\" 1 < 2"}`, seen)
}

func TestSanitize_MalformedJSON(t *testing.T) {
	var seen string
	r := sanitizeRouter(&seen)

	req := httptest.NewRequest(http.MethodPost, "/plans", bytes.NewBufferString(`{"name":`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, seen)
}

func TestSanitize_EmptyBodyAndReadsPassThrough(t *testing.T) {
	var seen string
	r := sanitizeRouter(&seen)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/plans", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/plans", bytes.NewBufferString("<not json>")))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "<not json>", seen)
}
