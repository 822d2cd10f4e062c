package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRequestResponseLogger(t *testing.T) {
	logger, hook := test.NewNullLogger()

	router := gin.New()
	router.Use(RequestResponseLogger(logger))
	router.POST("/login", func(c *gin.Context) {
		c.JSON(http.StatusBadRequest, gin.H{"token": "abc", "message": "nope"})
	})

	req := httptest.NewRequest(http.MethodPost, "/login?x=1", strings.NewReader(`{"password":"hunter2","name":"ana"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer secret")
	router.ServeHTTP(httptest.NewRecorder(), req)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, http.StatusBadRequest, entry.Data["status_code"])

	headers := entry.Data["headers"].(map[string]string)
	assert.Equal(t, "[REDACTED]", headers["Authorization"])

	body := entry.Data["request_body"].(map[string]interface{})
	assert.Equal(t, "[REDACTED]", body["password"])
	assert.Equal(t, "ana", body["name"])

	resp := entry.Data["response_body"].(map[string]interface{})
	assert.Equal(t, "[REDACTED]", resp["token"])
	assert.Equal(t, "nope", resp["message"])
}

func TestRequestResponseLoggerSkipsMultipartAndHTML(t *testing.T) {
	logger, hook := test.NewNullLogger()

	router := gin.New()
	router.Use(RequestResponseLogger(logger))
	router.POST("/upload", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte("<html></html>"))
	})

	req := httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader("--x\r\n"))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
	router.ServeHTTP(httptest.NewRecorder(), req)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.NotContains(t, entry.Data, "request_body")
	assert.NotContains(t, entry.Data, "response_body")
}

func TestRequestResponseLoggerRedactsForms(t *testing.T) {
	logger, hook := test.NewNullLogger()

	router := gin.New()
	router.Use(RequestResponseLogger(logger))
	router.POST("/edit", func(c *gin.Context) {
		c.Status(http.StatusSeeOther)
	})

	req := httptest.NewRequest(http.MethodPost, "/edit", strings.NewReader("customer_pan_number=AAAPL1234C&invoice_number=INV-1"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.ServeHTTP(httptest.NewRecorder(), req)

	body := hook.LastEntry().Data["request_body"].(map[string]interface{})
	assert.Equal(t, "[REDACTED]", body["customer_pan_number"])
	assert.Equal(t, "INV-1", body["invoice_number"])
}

func TestSessionID(t *testing.T) {
	const valid = "0f8fad5b-d9cb-469f-a165-70867728950e"

	testCases := []struct {
		name     string
		cookie   string
		expected string
	}{
		{name: "valid", cookie: valid, expected: valid},
		{name: "malformed", cookie: "not-a-uuid", expected: ""},
		{name: "missing", cookie: "", expected: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var got string
			router := gin.New()
			router.Use(SessionID())
			router.GET("/", func(c *gin.Context) {
				got = c.GetString(SessionKey)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: SessionCookie, Value: tc.cookie})
			}
			router.ServeHTTP(httptest.NewRecorder(), req)

			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestSetSessionCookie(t *testing.T) {
	router := gin.New()
	router.GET("/", func(c *gin.Context) {
		SetSessionCookie(c, SessionConfig{MaxAge: 3600, Secure: true}, "abc")
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	cookie := rec.Header().Get("Set-Cookie")
	assert.Contains(t, cookie, SessionCookie+"=abc")
	assert.Contains(t, cookie, "HttpOnly")
	assert.Contains(t, cookie, "Secure")
	assert.Contains(t, cookie, "SameSite=Lax")
}
