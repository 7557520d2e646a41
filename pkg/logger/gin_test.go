package logger

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestMiddleware_RequestIDAndSummary(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	l := NewWithWriter("production", &buf)

	r := gin.New()
	r.Use(Middleware(l))
	r.GET("/user/:id", func(c *gin.Context) {
		c.Set(PrincipalIDKey, "u-1")
		if FromGin(c) == nil || From(c.Request.Context()) == nil {
			t.Errorf("expected request logger")
		}
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/user/42", nil)
	req.Header.Set(headerRequestID, "rid-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get(headerRequestID); got != "rid-1" {
		t.Fatalf("expected propagated request id, got %q", got)
	}

	var line map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line); err != nil {
		t.Fatalf("decode log line %q: %v", buf.String(), err)
	}
	if line["request_id"] != "rid-1" || line["path"] != "/user/:id" || line["principal_id"] != "u-1" {
		t.Fatalf("unexpected log line %v", line)
	}
	if line["level"] != "INFO" {
		t.Fatalf("expected INFO, got %v", line["level"])
	}
}

func TestMiddleware_GeneratesRequestIDAndWarnsOnClientError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	r := gin.New()
	r.Use(Middleware(NewWithWriter("production", &buf)))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusForbidden) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	if w.Header().Get(headerRequestID) == "" {
		t.Fatalf("expected generated request id")
	}
	if !strings.Contains(buf.String(), `"level":"WARN"`) {
		t.Fatalf("expected WARN line, got %s", buf.String())
	}
}

func TestNew_DebugInLocal(t *testing.T) {
	var buf bytes.Buffer
	NewWithWriter("local", &buf).Debug("hello")
	if !strings.Contains(buf.String(), "hello") {
		t.Fatalf("expected debug output in local")
	}

	buf.Reset()
	NewWithWriter("production", &buf).Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected debug suppressed in production")
	}
}
