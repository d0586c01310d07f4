package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	apperrors "homeinsight-listings/internal/errors"
)

func newTestRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(handlers...)
	return r
}

func TestErrorHandler(t *testing.T) {
	r := newTestRouter(LoggingMiddleware(), ErrorHandler())
	r.GET("/missing", func(c *gin.Context) {
		c.Error(apperrors.NewLookupError("australia", "suburb", "ATLANTIS"))
	})
	r.GET("/broken", func(c *gin.Context) {
		c.Error(errors.New("disk on fire"))
	})
	r.GET("/fine", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	cases := []struct {
		path   string
		status int
		code   string
	}{
		{"/missing", http.StatusNotFound, apperrors.ErrCodeNotFound},
		{"/broken", http.StatusInternalServerError, apperrors.ErrCodeInternal},
	}
	for _, c := range cases {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, c.path, nil))
		if w.Code != c.status {
			t.Errorf("GET %s status == %d, expected %d", c.path, w.Code, c.status)
			continue
		}
		var body struct {
			Error struct {
				Message string `json:"message"`
				Code    string `json:"code"`
			} `json:"error"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("GET %s returned %q", c.path, w.Body.String())
		}
		if body.Error.Code != c.code || body.Error.Message == "" {
			t.Errorf("GET %s error == %+v, expected code %s", c.path, body.Error, c.code)
		}
		if body.Error.Message == "disk on fire" {
			t.Errorf("GET %s leaked the technical message", c.path)
		}
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fine", nil))
	if w.Code != http.StatusOK {
		t.Errorf("GET /fine status == %d", w.Code)
	}
}

func TestLoggingMiddlewareRequestID(t *testing.T) {
	r := newTestRouter(LoggingMiddleware())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(RequestIDKey))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := w.Header().Get(RequestIDHeader)
	if generated == "" || w.Body.String() != generated {
		t.Errorf("generated request id == %q, body %q", generated, w.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("request id == %q, expected the caller's id", got)
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	rl := NewRateLimiter(rate.Every(time.Hour), 2)
	r := newTestRouter(RateLimitMiddleware(rl))
	r.GET("/", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	expect := []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}
	for i, status := range expect {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != status {
			t.Errorf("request %d status == %d, expected %d", i, w.Code, status)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Errorf("second client status == %d, expected its own budget", w.Code)
	}
	if rl.Size() != 2 {
		t.Errorf("Size() == %d, expected 2", rl.Size())
	}
}

func TestRateLimiterCleanup(t *testing.T) {
	rl := PerMinute(6000, 1)
	rl.getLimiter("10.0.0.1")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		rl.Cleanup(ctx, 20*time.Millisecond)
		close(done)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for rl.Size() != 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	cancel()
	<-done
	if rl.Size() != 0 {
		t.Errorf("Size() == %d after cleanup, expected 0", rl.Size())
	}
}

func TestSecureHeaders(t *testing.T) {
	r := newTestRouter(SecureHeaders())
	r.GET("/api/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/x", nil))
	headers := map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
		"Cache-Control":          "no-store",
	}
	for name, expect := range headers {
		if got := w.Header().Get(name); got != expect {
			t.Errorf("%s == %q, expected %q", name, got, expect)
		}
	}
	if got := w.Header().Get("Strict-Transport-Security"); got != "" {
		t.Errorf("plain HTTP response set HSTS %q", got)
	}
}

func TestMetricsMiddleware(t *testing.T) {
	r := newTestRouter(MetricsMiddleware())
	r.GET("/api/postcodes/:country", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/api/postcodes/australia", "/nowhere"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if path == "/nowhere" && w.Code != http.StatusNotFound {
			t.Errorf("GET %s status == %d", path, w.Code)
		}
	}
}
