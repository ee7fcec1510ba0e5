package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestServer() *HttpServer {
	s := NewHttpServer(WithMode(gin.TestMode))
	s.Use(RequestIDMiddleware(), RecoveryMiddleware())
	return s
}

func TestHttpServer_Envelope(t *testing.T) {
	s := newTestServer()
	s.GET("/ok", func(c *Context) error {
		c.Success(map[string]int{"n": 1})
		return nil
	})
	s.GET("/err", func(c *Context) error {
		return errors.New("boom")
	})

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Code != CodeSuccess || resp.Message != MsgSuccess {
		t.Fatalf("unexpected envelope %+v", resp)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("missing request id header")
	}

	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/err", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestHttpServer_RecoversPanics(t *testing.T) {
	s := newTestServer()
	s.GET("/panic", func(c *Context) error {
		panic("bad")
	})
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestRequestIDMiddleware_PassesThrough(t *testing.T) {
	s := newTestServer()
	s.GET("/id", func(c *Context) error {
		c.Success(c.GetString(RequestIDKey))
		return nil
	})
	req := httptest.NewRequest(http.MethodGet, "/id", nil)
	req.Header.Set("X-Request-ID", "abc")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	if got := w.Header().Get("X-Request-ID"); got != "abc" {
		t.Fatalf("expected abc, got %q", got)
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	s := NewHttpServer(WithMode(gin.TestMode))
	s.Use(RateLimitMiddleware(1, 1))
	s.GET("/x", func(c *Context) error {
		c.Success(nil)
		return nil
	})
	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
		codes = append(codes, w.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusTooManyRequests {
		t.Fatalf("unexpected status codes %v", codes)
	}
}
