package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"agari/common/config"
	"agari/core/container"
)

func testConfig() *config.Config {
	conf := *config.Current()
	conf.Mode = "test"
	conf.HttpPort = 18080
	conf.History.Backend = config.HistoryMemory
	conf.Nats.URL = ""
	conf.RateLimit.Rate = 1
	conf.RateLimit.Burst = 1
	return &conf
}

func TestNewServer_Middlewares(t *testing.T) {
	conf := testConfig()
	c, err := container.NewGateContainer(conf)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	s := NewServer(conf, NewScoreService(conf, c))

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if w.Code != http.StatusOK || w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected 200 with request id, got %d %v", w.Code, w.Header())
	}

	// burst 为 1，紧接着的请求被限流
	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", w.Code)
	}
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	conf := testConfig()
	conf.HttpPort = 0
	c, err := container.NewGateContainer(conf)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Run(ctx, conf, c) }()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Run did not return after cancel")
	}
}
