package api

import (
	"context"
	"net/http"
	"time"

	comhttp "agari/common/http"
	"agari/common/metrics"
)

// NotFoundHandler 未知路由统一返回 404 信封
func NotFoundHandler(c *comhttp.Context) error {
	c.NotFound("")
	return nil
}

// PingHandler ping 检查
func PingHandler(c *comhttp.Context) error {
	c.Success(map[string]any{
		"message":   "pong",
		"timestamp": time.Now().Unix(),
		"service":   "agari",
	})
	return nil
}

// HealthHandler 返回进程负载，记录仓储不可用时返回 503
func (h *ScoreHandler) HealthHandler(c *comhttp.Context) error {
	stats := h.svc.Stats()
	load := metrics.Snapshot(stats.Evaluations, stats.Cache.Hits, stats.Cache.Misses)

	ctx, cancel := context.WithTimeout(c.Ctx(), 2*time.Second)
	defer cancel()
	if _, err := h.svc.History(ctx, 1); err != nil {
		c.Fail(http.StatusServiceUnavailable, comhttp.CodeUnhealthy, "history backend unavailable", load)
		return nil
	}
	c.Success(load)
	return nil
}
