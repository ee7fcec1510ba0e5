package http

import (
	"net/http"
	"time"

	"agari/common/log"
	"agari/common/utils"

	"github.com/google/uuid"
)

// CorsMiddleware 跨域中间件
func CorsMiddleware() MiddlewareFunc {
	return func(c *Context) error {
		if c.GetHeader("Origin") != "" {
			c.SetHeader("Access-Control-Allow-Origin", "*")
			c.SetHeader("Access-Control-Allow-Methods", "POST, GET, OPTIONS, DELETE")
			c.SetHeader("Access-Control-Allow-Headers", "Origin, X-Requested-With, Content-Type, Accept, X-Request-ID")
			c.SetHeader("Access-Control-Expose-Headers", "Content-Length, X-Request-ID")
		}

		// 处理预检请求
		if c.Method() == "OPTIONS" {
			c.AbortWithStatus(204)
		}
		return nil
	}
}

// LoggerMiddleware 请求结束后记录耗时与状态码
func LoggerMiddleware() MiddlewareFunc {
	return func(c *Context) error {
		start := time.Now()
		c.Next()
		log.Info("HTTP %s %s %d from %s, request_id=%s, 耗时 %v",
			c.Method(), c.Path(), c.ResponseStatus(), c.ClientIP(), c.GetString(RequestIDKey), time.Since(start))
		return nil
	}
}

// RecoveryMiddleware 处理器 panic 时返回 500
func RecoveryMiddleware() MiddlewareFunc {
	return func(c *Context) (err error) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("Panic recovered: %v", r)
				c.InternalServerError("")
				c.Abort()
			}
		}()
		c.Next()
		return nil
	}
}

const RequestIDKey = "requestID"

// RequestIDMiddleware 透传或生成 X-Request-ID
func RequestIDMiddleware() MiddlewareFunc {
	return func(c *Context) error {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Set(RequestIDKey, requestID)
		c.SetHeader("X-Request-ID", requestID)
		return nil
	}
}

// RateLimitMiddleware 全局令牌桶限流，rate <= 0 时不限流
func RateLimitMiddleware(rate, burst int) MiddlewareFunc {
	if rate <= 0 {
		return func(c *Context) error { return nil }
	}
	limiter := utils.NewRateLimiter(rate, burst)
	return func(c *Context) error {
		if !limiter.Allow() {
			c.Fail(http.StatusTooManyRequests, CodeTooManyRequests, "too many requests", nil)
			c.Abort()
		}
		return nil
	}
}
