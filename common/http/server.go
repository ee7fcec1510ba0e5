package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HandlerFunc func(*Context) error
type MiddlewareFunc func(*Context) error

// HttpServer HTTP 服务器封装
type HttpServer struct {
	engine *gin.Engine
	server *http.Server
	port   int
}

// ServerOption 服务器配置选项
type ServerOption func(*HttpServer)

// WithPort 设置端口
func WithPort(port int) ServerOption {
	return func(s *HttpServer) {
		s.port = port
	}
}

// WithMode 设置 gin 运行模式，需要在创建 engine 之前生效
func WithMode(mode string) ServerOption {
	return func(s *HttpServer) {
		switch mode {
		case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
			gin.SetMode(mode)
		}
	}
}

// NewHttpServer 创建 HTTP 服务器
func NewHttpServer(opts ...ServerOption) *HttpServer {
	server := &HttpServer{port: 8080}
	for _, opt := range opts {
		opt(server)
	}
	server.engine = gin.New()
	server.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", server.port),
		Handler: server.engine,
	}
	return server
}

// wrapHandler 处理函数返回的 error 统一转为 500
func (s *HttpServer) wrapHandler(handler HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := newContext(c)
		if err := handler(ctx); err != nil {
			ctx.InternalServerError(err.Error())
		}
	}
}

func (s *HttpServer) wrapMiddleware(middleware MiddlewareFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := newContext(c)
		if err := middleware(ctx); err != nil {
			ctx.InternalServerError(err.Error())
			c.Abort()
			return
		}
		if !c.IsAborted() {
			c.Next()
		}
	}
}

func (s *HttpServer) GET(path string, handler HandlerFunc) {
	s.engine.GET(path, s.wrapHandler(handler))
}

func (s *HttpServer) POST(path string, handler HandlerFunc) {
	s.engine.POST(path, s.wrapHandler(handler))
}

func (s *HttpServer) DELETE(path string, handler HandlerFunc) {
	s.engine.DELETE(path, s.wrapHandler(handler))
}

// NoRoute 未匹配到路由时的处理
func (s *HttpServer) NoRoute(handler HandlerFunc) {
	s.engine.NoRoute(s.wrapHandler(handler))
}

// Group 创建路由组
func (s *HttpServer) Group(relativePath string, middlewares ...MiddlewareFunc) *RouterGroup {
	ginGroup := s.engine.Group(relativePath)
	for _, middleware := range middlewares {
		ginGroup.Use(s.wrapMiddleware(middleware))
	}

	return &RouterGroup{
		group:  ginGroup,
		server: s,
	}
}

// RouterGroup 路由组封装
type RouterGroup struct {
	group  *gin.RouterGroup
	server *HttpServer
}

func (rg *RouterGroup) GET(path string, handler HandlerFunc) {
	rg.group.GET(path, rg.server.wrapHandler(handler))
}

func (rg *RouterGroup) POST(path string, handler HandlerFunc) {
	rg.group.POST(path, rg.server.wrapHandler(handler))
}

func (rg *RouterGroup) DELETE(path string, handler HandlerFunc) {
	rg.group.DELETE(path, rg.server.wrapHandler(handler))
}

// Use 添加全局中间件，需要在注册路由之前调用
func (s *HttpServer) Use(middlewares ...MiddlewareFunc) {
	for _, middleware := range middlewares {
		s.engine.Use(s.wrapMiddleware(middleware))
	}
}

// Handler 供 httptest 直接驱动
func (s *HttpServer) Handler() http.Handler {
	return s.engine
}

// Start 阻塞直到服务器关闭，正常关闭返回 http.ErrServerClosed
func (s *HttpServer) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown 优雅关闭服务器，先于 Start 调用时 Start 直接返回 http.ErrServerClosed
func (s *HttpServer) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *HttpServer) GetPort() int {
	return s.port
}
