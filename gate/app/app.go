package app

import (
	"context"
	"errors"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"agari/common/config"
	"agari/common/http"
	"agari/common/log"
	"agari/core/container"
	"agari/gate/api"
	"agari/gate/application/service"
	"agari/gate/application/service/impl"
)

// NewScoreService 用容器中的依赖组装算点服务
func NewScoreService(conf *config.Config, c *container.GateContainer) service.ScoreService {
	return impl.NewScoreService(
		c.GetHistoryRepository(),
		c.GetCache(),
		c.GetPublisher(),
		c.GetQuiz(),
		impl.WithSource(conf.AppName),
		impl.WithQuizMaxCount(conf.Quiz.MaxCount),
	)
}

// NewServer 注册中间件与路由，不启动监听
func NewServer(conf *config.Config, svc service.ScoreService) *http.HttpServer {
	server := http.NewHttpServer(
		http.WithPort(conf.HttpPort),
		http.WithMode(conf.Mode),
	)

	// 中间处理器注册
	server.Use(
		http.RequestIDMiddleware(),
		http.LoggerMiddleware(),
		http.RecoveryMiddleware(),
		http.CorsMiddleware(),
		http.RateLimitMiddleware(conf.RateLimit.Rate, conf.RateLimit.Burst),
	)

	api.RegisterRoutes(server, svc)
	return server
}

// Run 阻塞到 ctx 结束或收到退出信号
func Run(ctx context.Context, conf *config.Config, c *container.GateContainer) error {
	server := NewServer(conf, NewScoreService(conf, c))

	// 热更新只调整日志级别，端口等配置需要重启
	config.OnChange(func(next *config.Config) {
		log.SetLevel(next.Log.Level)
		log.Info("配置已更新, 日志级别: %s", next.Log.Level)
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info("启动 HTTP 服务器，端口: %d", conf.HttpPort)
		if err := server.Start(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error("HTTP 服务器关闭失败: %v", err)
		} else {
			log.Info("HTTP 服务器已优雅关闭")
		}
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGINT, syscall.SIGHUP)
	defer signal.Stop(sig)

	select {
	case <-ctx.Done():
		stop()
		return nil
	case err := <-errCh:
		return err
	case s := <-sig:
		stop()
		if s == syscall.SIGHUP {
			log.Info("挂起信号，服务停止")
		} else {
			log.Info("中断信号，服务停止")
		}
		return nil
	}
}
