package container

import (
	"time"

	"agari/common/cache"
	"agari/common/config"
	"agari/common/log"
	"agari/core/infrastructure/message"
	"agari/runtime/game/quiz"
)

const publishBuffer = 1024

// GateContainer 算点服务容器，在 BaseContainer 之上加入结果缓存、事件发布和出题器
type GateContainer struct {
	*BaseContainer
	cache     *cache.ResultCache
	publisher message.Publisher
	quiz      *quiz.Generator
}

// NewGateContainer 任一依赖初始化失败时关闭已创建的资源
func NewGateContainer(conf *config.Config) (*GateContainer, error) {
	base, err := NewBase(conf)
	if err != nil {
		return nil, err
	}

	resultCache, err := cache.NewResultCache(conf.Cache.MaxCost, time.Duration(conf.Cache.TtlSeconds)*time.Second)
	if err != nil {
		_ = base.Close()
		return nil, err
	}

	var publisher message.Publisher = message.NopPublisher{}
	if conf.Nats.URL != "" {
		cli, err := message.NewNatsClient(conf.Nats.URL, conf.AppName)
		if err != nil {
			resultCache.Close()
			_ = base.Close()
			return nil, err
		}
		publisher = message.NewNatsPublisher(cli, conf.Nats.Subject, publishBuffer)
	} else {
		log.Info("未配置 nats，不发布算点事件")
	}

	seed := conf.Quiz.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &GateContainer{
		BaseContainer: base,
		cache:         resultCache,
		publisher:     publisher,
		quiz:          quiz.NewGenerator(seed, quiz.WithMaxAttempts(conf.Quiz.MaxAttempts)),
	}, nil
}

func (c *GateContainer) GetCache() *cache.ResultCache {
	return c.cache
}

func (c *GateContainer) GetPublisher() message.Publisher {
	return c.publisher
}

func (c *GateContainer) GetQuiz() *quiz.Generator {
	return c.quiz
}

// Close 先停发布再关数据库
func (c *GateContainer) Close() error {
	if err := c.publisher.Close(); err != nil {
		log.Error("nats 关闭失败: %v", err)
	}
	c.cache.Close()
	return c.BaseContainer.Close()
}
