package container

import (
	"errors"
	"fmt"

	"agari/common/config"
	"agari/common/database"
	"agari/common/log"
	"agari/core/domain/repository"
	"agari/core/infrastructure/persistence"
	"agari/core/infrastructure/realtime"
)

// BaseContainer 管理数据库连接和计算记录仓储，只连接 history.backend 需要的数据库
type BaseContainer struct {
	mongo   *database.MongoManager
	redis   *database.RedisManager
	history repository.HistoryRepository
}

// NewBase 按配置选择记录仓储
func NewBase(conf *config.Config) (*BaseContainer, error) {
	c := &BaseContainer{}
	var err error
	switch conf.History.Backend {
	case config.HistoryMongo:
		if c.mongo, err = database.NewMongo(conf.DatabaseConf.MongoConf); err != nil {
			return nil, err
		}
		c.history, err = persistence.NewMongoHistoryRepository(c.mongo, conf.History.Limit)
	case config.HistoryRedis:
		if c.redis, err = database.NewRedis(conf.DatabaseConf.RedisConf); err != nil {
			return nil, err
		}
		c.history, err = realtime.NewRedisHistoryRepository(c.redis, conf.History.Limit)
	case config.HistoryMemory:
		c.history, err = persistence.NewMemoryHistoryRepository(conf.History.Limit)
	default:
		err = fmt.Errorf("unknown history backend: %s", conf.History.Backend)
	}
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	log.Info("计算记录仓储初始化成功, backend:%s, limit:%d", conf.History.Backend, conf.History.Limit)
	return c, nil
}

// GetMongo 未使用 mongo 时为 nil
func (c *BaseContainer) GetMongo() *database.MongoManager {
	return c.mongo
}

// GetRedis 未使用 redis 时为 nil
func (c *BaseContainer) GetRedis() *database.RedisManager {
	return c.redis
}

func (c *BaseContainer) GetHistoryRepository() repository.HistoryRepository {
	return c.history
}

// Close 关闭所有已打开的连接
func (c *BaseContainer) Close() error {
	var errs []error
	if c.mongo != nil {
		if err := c.mongo.Close(); err != nil {
			log.Error("mongo 关闭失败: %v", err)
			errs = append(errs, err)
		}
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			log.Error("redis 关闭失败: %v", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
