package config

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

const (
	HistoryMemory = "memory"
	HistoryMongo  = "mongo"
	HistoryRedis  = "redis"
)

var conf atomic.Pointer[Config]

type Config struct {
	AppName      string       `mapstructure:"appName"`
	Mode         string       `mapstructure:"mode"` // gin 运行模式 debug / release / test
	Log          LogConf      `mapstructure:"log"`
	HttpPort     int          `mapstructure:"httpPort"`
	MetricPort   int          `mapstructure:"metricPort"`
	DatabaseConf DatabaseConf `mapstructure:"database"`
	History      HistoryConf  `mapstructure:"history"`
	Cache        CacheConf    `mapstructure:"cache"`
	Nats         NatsConfig   `mapstructure:"nats"`
	Quiz         QuizConf     `mapstructure:"quiz"`
	RateLimit    RateLimit    `mapstructure:"rateLimit"`
}

type LogConf struct {
	Level string `mapstructure:"level"`
}

type DatabaseConf struct {
	MongoConf MongoConf `mapstructure:"mongo"`
	RedisConf RedisConf `mapstructure:"redis"`
}

type MongoConf struct {
	Url         string `mapstructure:"url"`
	Db          string `mapstructure:"db"`
	Username    string `mapstructure:"username"`
	Password    string `mapstructure:"password"`
	MinPoolSize int    `mapstructure:"minPoolSize"`
	MaxPoolSize int    `mapstructure:"maxPoolSize"`
}

type RedisConf struct {
	Addr         string   `mapstructure:"addr"`
	ClusterAddrs []string `mapstructure:"clusterAddrs"`
	Password     string   `mapstructure:"password"`
	PoolSize     int      `mapstructure:"poolSize"`
	MinIdleConns int      `mapstructure:"minIdleConns"`
	Host         string   `mapstructure:"host"`
	Port         int      `mapstructure:"port"`
}

// HistoryConf 计算记录的存储方式，超过 Limit 条的旧记录会被淘汰
type HistoryConf struct {
	Backend string `mapstructure:"backend"`
	Limit   int    `mapstructure:"limit"`
}

type CacheConf struct {
	MaxCost    int64 `mapstructure:"maxCost"`
	TtlSeconds int   `mapstructure:"ttlSeconds"`
}

// NatsConfig url 为空时不发布事件
type NatsConfig struct {
	URL     string `mapstructure:"url"`
	Subject string `mapstructure:"subject"`
}

type QuizConf struct {
	Seed        int64 `mapstructure:"seed"` // 0 表示按启动时间取种子
	MaxAttempts int   `mapstructure:"maxAttempts"`
	MaxCount    int   `mapstructure:"maxCount"`
}

// RateLimit 每秒请求数与突发容量，rate 为 0 时不限流
type RateLimit struct {
	Rate  int `mapstructure:"rate"`
	Burst int `mapstructure:"burst"`
}

// Current 当前生效的配置，未加载时返回默认配置
func Current() *Config {
	if c := conf.Load(); c != nil {
		return c
	}
	c, _ := decode(newViper())
	return c
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("appName", "agari")
	v.SetDefault("mode", "release")
	v.SetDefault("log.level", "info")
	v.SetDefault("httpPort", 8080)
	v.SetDefault("metricPort", 8081)
	v.SetDefault("database.mongo.db", "agari")
	v.SetDefault("database.mongo.maxPoolSize", 16)
	v.SetDefault("database.redis.poolSize", 16)
	v.SetDefault("history.backend", HistoryMemory)
	v.SetDefault("history.limit", 100)
	v.SetDefault("cache.maxCost", 1<<20)
	v.SetDefault("cache.ttlSeconds", 600)
	v.SetDefault("nats.subject", "agari.evaluated")
	v.SetDefault("quiz.maxAttempts", 64)
	v.SetDefault("quiz.maxCount", 20)

	v.AutomaticEnv()
	v.SetEnvPrefix("AGARI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	c := new(Config)
	if err := v.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("解析配置文件出错, err:%w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) Validate() error {
	switch c.History.Backend {
	case HistoryMemory, HistoryMongo, HistoryRedis:
	default:
		return fmt.Errorf("unknown history backend: %s", c.History.Backend)
	}
	if c.History.Limit <= 0 {
		return fmt.Errorf("history limit must be positive, got %d", c.History.Limit)
	}
	if c.Cache.MaxCost <= 0 {
		return fmt.Errorf("cache maxCost must be positive, got %d", c.Cache.MaxCost)
	}
	if c.HttpPort <= 0 || c.HttpPort > 65535 {
		return fmt.Errorf("invalid httpPort: %d", c.HttpPort)
	}
	return nil
}

var (
	listenersMu sync.Mutex
	listeners   []func(*Config)
)

// OnChange 注册热更新回调，只在文件变更且新配置合法时触发
func OnChange(fn func(*Config)) {
	listenersMu.Lock()
	listeners = append(listeners, fn)
	listenersMu.Unlock()
}

// Load 读取配置文件，configFile 为空时只使用默认值和环境变量
func Load(configFile string) (*Config, error) {
	v := newViper()
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("读取配置文件出错, err:%w", err)
		}
	}

	c, err := decode(v)
	if err != nil {
		return nil, err
	}
	conf.Store(c)

	if configFile != "" {
		v.OnConfigChange(func(in fsnotify.Event) {
			next, err := decode(v)
			if err != nil {
				// 新配置不合法时保留旧配置
				return
			}
			conf.Store(next)
			listenersMu.Lock()
			fns := append(([]func(*Config))(nil), listeners...)
			listenersMu.Unlock()
			for _, fn := range fns {
				fn(next)
			}
		})
		v.WatchConfig()
	}
	return c, nil
}
