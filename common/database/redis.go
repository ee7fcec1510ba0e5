package database

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"agari/common/config"
	"agari/common/log"

	"github.com/redis/go-redis/v9"
)

type RedisManager struct {
	Cli        *redis.Client
	ClusterCli *redis.ClusterClient
	scriptSHAs map[string]string
	mu         sync.RWMutex
}

func NewRedis(redisConf config.RedisConf) (*RedisManager, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var clusterCli *redis.ClusterClient
	var cli *redis.Client

	// 构建Redis地址
	var addr string
	if redisConf.Addr != "" {
		addr = redisConf.Addr
	} else if redisConf.Host != "" && redisConf.Port > 0 {
		addr = fmt.Sprintf("%s:%d", redisConf.Host, redisConf.Port)
	} else if len(redisConf.ClusterAddrs) == 0 {
		return nil, fmt.Errorf("redis 配置出错: 缺少地址")
	}

	if len(redisConf.ClusterAddrs) == 0 {
		cli = redis.NewClient(&redis.Options{
			Addr:         addr,
			Password:     redisConf.Password, // 没有密码时为空字符串
			PoolSize:     redisConf.PoolSize,
			MinIdleConns: redisConf.MinIdleConns,
		})
		if err := cli.Ping(ctx).Err(); err != nil {
			_ = cli.Close()
			return nil, fmt.Errorf("redis 连接错误: %w", err)
		}
	} else {
		clusterCli = redis.NewClusterClient(&redis.ClusterOptions{
			Addrs:        redisConf.ClusterAddrs,
			Password:     redisConf.Password,
			PoolSize:     redisConf.PoolSize,
			MinIdleConns: redisConf.MinIdleConns,
		})
		if err := clusterCli.Ping(ctx).Err(); err != nil {
			_ = clusterCli.Close()
			return nil, fmt.Errorf("redisCluster 连接错误: %w", err)
		}
	}
	log.Info("redis 连接成功")

	return NewRedisWithClient(cli, clusterCli), nil
}

// NewRedisWithClient 包装已有客户端
func NewRedisWithClient(cli *redis.Client, clusterCli *redis.ClusterClient) *RedisManager {
	return &RedisManager{
		Cli:        cli,
		ClusterCli: clusterCli,
		scriptSHAs: make(map[string]string),
	}
}

func (r *RedisManager) GetClient() (redis.Cmdable, error) {
	if r.Cli != nil {
		return r.Cli, nil
	}
	if r.ClusterCli != nil {
		return r.ClusterCli, nil
	}
	return nil, fmt.Errorf("redis 客户端未初始化")
}

func (r *RedisManager) Ping(ctx context.Context) error {
	cli, err := r.GetClient()
	if err != nil {
		return err
	}
	return cli.Ping(ctx).Err()
}

func (r *RedisManager) Del(ctx context.Context, keys ...string) error {
	cli, err := r.GetClient()
	if err != nil {
		return err
	}
	return cli.Del(ctx, keys...).Err()
}

func (r *RedisManager) LRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	cli, err := r.GetClient()
	if err != nil {
		return nil, err
	}
	return cli.LRange(ctx, key, start, stop).Result()
}

func (r *RedisManager) LLen(ctx context.Context, key string) (int64, error) {
	cli, err := r.GetClient()
	if err != nil {
		return 0, err
	}
	return cli.LLen(ctx, key).Result()
}

func (r *RedisManager) LTrim(ctx context.Context, key string, start, stop int64) error {
	cli, err := r.GetClient()
	if err != nil {
		return err
	}
	return cli.LTrim(ctx, key, start, stop).Err()
}

// EvalScript 单机模式下缓存脚本 SHA，集群模式直接 EVAL
func (r *RedisManager) EvalScript(ctx context.Context, scriptName, script string, keys []string, args ...any) (any, error) {
	cli, err := r.GetClient()
	if err != nil {
		return nil, err
	}

	if r.Cli != nil && scriptName != "" {
		r.mu.RLock()
		sha, exists := r.scriptSHAs[scriptName]
		r.mu.RUnlock()
		if exists {
			result, err := r.Cli.EvalSha(ctx, sha, keys, args...).Result()
			if err != nil && !strings.HasPrefix(err.Error(), "NOSCRIPT") {
				return nil, err
			}
			if err == nil {
				return result, nil
			}
			// SHA 失效，重新加载
		}
		sha, err := r.Cli.ScriptLoad(ctx, script).Result()
		if err != nil {
			return nil, fmt.Errorf("加载脚本失败: %w", err)
		}
		r.mu.Lock()
		r.scriptSHAs[scriptName] = sha
		r.mu.Unlock()
		return r.Cli.EvalSha(ctx, sha, keys, args...).Result()
	}

	return cli.Eval(ctx, script, keys, args...).Result()
}

func (r *RedisManager) Close() error {
	if r.Cli != nil {
		if err := r.Cli.Close(); err != nil {
			log.Error("redis 关闭出错: %v", err)
			return err
		}
	}
	if r.ClusterCli != nil {
		if err := r.ClusterCli.Close(); err != nil {
			log.Error("redisCluster 关闭出错: %v", err)
			return err
		}
	}
	return nil
}
