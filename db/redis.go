package db

import (
	"context"
	"log"
	"time"

	"epe_gacha/config"

	"github.com/redis/go-redis/v9"
)

// RDB 全局Redis客户端，未配置时为nil
var RDB *redis.Client

// InitRedis 初始化Redis连接，用于近期抽奖记录缓存
// Redis是可选的，未配置或连不上时历史记录直接走数据库
func InitRedis(appConfig config.Config) {
	if appConfig.RedisConfig.Addr == "" {
		log.Println("未配置REDIS_ADDR，不启用抽奖记录缓存")
		return
	}

	client := redis.NewClient(&redis.Options{
		Addr:     appConfig.RedisConfig.Addr,
		Password: appConfig.RedisConfig.Password,
		DB:       appConfig.RedisConfig.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Redis连接失败: %v，不启用抽奖记录缓存", err)
		return
	}

	RDB = client
	log.Println("Redis连接成功")
}
