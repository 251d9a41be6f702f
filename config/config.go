package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// JWTConfig JWT相关配置
type JWTConfig struct {
	SecretKey       string
	AccessTokenTTL  int // 小时
	RefreshTokenTTL int // 小时
}

// DBConfig 数据库相关配置
type DBConfig struct {
	DSN string // 为空时进入离线模式
}

// RedisConfig Redis相关配置
type RedisConfig struct {
	Addr     string // 为空时不启用缓存
	Password string
	DB       int
}

// SMSConfig 短信通知相关配置
type SMSConfig struct {
	AccessKeyID     string
	AccessKeySecret string
	SignName        string
	TemplateCode    string
	StaffPhone      string // 接收大奖通知的工作人员手机号
}

// Config 应用配置
type Config struct {
	ServerPort    string
	StaffPassword string // 工作人员共享口令，明文，启动时转bcrypt哈希
	LogDir        string
	JWTConfig     JWTConfig
	DBConfig      DBConfig
	RedisConfig   RedisConfig
	SMSConfig     SMSConfig
}

// LoadConfig 加载配置，优先读取.env文件，其次读取环境变量
func LoadConfig() Config {
	// .env不存在时不报错，直接使用环境变量
	if err := godotenv.Load(); err != nil {
		log.Println("未找到.env文件，使用环境变量")
	}

	return Config{
		ServerPort:    getEnv("SERVER_PORT", "8088"),
		StaffPassword: getEnv("STAFF_PASSWORD", "EPE2026"),
		LogDir:        getEnv("LOG_DIR", "./logs"),
		JWTConfig: JWTConfig{
			SecretKey:       getEnv("JWT_SECRET_KEY", "epe-gacha-secret"),
			AccessTokenTTL:  getEnvInt("JWT_ACCESS_TOKEN_TTL", 12),
			RefreshTokenTTL: getEnvInt("JWT_REFRESH_TOKEN_TTL", 168),
		},
		DBConfig: DBConfig{
			DSN: getEnv("MYSQL_DSN", ""),
		},
		RedisConfig: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		SMSConfig: SMSConfig{
			AccessKeyID:     getEnv("SMS_ACCESS_KEY_ID", ""),
			AccessKeySecret: getEnv("SMS_ACCESS_KEY_SECRET", ""),
			SignName:        getEnv("SMS_SIGN_NAME", ""),
			TemplateCode:    getEnv("SMS_TEMPLATE_CODE", ""),
			StaffPhone:      getEnv("SMS_STAFF_PHONE", ""),
		},
	}
}

// getEnv 读取环境变量，不存在时返回默认值
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt 读取整数环境变量，不存在或格式错误时返回默认值
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("环境变量%s格式错误: %v，使用默认值%d", key, err, defaultValue)
		return defaultValue
	}
	return intValue
}
