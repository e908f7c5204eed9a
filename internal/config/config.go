package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config 保存应用程序的全部配置，启动时构建一次，之后只读。
type Config struct {
	App       AppConfig
	MySQL     MySQLConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Email     EmailConfig
	Upload    UploadConfig
	RateLimit RateLimitConfig
}

// AppConfig 应用程序基础配置。
type AppConfig struct {
	Env               string // development / production
	LogLevel          string
	Port              string
	CORSAllowedOrigin string
	SeedData          bool          // 启动时写入初始数据
	AdminEmailTTL     time.Duration // 管理员邮箱缓存时间
	SweepInterval     time.Duration // 过期申请清理周期
}

// MySQLConfig 数据库连接配置。
type MySQLConfig struct {
	User     string
	Password string
	Host     string
	Port     string
	Database string
}

// DSN 使用驱动自带的格式化生成连接串。
func (c MySQLConfig) DSN() string {
	cfg := mysql.NewConfig()
	cfg.User = c.User
	cfg.Passwd = c.Password
	cfg.Net = "tcp"
	cfg.Addr = c.Host + ":" + c.Port
	cfg.DBName = c.Database
	cfg.ParseTime = true
	cfg.Loc = time.Local
	cfg.Params = map[string]string{"charset": "utf8mb4"}
	return cfg.FormatDSN()
}

// RedisConfig Redis 配置。
type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string // 缓存 key 前缀，不影响限流和任务队列
}

// JWTConfig token 签发配置。
type JWTConfig struct {
	Secret            string
	AccessExpiration  time.Duration
	RefreshExpiration time.Duration
}

// EmailConfig SMTP 配置。
type EmailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// UploadConfig 图片上传配置。
type UploadConfig struct {
	Dir     string
	MaxSize int64
}

// RateLimitConfig 基于 IP 的固定窗口限流。
type RateLimitConfig struct {
	Max    int
	Window time.Duration
}

// Load 读取 .env 文件（如果存在）和环境变量，返回校验过的配置。
func Load() (*Config, error) {
	// 允许只使用环境变量
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		App: AppConfig{
			Env:               v.GetString("APP_ENV"),
			LogLevel:          v.GetString("LOG_LEVEL"),
			Port:              v.GetString("SERVER_PORT"),
			CORSAllowedOrigin: v.GetString("CORS_ALLOWED_ORIGIN"),
			SeedData:          v.GetBool("APP_SEED_DATA"),
			AdminEmailTTL:     v.GetDuration("ADMIN_EMAIL_CACHE_TTL"),
			SweepInterval:     v.GetDuration("BOOKING_SWEEP_INTERVAL"),
		},
		MySQL: MySQLConfig{
			User:     v.GetString("MYSQL_USER"),
			Password: v.GetString("MYSQL_PASSWORD"),
			Host:     v.GetString("MYSQL_HOST"),
			Port:     v.GetString("MYSQL_PORT"),
			Database: v.GetString("MYSQL_DB"),
		},
		Redis: RedisConfig{
			Addr:      v.GetString("REDIS_ADDR"),
			Password:  v.GetString("REDIS_PASSWORD"),
			DB:        v.GetInt("REDIS_DB"),
			KeyPrefix: v.GetString("REDIS_KEY_PREFIX"),
		},
		JWT: JWTConfig{
			Secret:            v.GetString("JWT_SECRET"),
			AccessExpiration:  v.GetDuration("JWT_ACCESS_TOKEN_EXPIRES"),
			RefreshExpiration: v.GetDuration("JWT_REFRESH_TOKEN_EXPIRES"),
		},
		Email: EmailConfig{
			Host:     v.GetString("SMTP_HOST"),
			Port:     v.GetInt("SMTP_PORT"),
			User:     v.GetString("SMTP_USER"),
			Password: v.GetString("SMTP_PASS"),
			From:     v.GetString("SMTP_FROM"),
		},
		Upload: UploadConfig{
			Dir:     v.GetString("UPLOAD_DIR"),
			MaxSize: v.GetInt64("UPLOAD_MAX_SIZE"),
		},
		RateLimit: RateLimitConfig{
			Max:    v.GetInt("RATE_LIMIT_MAX"),
			Window: v.GetDuration("RATE_LIMIT_WINDOW"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SERVER_PORT", "3005")
	v.SetDefault("CORS_ALLOWED_ORIGIN", "http://localhost:3000")
	v.SetDefault("APP_SEED_DATA", false)
	v.SetDefault("ADMIN_EMAIL_CACHE_TTL", time.Hour)
	v.SetDefault("BOOKING_SWEEP_INTERVAL", 10*time.Minute)

	v.SetDefault("MYSQL_HOST", "127.0.0.1")
	v.SetDefault("MYSQL_PORT", "3306")
	v.SetDefault("MYSQL_DB", "meeting_room_booking")

	v.SetDefault("REDIS_ADDR", "127.0.0.1:6379")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_ACCESS_TOKEN_EXPIRES", 30*time.Minute)
	v.SetDefault("JWT_REFRESH_TOKEN_EXPIRES", 7*24*time.Hour)

	v.SetDefault("SMTP_HOST", "smtp.qq.com")
	v.SetDefault("SMTP_PORT", 465)

	v.SetDefault("UPLOAD_DIR", "uploads")
	v.SetDefault("UPLOAD_MAX_SIZE", 5*1024*1024)

	v.SetDefault("RATE_LIMIT_MAX", 100)
	v.SetDefault("RATE_LIMIT_WINDOW", time.Second)
}

func (c *Config) validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("environment variable JWT_SECRET must be set")
	}
	if c.MySQL.User == "" {
		return fmt.Errorf("environment variable MYSQL_USER must be set")
	}
	if c.JWT.AccessExpiration <= 0 || c.JWT.RefreshExpiration <= 0 {
		return fmt.Errorf("token expirations must be positive")
	}
	if c.Email.From == "" {
		c.Email.From = c.Email.User
	}
	if _, err := logrus.ParseLevel(c.App.LogLevel); err != nil {
		logrus.Warnf("Invalid LOG_LEVEL '%s', using default 'info'", c.App.LogLevel)
		c.App.LogLevel = "info"
	}
	return nil
}

// IsProduction 判断是否为生产环境。
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
