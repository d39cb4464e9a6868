package config

import (
	"fmt"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// HTTPConfig HTTP 服务配置
type HTTPConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// PostgresConfig 数据库配置
type PostgresConfig struct {
	DSN             string
	MaxOpen         int
	MaxIdle         int
	ConnMaxLifetime time.Duration
}

// SessionConfig 会话配置
type SessionConfig struct {
	// Secret 轮换后所有在线会话同时失效，属已知限制
	Secret string
	TTL    time.Duration
	Issuer string
}

// SeedConfig 首次启动种子数据
type SeedConfig struct {
	AdminEmail    string
	AdminPassword string
	AdminName     string
}

// AppConfig 应用配置根节点
type AppConfig struct {
	Environment string
	HTTP        HTTPConfig
	Postgres    PostgresConfig
	Session     SessionConfig
	Seed        SeedConfig
	// LinkCheck 保存商品/课时外链时是否探测可达性
	LinkCheck bool
}

// Load 加载配置：config.yaml + EDUMALL_ 前缀环境变量覆盖
func Load() (*AppConfig, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("EDUMALL")
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// 允许无配置文件，全部走默认值 + 环境变量
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")

	v.SetDefault("http.host", "0.0.0.0")
	v.SetDefault("http.port", 8080)
	v.SetDefault("http.readtimeout", "10s")
	v.SetDefault("http.writetimeout", "15s")
	v.SetDefault("http.idletimeout", "60s")

	v.SetDefault("postgres.dsn", "host=localhost user=edumall password=edumall dbname=edumall port=5432 sslmode=disable")
	v.SetDefault("postgres.maxopen", 100)
	v.SetDefault("postgres.maxidle", 10)
	v.SetDefault("postgres.connmaxlifetime", "1h")

	v.SetDefault("session.secret", "edumall-secret-key-change-in-production")
	// 会话固定 7 天有效
	v.SetDefault("session.ttl", "168h")
	v.SetDefault("session.issuer", "edumall")

	v.SetDefault("seed.adminemail", "admin@edumall.local")
	v.SetDefault("seed.adminpassword", "admin123")
	v.SetDefault("seed.adminname", "Administrator")

	v.SetDefault("linkcheck", false)
}
