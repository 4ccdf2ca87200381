// Package config 提供 TOML 配置加载、环境变量覆盖与基础校验
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config 基础配置结构
type Config struct {
	// 服务名称
	ServiceName string `mapstructure:"service_name"`
	// 服务版本
	Version string `mapstructure:"version"`
	// 环境：dev, staging, prod
	Environment string `mapstructure:"environment"`
	// 店铺业务配置
	App AppConfig `mapstructure:"app"`
	// HTTP 服务配置
	HTTP HTTPConfig `mapstructure:"http"`
	// 数据库配置
	Database DatabaseConfig `mapstructure:"database"`
	// Redis 配置
	Redis RedisConfig `mapstructure:"redis"`
	// Kafka 配置
	Kafka KafkaConfig `mapstructure:"kafka"`
	// 认证配置
	Auth AuthConfig `mapstructure:"auth"`
	// 支付配置
	Payment PaymentConfig `mapstructure:"payment"`
	// 日志配置
	Logger LoggerConfig `mapstructure:"logger"`
	// 指标配置
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// AppConfig 店铺业务配置
type AppConfig struct {
	// 店铺名称
	Name string `mapstructure:"name"`
	// 首页最新商品数量
	LatestProductsLimit int `mapstructure:"latest_products_limit"`
	// 分页大小
	PageSize int `mapstructure:"page_size"`
	// 商品详情缓存时长（秒）
	ProductCacheTTL int `mapstructure:"product_cache_ttl"`
}

// HTTPConfig HTTP 服务配置
type HTTPConfig struct {
	// 监听地址
	Host string `mapstructure:"host"`
	// 监听端口
	Port int `mapstructure:"port"`
	// 读超时（秒）
	ReadTimeout int `mapstructure:"read_timeout"`
	// 写超时（秒）
	WriteTimeout int `mapstructure:"write_timeout"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	// 驱动：mysql
	Driver string `mapstructure:"driver"`
	// 数据源名称
	DSN string `mapstructure:"dsn"`
	// 最大连接数
	MaxOpenConns int `mapstructure:"max_open_conns"`
	// 最大空闲连接数
	MaxIdleConns int `mapstructure:"max_idle_conns"`
	// 连接最大生命周期（秒）
	ConnMaxLifetime int `mapstructure:"conn_max_lifetime"`
	// 是否启用日志
	LogEnabled bool `mapstructure:"log_enabled"`
	// 慢查询阈值（毫秒）
	SlowQueryThreshold int `mapstructure:"slow_query_threshold"`
}

// RedisConfig Redis 配置
type RedisConfig struct {
	// 主机地址
	Host string `mapstructure:"host"`
	// 端口
	Port int `mapstructure:"port"`
	// 密码
	Password string `mapstructure:"password"`
	// 数据库编号
	DB int `mapstructure:"db"`
	// 最大连接数
	MaxPoolSize int `mapstructure:"max_pool_size"`
	// 连接超时（秒）
	ConnTimeout int `mapstructure:"conn_timeout"`
	// 读超时（秒）
	ReadTimeout int `mapstructure:"read_timeout"`
	// 写超时（秒）
	WriteTimeout int `mapstructure:"write_timeout"`
}

// KafkaConfig Kafka 配置
type KafkaConfig struct {
	// 是否启用事件发布
	Enabled bool `mapstructure:"enabled"`
	// Broker 地址列表
	Brokers []string `mapstructure:"brokers"`
	// 最大重试次数
	MaxRetries int `mapstructure:"max_retries"`
	// 重试间隔（毫秒）
	RetryBackoff int `mapstructure:"retry_backoff"`
}

// AuthConfig 认证配置
type AuthConfig struct {
	// JWT 签名密钥
	JWTSecret string `mapstructure:"jwt_secret"`
	// 会话有效期（小时）
	SessionTTL int `mapstructure:"session_ttl"`
}

// PaymentConfig 支付配置
type PaymentConfig struct {
	// 支持的支付方式
	Methods []string `mapstructure:"methods"`
	// 默认支付方式
	DefaultMethod string `mapstructure:"default_method"`
	// PayPal 配置
	PayPal PayPalConfig `mapstructure:"paypal"`
	// Stripe 配置
	Stripe StripeConfig `mapstructure:"stripe"`
}

// PayPalConfig PayPal 配置
type PayPalConfig struct {
	// API 地址
	APIBase string `mapstructure:"api_base"`
	// 客户端 ID
	ClientID string `mapstructure:"client_id"`
	// 客户端密钥
	Secret string `mapstructure:"secret"`
}

// StripeConfig Stripe 配置
type StripeConfig struct {
	// API 地址
	APIBase string `mapstructure:"api_base"`
	// 私钥
	SecretKey string `mapstructure:"secret_key"`
}

// LoggerConfig 日志配置
type LoggerConfig struct {
	// 日志级别
	Level string `mapstructure:"level"`
	// 输出格式
	Format string `mapstructure:"format"`
	// 输出目标
	Output string `mapstructure:"output"`
	// 文件路径
	FilePath string `mapstructure:"file_path"`
	// 最大文件大小（MB）
	MaxSize int `mapstructure:"max_size"`
	// 最大备份文件数
	MaxBackups int `mapstructure:"max_backups"`
	// 最大保留天数
	MaxAge int `mapstructure:"max_age"`
	// 是否压缩
	Compress bool `mapstructure:"compress"`
	// 是否输出调用者信息
	WithCaller bool `mapstructure:"with_caller"`
}

// MetricsConfig 指标配置
type MetricsConfig struct {
	// 是否启用
	Enabled bool `mapstructure:"enabled"`
	// Prometheus 监听端口
	Port int `mapstructure:"port"`
	// 指标路径
	Path string `mapstructure:"path"`
}

// Load 从 TOML 文件加载配置，支持环境变量覆盖
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigFile(configPath)
	v.SetConfigType("toml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate 验证配置的有效性
func (c *Config) Validate() error {
	if c.ServiceName == "" {
		return fmt.Errorf("service_name is required")
	}
	if c.Environment == "" {
		c.Environment = "dev"
	}
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTP.Port)
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("database DSN is required")
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth jwt_secret is required")
	}
	if len(c.Payment.Methods) == 0 {
		return fmt.Errorf("at least one payment method is required")
	}
	valid := false
	for _, m := range c.Payment.Methods {
		if m == c.Payment.DefaultMethod {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("default payment method %q is not in payment.methods", c.Payment.DefaultMethod)
	}
	return nil
}

// setDefaults 设置默认值
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "Prostore")
	v.SetDefault("app.latest_products_limit", 4)
	v.SetDefault("app.page_size", 12)
	v.SetDefault("app.product_cache_ttl", 300)

	v.SetDefault("http.host", "0.0.0.0")
	v.SetDefault("http.port", 8080)
	v.SetDefault("http.read_timeout", 30)
	v.SetDefault("http.write_timeout", 30)

	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 300)
	v.SetDefault("database.log_enabled", false)
	v.SetDefault("database.slow_query_threshold", 1000)

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.max_pool_size", 10)
	v.SetDefault("redis.conn_timeout", 5)
	v.SetDefault("redis.read_timeout", 3)
	v.SetDefault("redis.write_timeout", 3)

	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.max_retries", 3)
	v.SetDefault("kafka.retry_backoff", 100)

	v.SetDefault("auth.session_ttl", 720)

	v.SetDefault("payment.methods", []string{"PayPal", "Stripe", "CashOnDelivery"})
	v.SetDefault("payment.default_method", "PayPal")
	v.SetDefault("payment.paypal.api_base", "https://api-m.sandbox.paypal.com")
	v.SetDefault("payment.stripe.api_base", "https://api.stripe.com")

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
	v.SetDefault("logger.output", "stdout")
	v.SetDefault("logger.file_path", "logs/app.log")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 10)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)
	v.SetDefault("logger.with_caller", true)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.port", 9090)
	v.SetDefault("metrics.path", "/metrics")
}
