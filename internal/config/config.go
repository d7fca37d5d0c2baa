package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// APIServerConfig 保存 API 服务器特有的配置。
type APIServerConfig struct {
	Host         string        `mapstructure:"HOST"`
	Port         string        `mapstructure:"PORT"`
	ReadTimeout  time.Duration `mapstructure:"READ_TIMEOUT"`
	WriteTimeout time.Duration `mapstructure:"WRITE_TIMEOUT"`
	CORS         CORSConfig    `mapstructure:"CORS"`
}

// NotifyServerConfig 保存推送服务器 (WebSocket) 的配置。
type NotifyServerConfig struct {
	Host          string `mapstructure:"HOST"`
	Port          string `mapstructure:"PORT"`
	WebSocketPath string `mapstructure:"WEBSOCKET_PATH"`
}

// CORSConfig holds configuration for CORS.
type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"ALLOWED_ORIGINS"`
	AllowedMethods   []string `mapstructure:"ALLOWED_METHODS"`
	AllowedHeaders   []string `mapstructure:"ALLOWED_HEADERS"`
	ExposedHeaders   []string `mapstructure:"EXPOSED_HEADERS"`
	AllowCredentials bool     `mapstructure:"ALLOW_CREDENTIALS"`
	MaxAge           int      `mapstructure:"MAX_AGE"`
}

// RedisConfig holds configuration for Redis.
type RedisConfig struct {
	Addr     string `mapstructure:"ADDR"`
	Password string `mapstructure:"PASSWORD"`
	DB       int    `mapstructure:"DB"`
}

// LogConfig 日志配置，文件按 lumberjack 规则轮转。
type LogConfig struct {
	Level      string `mapstructure:"LEVEL"`
	Filename   string `mapstructure:"FILENAME"`
	MaxSize    int    `mapstructure:"MAX_SIZE"`
	MaxBackups int    `mapstructure:"MAX_BACKUPS"`
	MaxAge     int    `mapstructure:"MAX_AGE"`
	Compress   bool   `mapstructure:"COMPRESS"`
	Console    bool   `mapstructure:"CONSOLE"`
}

// Config holds all configuration for the application.
// The values are read by viper from a config file or environment variables.
type Config struct {
	AppName      string             `mapstructure:"APP_NAME"`
	AppVersion   string             `mapstructure:"APP_VERSION"`
	Log          LogConfig          `mapstructure:"LOG"`
	APIServer    APIServerConfig    `mapstructure:"API_SERVER"`
	NotifyServer NotifyServerConfig `mapstructure:"NOTIFY_SERVER"`
	Kafka        KafkaConfig        `mapstructure:"KAFKA"`
	Database     DatabaseConfig     `mapstructure:"DATABASE"`
	Auth         AuthConfig         `mapstructure:"AUTH"`
	WebSocket    WebSocketConfig    `mapstructure:"WEBSOCKET"`
	Redis        RedisConfig        `mapstructure:"REDIS"`
	FriendCode   FriendCodeConfig   `mapstructure:"FRIEND_CODE"`
	Catalog      CatalogConfig      `mapstructure:"CATALOG"`
	Cache        CacheConfig        `mapstructure:"CACHE"`
}

// KafkaConfig holds configuration for Kafka.
type KafkaConfig struct {
	Brokers                 []string `mapstructure:"BROKERS"`
	ClientID                string   `mapstructure:"CLIENT_ID"`
	RelationshipEventsTopic string   `mapstructure:"RELATIONSHIP_EVENTS_TOPIC"`
	ConsumerGroup           string   `mapstructure:"CONSUMER_GROUP"` // notifyserver 消费者组
	Protocol                string   `mapstructure:"PROTOCOL"`
	Enabled                 bool     `mapstructure:"ENABLED"`
}

// DatabaseConfig holds configuration for the database.
type DatabaseConfig struct {
	Type            string        `mapstructure:"TYPE"` // postgres, mysql, sqlite
	Host            string        `mapstructure:"HOST"`
	Port            int           `mapstructure:"PORT"`
	User            string        `mapstructure:"USER"`
	Password        string        `mapstructure:"PASSWORD"`
	DBName          string        `mapstructure:"DB_NAME"`
	SSLMode         string        `mapstructure:"SSL_MODE"`
	Path            string        `mapstructure:"PATH"` // sqlite 文件路径
	MaxIdleConns    int           `mapstructure:"MAX_IDLE_CONNS"`
	MaxOpenConns    int           `mapstructure:"MAX_OPEN_CONNS"`
	ConnMaxLifetime time.Duration `mapstructure:"CONN_MAX_LIFETIME"`
	LogLevel        string        `mapstructure:"LOG_LEVEL"` // gorm 日志级别: silent, error, warn, info
}

// AuthConfig holds configuration for authentication (e.g., JWT).
type AuthConfig struct {
	JWTSecretKey string        `mapstructure:"JWT_SECRET_KEY"`
	JWTExpiry    time.Duration `mapstructure:"JWT_EXPIRY"`
	Issuer       string        `mapstructure:"ISSUER"`
}

// WebSocketConfig holds configuration for WebSocket connections.
type WebSocketConfig struct {
	WriteWaitSeconds    int `mapstructure:"WRITE_WAIT_SECONDS"`
	PongWaitSeconds     int `mapstructure:"PONG_WAIT_SECONDS"`
	PingPeriodSeconds   int `mapstructure:"PING_PERIOD_SECONDS"`
	MaxMessageSizeBytes int `mapstructure:"MAX_MESSAGE_SIZE_BYTES"`
}

// FriendCodeConfig 控制好友码的生成。
type FriendCodeConfig struct {
	Length     int `mapstructure:"LENGTH"`
	MaxRetries int `mapstructure:"MAX_RETRIES"`
}

// CatalogConfig 动作库数据文件的位置。
type CatalogConfig struct {
	ExercisesPath string `mapstructure:"EXERCISES_PATH"`
}

// CacheConfig Redis 缓存的过期设置。
type CacheConfig struct {
	FriendListTTL time.Duration `mapstructure:"FRIEND_LIST_TTL"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()

	v.SetDefault("APP_NAME", "IronMind")
	v.SetDefault("APP_VERSION", "0.1.0")

	v.SetDefault("LOG.LEVEL", "info")
	v.SetDefault("LOG.FILENAME", "./logs/ironmind.log")
	v.SetDefault("LOG.MAX_SIZE", 100) // MB
	v.SetDefault("LOG.MAX_BACKUPS", 5)
	v.SetDefault("LOG.MAX_AGE", 30) // days
	v.SetDefault("LOG.COMPRESS", true)
	v.SetDefault("LOG.CONSOLE", true)

	v.SetDefault("API_SERVER.HOST", "0.0.0.0")
	v.SetDefault("API_SERVER.PORT", "8000")
	v.SetDefault("API_SERVER.READ_TIMEOUT", 30*time.Second)
	v.SetDefault("API_SERVER.WRITE_TIMEOUT", 30*time.Second)
	v.SetDefault("API_SERVER.CORS.ALLOWED_ORIGINS", []string{"http://localhost:5173"})
	v.SetDefault("API_SERVER.CORS.ALLOWED_METHODS", []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"})
	v.SetDefault("API_SERVER.CORS.ALLOWED_HEADERS", []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"})
	v.SetDefault("API_SERVER.CORS.EXPOSED_HEADERS", []string{"Content-Length"})
	v.SetDefault("API_SERVER.CORS.ALLOW_CREDENTIALS", true)
	v.SetDefault("API_SERVER.CORS.MAX_AGE", 300)

	v.SetDefault("NOTIFY_SERVER.HOST", "0.0.0.0")
	v.SetDefault("NOTIFY_SERVER.PORT", "8001")
	v.SetDefault("NOTIFY_SERVER.WEBSOCKET_PATH", "/ws/notifications")

	v.SetDefault("KAFKA.BROKERS", []string{"localhost:9092"})
	v.SetDefault("KAFKA.CLIENT_ID", "ironmind")
	v.SetDefault("KAFKA.RELATIONSHIP_EVENTS_TOPIC", "ironmind-relationship-events")
	v.SetDefault("KAFKA.CONSUMER_GROUP", "ironmind-notify-group")
	v.SetDefault("KAFKA.PROTOCOL", "plaintext")
	v.SetDefault("KAFKA.ENABLED", true)

	v.SetDefault("DATABASE.TYPE", "postgres")
	v.SetDefault("DATABASE.HOST", "localhost")
	v.SetDefault("DATABASE.PORT", 5432)
	v.SetDefault("DATABASE.USER", "ironmind")
	v.SetDefault("DATABASE.PASSWORD", "password")
	v.SetDefault("DATABASE.DB_NAME", "ironmind_db")
	v.SetDefault("DATABASE.SSL_MODE", "disable")
	v.SetDefault("DATABASE.PATH", "./ironmind.db")
	v.SetDefault("DATABASE.MAX_IDLE_CONNS", 10)
	v.SetDefault("DATABASE.MAX_OPEN_CONNS", 50)
	v.SetDefault("DATABASE.CONN_MAX_LIFETIME", time.Hour)
	v.SetDefault("DATABASE.LOG_LEVEL", "warn")

	v.SetDefault("AUTH.JWT_SECRET_KEY", "a_very_secret_key_that_should_be_changed")
	v.SetDefault("AUTH.JWT_EXPIRY", 24*time.Hour)
	v.SetDefault("AUTH.ISSUER", "ironmind-api")

	v.SetDefault("REDIS.ADDR", "localhost:6379")
	v.SetDefault("REDIS.PASSWORD", "")
	v.SetDefault("REDIS.DB", 0)

	v.SetDefault("WEBSOCKET.WRITE_WAIT_SECONDS", 10)
	v.SetDefault("WEBSOCKET.PONG_WAIT_SECONDS", 60)
	v.SetDefault("WEBSOCKET.PING_PERIOD_SECONDS", 54) // (60 * 9) / 10
	v.SetDefault("WEBSOCKET.MAX_MESSAGE_SIZE_BYTES", 512)

	v.SetDefault("FRIEND_CODE.LENGTH", 8)
	v.SetDefault("FRIEND_CODE.MAX_RETRIES", 10)

	v.SetDefault("CATALOG.EXERCISES_PATH", "./data/exercises.json")

	v.SetDefault("CACHE.FRIEND_LIST_TTL", 5*time.Minute)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	// 嵌套键通过下划线映射到环境变量，例如 DATABASE_HOST
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err = v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
		// 没有配置文件时使用默认值
		err = nil
	}

	err = v.Unmarshal(&config)
	return
}
