// Package config loads service configuration from defaults, an optional
// config.yaml, a .env file and APP_* environment variables, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
}

// Addr returns the listen address
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig represents the gorm connection settings
type DatabaseConfig struct {
	// Driver is either "postgres" or "sqlite"
	Driver          string        `mapstructure:"driver"`
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
	StatsInterval   time.Duration `mapstructure:"stats_interval"`
}

// JWTConfig represents access token settings
type JWTConfig struct {
	Secret    string        `mapstructure:"secret"`
	Algorithm string        `mapstructure:"algorithm"`
	Expiry    time.Duration `mapstructure:"expiry"`
	Issuer    string        `mapstructure:"issuer"`
}

// RedisConfig represents the redis connection used for login rate limiting.
// An empty address disables rate limiting.
type RedisConfig struct {
	Address     string        `mapstructure:"address"`
	Password    string        `mapstructure:"password"`
	DB          int           `mapstructure:"db"`
	LoginLimit  int           `mapstructure:"login_limit"`
	LoginWindow time.Duration `mapstructure:"login_window"`
}

// StorageConfig represents the object storage used for photo uploads
type StorageConfig struct {
	// Driver is either "s3" or "memory"
	Driver          string        `mapstructure:"driver"`
	Endpoint        string        `mapstructure:"endpoint"`
	Region          string        `mapstructure:"region"`
	AccessKeyID     string        `mapstructure:"access_key_id"`
	SecretAccessKey string        `mapstructure:"secret_access_key"`
	Bucket          string        `mapstructure:"bucket"`
	UsePathStyle    bool          `mapstructure:"use_path_style"`
	PresignTTL      time.Duration `mapstructure:"presign_ttl"`
	MaxUploadBytes  int64         `mapstructure:"max_upload_bytes"`
}

// TelemetryConfig toggles the OpenTelemetry stdout exporters
type TelemetryConfig struct {
	Tracing bool `mapstructure:"tracing"`
	Metrics bool `mapstructure:"metrics"`
}

// LogConfig represents logger settings
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// HelloWorldConfig bounds the repeated greetings
type HelloWorldConfig struct {
	MaxRepeat int `mapstructure:"max_repeat"`
}

// Config represents the application configuration
type Config struct {
	App        string           `mapstructure:"app"`
	Server     ServerConfig     `mapstructure:"server"`
	Log        LogConfig        `mapstructure:"log"`
	Database   DatabaseConfig   `mapstructure:"database"`
	JWT        JWTConfig        `mapstructure:"jwt"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Telemetry  TelemetryConfig  `mapstructure:"telemetry"`
	HelloWorld HelloWorldConfig `mapstructure:"helloworld"`
}

// legacyEnv maps keys to the unprefixed variable names of older deployments.
var legacyEnv = map[string]string{
	"jwt.secret":                "SECRET_KEY",
	"jwt.algorithm":             "ALGORITHM",
	"storage.endpoint":          "MINIO_ENDPOINT_URL",
	"storage.access_key_id":     "AWS_ACCESS_KEY_ID",
	"storage.secret_access_key": "AWS_SECRET_ACCESS_KEY",
	"storage.bucket":            "MY_BUCKET",
	"storage.region":            "AWS_REGION",
	"database.dsn":              "DATABASE_URL",
}

// Load loads the configuration of the named service
func Load(app string) (*Config, error) {
	// A missing .env file is fine; the environment may already be populated
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v, app)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/" + app)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range legacyEnv {
		envKey := "APP_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, envKey, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func setDefaults(v *viper.Viper, app string) {
	v.SetDefault("app", app)

	v.SetDefault("server.host", "0.0.0.0")
	port, ok := defaultPorts[app]
	if !ok {
		port = 8080
	}
	v.SetDefault("server.port", port)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.idle_timeout", 120*time.Second)
	v.SetDefault("server.shutdown_timeout", 15*time.Second)
	v.SetDefault("server.allowed_origins", []string{"*"})

	v.SetDefault("log.level", "info")

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", app+".db?_foreign_keys=on")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("database.stats_interval", 30*time.Second)

	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.algorithm", "HS256")
	v.SetDefault("jwt.expiry", 15*time.Minute)
	v.SetDefault("jwt.issuer", app)

	v.SetDefault("redis.address", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.login_limit", 10)
	v.SetDefault("redis.login_window", time.Minute)

	v.SetDefault("storage.driver", "s3")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.access_key_id", "")
	v.SetDefault("storage.secret_access_key", "")
	v.SetDefault("storage.bucket", "")
	v.SetDefault("storage.use_path_style", true)
	v.SetDefault("storage.presign_ttl", time.Hour)
	v.SetDefault("storage.max_upload_bytes", 10<<20)

	v.SetDefault("telemetry.tracing", false)
	v.SetDefault("telemetry.metrics", false)

	v.SetDefault("helloworld.max_repeat", 1000)
}

var defaultPorts = map[string]int{
	"helloworld": 8000,
	"instaclone": 8001,
	"jwtauth":    8002,
	"recipes":    8003,
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	switch c.Storage.Driver {
	case "s3", "memory":
	default:
		return fmt.Errorf("unsupported storage driver %q", c.Storage.Driver)
	}
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be positive")
	}
	return nil
}
