package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type HTTP struct {
	Host            string
	Port            int
	ReadTimeoutSec  int
	WriteTimeoutSec int
	IdleTimeoutSec  int
}

type App struct {
	Name string
	Env  string
	HTTP HTTP
}

type FileRotate struct {
	Enable     bool
	Filename   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

type Log struct {
	Level string
	JSON  bool
	File  FileRotate
}

// JWT signs (goal service) and verifies (user service) service tokens.
// Empty Secret disables service auth.
type JWT struct {
	Secret            string
	Issuer            string
	AccessTokenTTLMin int
}

type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	TTLSec   int    `mapstructure:"ttlSec"`
}

type DB struct {
	Driver             string
	DSN                string
	Username           string
	Password           string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	AutoMigrate        bool
	LogLevel           string
}

// UserService is the goal service's view of the remote user store.
type UserService struct {
	BaseURL   string `mapstructure:"baseURL"`
	TimeoutMs int    `mapstructure:"timeoutMs"`
}

type Config struct {
	App         App
	Log         Log
	JWT         JWT
	DB          DB
	Redis       Redis       `mapstructure:"redis"`
	UserService UserService `mapstructure:"userService"`
}

var drivers = map[string]bool{"postgres": true, "mysql": true, "sqlite": true}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "local")
	v.SetDefault("app.http.host", "0.0.0.0")
	v.SetDefault("app.http.port", 8080)
	v.SetDefault("app.http.readTimeoutSec", 5)
	v.SetDefault("app.http.writeTimeoutSec", 10)
	v.SetDefault("app.http.idleTimeoutSec", 60)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file.maxSizeMB", 100)
	v.SetDefault("log.file.maxBackups", 7)
	v.SetDefault("log.file.maxAgeDays", 14)
	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.maxOpenConns", 20)
	v.SetDefault("db.maxIdleConns", 5)
	v.SetDefault("db.connMaxLifetimeMin", 30)
	v.SetDefault("db.logLevel", "warn")
	v.SetDefault("jwt.issuer", "goals-platform")
	v.SetDefault("jwt.accessTokenTTLMin", 5)
	v.SetDefault("redis.ttlSec", 60)
	v.SetDefault("userService.timeoutMs", 2000)
}

// Load reads a YAML file, then APP_* environment overrides (APP_DB_DSN
// overrides db.dsn).
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) validate() error {
	if c.App.HTTP.Port <= 0 {
		return errors.New("config: app.http.port must be positive")
	}
	if !drivers[c.DB.Driver] {
		return fmt.Errorf("config: unsupported db.driver %q", c.DB.Driver)
	}
	if c.UserService.BaseURL != "" && c.UserService.TimeoutMs <= 0 {
		return errors.New("config: userService.timeoutMs must be positive")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "prod" || c.App.Env == "production"
}
