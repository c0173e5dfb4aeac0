// Package config はサーバーの設定を .env / YAML / 環境変数から読み込みます。
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// Config はアプリケーション全体の設定です。
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig はHTTPサーバーの設定です。
type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	Mode           string   `yaml:"mode"` // gin の debug / release / test
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// DatabaseConfig はDB接続の設定です。
type DatabaseConfig struct {
	Driver      string `yaml:"driver"`
	User        string `yaml:"user"`
	Pass        string `yaml:"pass"`
	Host        string `yaml:"host"`
	Port        string `yaml:"port"`
	Name        string `yaml:"name"`
	Path        string `yaml:"path"` // sqlite のファイルパス
	AutoMigrate bool   `yaml:"auto_migrate"`
}

// AuthConfig はJWTの設定です。
type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret"`
	Issuer    string        `yaml:"issuer"`
	Audience  string        `yaml:"audience"`
	TokenTTL  time.Duration `yaml:"-"`

	TokenTTLRaw string `yaml:"token_ttl"`
}

// LoggingConfig はログ出力の設定です。
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default はデフォルト値で埋めた Config を返します。
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:           ":8080",
			Mode:           "release",
			AllowedOrigins: []string{"http://localhost:3000"},
		},
		Database: DatabaseConfig{
			Driver: DriverMySQL,
			Host:   "127.0.0.1",
			Port:   "3306",
			Path:   "todo.db",
		},
		Auth: AuthConfig{
			Issuer:   "todoapp",
			Audience: "todoapp-clients",
			TokenTTL: 24 * time.Hour,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load は .env を読み込み、CONFIG_FILE があればYAMLを適用し、最後に環境変数で上書きします。
func Load() (*Config, error) {
	// .env が無いのは正常 (コンテナ環境など)
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	cfg := Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// applyFile はYAMLファイルを読み込んで cfg に上書きします。${VAR} は環境変数で展開されます。
func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal([]byte(expandEnvVars(string(data))), c); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}
	if c.Auth.TokenTTLRaw != "" {
		ttl, err := time.ParseDuration(c.Auth.TokenTTLRaw)
		if err != nil {
			return fmt.Errorf("parsing auth.token_ttl %q: %w", c.Auth.TokenTTLRaw, err)
		}
		c.Auth.TokenTTL = ttl
	}
	return nil
}

// applyEnv は設定されている環境変数だけを cfg に反映します。
func (c *Config) applyEnv() error {
	setString(&c.Server.Addr, "SERVER_ADDR")
	setString(&c.Server.Mode, "GIN_MODE")
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		c.Server.AllowedOrigins = splitList(v)
	}

	setString(&c.Database.Driver, "DB_DRIVER")
	setString(&c.Database.User, "DB_USER")
	setString(&c.Database.Pass, "DB_PASS")
	setString(&c.Database.Host, "DB_HOST")
	setString(&c.Database.Port, "DB_PORT")
	setString(&c.Database.Name, "DB_NAME")
	setString(&c.Database.Path, "DB_PATH")
	if v := os.Getenv("DB_AUTO_MIGRATE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("parsing DB_AUTO_MIGRATE %q: %w", v, err)
		}
		c.Database.AutoMigrate = b
	}

	setString(&c.Auth.JWTSecret, "JWT_SECRET")
	setString(&c.Auth.Issuer, "JWT_ISSUER")
	setString(&c.Auth.Audience, "JWT_AUDIENCE")
	if v := os.Getenv("JWT_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parsing JWT_TTL %q: %w", v, err)
		}
		c.Auth.TokenTTL = ttl
	}

	setString(&c.Logging.Level, "LOG_LEVEL")
	setString(&c.Logging.Format, "LOG_FORMAT")
	return nil
}

// Validate は必須項目を確認し、最初に見つかった問題を返します。
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("token ttl must be positive, got %s", c.Auth.TokenTTL)
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server addr is required")
	}
	if len(c.Server.AllowedOrigins) == 0 {
		return fmt.Errorf("CORS_ALLOWED_ORIGINS must list at least one origin")
	}
	switch c.Database.Driver {
	case DriverMySQL:
		if c.Database.Name == "" {
			return fmt.Errorf("DB_NAME is required for mysql")
		}
	case DriverSQLite:
		if c.Database.Path == "" {
			return fmt.Errorf("DB_PATH is required for sqlite")
		}
	default:
		return fmt.Errorf("unknown DB_DRIVER %q (want %s or %s)", c.Database.Driver, DriverMySQL, DriverSQLite)
	}
	return nil
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars は ${VAR_NAME} を環境変数の値に置き換えます。未設定なら空文字になります。
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(envVarPattern.FindStringSubmatch(match)[1])
	})
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
