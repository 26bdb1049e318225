package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. TRACKER_DATABASE_DSN.
const EnvPrefix = "TRACKER"

type Config struct {
	Port           string         `mapstructure:"port"`
	AppURL         string         `mapstructure:"app_url"`
	AllowedOrigins []string       `mapstructure:"allowed_origins"`
	Database       DatabaseConfig `mapstructure:"database"`
	Auth           AuthConfig     `mapstructure:"auth"`
	Mail           MailConfig     `mapstructure:"mail"`
	Log            LogConfig      `mapstructure:"log"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"` // "postgres" or "sqlite"
	DSN    string `mapstructure:"dsn"`
}

type AuthConfig struct {
	Secret          string        `mapstructure:"secret"`
	VerificationTTL time.Duration `mapstructure:"verification_ttl"`
}

type MailConfig struct {
	Driver   string `mapstructure:"driver"` // "smtp" or "log"
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
	Workers  int    `mapstructure:"workers"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "json", "console" or empty to detect a terminal
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "3000")
	v.SetDefault("app_url", "http://localhost:3000")
	v.SetDefault("allowed_origins", []string{"http://localhost:3000", "http://localhost:5173"})

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.dsn", "host=localhost user=tracker password=tracker dbname=tracker port=5432 sslmode=disable")

	v.SetDefault("auth.secret", "")
	v.SetDefault("auth.verification_ttl", 60*time.Minute)

	v.SetDefault("mail.driver", "log")
	v.SetDefault("mail.host", "localhost")
	v.SetDefault("mail.port", 1025)
	v.SetDefault("mail.username", "")
	v.SetDefault("mail.password", "")
	v.SetDefault("mail.from", "no-reply@tracker.local")
	v.SetDefault("mail.workers", 4)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "")
}

// Load reads an optional .env file, an optional YAML config file and the
// TRACKER_* environment, in increasing order of precedence.
// An empty path looks for ./config.yaml.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env file: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Auth.Secret == "" {
		return fmt.Errorf("%s_AUTH_SECRET is not set", EnvPrefix)
	}
	if c.Auth.VerificationTTL <= 0 {
		return errors.New("auth.verification_ttl must be positive")
	}
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	switch c.Mail.Driver {
	case "smtp", "log":
	default:
		return fmt.Errorf("unsupported mail driver %q", c.Mail.Driver)
	}
	return nil
}
