package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Telegram TelegramConfig `yaml:"telegram"`
	Storage  StorageConfig  `yaml:"storage"`
	Redis    RedisConfig    `yaml:"redis"`
	Pool     PoolConfig     `yaml:"pool"`
	Teams    TeamsConfig    `yaml:"teams"`
	Logging  LoggingConfig  `yaml:"logging"`
	Health   HealthConfig   `yaml:"health"`
}

type TelegramConfig struct {
	Token         string        `yaml:"token"`
	GroupID       int64         `yaml:"group_id"`       // chat that receives bets; 0 = set later with /setupgrupo
	UpdateTimeout int           `yaml:"update_timeout"` // long polling timeout in seconds
	Workers       int           `yaml:"workers"`        // max updates handled concurrently
	SendInterval  time.Duration `yaml:"send_interval"`  // min gap between outgoing messages
	AllowPrivate  bool          `yaml:"allow_private"`  // accept bets sent in private chats
}

type StorageConfig struct {
	Driver string `yaml:"driver"` // "postgres" or "sqlite"
	DSN    string `yaml:"dsn"`
}

// RedisConfig enables the shared duplicate-message guard. Empty Addr keeps the
// guard in memory.
type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
}

type PoolConfig struct {
	Timezone        string `yaml:"timezone"`
	WindowDays      int    `yaml:"window_days"`
	ProxyNameMaxLen int    `yaml:"proxy_name_max_len"`
}

type TeamsConfig struct {
	AliasesFile string `yaml:"aliases_file"` // optional YAML replacing the built-in table
}

type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

type HealthConfig struct {
	Addr              string        `yaml:"addr"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Load reads the YAML file at configPath, applies environment overrides (a
// .env file in the working directory is honoured) and fills defaults.
// An empty configPath skips the file.
func Load(configPath string) (*Config, error) {
	_ = godotenv.Load()

	var config Config
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := config.applyEnv(); err != nil {
		return nil, err
	}
	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyEnv() error {
	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		c.Telegram.Token = token
	}
	if groupID := os.Getenv("TELEGRAM_GROUP_ID"); groupID != "" {
		id, err := strconv.ParseInt(groupID, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid TELEGRAM_GROUP_ID %q: %w", groupID, err)
		}
		c.Telegram.GroupID = id
	}
	if driver := os.Getenv("STORAGE_DRIVER"); driver != "" {
		c.Storage.Driver = driver
	}
	if dsn := os.Getenv("POSTGRES_DSN"); dsn != "" {
		c.Storage.DSN = dsn
		if c.Storage.Driver == "" {
			c.Storage.Driver = DriverPostgres
		}
	}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		c.Redis.Addr = addr
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if tz := os.Getenv("TIMEZONE"); tz != "" {
		c.Pool.Timezone = tz
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Telegram.UpdateTimeout == 0 {
		c.Telegram.UpdateTimeout = 60
	}
	if c.Telegram.Workers == 0 {
		c.Telegram.Workers = 8
	}
	if c.Telegram.SendInterval == 0 {
		c.Telegram.SendInterval = time.Second
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = DriverSQLite
	}
	if c.Storage.Driver == DriverSQLite && c.Storage.DSN == "" {
		c.Storage.DSN = "chuta.db"
	}
	if c.Redis.TTL == 0 {
		c.Redis.TTL = 10 * time.Minute
	}
	if c.Pool.Timezone == "" {
		c.Pool.Timezone = "America/Sao_Paulo"
	}
	if c.Pool.WindowDays == 0 {
		c.Pool.WindowDays = 3
	}
	if c.Pool.ProxyNameMaxLen == 0 {
		c.Pool.ProxyNameMaxLen = 30
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.Health.Addr == "" {
		c.Health.Addr = ":8080"
	}
	if c.Health.ReadHeaderTimeout == 0 {
		c.Health.ReadHeaderTimeout = 5 * time.Second
	}
}

// Validate reports every problem found, joined.
func (c *Config) Validate() error {
	var errs []error
	switch c.Storage.Driver {
	case DriverPostgres:
		if c.Storage.DSN == "" {
			errs = append(errs, errors.New("storage.dsn is required for postgres (set it in config or POSTGRES_DSN)"))
		}
	case DriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("unknown storage.driver %q", c.Storage.Driver))
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, err)
	}
	if c.Pool.WindowDays < 1 {
		errs = append(errs, fmt.Errorf("pool.window_days must be positive, got %d", c.Pool.WindowDays))
	}
	if c.Pool.ProxyNameMaxLen < 1 {
		errs = append(errs, fmt.Errorf("pool.proxy_name_max_len must be positive, got %d", c.Pool.ProxyNameMaxLen))
	}
	if c.Telegram.Workers < 1 {
		errs = append(errs, fmt.Errorf("telegram.workers must be positive, got %d", c.Telegram.Workers))
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("unknown logging.format %q", c.Logging.Format))
	}
	return errors.Join(errs...)
}

// ValidateBot additionally checks what the Telegram bot needs.
func (c *Config) ValidateBot() error {
	err := c.Validate()
	if c.Telegram.Token == "" {
		err = errors.Join(err, errors.New("telegram.token is required (set it in config or TELEGRAM_BOT_TOKEN)"))
	}
	return err
}

// Location returns the pool time zone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Pool.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid pool.timezone %q: %w", c.Pool.Timezone, err)
	}
	return loc, nil
}
