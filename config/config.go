package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Log        LogConfig        `mapstructure:"log"`
	RateLimit  RateLimitConfig  `mapstructure:"rate_limit"`
	Redis      RedisConfig      `mapstructure:"redis"`
	CORS       CORSConfig       `mapstructure:"cors"`
	Calculator CalculatorConfig `mapstructure:"calculator"`
}

type ServerConfig struct {
	Addr         string        `mapstructure:"addr"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// RateLimitConfig allows Capacity requests per client per Window.
type RateLimitConfig struct {
	Capacity int           `mapstructure:"capacity"`
	Window   time.Duration `mapstructure:"window"`
}

// RedisConfig selects the shared rate limit store. An empty Addr keeps
// rate limiting in process.
type RedisConfig struct {
	Addr string `mapstructure:"addr"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// CalculatorConfig holds the values the page is prefilled with and
// evaluated against on first load.
type CalculatorConfig struct {
	Title       string            `mapstructure:"title"`
	Defaults    CalculatorDefault `mapstructure:"defaults"`
	TermOptions []string          `mapstructure:"term_options"`
}

type CalculatorDefault struct {
	PurchasePrice string `mapstructure:"purchase_price"`
	DownPayment   string `mapstructure:"down_payment"`
	Rate          string `mapstructure:"rate"`
	Term          string `mapstructure:"term"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("rate_limit.capacity", 30)
	v.SetDefault("rate_limit.window", time.Minute)

	v.SetDefault("redis.addr", "")
	v.SetDefault("cors.allowed_origins", []string{"*"})

	v.SetDefault("calculator.title", "Mortgage Calculator")
	v.SetDefault("calculator.defaults.purchase_price", "300000")
	v.SetDefault("calculator.defaults.down_payment", "60000")
	v.SetDefault("calculator.defaults.rate", "6")
	v.SetDefault("calculator.defaults.term", "30")
	v.SetDefault("calculator.term_options", []string{"15", "20", "30"})
}

// Load reads configs/config.yaml (optional) and a .env file (optional),
// then applies MORTGAGE_* environment overrides, e.g.
// MORTGAGE_SERVER_ADDR or MORTGAGE_REDIS_ADDR.
func Load(paths ...string) (*Config, error) {
	loadEnvFile()

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{"./configs", "."}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix("MORTGAGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return errors.New("server.addr is required")
	}
	if c.RateLimit.Capacity <= 0 {
		return fmt.Errorf("rate_limit.capacity must be > 0, got %d", c.RateLimit.Capacity)
	}
	if c.RateLimit.Window <= 0 {
		return fmt.Errorf("rate_limit.window must be > 0, got %s", c.RateLimit.Window)
	}
	if len(c.Calculator.TermOptions) == 0 {
		return errors.New("calculator.term_options must not be empty")
	}
	if !slices.Contains(c.Calculator.TermOptions, c.Calculator.Defaults.Term) {
		return fmt.Errorf("calculator.defaults.term %q is not one of calculator.term_options %v",
			c.Calculator.Defaults.Term, c.Calculator.TermOptions)
	}
	return nil
}

func loadEnvFile() {
	for _, path := range []string{".env", "../.env"} {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}
