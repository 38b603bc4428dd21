package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	// Server
	Port      string `mapstructure:"PORT"`
	Env       string `mapstructure:"ENV"`
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	// CORS
	CorsOrigins []string `mapstructure:"CORS_ORIGINS"`

	// Frontend assets
	StaticDir string `mapstructure:"STATIC_DIR"`

	// Upstream FPL API
	FPLBaseURL         string        `mapstructure:"FPL_BASE_URL"`
	FPLUserAgent       string        `mapstructure:"FPL_USER_AGENT"`
	ExternalAPITimeout time.Duration `mapstructure:"EXTERNAL_API_TIMEOUT"`

	// Circuit breaker around upstream calls
	CircuitBreakerEnabled   bool          `mapstructure:"CIRCUIT_BREAKER_ENABLED"`
	CircuitBreakerThreshold int           `mapstructure:"CIRCUIT_BREAKER_THRESHOLD"`
	CircuitBreakerTimeout   time.Duration `mapstructure:"CIRCUIT_BREAKER_TIMEOUT"`

	// Background cache warming, empty disables it
	CacheWarmInterval string `mapstructure:"CACHE_WARM_INTERVAL"`

	// MCP tool endpoint
	MCPEnabled bool   `mapstructure:"MCP_ENABLED"`
	MCPPath    string `mapstructure:"MCP_PATH"`
}

func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("..")

	setDefaults(v)

	// Read from environment
	v.AutomaticEnv()

	// Read config file if exists
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Parse CORS origins from comma-separated string
	config.CorsOrigins = splitList(v.GetString("CORS_ORIGINS"))

	config.FPLBaseURL = strings.TrimRight(strings.TrimSpace(config.FPLBaseURL), "/")
	if config.MCPPath != "" && !strings.HasPrefix(config.MCPPath, "/") {
		config.MCPPath = "/" + config.MCPPath
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "3000")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "")
	v.SetDefault("LOG_FORMAT", "")
	v.SetDefault("CORS_ORIGINS", "")
	v.SetDefault("STATIC_DIR", "public")

	v.SetDefault("FPL_BASE_URL", "https://fantasy.premierleague.com/api")
	v.SetDefault("FPL_USER_AGENT", "fpl-proxy/1.0")
	v.SetDefault("EXTERNAL_API_TIMEOUT", "10s")

	v.SetDefault("CIRCUIT_BREAKER_ENABLED", false)
	v.SetDefault("CIRCUIT_BREAKER_THRESHOLD", 5)
	v.SetDefault("CIRCUIT_BREAKER_TIMEOUT", "30s")

	v.SetDefault("CACHE_WARM_INTERVAL", "")

	v.SetDefault("MCP_ENABLED", true)
	v.SetDefault("MCP_PATH", "/mcp")
}

func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.Port)
}
