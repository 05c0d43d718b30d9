package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	HTTP  HTTPConfig
	Herd  HerdConfig
	Log   LogConfig
	Cache CacheConfig
	UI    UIConfig
	CORS  CORSConfig
	Stub  StubConfig
}

type HTTPConfig struct {
	Port string
}

type HerdConfig struct {
	BaseURL    string
	Timeout    time.Duration
	RetryCount int
}

type LogConfig struct {
	Level  string
	Format string
	App    string
}

type CacheConfig struct {
	// RedisAddr vacío => cache en memoria.
	RedisAddr string
	TTL       time.Duration
}

type UIConfig struct {
	NavigateDelay time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type StubConfig struct {
	// DBDSN vacío => repos in-memory.
	DBDSN    string
	Envelope bool
}

// Flags registra los flags que pisan a la config de archivo/env.
func Flags(fs *pflag.FlagSet) {
	fs.String("config", "", "path to a config file (yaml)")
	fs.String("http.port", "", "listen port")
	fs.String("herd.base_url", "", "herd API base url")
	fs.String("log.level", "", "debug|info|warn|error")
	fs.String("log.format", "", "text|json")
}

func defaults(v *viper.Viper) {
	v.SetDefault("http.port", "8080")
	v.SetDefault("herd.base_url", "http://localhost:8081/api")
	v.SetDefault("herd.timeout", "30s")
	v.SetDefault("herd.retry_count", 0)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("app.name", "farm-animals")
	v.SetDefault("cache.ttl", "5m")
	v.SetDefault("ui.navigate_delay", "1500ms")
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("stub.envelope", true)
}

// Load lee (en orden de prioridad) flags, env ANIMALS_*, archivo animals.yaml y defaults.
func Load(fs *pflag.FlagSet) (Config, error) {
	v := viper.New()
	defaults(v)

	v.SetEnvPrefix("animals")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// PORT y DB_DSN se respetan como en el resto de servicios.
	_ = v.BindEnv("http.port", "ANIMALS_HTTP_PORT", "PORT")
	_ = v.BindEnv("stub.db_dsn", "ANIMALS_STUB_DB_DSN", "DB_DSN")

	if fs != nil {
		if err := v.BindPFlags(fs); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	path := v.GetString("config")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("animals")
		v.SetConfigType("yaml")
		v.AddConfigPath("config")
		v.AddConfigPath("/etc/farm-animals")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := Config{
		HTTP: HTTPConfig{Port: v.GetString("http.port")},
		Herd: HerdConfig{
			BaseURL:    v.GetString("herd.base_url"),
			Timeout:    v.GetDuration("herd.timeout"),
			RetryCount: v.GetInt("herd.retry_count"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			App:    v.GetString("app.name"),
		},
		Cache: CacheConfig{
			RedisAddr: v.GetString("cache.redis_addr"),
			TTL:       v.GetDuration("cache.ttl"),
		},
		UI:   UIConfig{NavigateDelay: v.GetDuration("ui.navigate_delay")},
		CORS: CORSConfig{AllowedOrigins: v.GetStringSlice("cors.allowed_origins")},
		Stub: StubConfig{
			DBDSN:    v.GetString("stub.db_dsn"),
			Envelope: v.GetBool("stub.envelope"),
		},
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if strings.TrimSpace(c.Herd.BaseURL) == "" {
		return errors.New("config: herd.base_url required")
	}
	if c.Herd.Timeout <= 0 {
		return errors.New("config: herd.timeout must be positive")
	}
	if c.Herd.RetryCount < 0 {
		return errors.New("config: herd.retry_count must be >= 0")
	}
	if c.Cache.TTL < 0 {
		return errors.New("config: cache.ttl must be >= 0")
	}
	if c.UI.NavigateDelay < 0 {
		return errors.New("config: ui.navigate_delay must be >= 0")
	}
	if strings.TrimSpace(c.HTTP.Port) == "" {
		return errors.New("config: http.port required")
	}
	return nil
}

// Addr devuelve ":<port>" para http.Server.
func (c HTTPConfig) Addr() string {
	return ":" + strings.TrimPrefix(strings.TrimSpace(c.Port), ":")
}
