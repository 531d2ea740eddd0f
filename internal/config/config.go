package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/pion/webrtc/v4"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Mode          string            `mapstructure:"mode"`
	Port          int               `mapstructure:"port"`
	StaticPath    string            `mapstructure:"static_path"`
	LogLevel      string            `mapstructure:"log_level"`
	Secret        string            `mapstructure:"secret"`
	ReadLimit     int64             `mapstructure:"read_limit"`
	PingPeriod    time.Duration     `mapstructure:"ping_period"`
	PongWait      time.Duration     `mapstructure:"pong_wait"`
	WriteWait     time.Duration     `mapstructure:"write_wait"`
	SendBuffer    int               `mapstructure:"send_buffer"`
	Backpressure  string            `mapstructure:"backpressure"`
	RateLimit     int               `mapstructure:"rate_limit"`
	RateInterval  time.Duration     `mapstructure:"rate_interval"`
	ICEServerList []ICEServerConfig `mapstructure:"ice_servers"`

	iceServers []webrtc.ICEServer
}

// ICEServers returns the validated STUN/TURN servers handed to clients.
func (c *Config) ICEServers() []webrtc.ICEServer {
	return c.iceServers
}

func Load() (*Config, error) {
	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	return LoadFile(fmt.Sprintf("config/config.%s.yaml", env))
}

// LoadFile reads fileName if it exists, applies defaults and MEET_* env
// overrides, and validates the result.
func LoadFile(fileName string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(fileName)
	v.SetEnvPrefix("meet")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", fileName, err)
		}
		log.Warn().Str("module", "config").Str("file", fileName).Msg("config file not found, using defaults")
	} else {
		log.Info().Str("module", "config").Str("file", fileName).Msg("loaded config")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	log.Info().Str("module", "config").Str("mode", cfg.Mode).Int("port", cfg.Port).
		Str("static", cfg.StaticPath).Int("ice_servers", len(cfg.iceServers)).Msg("config ready")
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("mode", "release")
	v.SetDefault("port", 3000)
	v.SetDefault("static_path", "./web")
	v.SetDefault("log_level", "info")
	v.SetDefault("secret", "change-me")
	v.SetDefault("read_limit", 64*1024)
	v.SetDefault("ping_period", "54s")
	v.SetDefault("pong_wait", "60s")
	v.SetDefault("write_wait", "10s")
	v.SetDefault("send_buffer", 64)
	v.SetDefault("backpressure", "kick")
	v.SetDefault("rate_limit", 10)
	v.SetDefault("rate_interval", "1s")
	v.SetDefault("ice_servers", []map[string]any{
		{"urls": []string{"stun:stun.l.google.com:19302"}},
	})
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.PingPeriod >= c.PongWait {
		return fmt.Errorf("ping_period (%s) must be shorter than pong_wait (%s)", c.PingPeriod, c.PongWait)
	}
	if c.SendBuffer <= 0 {
		return fmt.Errorf("send_buffer must be positive, got %d", c.SendBuffer)
	}
	switch c.Backpressure {
	case "kick", "drop":
	default:
		return fmt.Errorf("backpressure must be kick or drop, got %q", c.Backpressure)
	}
	servers, err := ParseICEServers(c.ICEServerList)
	if err != nil {
		return fmt.Errorf("ice_servers: %w", err)
	}
	c.iceServers = servers
	return nil
}
