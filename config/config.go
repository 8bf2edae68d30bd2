package config

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Config carries everything the kiosk binary needs to wire its adapters.
type Config struct {
	Mode string `mapstructure:"mode"`

	RedisAddress  string `mapstructure:"redis_address"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`

	BackendBaseURL    string `mapstructure:"backend_base_url"`
	ConversationWSURL string `mapstructure:"conversation_ws_url"`

	TriggerChannel string `mapstructure:"trigger_channel"`
	PaymentChannel string `mapstructure:"payment_channel"`
	HistoryKey     string `mapstructure:"history_key"`

	Greeting          string        `mapstructure:"greeting"`
	WatchdogPeriod    time.Duration `mapstructure:"watchdog_period"`
	StandbyDelay      time.Duration `mapstructure:"standby_delay"`
	ProcessingTimeout time.Duration `mapstructure:"processing_timeout"`

	DeepgramAPIKey string `mapstructure:"deepgram_api_key"`
	TTSModel       string `mapstructure:"tts_model"`
}

// Load reads configuration from an optional file and KIOSK_*-prefixed
// environment variables.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("mode", "production")
	v.SetDefault("redis_address", "localhost:6379")
	v.SetDefault("redis_db", 0)
	v.SetDefault("backend_base_url", "http://localhost:8000")
	v.SetDefault("conversation_ws_url", "ws://localhost:8000/ws")
	v.SetDefault("trigger_channel", "")
	v.SetDefault("payment_channel", "")
	v.SetDefault("history_key", "")
	v.SetDefault("greeting", "")
	v.SetDefault("watchdog_period", time.Second)
	v.SetDefault("standby_delay", 3*time.Second)
	v.SetDefault("processing_timeout", 15*time.Second)
	v.SetDefault("deepgram_api_key", "")
	v.SetDefault("tts_model", "")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("kiosk")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("KIOSK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// FetchMode asks the backend which mode the kiosk should run in. The local
// mode is kept when the backend is unreachable.
func FetchMode(ctx context.Context, baseURL string) (string, error) {
	client := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
		Timeout:   5 * time.Second,
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/config", nil)
	if err != nil {
		return "", fmt.Errorf("failed to build config request: %w", err)
	}

	response, err := client.Do(request)
	if err != nil {
		return "", fmt.Errorf("failed to fetch backend config: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return "", fmt.Errorf("backend config returned status %d", response.StatusCode)
	}

	var payload struct {
		Mode string `json:"mode"`
	}
	if err := json.NewDecoder(response.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("failed to decode backend config: %w", err)
	}

	return payload.Mode, nil
}
