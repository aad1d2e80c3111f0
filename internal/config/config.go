package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type AppConfig struct {
	Port string `mapstructure:"PORT" validate:"required,numeric"`

	OpenWeatherAPIKey string `mapstructure:"OPENWEATHER_API_KEY" validate:"required"`

	CountriesBaseURL string `mapstructure:"COUNTRIES_BASE_URL" validate:"required,url"`
	WeatherBaseURL   string `mapstructure:"WEATHER_BASE_URL" validate:"required,url"`
	ChartBaseURL     string `mapstructure:"CHART_BASE_URL" validate:"required,url"`

	// HTTPTimeout bounds every outbound upstream call.
	HTTPTimeout time.Duration `mapstructure:"HTTP_TIMEOUT" validate:"gt=0"`

	// StatusInterval controls how often upstream reachability is probed.
	StatusInterval time.Duration `mapstructure:"STATUS_INTERVAL" validate:"gt=0"`

	LogLevel  string `mapstructure:"LOG_LEVEL" validate:"oneof=trace debug info warn warning error fatal panic"`
	LogFormat string `mapstructure:"LOG_FORMAT" validate:"oneof=json text"`
}

// ErrMissingAPIKey is returned when no weather API key was supplied.
var ErrMissingAPIKey = errors.New("weather api key is required: pass --key or set OPENWEATHER_API_KEY")

var validate = validator.New()

// Load reads configuration from command line flags, the environment and an
// optional .env file, in that order of precedence, with sensible defaults.
func Load(args []string) (*AppConfig, error) {
	// A missing .env file is fine; the environment may already be populated.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	flags := pflag.NewFlagSet("country-weather-api", pflag.ContinueOnError)
	flags.String("key", "", "OpenWeatherMap API key needed for operation")
	flags.String("port", "", "HTTP listen port")
	if err := flags.Parse(args); err != nil {
		return nil, err
	}
	if err := v.BindPFlag("OPENWEATHER_API_KEY", flags.Lookup("key")); err != nil {
		return nil, err
	}
	if err := v.BindPFlag("PORT", flags.Lookup("port")); err != nil {
		return nil, err
	}

	cfg := &AppConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if cfg.OpenWeatherAPIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("OPENWEATHER_API_KEY", "")
	v.SetDefault("COUNTRIES_BASE_URL", "https://restcountries.com/v3.1")
	v.SetDefault("WEATHER_BASE_URL", "https://api.openweathermap.org/data/2.5")
	v.SetDefault("CHART_BASE_URL", "https://quickchart.io")
	v.SetDefault("HTTP_TIMEOUT", "10s")
	v.SetDefault("STATUS_INTERVAL", "5m")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
}
