package config

import (
	"fmt"

	"github.com/de-tools/demand-atlas/pkg/models/domain"
	"github.com/de-tools/demand-atlas/pkg/services/accuracy"
	"github.com/de-tools/demand-atlas/pkg/services/forecast"
	"github.com/spf13/viper"
)

// Config is the file-backed profile for an analysis run. Flags override
// these values at the call site.
type Config struct {
	DBPath         string  `mapstructure:"db_path"`
	Dataset        string  `mapstructure:"dataset"`
	Frequency      string  `mapstructure:"frequency"`
	FillPolicy     string  `mapstructure:"fill_policy"`
	Method         string  `mapstructure:"method"`
	Window         int     `mapstructure:"window"`
	Horizon        int     `mapstructure:"horizon"`
	Alpha          float64 `mapstructure:"alpha"`
	SeasonalPeriod int     `mapstructure:"seasonal_period"`
	Percentile     float64 `mapstructure:"percentile"`
}

// LoadConfig reads a profile file (YAML, TOML or JSON by extension) and
// applies the documented defaults for anything the file leaves out.
func LoadConfig(profilePath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(profilePath)

	v.SetDefault("db_path", "demand-atlas.db")
	v.SetDefault("frequency", string(domain.FrequencyHourly))
	v.SetDefault("fill_policy", "forward")
	v.SetDefault("method", "moving_average")
	v.SetDefault("window", forecast.DefaultWindow)
	v.SetDefault("horizon", forecast.DefaultHorizon)
	v.SetDefault("alpha", forecast.DefaultAlpha)
	v.SetDefault("seasonal_period", forecast.DefaultPeriod)
	v.SetDefault("percentile", accuracy.DefaultPercentile)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse profile config: %w", err)
	}
	return &cfg, nil
}
