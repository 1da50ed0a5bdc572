package config

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/bankingdays/bankingdays/pkg/holidays"
	"github.com/spf13/viper"
)

// Config represents application configuration
type Config struct {
	Holidays HolidaysConfig `mapstructure:"holidays"`
	Log      LogConfig      `mapstructure:"log"`
}

// HolidaysConfig mirrors holidays.Configuration in file form
type HolidaysConfig struct {
	FixedDateHolidays    []string         `mapstructure:"fixed_date_holidays"`
	FloatingDateHolidays map[string][]int `mapstructure:"floating_date_holidays"` // "MM" -> [weekday, occurrence]
	ExactDatesOnly       bool             `mapstructure:"exact_dates_only"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// Load loads configuration from file. An empty configPath searches the
// default locations, and finding nothing there is not an error.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("log.level", "info")

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("bankingdays")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.bankingdays")
		v.AddConfigPath("/etc/bankingdays")
	}

	// Read environment variables
	v.SetEnvPrefix("BANKINGDAYS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate config
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate checks the shape of the file-level settings. Holiday rule
// contents are validated by holidays.NewRegistry.
func (c *Config) Validate() error {
	keys := make([]string, 0, len(c.Holidays.FloatingDateHolidays))
	for key := range c.Holidays.FloatingDateHolidays {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	seen := make(map[string]string, len(keys))
	for _, key := range keys {
		if pair := c.Holidays.FloatingDateHolidays[key]; len(pair) != 2 {
			return fmt.Errorf("holidays.floating_date_holidays.%s must be [weekday, occurrence], got %v", key, pair)
		}
		month := normalizeMonthKey(key)
		if prev, ok := seen[month]; ok {
			return fmt.Errorf("holidays.floating_date_holidays keys '%s' and '%s' both name month %s", prev, key, month)
		}
		seen[month] = key
	}

	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error, got '%s'", c.Log.Level)
	}

	return nil
}

// HolidayConfiguration converts the file form into holidays.Configuration.
// Month keys written as bare numbers (1, 5) are zero-padded to MM.
func (c *Config) HolidayConfiguration() holidays.Configuration {
	cfg := holidays.Configuration{
		FixedDateHolidays: append([]string(nil), c.Holidays.FixedDateHolidays...),
		ExactDatesOnly:    c.Holidays.ExactDatesOnly,
	}

	if len(c.Holidays.FloatingDateHolidays) > 0 {
		cfg.FloatingDateHolidays = make(map[string]holidays.FloatingRule, len(c.Holidays.FloatingDateHolidays))
		for key, pair := range c.Holidays.FloatingDateHolidays {
			var rule holidays.FloatingRule
			if len(pair) == 2 {
				rule = holidays.FloatingRule{Weekday: time.Weekday(pair[0]), Occurrence: pair[1]}
			}
			cfg.FloatingDateHolidays[normalizeMonthKey(key)] = rule
		}
	}

	return cfg
}

func normalizeMonthKey(key string) string {
	if n, err := strconv.Atoi(key); err == nil && len(key) == 1 {
		return fmt.Sprintf("%02d", n)
	}
	return key
}
