package analysis

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/devskill-org/daylight/catalog"
	"github.com/devskill-org/daylight/daylight"
	"github.com/devskill-org/daylight/report"
	"github.com/devskill-org/daylight/solar"
	"github.com/devskill-org/daylight/sunapi"
	"github.com/devskill-org/daylight/utils"
)

// EnvPrefix is the prefix for environment variable overrides, e.g.
// DAYLIGHT_USE_API=false.
const EnvPrefix = "DAYLIGHT"

// Config represents the configuration for a daylight analysis run
type Config struct {
	// Target date
	Date         string `mapstructure:"date" json:"date"`                   // Calendar date, YYYY-MM-DD
	SolsticeYear int    `mapstructure:"solstice_year" json:"solstice_year"` // Use the June solstice of this year instead of date (0 = off)

	// Input
	Catalog       string `mapstructure:"catalog" json:"catalog"`               // Embedded catalog name
	CatalogFile   string `mapstructure:"catalog_file" json:"catalog_file"`     // Optional CSV file replacing the embedded catalog
	MinPopulation int64  `mapstructure:"min_population" json:"min_population"` // Drop smaller cities
	SampleSize    int    `mapstructure:"sample_size" json:"sample_size"`       // Keep only the first N cities after filtering (0 = all)

	// Output
	Top       int    `mapstructure:"top" json:"top"`             // Number of ranked rows (0 = all)
	Output    string `mapstructure:"output" json:"output"`       // CSV output path
	Breakdown string `mapstructure:"breakdown" json:"breakdown"` // none, country, region
	Color     bool   `mapstructure:"color" json:"color"`         // Colour console output
	Title     string `mapstructure:"title" json:"title"`         // Console report title

	// Remote time service
	UseAPI     bool          `mapstructure:"use_api" json:"use_api"`         // Try the remote service before local computation
	APIURL     string        `mapstructure:"api_url" json:"api_url"`         // Remote service endpoint
	APITimeout time.Duration `mapstructure:"api_timeout" json:"api_timeout"` // Timeout for API calls
	RateLimit  float64       `mapstructure:"rate_limit" json:"rate_limit"`   // Requests per second (0 = unlimited)
	UserAgent  string        `mapstructure:"user_agent" json:"user_agent"`   // User agent for API client

	// Local computation
	Engine      string `mapstructure:"engine" json:"engine"`             // suncalc, sunrise
	PolarPolicy string `mapstructure:"polar_policy" json:"polar_policy"` // latitude, declination
	CacheSize   int    `mapstructure:"cache_size" json:"cache_size"`     // Result cache entries (0 = disabled)

	// Observability
	MetricsFile string `mapstructure:"metrics_file" json:"metrics_file"` // Prometheus textfile path (empty = disabled)
	LogLevel    string `mapstructure:"log_level" json:"log_level"`       // Log level: debug, info, warn, error
	LogFormat   string `mapstructure:"log_format" json:"log_format"`     // Log format: text, json
	LogFile     string `mapstructure:"log_file" json:"log_file"`         // Also append logs to this file (empty = console only)
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Date:          "2024-06-20", // 2024 June solstice
		SolsticeYear:  0,
		Catalog:       catalog.World,
		CatalogFile:   "",
		MinPopulation: 200000,
		SampleSize:    0,
		Top:           20,
		Output:        "cities_with_sunrise_sunset.csv",
		Breakdown:     report.BreakdownNone,
		Color:         true,
		Title:         "LONGEST DAYS OF THE SUMMER SOLSTICE",
		UseAPI:        true,
		APIURL:        sunapi.DefaultBaseURL,
		APITimeout:    10 * time.Second,
		RateLimit:     1.0,
		UserAgent:     "daylight/1.0",
		Engine:        solar.EngineSuncalc,
		PolarPolicy:   daylight.PolicyLatitude,
		CacheSize:     daylight.DefaultCacheSize,
		MetricsFile:   "",
		LogLevel:      "info",
		LogFormat:     "text",
		LogFile:       "",
	}
}

// SetDefaults registers DefaultConfig values on v so that every key is known
// to viper (needed for environment overrides and flag binding).
func SetDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("date", d.Date)
	v.SetDefault("solstice_year", d.SolsticeYear)
	v.SetDefault("catalog", d.Catalog)
	v.SetDefault("catalog_file", d.CatalogFile)
	v.SetDefault("min_population", d.MinPopulation)
	v.SetDefault("sample_size", d.SampleSize)
	v.SetDefault("top", d.Top)
	v.SetDefault("output", d.Output)
	v.SetDefault("breakdown", d.Breakdown)
	v.SetDefault("color", d.Color)
	v.SetDefault("title", d.Title)
	v.SetDefault("use_api", d.UseAPI)
	v.SetDefault("api_url", d.APIURL)
	v.SetDefault("api_timeout", d.APITimeout.String())
	v.SetDefault("rate_limit", d.RateLimit)
	v.SetDefault("user_agent", d.UserAgent)
	v.SetDefault("engine", d.Engine)
	v.SetDefault("polar_policy", d.PolarPolicy)
	v.SetDefault("cache_size", d.CacheSize)
	v.SetDefault("metrics_file", d.MetricsFile)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)
	v.SetDefault("log_file", d.LogFile)
}

// NewViper returns a viper instance with defaults and environment overrides
// configured.
func NewViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// LoadConfig reads configFile (YAML, JSON or TOML) if given, otherwise looks
// for daylight.yaml in the working directory, then decodes and validates
// the merged configuration.
func LoadConfig(v *viper.Viper, configFile string) (*Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("daylight")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return decode(v)
}

// LoadConfigFromReader loads a configuration of the given type ("yaml",
// "json", ...) from an io.Reader
func LoadConfigFromReader(reader io.Reader, configType string) (*Config, error) {
	v := NewViper()
	v.SetConfigType(configType)
	if err := v.ReadConfig(reader); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Config, error) {
	config := DefaultConfig()
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// SaveConfigToWriter writes the configuration as indented JSON
func (c *Config) SaveConfigToWriter(writer io.Writer) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config JSON: %w", err)
	}

	return nil
}

// TargetDate returns the calendar date to analyse.
func (c *Config) TargetDate() (time.Time, error) {
	if c.SolsticeYear > 0 {
		return solar.JuneSolsticeDate(c.SolsticeYear), nil
	}
	d, err := utils.ParseISODate(c.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", c.Date, err)
	}
	return d, nil
}

// Validate checks if the configuration values are valid
func (c *Config) Validate() error {
	if c.SolsticeYear < 0 {
		return fmt.Errorf("solstice_year must be non-negative, got: %d", c.SolsticeYear)
	}

	if _, err := c.TargetDate(); err != nil {
		return err
	}

	if c.CatalogFile == "" {
		if _, err := catalog.Load(c.Catalog); err != nil {
			return fmt.Errorf("invalid catalog: %w", err)
		}
	}

	if c.MinPopulation < 0 {
		return fmt.Errorf("min_population must be non-negative, got: %d", c.MinPopulation)
	}

	if c.SampleSize < 0 {
		return fmt.Errorf("sample_size must be non-negative, got: %d", c.SampleSize)
	}

	if c.Top < 0 {
		return fmt.Errorf("top must be non-negative, got: %d", c.Top)
	}

	if c.Output == "" {
		return fmt.Errorf("output cannot be empty")
	}

	validBreakdowns := map[string]bool{
		report.BreakdownNone:    true,
		report.BreakdownCountry: true,
		report.BreakdownRegion:  true,
	}
	if !validBreakdowns[c.Breakdown] {
		return fmt.Errorf("invalid breakdown: %s, must be one of: none, country, region", c.Breakdown)
	}

	if c.UseAPI {
		if c.APIURL == "" {
			return fmt.Errorf("api_url cannot be empty when use_api is set")
		}
		if c.APITimeout <= 0 {
			return fmt.Errorf("api_timeout must be greater than 0, got: %s", c.APITimeout)
		}
		if c.UserAgent == "" {
			return fmt.Errorf("user_agent cannot be empty")
		}
	}

	if c.RateLimit < 0 {
		return fmt.Errorf("rate_limit must be non-negative, got: %f", c.RateLimit)
	}

	if _, err := solar.NewEngine(c.Engine); err != nil {
		return err
	}

	if _, err := daylight.NewPolicy(c.PolarPolicy); err != nil {
		return err
	}

	if c.CacheSize < 0 {
		return fmt.Errorf("cache_size must be non-negative, got: %d", c.CacheSize)
	}

	// Validate log level
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level: %s, must be one of: debug, info, warn, error", c.LogLevel)
	}

	// Validate log format
	validLogFormats := map[string]bool{
		"text": true,
		"json": true,
	}
	if !validLogFormats[c.LogFormat] {
		return fmt.Errorf("invalid log_format: %s, must be one of: text, json", c.LogFormat)
	}

	return nil
}
