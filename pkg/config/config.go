package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	PostcodeSourceFile  = "file"
	PostcodeSourceRedis = "redis"

	LabelMappingObserved   = "observed"
	LabelMappingByCategory = "by_category"
)

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
	Data struct {
		Dir                string `yaml:"dir"`
		PostcodesFile      string `yaml:"postcodes_file"`
		PriceRecordsFile   string `yaml:"price_records_file"`
		PropertiesInfoFile string `yaml:"properties_info_file"`
		RawListingsDir     string `yaml:"raw_listings_dir"`
	} `yaml:"data"`
	Postcodes struct {
		Source string `yaml:"source"`
	} `yaml:"postcodes"`
	Redis struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Taxonomy struct {
		LabelMapping string `yaml:"label_mapping"`
	} `yaml:"taxonomy"`
	Ingest struct {
		Workers        int   `yaml:"workers"`
		ValidateStored *bool `yaml:"validate_stored"`
	} `yaml:"ingest"`
	RateLimit struct {
		PerMinute int `yaml:"per_minute"`
		Burst     int `yaml:"burst"`
	} `yaml:"ratelimit"`
}

// LoadConfig reads the YAML file at path, applies environment overrides and
// defaults, then validates. A missing file is not an error: the defaults
// plus environment are enough to run locally.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("failed to unmarshal config: %w", err)
			}
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns a validated configuration built only from defaults.
func Default() *Config {
	var cfg Config
	applyDefaults(&cfg)
	return &cfg
}

func applyEnv(cfg *Config) error {
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if dir := os.Getenv("DATA_DIR"); dir != "" {
		cfg.Data.Dir = dir
	}
	if source := os.Getenv("POSTCODE_SOURCE"); source != "" {
		cfg.Postcodes.Source = source
	}
	if raw := os.Getenv("INGEST_VALIDATE_STORED"); raw != "" {
		validate, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("invalid INGEST_VALIDATE_STORED value: %w", err)
		}
		cfg.Ingest.ValidateStored = &validate
	}
	if mapping := os.Getenv("LABEL_MAPPING"); mapping != "" {
		cfg.Taxonomy.LabelMapping = mapping
	}
	if host := os.Getenv("REDIS_HOST"); host != "" {
		cfg.Redis.Host = host
	}
	if password := os.Getenv("REDIS_PASSWORD"); password != "" {
		cfg.Redis.Password = password
	}

	ints := []struct {
		env  string
		dest *int
	}{
		{"SERVER_PORT", &cfg.Server.Port},
		{"REDIS_PORT", &cfg.Redis.Port},
		{"REDIS_DB", &cfg.Redis.DB},
		{"INGEST_WORKERS", &cfg.Ingest.Workers},
	}
	for _, item := range ints {
		raw := os.Getenv(item.env)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("invalid %s value: %w", item.env, err)
		}
		*item.dest = n
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "INFO"
	}
	if cfg.Data.Dir == "" {
		cfg.Data.Dir = "data"
	}
	if cfg.Data.PostcodesFile == "" {
		cfg.Data.PostcodesFile = "postcodes/{country}.csv"
	}
	if cfg.Data.PriceRecordsFile == "" {
		cfg.Data.PriceRecordsFile = "price_records/{country}/{state}/{suburb}.csv"
	}
	if cfg.Data.PropertiesInfoFile == "" {
		cfg.Data.PropertiesInfoFile = "properties_info/{country}/{state}/{suburb}.json"
	}
	if cfg.Data.RawListingsDir == "" {
		cfg.Data.RawListingsDir = "raw_listings"
	}
	if cfg.Postcodes.Source == "" {
		cfg.Postcodes.Source = PostcodeSourceFile
	}
	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.Taxonomy.LabelMapping == "" {
		cfg.Taxonomy.LabelMapping = LabelMappingObserved
	}
	if cfg.Ingest.Workers <= 0 {
		cfg.Ingest.Workers = 4
	}
	if cfg.Ingest.ValidateStored == nil {
		validate := true
		cfg.Ingest.ValidateStored = &validate
	}
	if cfg.RateLimit.PerMinute <= 0 {
		cfg.RateLimit.PerMinute = 100
	}
	if cfg.RateLimit.Burst <= 0 {
		cfg.RateLimit.Burst = 10
	}
}

// Validate checks the values that defaults cannot repair.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535")
	}
	if c.Redis.Port <= 0 || c.Redis.Port > 65535 {
		return fmt.Errorf("REDIS_PORT must be between 1 and 65535")
	}
	if c.Redis.DB < 0 {
		return fmt.Errorf("REDIS_DB must be non-negative")
	}
	switch c.Postcodes.Source {
	case PostcodeSourceFile, PostcodeSourceRedis:
	default:
		return fmt.Errorf("unknown postcode source %q", c.Postcodes.Source)
	}
	switch c.Taxonomy.LabelMapping {
	case LabelMappingObserved, LabelMappingByCategory:
	default:
		return fmt.Errorf("unknown taxonomy label mapping %q", c.Taxonomy.LabelMapping)
	}
	if !strings.Contains(c.Data.PostcodesFile, "{country}") {
		return fmt.Errorf("postcodes_file must contain a {country} placeholder")
	}
	return nil
}

// PostcodesPath resolves the postcode table template for one country.
func (c *Config) PostcodesPath(country string) string {
	return c.resolve(c.Data.PostcodesFile, country, "", "")
}

func (c *Config) PriceRecordsPath(country, state, suburb string) string {
	return c.resolve(c.Data.PriceRecordsFile, country, state, suburb)
}

func (c *Config) PropertiesInfoPath(country, state, suburb string) string {
	return c.resolve(c.Data.PropertiesInfoFile, country, state, suburb)
}

// PostcodesTemplate is the postcode path template with the data dir applied
// but the {country} placeholder left in place.
func (c *Config) PostcodesTemplate() string {
	return c.join(c.Data.PostcodesFile)
}

func (c *Config) PriceRecordsTemplate() string {
	return c.join(c.Data.PriceRecordsFile)
}

func (c *Config) PropertiesInfoTemplate() string {
	return c.join(c.Data.PropertiesInfoFile)
}

// ValidateStoredRows reports whether ingest validates property info that is
// already on disk before merging into it.
func (c *Config) ValidateStoredRows() bool {
	return c.Ingest.ValidateStored == nil || *c.Ingest.ValidateStored
}

// RawListingsRoot is the directory holding scraped listing files.
func (c *Config) RawListingsRoot() string {
	return c.join(c.Data.RawListingsDir)
}

func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

func (c *Config) resolve(template, country, state, suburb string) string {
	return FormatPath(c.join(template), country, state, suburb)
}

func (c *Config) join(template string) string {
	if filepath.IsAbs(template) || c.Data.Dir == "" {
		return template
	}
	return filepath.Join(c.Data.Dir, template)
}

// FormatPath fills the {country}, {state} and {suburb} placeholders.
func FormatPath(template, country, state, suburb string) string {
	return strings.NewReplacer(
		"{country}", country,
		"{state}", state,
		"{suburb}", suburb,
	).Replace(template)
}
