package config

import (
	"slices"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Data    DataConfig    `yaml:"data" mapstructure:"data"`
	Fetch   FetchConfig   `yaml:"fetch" mapstructure:"fetch"`
	Build   BuildConfig   `yaml:"build" mapstructure:"build"`
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Search  SearchConfig  `yaml:"search" mapstructure:"search"`
	Notable NotableConfig `yaml:"notable" mapstructure:"notable"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// DataConfig locates the records files. A non-empty BaseURL takes
// precedence over Dir; an s3:// BaseURL reads from a bucket using S3.
type DataConfig struct {
	Dir     string   `yaml:"dir" mapstructure:"dir"`
	BaseURL string   `yaml:"base_url" mapstructure:"base_url"`
	S3      S3Config `yaml:"s3" mapstructure:"s3"`
}

// S3Config holds the endpoint and credentials for s3:// records locations.
type S3Config struct {
	Endpoint  string `yaml:"endpoint" mapstructure:"endpoint"`
	Region    string `yaml:"region" mapstructure:"region"`
	AccessKey string `yaml:"access_key" mapstructure:"access_key"`
	SecretKey string `yaml:"secret_key" mapstructure:"secret_key"`
	Insecure  bool   `yaml:"insecure" mapstructure:"insecure"`
	PathStyle bool   `yaml:"path_style" mapstructure:"path_style"`
}

// FetchConfig tunes remote records fetches.
type FetchConfig struct {
	TimeoutSecs int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	RateLimit   float64 `yaml:"rate_limit" mapstructure:"rate_limit"`
	UserAgent   string  `yaml:"user_agent" mapstructure:"user_agent"`
}

// Timeout returns the request timeout.
func (f FetchConfig) Timeout() time.Duration {
	return time.Duration(f.TimeoutSecs) * time.Second
}

// BuildConfig configures the site data build. Input file names are relative
// to DataDir unless absolute.
type BuildConfig struct {
	DataDir      string `yaml:"data_dir" mapstructure:"data_dir"`
	PeopleFile   string `yaml:"people_file" mapstructure:"people_file"`
	CountsFile   string `yaml:"counts_file" mapstructure:"counts_file"`
	IndustryFile string `yaml:"industry_file" mapstructure:"industry_file"`
	LocationFile string `yaml:"location_file" mapstructure:"location_file"`
	OutDir       string `yaml:"out_dir" mapstructure:"out_dir"`
}

// ServerConfig configures the static site server.
type ServerConfig struct {
	Port        int      `yaml:"port" mapstructure:"port"`
	SiteDir     string   `yaml:"site_dir" mapstructure:"site_dir"`
	CORSOrigins []string `yaml:"cors_origins" mapstructure:"cors_origins"`
}

// SearchConfig configures interactive search.
type SearchConfig struct {
	DebounceMS int `yaml:"debounce_ms" mapstructure:"debounce_ms"`
}

// Debounce returns the search debounce interval.
func (s SearchConfig) Debounce() time.Duration {
	return time.Duration(s.DebounceMS) * time.Millisecond
}

// NotableConfig points at an alternate notable-name list.
type NotableConfig struct {
	File string `yaml:"file" mapstructure:"file"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("MILLIONAIRES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("data.dir", "site/assets/records")
	v.SetDefault("data.base_url", "")
	v.SetDefault("data.s3.endpoint", "")
	v.SetDefault("data.s3.region", "us-east-1")
	v.SetDefault("data.s3.access_key", "")
	v.SetDefault("data.s3.secret_key", "")
	v.SetDefault("data.s3.insecure", false)
	v.SetDefault("data.s3.path_style", false)
	v.SetDefault("fetch.timeout_secs", 30)
	v.SetDefault("fetch.rate_limit", 5.0)
	v.SetDefault("fetch.user_agent", "millionaires/1.0")
	v.SetDefault("build.data_dir", "Data")
	v.SetDefault("build.people_file", "output_remove_est.csv")
	v.SetDefault("build.counts_file", "counts_from_csv")
	v.SetDefault("build.industry_file", "all_states_industry_count.csv")
	v.SetDefault("build.location_file", "location_counts_OCR.csv")
	v.SetDefault("build.out_dir", "site/assets/records")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.site_dir", "site")
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("search.debounce_ms", 80)
	v.SetDefault("notable.file", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the settings a command mode depends on. Modes are
// "query" (page commands and browse), "build", "counts", and "serve".
func (c *Config) Validate(mode string) error {
	var errs []string

	switch mode {
	case "query":
		if c.Data.Dir == "" && c.Data.BaseURL == "" {
			errs = append(errs, "data.dir or data.base_url is required")
		}
		if strings.HasPrefix(c.Data.BaseURL, "s3://") && (c.Data.S3.AccessKey == "") != (c.Data.S3.SecretKey == "") {
			errs = append(errs, "data.s3.access_key and data.s3.secret_key must be set together")
		}
		if c.Data.BaseURL != "" && c.Fetch.TimeoutSecs <= 0 {
			errs = append(errs, "fetch.timeout_secs must be > 0")
		}
		if c.Fetch.RateLimit < 0 {
			errs = append(errs, "fetch.rate_limit must be >= 0")
		}
		if c.Search.DebounceMS < 0 {
			errs = append(errs, "search.debounce_ms must be >= 0")
		}
	case "build":
		for key, value := range map[string]string{
			"build.people_file":   c.Build.PeopleFile,
			"build.counts_file":   c.Build.CountsFile,
			"build.industry_file": c.Build.IndustryFile,
			"build.out_dir":       c.Build.OutDir,
		} {
			if value == "" {
				errs = append(errs, key+" is required")
			}
		}
	case "counts":
		if c.Build.PeopleFile == "" || c.Build.CountsFile == "" {
			errs = append(errs, "build.people_file and build.counts_file are required")
		}
	case "serve":
		if c.Server.Port <= 0 || c.Server.Port > 65535 {
			errs = append(errs, "server.port must be > 0 and <= 65535")
		}
		if c.Server.SiteDir == "" {
			errs = append(errs, "server.site_dir is required")
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(errs) > 0 {
		slices.Sort(errs)
		return eris.Errorf("config: %s", strings.Join(errs, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
