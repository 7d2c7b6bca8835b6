// Package config loads the docsite settings from docsite.yaml, .env files and
// DOCSITE_* environment variables.
//
// Precedence, highest first: explicit overrides (command-line flags),
// environment, config file, defaults. Keys map to environment variables by
// upper-casing and replacing "." with "_": serve.port is DOCSITE_SERVE_PORT.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/jigarkkarangiya/docs/internal/report"
	"github.com/jigarkkarangiya/docs/internal/website"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "DOCSITE"

// Config holds the docsite settings.
type Config struct {
	// SiteDir holds docs/, blog/, static/ and i18n/
	SiteDir string `mapstructure:"siteDir" yaml:"siteDir"`
	// OutDir receives the built site
	OutDir string `mapstructure:"outDir" yaml:"outDir"`
	// CacheDir holds the incremental build manifest
	CacheDir string `mapstructure:"cacheDir" yaml:"cacheDir"`
	// PrettyHTML indents the generated HTML
	PrettyHTML bool `mapstructure:"prettyHTML" yaml:"prettyHTML"`
	// Compress writes .br files next to text outputs
	Compress bool `mapstructure:"compress" yaml:"compress"`
	// Concurrency bounds parallel file writes
	Concurrency int `mapstructure:"concurrency" yaml:"concurrency"`
	// Ignore lists glob patterns of content and static files to skip
	Ignore []string `mapstructure:"ignore" yaml:"ignore"`
	// OnA11yIssues is the severity of accessibility issues in built pages
	OnA11yIssues report.Severity `mapstructure:"onA11yIssues" yaml:"onA11yIssues"`

	Log   LogConfig   `mapstructure:"log" yaml:"log"`
	Serve ServeConfig `mapstructure:"serve" yaml:"serve"`
	Site  SiteConfig  `mapstructure:"site" yaml:"site"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is debug, info, warn or error
	Level string `mapstructure:"level" yaml:"level"`
	// Format is text or json
	Format string `mapstructure:"format" yaml:"format"`
}

// ServeConfig configures the dev server.
type ServeConfig struct {
	Host       string        `mapstructure:"host" yaml:"host"`
	Port       int           `mapstructure:"port" yaml:"port"`
	LiveReload bool          `mapstructure:"liveReload" yaml:"liveReload"`
	Debounce   time.Duration `mapstructure:"debounce" yaml:"debounce"`

	// MaxClientsPerIP bounds live-reload connections per client
	MaxClientsPerIP int `mapstructure:"maxClientsPerIP" yaml:"maxClientsPerIP"`
}

// Addr is the listen address.
func (s ServeConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// SiteConfig overrides fields of the built-in site configuration. Empty
// values keep the built-in value.
type SiteConfig struct {
	URL     string `mapstructure:"url" yaml:"url,omitempty"`
	BaseURL string `mapstructure:"baseUrl" yaml:"baseUrl,omitempty"`
	Title   string `mapstructure:"title" yaml:"title,omitempty"`
	Tagline string `mapstructure:"tagline" yaml:"tagline,omitempty"`
}

// Options configures Load.
type Options struct {
	// File is an explicit config file; empty searches Dir for docsite.yaml
	File string
	// Dir is searched for docsite.yaml and .env files; empty means "."
	Dir string
	// Overrides are applied last, keyed like the config file
	Overrides map[string]any
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("siteDir", "site")
	v.SetDefault("outDir", "build")
	v.SetDefault("cacheDir", ".docsite")
	v.SetDefault("prettyHTML", false)
	v.SetDefault("compress", false)
	v.SetDefault("concurrency", 8)
	v.SetDefault("ignore", []string{})
	v.SetDefault("onA11yIssues", string(report.Log))

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("serve.host", "localhost")
	v.SetDefault("serve.port", 3000)
	v.SetDefault("serve.liveReload", true)
	v.SetDefault("serve.debounce", 300*time.Millisecond)
	v.SetDefault("serve.maxClientsPerIP", 32)

	// Registered so AutomaticEnv picks up DOCSITE_SITE_* variables.
	v.SetDefault("site.url", "")
	v.SetDefault("site.baseUrl", "")
	v.SetDefault("site.title", "")
	v.SetDefault("site.tagline", "")
}

// Load reads the configuration.
func Load(opts Options) (Config, error) {
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}

	if err := loadEnvFiles(dir); err != nil {
		return Config{}, err
	}

	v := viper.New()
	setDefaults(v)

	if opts.File != "" {
		v.SetConfigFile(opts.File)
	} else {
		v.AddConfigPath(dir)
		v.SetConfigName("docsite")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || opts.File != "" {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	for key, value := range opts.Overrides {
		v.Set(key, value)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// loadEnvFiles loads .env.local and then .env from dir. Variables already set
// in the environment are not overwritten.
func loadEnvFiles(dir string) error {
	for _, name := range []string{".env.local", ".env"} {
		p := filepath.Join(dir, name)
		if err := godotenv.Load(p); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// Validate checks values Load cannot fix up.
func (c Config) Validate() error {
	var errs []error

	if c.SiteDir == "" {
		errs = append(errs, errors.New("siteDir is required"))
	}
	if c.OutDir == "" {
		errs = append(errs, errors.New("outDir is required"))
	}
	if c.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("concurrency must be positive, got %d", c.Concurrency))
	}
	if c.Serve.Port < 0 || c.Serve.Port > 65535 {
		errs = append(errs, fmt.Errorf("serve.port %d out of range", c.Serve.Port))
	}
	if c.Serve.MaxClientsPerIP < 1 {
		errs = append(errs, errors.New("serve.maxClientsPerIP must be positive"))
	}
	if c.Serve.Debounce < 0 {
		errs = append(errs, errors.New("serve.debounce must not be negative"))
	}
	if !c.OnA11yIssues.Valid() {
		errs = append(errs, fmt.Errorf("onA11yIssues: unknown severity %q", c.OnA11yIssues))
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format must be text or json, got %q", c.Log.Format))
	}

	return errors.Join(errs...)
}

// Apply returns site with the configured overrides applied.
func (c Config) Apply(site website.SiteConfig) website.SiteConfig {
	if c.Site.URL != "" {
		site.URL = c.Site.URL
	}
	if c.Site.BaseURL != "" {
		site.BaseURL = c.Site.BaseURL
	}
	if c.Site.Title != "" {
		site.Title = c.Site.Title
	}
	if c.Site.Tagline != "" {
		site.Tagline = c.Site.Tagline
	}
	return site
}
