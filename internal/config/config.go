// Package config loads the formkit server and CLI configuration from YAML.
package config

import (
	"fmt"
	"os"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"
	theme "github.com/goliatone/go-theme"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formkit/internal/logging/gologger"
	"github.com/goliatone/go-formkit/pkg/mutation"
	"github.com/goliatone/go-formkit/pkg/translation"
)

// EnvConfigPath overrides the config path given on the command line.
const EnvConfigPath = "FORMKIT_CONFIG"

const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

const invalidMessage = "formkit config: invalid configuration"

type Config struct {
	Server    ServerConfig        `yaml:"server"`
	Locales   translation.Locales `yaml:"locales"`
	Storage   StorageConfig       `yaml:"storage"`
	Logging   LoggingConfig       `yaml:"logging"`
	Mutations MutationsConfig     `yaml:"mutations"`
	Search    SearchConfig        `yaml:"search"`
	Fixtures  FixturesConfig      `yaml:"fixtures"`
	Theme     ThemeConfig         `yaml:"theme"`
}

type ServerConfig struct {
	Addr    string `yaml:"addr"`
	BaseURL string `yaml:"base_url"`
	// Renderer names the page renderer; vanilla is the only HTML one.
	Renderer string `yaml:"renderer"`
	// TemplatesDir holds page templates that replace the embedded ones.
	TemplatesDir string `yaml:"templates_dir"`
	// ValidateRequests turns on OpenAPI request validation for the JSON API.
	ValidateRequests bool `yaml:"validate_requests"`
	ShowInlineErrors bool `yaml:"show_inline_errors"`
}

type StorageConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

type LoggingConfig struct {
	Level     string `yaml:"level"`
	Format    string `yaml:"format"`
	AddSource bool   `yaml:"add_source"`
}

type MutationsConfig struct {
	// Policies maps a call site ("attribute.clear") to silent or surfaced.
	Policies map[string]string `yaml:"policies"`
	// NotifySuccess adds a success notification to surfaced sites.
	NotifySuccess bool `yaml:"notify_success"`
}

type SearchConfig struct {
	DefaultLimit int `yaml:"default_limit"`
	MaxLimit     int `yaml:"max_limit"`
}

type FixturesConfig struct {
	Catalogs string `yaml:"catalogs"`
	Schema   string `yaml:"schema"`
}

type ThemeConfig struct {
	Name    string            `yaml:"name"`
	Variant string            `yaml:"variant"`
	Tokens  map[string]string `yaml:"tokens"`
	CSSVars map[string]string `yaml:"css_vars"`
}

func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Addr:             ":8080",
			Renderer:         "vanilla",
			ValidateRequests: true,
			ShowInlineErrors: true,
		},
		Locales: translation.Locales{Default: "en", Supported: []string{"en"}},
		Storage: StorageConfig{Driver: DriverMemory},
		Logging: LoggingConfig{Level: "info", Format: "json"},
		Mutations: MutationsConfig{
			Policies: map[string]string{},
		},
		Search: SearchConfig{DefaultLimit: 50, MaxLimit: 200},
		Fixtures: FixturesConfig{
			Catalogs: "fixtures/catalogs.yaml",
			Schema:   "fixtures/schema.yaml",
		},
	}
}

// Load reads path over the defaults. FORMKIT_CONFIG, when set, replaces
// path. An empty path yields the defaults.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if env := strings.TrimSpace(os.Getenv(EnvConfigPath)); env != "" {
		path = env
	}
	if strings.TrimSpace(path) == "" {
		return cfg, cfg.Validate()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("formkit config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("formkit config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every section. Failures come back as a go-errors
// validation error with one field error per section.
func (c Config) Validate() error {
	errs := validation.Errors{}
	errs["server.addr"] = validation.Validate(c.Server.Addr, validation.Required)
	errs["server.renderer"] = validation.Validate(c.Server.Renderer, validation.In("", "vanilla"))
	errs["locales"] = c.Locales.Validate()
	errs["storage.driver"] = validation.Validate(c.Storage.Driver,
		validation.Required, validation.In(DriverMemory, DriverSQLite, DriverPostgres))
	errs["storage.dsn"] = validation.Validate(c.Storage.DSN,
		validation.When(c.Storage.Driver == DriverSQLite || c.Storage.Driver == DriverPostgres, validation.Required))
	errs["logging.level"] = validation.Validate(strings.ToLower(c.Logging.Level),
		validation.In("", "trace", "debug", "info", "warn", "warning", "error", "fatal"))
	errs["logging.format"] = validation.Validate(strings.ToLower(c.Logging.Format),
		validation.In("", "json", "console", "pretty"))
	errs["mutations.policies"] = validatePolicies(c.Mutations.Policies)
	errs["search.default_limit"] = validation.Validate(c.Search.DefaultLimit, validation.Min(0))
	errs["search.max_limit"] = validation.Validate(c.Search.MaxLimit, validation.Min(0))

	err := errs.Filter()
	if err == nil {
		return nil
	}
	return goerrors.FromOzzoValidation(err, invalidMessage).
		WithTextCode("CONFIG_INVALID")
}

func validatePolicies(policies map[string]string) error {
	for site, raw := range policies {
		if _, err := mutation.ParsePolicy(raw); err != nil {
			return fmt.Errorf("site %q: %w", site, err)
		}
	}
	return nil
}

// MutationPolicies merges configured policies over mutation.DefaultPolicies.
func (c Config) MutationPolicies() map[mutation.Site]mutation.Policy {
	out := mutation.DefaultPolicies()
	for site, raw := range c.Mutations.Policies {
		policy, err := mutation.ParsePolicy(raw)
		if err != nil {
			continue
		}
		out[mutation.Site(strings.TrimSpace(site))] = policy
	}
	return out
}

// LoggerConfig maps the logging section onto the go-logger provider.
func (c Config) LoggerConfig() gologger.Config {
	return gologger.Config{
		Level:     c.Logging.Level,
		Format:    c.Logging.Format,
		AddSource: c.Logging.AddSource,
	}
}

// RendererTheme returns the theme handed to renderers, or nil when no theme
// is configured.
func (c Config) RendererTheme() *theme.RendererConfig {
	t := c.Theme
	if t.Name == "" && t.Variant == "" && len(t.Tokens) == 0 && len(t.CSSVars) == 0 {
		return nil
	}
	return &theme.RendererConfig{
		Theme:   t.Name,
		Variant: t.Variant,
		Tokens:  t.Tokens,
		CSSVars: t.CSSVars,
	}
}
