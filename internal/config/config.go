// Package config loads runtime settings from the environment and an optional .env file.
package config

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	defaultEnvFile           = ".env"
	defaultPort              = "8080"
	defaultReadHeaderTimeout = 10 * time.Second
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 15 * time.Second
	defaultIdleTimeout       = 60 * time.Second
	defaultRequestTimeout    = 30 * time.Second
	defaultShutdownTimeout   = 10 * time.Second
	defaultSessionCookie     = "SITE_SESSION"
	defaultBlogCacheTTL      = 5 * time.Minute
	defaultLogLevel          = "info"
	defaultLogMaxSizeMB      = 10
	minSessionKeyLength      = 32
)

// Config captures all runtime configuration organised by concern.
type Config struct {
	Server    ServerConfig
	Paths     PathsConfig
	Site      SiteConfig
	Session   SessionConfig
	Blog      BlogConfig
	Contact   ContactConfig
	Analytics AnalyticsConfig
	Logging   LoggingConfig
}

// ServerConfig configures HTTP server parameters.
type ServerConfig struct {
	Addr              string
	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	RequestTimeout    time.Duration
	ShutdownTimeout   time.Duration
}

// PathsConfig locates templates, assets and data on disk.
type PathsConfig struct {
	Templates string
	Public    string
	Locales   string
	Content   string
	Data      string
}

// SiteConfig holds site-wide presentation settings.
type SiteConfig struct {
	// Origin is the public scheme://host, handed to the YouTube player and used
	// for canonical URLs. Empty means "derive from the request".
	Origin       string
	BasePath     string
	DevMode      bool
	WatchCatalog bool
	DefaultLang  string
	Languages    []string
}

// SessionConfig controls the signed UI-state cookie.
type SessionConfig struct {
	Key        string
	CookieName string
	Secure     bool
}

// BlogConfig points the teaser at a JSON feed.
type BlogConfig struct {
	FeedURL  string
	CacheTTL time.Duration
}

// ContactConfig configures the form relay.
type ContactConfig struct {
	Endpoint string
}

// AnalyticsConfig holds client instrumentation surfaced to templates.
type AnalyticsConfig struct {
	GA4MeasurementID string
	Debug            bool
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level     string
	File      string
	MaxSizeMB int
}

// ValidationError is returned when required configuration fields are missing or invalid.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the missing/invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Option customises Load behaviour.
type Option func(*loaderOptions)

type loaderOptions struct {
	envFile      string
	envMap       map[string]string
	useSystemEnv bool
}

// WithEnvFile overrides the .env file path used for local overrides.
func WithEnvFile(path string) Option {
	return func(o *loaderOptions) {
		o.envFile = path
	}
}

// WithEnvMap injects an explicit key/value map for environment lookups. Values in the map
// take precedence over system environment variables.
func WithEnvMap(values map[string]string) Option {
	return func(o *loaderOptions) {
		o.envMap = values
	}
}

// WithoutSystemEnv disables reading from os.Getenv, relying only on provided maps and .env files.
func WithoutSystemEnv() Option {
	return func(o *loaderOptions) {
		o.useSystemEnv = false
	}
}

// Load assembles the configuration from defaults, .env overrides and environment variables.
// A session key given as file:///path is read from that file.
func Load(ctx context.Context, opts ...Option) (Config, error) {
	options := loaderOptions{
		envFile:      defaultEnvFile,
		useSystemEnv: true,
	}
	for _, opt := range opts {
		opt(&options)
	}

	dotEnvValues, err := loadDotEnv(options.envFile)
	if err != nil {
		return Config{}, err
	}

	lookup := func(key string) (string, bool) {
		if options.envMap != nil {
			if value, ok := options.envMap[key]; ok {
				return value, true
			}
		}
		if options.useSystemEnv {
			if value, ok := os.LookupEnv(key); ok {
				return value, true
			}
		}
		if dotEnvValues != nil {
			if value, ok := dotEnvValues[key]; ok {
				return value, true
			}
		}
		return "", false
	}

	// PORT is what most container platforms inject.
	port := stringWithDefault(lookup, "PORT", defaultPort)
	devMode := boolWithDefault(lookup, "SITE_DEV", boolWithDefault(lookup, "DEV", false))

	cfg := Config{
		Server: ServerConfig{
			Addr:              stringWithDefault(lookup, "SITE_ADDR", ":"+port),
			ReadHeaderTimeout: durationWithDefault(lookup, "SITE_SERVER_READ_HEADER_TIMEOUT", defaultReadHeaderTimeout),
			ReadTimeout:       durationWithDefault(lookup, "SITE_SERVER_READ_TIMEOUT", defaultReadTimeout),
			WriteTimeout:      durationWithDefault(lookup, "SITE_SERVER_WRITE_TIMEOUT", defaultWriteTimeout),
			IdleTimeout:       durationWithDefault(lookup, "SITE_SERVER_IDLE_TIMEOUT", defaultIdleTimeout),
			RequestTimeout:    durationWithDefault(lookup, "SITE_SERVER_REQUEST_TIMEOUT", defaultRequestTimeout),
			ShutdownTimeout:   durationWithDefault(lookup, "SITE_SERVER_SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		},
		Paths: PathsConfig{
			Templates: stringWithDefault(lookup, "SITE_TEMPLATES_DIR", "templates"),
			Public:    stringWithDefault(lookup, "SITE_PUBLIC_DIR", "public"),
			Locales:   stringWithDefault(lookup, "SITE_LOCALES_DIR", "locales"),
			Content:   stringWithDefault(lookup, "SITE_CONTENT_DIR", "content"),
			Data:      stringWithDefault(lookup, "SITE_DATA_DIR", "data"),
		},
		Site: SiteConfig{
			Origin:       strings.TrimRight(stringWithDefault(lookup, "SITE_ORIGIN", ""), "/"),
			BasePath:     stringWithDefault(lookup, "SITE_BASE_PATH", "/"),
			DevMode:      devMode,
			WatchCatalog: boolWithDefault(lookup, "SITE_WATCH_CATALOG", devMode),
			DefaultLang:  strings.ToLower(stringWithDefault(lookup, "SITE_DEFAULT_LANG", "en")),
			Languages:    csvWithDefault(lookup, "SITE_LANGUAGES", []string{"en", "pt"}),
		},
		Session: SessionConfig{
			Key:        stringWithDefault(lookup, "SITE_SESSION_KEY", ""),
			CookieName: stringWithDefault(lookup, "SITE_SESSION_COOKIE", defaultSessionCookie),
			Secure:     boolWithDefault(lookup, "SITE_SESSION_SECURE", !devMode),
		},
		Blog: BlogConfig{
			FeedURL:  stringWithDefault(lookup, "SITE_BLOG_FEED_URL", ""),
			CacheTTL: durationWithDefault(lookup, "SITE_BLOG_CACHE_TTL", defaultBlogCacheTTL),
		},
		Contact: ContactConfig{
			Endpoint: stringWithDefault(lookup, "SITE_CONTACT_ENDPOINT", ""),
		},
		Analytics: AnalyticsConfig{
			GA4MeasurementID: stringWithDefault(lookup, "SITE_GA_MEASUREMENT_ID", ""),
			Debug:            boolWithDefault(lookup, "SITE_ANALYTICS_DEBUG", false),
		},
		Logging: LoggingConfig{
			Level:     strings.ToLower(stringWithDefault(lookup, "LOG_LEVEL", defaultLogLevel)),
			File:      stringWithDefault(lookup, "LOG_FILE", ""),
			MaxSizeMB: intWithDefault(lookup, "LOG_MAX_SIZE_MB", defaultLogMaxSizeMB),
		},
	}

	for i, lang := range cfg.Site.Languages {
		cfg.Site.Languages[i] = strings.ToLower(lang)
	}
	if !strings.HasPrefix(cfg.Site.BasePath, "/") {
		cfg.Site.BasePath = "/" + cfg.Site.BasePath
	}

	key, err := resolveFileRef(ctx, cfg.Session.Key)
	if err != nil {
		return Config{}, err
	}
	cfg.Session.Key = key

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validateConfig(cfg Config) error {
	var missing []string

	if strings.TrimSpace(cfg.Server.Addr) == "" {
		missing = append(missing, "Server.Addr")
	}
	if cfg.Server.RequestTimeout <= 0 {
		missing = append(missing, "Server.RequestTimeout")
	}
	if cfg.Site.Origin != "" {
		u, err := url.Parse(cfg.Site.Origin)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			missing = append(missing, "Site.Origin")
		}
	}
	if len(cfg.Site.Languages) == 0 || !contains(cfg.Site.Languages, cfg.Site.DefaultLang) {
		missing = append(missing, "Site.DefaultLang")
	}
	if !cfg.Site.DevMode && len(cfg.Session.Key) < minSessionKeyLength {
		missing = append(missing, "Session.Key")
	}
	if cfg.Blog.FeedURL != "" {
		if u, err := url.Parse(cfg.Blog.FeedURL); err != nil || u.Host == "" {
			missing = append(missing, "Blog.FeedURL")
		}
	}
	if cfg.Contact.Endpoint != "" {
		if u, err := url.Parse(cfg.Contact.Endpoint); err != nil || u.Scheme != "https" && u.Scheme != "http" {
			missing = append(missing, "Contact.Endpoint")
		}
	}
	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		missing = append(missing, "Logging.Level")
	}

	if len(missing) > 0 {
		return &ValidationError{fields: missing}
	}
	return nil
}

// resolveFileRef reads file:// references so secrets can be mounted as files.
func resolveFileRef(ctx context.Context, value string) (string, error) {
	if !strings.HasPrefix(value, "file://") {
		return value, nil
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	path := strings.TrimPrefix(value, "file://")
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("config: read %s: %w", path, err)
	}
	return strings.TrimSpace(string(data)), nil
}

func loadDotEnv(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	file, err := os.Open(absPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: unable to read %s: %w", absPath, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	values := make(map[string]string)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		values[key] = strings.Trim(strings.TrimSpace(value), "\"'")
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("config: failed parsing %s: %w", absPath, err)
	}
	return values, nil
}

func stringWithDefault(lookup func(string) (string, bool), key, fallback string) string {
	if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func durationWithDefault(lookup func(string) (string, bool), key string, fallback time.Duration) time.Duration {
	if value, ok := lookup(key); ok && value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func intWithDefault(lookup func(string) (string, bool), key string, fallback int) int {
	if value, ok := lookup(key); ok && value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func boolWithDefault(lookup func(string) (string, bool), key string, fallback bool) bool {
	if value, ok := lookup(key); ok && value != "" {
		switch strings.ToLower(value) {
		case "true", "1", "yes", "on":
			return true
		case "false", "0", "no", "off":
			return false
		}
	}
	return fallback
}

func csvWithDefault(lookup func(string) (string, bool), key string, fallback []string) []string {
	raw, ok := lookup(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return append([]string(nil), fallback...)
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
