package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultPort             = "3000"
	defaultAdminAllowedIPs  = "127.0.0.1,::1"
	defaultSMTPPort         = 587
	defaultContactTo        = "hello@wesworld.online"
	defaultDataDir          = "./data"
	defaultContactRateLimit = 10
)

// Store drivers accepted by STORE_DRIVER.
const (
	StoreDriverFile     = "file"
	StoreDriverPostgres = "postgres"
)

// MailConfig holds the SMTP relay settings for contact notifications.
type MailConfig struct {
	Host string
	Port int
	User string
	Pass string
	// To receives notifications. Falls back to User, then a fixed inbox.
	To string
}

// Configured reports whether host, user and credential are all present.
// Notifications are disabled otherwise.
func (m MailConfig) Configured() bool {
	return m.Host != "" && m.User != "" && m.Pass != ""
}

// Config is read once at process start.
type Config struct {
	Port             string
	AdminAllowedIPs  []string
	Mail             MailConfig
	DataDir          string
	StaticDir        string
	StoreDriver      string
	DatabaseURL      string
	ContactRateLimit int
	// TrustedProxies is the number of reverse proxies appending to
	// X-Forwarded-For. Only the rate limiter reads it.
	TrustedProxies   int
	CORSOrigin       string
	LogLevel         string
	LogFormat        string
}

// MailConfigured is shorthand for c.Mail.Configured().
func (c *Config) MailConfigured() bool { return c.Mail.Configured() }

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string { return ":" + c.Port }

// FromEnvironment reads configuration from the process environment.
// Values from the given dotenv files (".env" when none are given) are used
// only for keys the environment does not set. Missing files are ignored.
func FromEnvironment(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	fileValues := map[string]string{}
	for _, f := range files {
		values, err := godotenv.Read(f)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("config: read %s: %w", f, err)
		}
		for k, v := range values {
			if _, ok := fileValues[k]; !ok {
				fileValues[k] = v
			}
		}
	}
	return Load(func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return v
		}
		return fileValues[key]
	})
}

// Load builds a Config from getenv, applying defaults for unset keys.
func Load(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		Port:        valueOr(getenv("PORT"), defaultPort),
		DataDir:     valueOr(getenv("DATA_DIR"), defaultDataDir),
		StaticDir:   strings.TrimSpace(getenv("STATIC_DIR")),
		StoreDriver: strings.ToLower(valueOr(getenv("STORE_DRIVER"), StoreDriverFile)),
		DatabaseURL: strings.TrimSpace(getenv("DATABASE_URL")),
		CORSOrigin:  strings.TrimSpace(getenv("CORS_ORIGIN")),
		LogLevel:    getenv("LOG_LEVEL"),
		LogFormat:   getenv("LOG_FORMAT"),
	}

	cfg.AdminAllowedIPs = splitList(valueOr(getenv("ADMIN_ALLOWED_IPS"), defaultAdminAllowedIPs))

	smtpPort, err := intOr(getenv("SMTP_PORT"), defaultSMTPPort)
	if err != nil {
		return nil, fmt.Errorf("config: SMTP_PORT: %w", err)
	}
	cfg.Mail = MailConfig{
		Host: strings.TrimSpace(getenv("SMTP_HOST")),
		Port: smtpPort,
		User: strings.TrimSpace(getenv("SMTP_USER")),
		Pass: getenv("SMTP_PASS"),
	}
	cfg.Mail.To = valueOr(getenv("CONTACT_TO"), valueOr(cfg.Mail.User, defaultContactTo))

	rate, err := intOr(getenv("CONTACT_RATE_LIMIT"), defaultContactRateLimit)
	if err != nil {
		return nil, fmt.Errorf("config: CONTACT_RATE_LIMIT: %w", err)
	}
	if rate < 0 {
		return nil, fmt.Errorf("config: CONTACT_RATE_LIMIT must not be negative, got %d", rate)
	}
	cfg.ContactRateLimit = rate

	proxies, err := intOr(getenv("TRUSTED_PROXIES"), 0)
	if err != nil || proxies < 0 {
		return nil, fmt.Errorf("config: TRUSTED_PROXIES must be a non-negative integer, got %q", getenv("TRUSTED_PROXIES"))
	}
	cfg.TrustedProxies = proxies

	switch cfg.StoreDriver {
	case StoreDriverFile:
	case StoreDriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, errors.New("config: DATABASE_URL is required when STORE_DRIVER=postgres")
		}
	default:
		return nil, fmt.Errorf("config: unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	return cfg, nil
}

func valueOr(v, fallback string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return fallback
}

func intOr(v string, fallback int) (int, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}

// splitList splits a comma-separated value, dropping blank entries.
func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
