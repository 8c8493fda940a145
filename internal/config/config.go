package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	CatalogFile     string        // path to the category catalog yaml
	CatalogInterval time.Duration // interval to reload the catalog (default: 24h)
	GCInterval      time.Duration // interval to sweep expired wrapped links (default: 1h)

	PublicBaseURL string // absolute base of the public site, used on interstitial pages (ex: https://links.domain.ext)

	// Reveal gate
	RevealRateLimit  int           // max reveal calls per (ip, endpoint) window (default: 100)
	RevealRateWindow time.Duration // fixed window size for the reveal limiter (default: 60m)
	DefaultLinkTTL   time.Duration // expiry applied when a wrap request carries none (0 = no expiry)

	// Redis
	RedisAddr             string        // ex: "localhost:6379"
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => require password, false => allow empty password
	RedisDB               int           // Redis DB number
	RedisDT               time.Duration // Redis dial timeout (ex: 5s)
	RedisRT               time.Duration // Redis read timeout (ex: 3s)
	RedisWT               time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait          time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout      time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize         int           // Redis connection pool size
	RedisConnectTimeout   time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval    time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold    int           // warn after this many attempts

	AdminCIDRS []string // IPs allowed to call the internal wrap endpoint
	TrustProxy bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("LINKGATE_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("LINKGATE_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("LINKGATE_LOG_LEVEL", "info"),
		PrettyLog: mustBool("LINKGATE_PRETTY_LOG", false),

		// Catalog
		CatalogFile:     getenv("LINKGATE_CATALOG_FILE", "/app/catalog.yaml"),
		CatalogInterval: mustDuration("LINKGATE_CATALOG_RELOAD_INTERVAL", 24*time.Hour),
		GCInterval:      mustDuration("LINKGATE_GC_INTERVAL", time.Hour),

		PublicBaseURL: requireEnv("LINKGATE_PUBLIC_BASE_URL"),

		// Reveal gate
		RevealRateLimit:  getenvInt("LINKGATE_REVEAL_RATE_LIMIT", 100),
		RevealRateWindow: mustDuration("LINKGATE_REVEAL_RATE_WINDOW", 60*time.Minute),
		DefaultLinkTTL:   mustDuration("LINKGATE_DEFAULT_LINK_TTL", 0),

		// Redis settings
		RedisAddr:             requireEnv("LINKGATE_REDIS_ADDR"),
		RedisUser:             getenv("LINKGATE_REDIS_USERNAME", "default"),
		RedisPasswordRequired: mustBool("LINKGATE_REDIS_PASSWORD_REQUIRED", true),
		RedisPassword:         getenv("LINKGATE_REDIS_PASSWORD", ""),
		RedisDB:               getenvInt("LINKGATE_REDIS_DB", 0),
		RedisDT:               mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:               mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:               mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:          mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:      mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:         getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout:   mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:    mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:    getenvInt("REDIS_WARN_THRESHOLD", 3),

		// Access restrictions
		AdminCIDRS: parseAllowedIPs(getenv("LINKGATE_ADMIN_CIDRS", "")),
		TrustProxy: mustBool("LINKGATE_TRUST_PROXY", true),
	}

	// Validate Redis password configuration
	if cfg.RedisPasswordRequired && cfg.RedisPassword == "" {
		panic("FATAL: LINKGATE_REDIS_PASSWORD is required when LINKGATE_REDIS_PASSWORD_REQUIRED=true")
	}

	if cfg.RevealRateLimit < 1 {
		panic(fmt.Sprintf("FATAL: LINKGATE_REVEAL_RATE_LIMIT must be >= 1, got %d", cfg.RevealRateLimit))
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		cfgCopy.RedisPassword = "***REDACTED***"
		if cfg.RedisUser != "" {
			cfgCopy.RedisUser = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func parseAllowedIPs(allowed string) []string {
	if allowed == "" {
		return nil
	}
	ips := make([]string, 0, 4)
	for _, ip := range splitAndTrim(allowed) {
		if ip != "" {
			ips = append(ips, ip)
		}
	}
	return ips
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
