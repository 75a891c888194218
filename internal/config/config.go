package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

type Config struct {
	Server   ServerConfig
	Auth     AuthConfig
	Storage  StorageConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Hook     HookConfig
}

type ServerConfig struct {
	Addr           string
	GinMode        string
	AllowedOrigins []string
	// TrustedProxies - X-Forwarded-For를 신뢰할 프록시 IP/CIDR (비어 있으면 소켓 주소 사용)
	TrustedProxies []string
}

// AuthConfig - 관리자 자격 증명과 토큰 서명 키
type AuthConfig struct {
	AdminUsername    string
	AdminPassword    string
	BypassKey        string
	JWTSecret        string
	LoginMaxAttempts int
	LoginLockout     time.Duration
}

type StorageConfig struct {
	Driver string
}

type PostgresConfig struct {
	DatabaseURL string
	Host        string
	Port        string
	User        string
	Password    string
	Database    string
	SSLMode     string
}

type RedisConfig struct {
	URL string
}

// HookConfig - 계정 변경 알림 대상 (URL이 비어 있으면 비활성)
type HookConfig struct {
	URL    string
	Method string
	Body   string
	Token  string
}

// Load reads .env (when present) and the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	maxAttempts, err := strconv.Atoi(getenv("LOGIN_MAX_ATTEMPTS", "5"))
	if err != nil || maxAttempts <= 0 {
		return Config{}, fmt.Errorf("invalid LOGIN_MAX_ATTEMPTS")
	}

	lockout, err := time.ParseDuration(getenv("LOGIN_LOCKOUT", "15m"))
	if err != nil || lockout <= 0 {
		return Config{}, fmt.Errorf("invalid LOGIN_LOCKOUT")
	}

	trustedProxies := splitList(os.Getenv("TRUSTED_PROXIES"))
	for _, proxy := range trustedProxies {
		if !validProxy(proxy) {
			return Config{}, fmt.Errorf("invalid TRUSTED_PROXIES entry %q", proxy)
		}
	}

	driver := strings.ToLower(strings.TrimSpace(getenv("STORAGE_DRIVER", StorageMemory)))
	if driver != StorageMemory && driver != StoragePostgres {
		return Config{}, fmt.Errorf("invalid STORAGE_DRIVER %q", driver)
	}

	return Config{
		Server: ServerConfig{
			Addr:           getenv("SERVER_ADDR", ":8080"),
			GinMode:        os.Getenv("GIN_MODE"),
			AllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
			TrustedProxies: trustedProxies,
		},
		Auth: AuthConfig{
			AdminUsername:    os.Getenv("MYADMINCAPTIVA_USER"),
			AdminPassword:    os.Getenv("MYADMINCAPTIVA_PASS"),
			BypassKey:        os.Getenv("MYADMINCAPTIVA_BYPASS_KEY"),
			JWTSecret:        os.Getenv("AUTH_JWT_SECRET"),
			LoginMaxAttempts: maxAttempts,
			LoginLockout:     lockout,
		},
		Storage: StorageConfig{
			Driver: driver,
		},
		Postgres: PostgresConfig{
			DatabaseURL: os.Getenv("DATABASE_URL"),
			Host:        getenv("PGHOST", "localhost"),
			Port:        getenv("PGPORT", "5432"),
			User:        os.Getenv("PGUSER"),
			Password:    os.Getenv("PGPASSWORD"),
			Database:    os.Getenv("PGDATABASE"),
			SSLMode:     getenv("PGSSLMODE", "disable"),
		},
		Redis: RedisConfig{
			URL: os.Getenv("REDIS_URL"),
		},
		Hook: HookConfig{
			URL:    os.Getenv("ACCOUNT_HOOK_URL"),
			Method: getenv("ACCOUNT_HOOK_METHOD", "POST"),
			Body:   os.Getenv("ACCOUNT_HOOK_BODY"),
			Token:  os.Getenv("ACCOUNT_HOOK_TOKEN"),
		},
	}, nil
}

// URL returns DATABASE_URL, or builds one from the PG* variables.
func (c PostgresConfig) URL() (string, error) {
	if c.DatabaseURL != "" {
		return c.DatabaseURL, nil
	}

	if c.User == "" || c.Database == "" {
		return "", fmt.Errorf("missing required env: DATABASE_URL or PGUSER/PGDATABASE")
	}

	u := &url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(c.Host, c.Port),
		Path:   c.Database,
	}
	if c.Password == "" {
		u.User = url.User(c.User)
	} else {
		u.User = url.UserPassword(c.User, c.Password)
	}
	q := u.Query()
	q.Set("sslmode", c.SSLMode)
	u.RawQuery = q.Encode()

	return u.String(), nil
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func validProxy(value string) bool {
	if strings.Contains(value, "/") {
		_, _, err := net.ParseCIDR(value)
		return err == nil
	}
	return net.ParseIP(value) != nil
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
