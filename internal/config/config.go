package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	MongoURI    string
	PostgresURI string
	RedisURI    string
	Port        string
	Environment string // ENV: production, development, etc.

	AllowedOrigins []string // CORS: from ALLOWED_ORIGINS or FRONTEND_URL(s)
	StaticDir      string   // serves the page bundle when set

	// Calendar
	TimeZone        string // IANA name used to compute "today"
	WorkdayFailOpen bool   // treat lookup failures as workdays

	RequestTimeout time.Duration
	SessionTTL     time.Duration
	StatsCacheTTL  time.Duration

	CloudinaryName      string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string

	// Seed admin, created on startup when both are set
	AdminEmail    string
	AdminPassword string
}

func Load() *Config {
	env := strings.ToLower(strings.TrimSpace(getEnv("ENV", "development")))

	allowedOrigins := parseOrigins(getEnv("ALLOWED_ORIGINS", ""))
	if len(allowedOrigins) == 0 {
		for _, u := range []string{getEnv("FRONTEND_URL", "http://localhost:3000"), getEnv("FRONTEND_URL_2", "")} {
			u = strings.TrimSpace(u)
			if u != "" {
				allowedOrigins = append(allowedOrigins, u)
			}
		}
	}

	return &Config{
		MongoURI:            getEnv("MONGODB_URI", getEnv("MONGO_URI", "mongodb://localhost:27017/ojt_journal")),
		PostgresURI:         getEnv("POSTGRES_URI", "postgres://localhost:5432/ojt_journal?sslmode=disable"),
		RedisURI:            getEnv("REDIS_URI", "redis://localhost:6379/0"),
		Port:                getEnv("PORT", "8080"),
		Environment:         env,
		AllowedOrigins:      allowedOrigins,
		StaticDir:           getEnv("STATIC_DIR", ""),
		TimeZone:            getEnv("TIMEZONE", "Local"),
		WorkdayFailOpen:     getEnvBool("WORKDAY_FAIL_OPEN", true),
		RequestTimeout:      getEnvDuration("REQUEST_TIMEOUT", 10*time.Second),
		SessionTTL:          getEnvDuration("SESSION_TTL", 7*24*time.Hour),
		StatsCacheTTL:       getEnvDuration("STATS_CACHE_TTL", time.Minute),
		CloudinaryName:      getEnv("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryAPIKey:    getEnv("CLOUDINARY_API_KEY", ""),
		CloudinaryAPISecret: getEnv("CLOUDINARY_API_SECRET", ""),
		AdminEmail:          strings.ToLower(strings.TrimSpace(getEnv("ADMIN_EMAIL", ""))),
		AdminPassword:       getEnv("ADMIN_PASSWORD", ""),
	}
}

// Location resolves TimeZone, falling back to the host zone when it is unknown.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		log.Printf("⚠️  WARNING: unknown TIMEZONE %q, using host time zone", c.TimeZone)
		return time.Local
	}
	return loc
}

// UploadsEnabled reports whether all Cloudinary credentials are present.
func (c *Config) UploadsEnabled() bool {
	return c.CloudinaryName != "" && c.CloudinaryAPIKey != "" && c.CloudinaryAPISecret != ""
}

func parseOrigins(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// IsProduction returns true when ENV is set to "production".
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(getEnv(key, ""))
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}
