package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServiceName string
	ServerPort  int
	LogLevel    string

	DBDriver    string
	DatabaseURL string
	DBPool      DBPool
	SeedData    bool

	KafkaBrokers   []string
	KafkaUserTopic string

	ESURL      string
	ESUser     string
	ESPassword string
	ESIndex    string
}

// DBPool sizes the postgres connection pool. SQLite ignores it.
type DBPool struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// Load reads .env from the working directory when present and then the
// process environment.
func Load() Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("notice: .env file not found: %v. Using system environment variables", err)
	}

	return Config{
		ServiceName: EnvDefault("SERVICE_NAME", "course-shop"),
		ServerPort:  EnvIntDefault("SERVER_PORT", 8080),
		LogLevel:    EnvDefault("LOG_LEVEL", "info"),

		DBDriver:    EnvDefault("DB_DRIVER", "postgres"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBPool: DBPool{
			MaxOpenConns:    EnvIntDefault("DB_MAX_OPEN_CONNS", 20),
			MaxIdleConns:    EnvIntDefault("DB_MAX_IDLE_CONNS", 10),
			ConnMaxLifetime: EnvDurationDefault("DB_CONN_MAX_LIFETIME", 30*time.Minute),
			ConnMaxIdleTime: EnvDurationDefault("DB_CONN_MAX_IDLE_TIME", 5*time.Minute),
		},
		SeedData: EnvBoolDefault("SEED_DATA", false),

		KafkaBrokers:   CSV(os.Getenv("KAFKA_BROKERS")),
		KafkaUserTopic: EnvDefault("KAFKA_USER_TOPIC", "user_events"),

		ESURL:      os.Getenv("ES_URL"),
		ESUser:     os.Getenv("ES_USER"),
		ESPassword: os.Getenv("ES_PASSWORD"),
		ESIndex:    EnvDefault("ES_INDEX", "products"),
	}
}

// CSV splits a comma separated list, dropping blanks.
func CSV(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	return envParse(key, def, func(s string) (string, error) { return s, nil })
}

func EnvIntDefault(key string, def int) int {
	return envParse(key, def, strconv.Atoi)
}

func EnvBoolDefault(key string, def bool) bool {
	return envParse(key, def, strconv.ParseBool)
}

// EnvDurationDefault reads values such as "90s" or "30m".
func EnvDurationDefault(key string, def time.Duration) time.Duration {
	return envParse(key, def, time.ParseDuration)
}

// envParse returns def when key is unset, empty or does not parse.
func envParse[T any](key string, def T, parse func(string) (T, error)) T {
	raw, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return def
	}
	v, err := parse(strings.TrimSpace(raw))
	if err != nil {
		log.Printf("notice: %s=%q is not valid, using default", key, raw)
		return def
	}
	return v
}

func MustNonEmpty(value, envName string) {
	if value == "" {
		log.Fatalf("missing required env %s", envName)
	}
}
