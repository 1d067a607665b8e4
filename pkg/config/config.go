package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Admin     AdminConfig
	CORS      CORSConfig
	Log       LogConfig
	Practice  PracticeConfig
	Scheduler SchedulerConfig
	Oracle    OracleConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret     string
	Expiration time.Duration
}

// AdminConfig holds the single staff account allowed to approve and execute plans.
type AdminConfig struct {
	Username     string
	PasswordHash string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// PracticeConfig describes the clinic calendar the slot computation honours.
type PracticeConfig struct {
	WorkingDays         []string
	OpenTime            string
	CloseTime           string
	LunchStart          string
	LunchEnd            string
	BufferMinutes       int
	FirstBookable       string
	LastBookable        string
	SlotIntervalMinutes int
	DefaultVisitMinutes int
}

// SchedulerConfig bounds the planner search and the pending-plan lifetime.
type SchedulerConfig struct {
	MaxDayAdvances int
	LookaheadDays  int
	PlanTTL        time.Duration
}

// OracleConfig configures the external recommendation model.
type OracleConfig struct {
	Enabled bool
	APIKey  string
	Model   string
	Timeout time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{
		Secret:     v.GetString("JWT_SECRET"),
		Expiration: parseDuration(v.GetString("JWT_EXPIRATION"), 24*time.Hour),
	}

	cfg.Admin = AdminConfig{
		Username:     v.GetString("ADMIN_USERNAME"),
		PasswordHash: v.GetString("ADMIN_PASSWORD_HASH"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Practice = PracticeConfig{
		WorkingDays:         splitAndTrim(v.GetString("PRACTICE_WORKING_DAYS")),
		OpenTime:            v.GetString("PRACTICE_OPEN_TIME"),
		CloseTime:           v.GetString("PRACTICE_CLOSE_TIME"),
		LunchStart:          v.GetString("PRACTICE_LUNCH_START"),
		LunchEnd:            v.GetString("PRACTICE_LUNCH_END"),
		BufferMinutes:       v.GetInt("PRACTICE_BUFFER_MINUTES"),
		FirstBookable:       v.GetString("PRACTICE_FIRST_BOOKABLE"),
		LastBookable:        v.GetString("PRACTICE_LAST_BOOKABLE"),
		SlotIntervalMinutes: v.GetInt("PRACTICE_SLOT_INTERVAL_MINUTES"),
		DefaultVisitMinutes: v.GetInt("PRACTICE_DEFAULT_VISIT_MINUTES"),
	}

	cfg.Scheduler = SchedulerConfig{
		MaxDayAdvances: v.GetInt("SCHEDULER_MAX_DAY_ADVANCES"),
		LookaheadDays:  v.GetInt("SCHEDULER_LOOKAHEAD_DAYS"),
		PlanTTL:        parseDuration(v.GetString("SCHEDULER_PLAN_TTL"), 30*time.Minute),
	}

	cfg.Oracle = OracleConfig{
		Enabled: v.GetBool("ORACLE_ENABLED"),
		APIKey:  v.GetString("ORACLE_API_KEY"),
		Model:   v.GetString("ORACLE_MODEL"),
		Timeout: parseDuration(v.GetString("ORACLE_TIMEOUT"), 20*time.Second),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "dentoplan")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_EXPIRATION", "24h")
	v.SetDefault("ADMIN_USERNAME", "admin")
	v.SetDefault("ADMIN_PASSWORD_HASH", "")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("PRACTICE_WORKING_DAYS", "monday,tuesday,wednesday,thursday,friday")
	v.SetDefault("PRACTICE_OPEN_TIME", "09:00")
	v.SetDefault("PRACTICE_CLOSE_TIME", "18:00")
	v.SetDefault("PRACTICE_LUNCH_START", "12:00")
	v.SetDefault("PRACTICE_LUNCH_END", "13:00")
	v.SetDefault("PRACTICE_BUFFER_MINUTES", 0)
	v.SetDefault("PRACTICE_FIRST_BOOKABLE", "09:00")
	v.SetDefault("PRACTICE_LAST_BOOKABLE", "17:00")
	v.SetDefault("PRACTICE_SLOT_INTERVAL_MINUTES", 30)
	v.SetDefault("PRACTICE_DEFAULT_VISIT_MINUTES", 60)

	v.SetDefault("SCHEDULER_MAX_DAY_ADVANCES", 14)
	v.SetDefault("SCHEDULER_LOOKAHEAD_DAYS", 14)
	v.SetDefault("SCHEDULER_PLAN_TTL", "30m")

	v.SetDefault("ORACLE_ENABLED", false)
	v.SetDefault("ORACLE_API_KEY", "")
	v.SetDefault("ORACLE_MODEL", "gemini-2.5-flash")
	v.SetDefault("ORACLE_TIMEOUT", "20s")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
