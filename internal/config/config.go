package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

// Config is built once at start-up and handed to constructors; nothing in
// the module reads the environment after Load returns.
type Config struct {
	Port    string
	GinMode string

	JWTSecret string
	JWTTTL    time.Duration

	CORSOrigins []string

	DBDriver    string
	DatabaseDSN string

	UploadDir   string
	FrontendDir string
	BcryptCost  int

	Redis RedisConfig
	MinIO MinIOConfig
	Log   LogConfig
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Enabled is false when no address is configured; token revocation is then off.
func (r RedisConfig) Enabled() bool { return r.Addr != "" }

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	PublicURL string
}

func (m MinIOConfig) Enabled() bool { return m.Endpoint != "" }

type LogConfig struct {
	File  string
	Level string
}

const (
	DriverPgx    = "pgx"
	DriverPQ     = "postgres"
	DriverMemory = "memory"
)

var ErrMissingSecret = errors.New("JWT_SECRET must be set to a non-placeholder value")

var placeholderSecrets = map[string]bool{
	"":                true,
	"changeme":        true,
	"change_me":       true,
	"change-me":       true,
	"secret":          true,
	"supersecret":     true,
	"jwt_secret":      true,
	"your_jwt_secret": true,
	"your-jwt-secret": true,
	"your_secret_key": true,
	"your-secret-key": true,
	"replace_me":      true,
}

// IsPlaceholderSecret reports whether s is empty or a well-known sample value.
func IsPlaceholderSecret(s string) bool {
	return placeholderSecrets[strings.ToLower(strings.TrimSpace(s))]
}

// Load reads .env (current and parent directory, if present) and the
// process environment.
func Load() (*Config, error) {
	for _, f := range []string{".env", "../.env"} {
		if err := godotenv.Load(f); err == nil {
			log.WithField("file", f).Debug("loaded env file")
		}
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", "5000")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("JWT_TTL", "168h")
	v.SetDefault("CORS_ORIGIN", "*")
	v.SetDefault("DB_DRIVER", DriverPgx)
	v.SetDefault("UPLOAD_DIR", "./assets")
	v.SetDefault("FRONTEND_DIR", "./frontend")
	v.SetDefault("BCRYPT_COST", bcrypt.DefaultCost)
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("MINIO_BUCKET", "marketplace")
	v.SetDefault("LOG_FILE", "./logs/app.log")
	v.SetDefault("LOG_LEVEL", "info")

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:        v.GetString("PORT"),
		GinMode:     v.GetString("GIN_MODE"),
		JWTSecret:   v.GetString("JWT_SECRET"),
		JWTTTL:      v.GetDuration("JWT_TTL"),
		CORSOrigins: splitList(v.GetString("CORS_ORIGIN")),
		DBDriver:    strings.ToLower(v.GetString("DB_DRIVER")),
		DatabaseDSN: v.GetString("DATABASE_DSN"),
		UploadDir:   v.GetString("UPLOAD_DIR"),
		FrontendDir: v.GetString("FRONTEND_DIR"),
		BcryptCost:  v.GetInt("BCRYPT_COST"),
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		MinIO: MinIOConfig{
			Endpoint:  v.GetString("MINIO_ENDPOINT"),
			AccessKey: v.GetString("MINIO_ACCESS_KEY"),
			SecretKey: v.GetString("MINIO_SECRET_KEY"),
			Bucket:    v.GetString("MINIO_BUCKET"),
			UseSSL:    v.GetBool("MINIO_USE_SSL"),
			PublicURL: v.GetString("MINIO_PUBLIC_URL"),
		},
		Log: LogConfig{
			File:  v.GetString("LOG_FILE"),
			Level: v.GetString("LOG_LEVEL"),
		},
	}
	// Older env files name the connection string DATABASE_URL or MONGO_URI.
	for _, alias := range []string{"DATABASE_URL", "MONGO_URI"} {
		if cfg.DatabaseDSN == "" {
			cfg.DatabaseDSN = v.GetString(alias)
		}
	}

	if IsPlaceholderSecret(cfg.JWTSecret) {
		return nil, ErrMissingSecret
	}
	if cfg.JWTTTL <= 0 {
		return nil, fmt.Errorf("JWT_TTL must be positive, got %s", cfg.JWTTTL)
	}
	switch cfg.DBDriver {
	case DriverPgx, DriverPQ:
		if cfg.DatabaseDSN == "" {
			return nil, errors.New("DATABASE_DSN is required unless DB_DRIVER=memory")
		}
	case DriverMemory:
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.DBDriver)
	}
	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		return nil, fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}

	log.Info("config parsed")
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
