package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Env is the deployment environment the server runs in.
type Env string

const (
	// EnvLocal is a developer machine.
	EnvLocal Env = "local"
	// EnvDocker is the containerised deployment.
	EnvDocker Env = "docker"
)

const localJWTSecret = "local-dev-secret"

// Config holds the bookstore server configuration.
type Config struct {
	AppEnv   Env    `env:"APP_ENV" envDefault:"local"`
	HTTPAddr string `env:"HTTP_ADDR"`

	MongoURI    string `env:"MONGO_URI"`
	MongoDBName string `env:"MONGO_DB" envDefault:"bookstore"`

	UploadDir      string `env:"UPLOAD_DIR" envDefault:"uploads"`
	MaxUploadBytes int64  `env:"MAX_UPLOAD_BYTES" envDefault:"5242880"`

	JWTSecret string        `env:"JWT_SECRET"`
	JWTTTL    time.Duration `env:"JWT_TTL" envDefault:"1h"`

	// CORSOrigins lists the storefront/dashboard origins allowed to call the API.
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`

	// AdminUsername and AdminPassword seed the dashboard admin on startup when both are set.
	AdminUsername string `env:"ADMIN_USERNAME"`
	AdminPassword string `env:"ADMIN_PASSWORD"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT"`
}

// Load reads an optional .env file and then the process environment.
// Defaults for addresses depend on APP_ENV.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	switch cfg.AppEnv {
	case EnvLocal:
		cfg.HTTPAddr = orDefault(cfg.HTTPAddr, "127.0.0.1:5000")
		cfg.MongoURI = orDefault(cfg.MongoURI, "mongodb://127.0.0.1:27017")
		cfg.JWTSecret = orDefault(cfg.JWTSecret, localJWTSecret)
	case EnvDocker:
		cfg.HTTPAddr = orDefault(cfg.HTTPAddr, "0.0.0.0:5000")
		cfg.MongoURI = orDefault(cfg.MongoURI, "mongodb://mongo:27017")
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for missing or inconsistent values.
func (c Config) Validate() error {
	if c.AppEnv != EnvLocal && c.AppEnv != EnvDocker {
		return fmt.Errorf("invalid APP_ENV: %s (must be 'local' or 'docker')", c.AppEnv)
	}
	if c.HTTPAddr == "" {
		return errors.New("HTTP_ADDR is required")
	}
	if c.MongoURI == "" {
		return errors.New("MONGO_URI is required")
	}
	if c.MongoDBName == "" {
		return errors.New("MONGO_DB is required")
	}
	if c.UploadDir == "" {
		return errors.New("UPLOAD_DIR is required")
	}
	if c.MaxUploadBytes <= 0 {
		return errors.New("MAX_UPLOAD_BYTES must be positive")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.JWTTTL <= 0 {
		return errors.New("JWT_TTL must be positive")
	}
	if len(c.CORSOrigins) == 0 {
		return errors.New("CORS_ORIGINS must list at least one origin")
	}
	if (c.AdminUsername == "") != (c.AdminPassword == "") {
		return errors.New("ADMIN_USERNAME and ADMIN_PASSWORD must be set together")
	}
	if c.ShutdownTimeout <= 0 {
		return errors.New("SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}

// Log writes the effective configuration with secrets masked.
func (c Config) Log(logger *zap.Logger) {
	logger.Info("Config loaded",
		zap.String("app_env", string(c.AppEnv)),
		zap.String("http_addr", c.HTTPAddr),
		zap.String("mongo_uri", maskMongoURI(c.MongoURI)),
		zap.String("mongo_db", c.MongoDBName),
		zap.String("upload_dir", c.UploadDir),
		zap.Int64("max_upload_bytes", c.MaxUploadBytes),
		zap.Duration("jwt_ttl", c.JWTTTL),
		zap.Strings("cors_origins", c.CORSOrigins),
		zap.Bool("admin_seed", c.AdminUsername != ""),
		zap.Duration("shutdown_timeout", c.ShutdownTimeout),
	)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// maskMongoURI hides the password of a mongodb:// URI.
func maskMongoURI(uri string) string {
	u, err := url.Parse(uri)
	if err != nil || u.User == nil {
		return uri
	}
	if _, ok := u.User.Password(); !ok {
		return uri
	}
	u.User = url.UserPassword(u.User.Username(), "xxxxx")
	return u.String()
}
