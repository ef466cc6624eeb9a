package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

var (
	errMissingSigningKey = errors.New("api.jwt_signing_key is required")
	errInvalidPort       = errors.New("api.port must be numeric")
	errInvalidDriver     = errors.New("storage.driver must be local or s3")
	errMissingBucket     = errors.New("storage.s3_bucket is required for the s3 driver")
)

type AppConfig struct {
	API      *APIConfig      `mapstructure:"api"`
	Gin      *GinConfig      `mapstructure:"gin"`
	Postgres *PostgresConfig `mapstructure:"postgres"`
	Storage  *StorageConfig  `mapstructure:"storage"`
	Invoice  *InvoiceConfig  `mapstructure:"invoice"`
	Redis    *RedisConfig    `mapstructure:"redis"`
}

type APIConfig struct {
	Environment        string        `mapstructure:"environment"`
	Port               string        `mapstructure:"port"`
	BaseURL            string        `mapstructure:"base_url"`
	AllowedCORSDomains []string      `mapstructure:"allowed_cors_domains"`
	JWTSigningKey      string        `mapstructure:"jwt_signing_key"`
	TokenTTL           time.Duration `mapstructure:"token_ttl"`
	RequestTimeout     time.Duration `mapstructure:"request_timeout"`
	LogLevel           string        `mapstructure:"log_level"`
}

type GinConfig struct {
	Mode string `mapstructure:"mode"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DB       string `mapstructure:"db"`
	SSLMode  string `mapstructure:"sslmode"`
}

// DSN builds a key/value connection string accepted by pgx.
func (c *PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DB, c.SSLMode)
}

type StorageConfig struct {
	Driver         string        `mapstructure:"driver"`
	LocalDir       string        `mapstructure:"local_dir"`
	PublicPath     string        `mapstructure:"public_path"`
	S3Bucket       string        `mapstructure:"s3_bucket"`
	S3Region       string        `mapstructure:"s3_region"`
	S3Endpoint     string        `mapstructure:"s3_endpoint"`
	S3AccessKeyID  string        `mapstructure:"s3_access_key_id"`
	S3SecretKey    string        `mapstructure:"s3_secret_access_key"`
	S3UsePathStyle bool          `mapstructure:"s3_use_path_style"`
	PresignTTL     time.Duration `mapstructure:"presign_ttl"`
}

type InvoiceConfig struct {
	Timeout     time.Duration `mapstructure:"timeout"`
	CompanyName string        `mapstructure:"company_name"`
	Currency    string        `mapstructure:"currency"`
}

type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	StatsTTL time.Duration `mapstructure:"stats_ttl"`
}

// Enabled reports whether a redis address was configured.
func (c *RedisConfig) Enabled() bool {
	return c != nil && c.Addr != ""
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.environment", "development")
	v.SetDefault("api.port", "8080")
	v.SetDefault("api.base_url", "localhost:8080")
	v.SetDefault("api.allowed_cors_domains", []string{"http://localhost:3000"})
	v.SetDefault("api.jwt_signing_key", "")
	v.SetDefault("api.token_ttl", 24*time.Hour)
	v.SetDefault("api.request_timeout", 30*time.Second)
	v.SetDefault("api.log_level", "info")
	v.SetDefault("gin.mode", "debug")
	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", "5432")
	v.SetDefault("postgres.user", "postgres")
	v.SetDefault("postgres.password", "postgres")
	v.SetDefault("postgres.db", "gem_inventory")
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("storage.driver", "local")
	v.SetDefault("storage.local_dir", "./uploads")
	v.SetDefault("storage.public_path", "/api/v1/uploads")
	v.SetDefault("storage.s3_bucket", "")
	v.SetDefault("storage.s3_region", "us-east-1")
	v.SetDefault("storage.s3_endpoint", "")
	v.SetDefault("storage.s3_access_key_id", "")
	v.SetDefault("storage.s3_secret_access_key", "")
	v.SetDefault("storage.s3_use_path_style", false)
	v.SetDefault("storage.presign_ttl", time.Hour)
	v.SetDefault("invoice.timeout", 10*time.Second)
	v.SetDefault("invoice.company_name", "Sphene Gem")
	v.SetDefault("invoice.currency", "USD")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.stats_ttl", time.Minute)
}

// Load reads the YAML file at path and lets environment variables override
// any key (api.port -> API_PORT). A missing file is not an error.
func Load(path string) (*AppConfig, error) {
	v, err := newViper(path)
	if err != nil {
		return nil, err
	}

	return decode(v)
}

// Watch reloads the file on change and hands the new config to onChange.
// Invalid reloads are reported through onError and otherwise ignored.
func Watch(path string, onChange func(*AppConfig), onError func(error)) error {
	v, err := newViper(path)
	if err != nil {
		return err
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}

		conf, err := decode(v)
		if err != nil {
			onError(fmt.Errorf("config.Watch -> %s -> %w", e.Name, err))
			return
		}
		onChange(conf)
	})
	v.WatchConfig()

	return nil
}

func newViper(path string) (*viper.Viper, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("v.ReadInConfig -> %w", err)
		}
	}

	return v, nil
}

func decode(v *viper.Viper) (*AppConfig, error) {
	conf := &AppConfig{}
	if err := v.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("v.Unmarshal -> %w", err)
	}

	if err := conf.Validate(); err != nil {
		return nil, err
	}

	return conf, nil
}

// Validate checks the values the server cannot start without.
func (c *AppConfig) Validate() error {
	if c.API.JWTSigningKey == "" {
		return errMissingSigningKey
	}
	if _, err := strconv.Atoi(c.API.Port); err != nil {
		return errInvalidPort
	}

	switch c.Storage.Driver {
	case "local":
	case "s3":
		if c.Storage.S3Bucket == "" {
			return errMissingBucket
		}
	default:
		return errInvalidDriver
	}

	return nil
}

// IsProduction returns true if the application is running in production mode
func (c *AppConfig) IsProduction() bool {
	return c.API.Environment == "production"
}
