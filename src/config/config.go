package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Service   ServiceConfig   `mapstructure:"service"`
	Databases DatabasesConfig `mapstructure:"databases"`
	CORS      CORSConfig      `mapstructure:"cors"`
}

type ServiceConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	LogLevel     string        `mapstructure:"log_level"`
	LogFile      string        `mapstructure:"log_file"`
}

type DatabasesConfig struct {
	SQL SQLConfig `mapstructure:"sql"`
}

type SQLConfig struct {
	Host             string `mapstructure:"host"`
	Port             string `mapstructure:"port"`
	Username         string `mapstructure:"username"`
	Password         string `mapstructure:"password"`
	Database         string `mapstructure:"database"`
	SSLMode          string `mapstructure:"sslmode"`
	ConnectionString string `mapstructure:"connection_string"`
	// PasswordSecretID, when set, names an AWS Secrets Manager secret holding the password.
	PasswordSecretID string `mapstructure:"password_secret_id"`
	AWSRegion        string `mapstructure:"aws_region"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods"`
	AllowedHeaders []string `mapstructure:"allowed_headers"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("service.port", "8000")
	v.SetDefault("service.read_timeout", 30*time.Second)
	v.SetDefault("service.write_timeout", 30*time.Second)
	v.SetDefault("service.log_level", "info")
	v.SetDefault("databases.sql.port", "5432")
	v.SetDefault("databases.sql.sslmode", "disable")
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{"Content-Type", "Authorization", "X-Request-ID"})
}

// LoadConfig reads appsettings.yaml from path and, when env is not empty,
// merges appsettings.<env>.yaml on top. Environment variables win over both,
// e.g. DATABASES_SQL_PASSWORD.
func LoadConfig(path string, env string) (*Config, error) {
	// A missing .env is the normal case outside local development.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.AddConfigPath(path)
	v.SetConfigName("appsettings")
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	if env != "" {
		v.SetConfigName("appsettings." + env)
		if err := v.MergeInConfig(); err != nil {
			return nil, err
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
