package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Database struct {
		Driver string // "postgres" or "sqlite"
		URL    string // postgres connection string
		Path   string // sqlite file path
	}
	Server struct {
		Port int
	}
	Auth struct {
		JWTSecret  string
		Issuer     string
		TokenHours int
	}
	Seed struct {
		AdminEmail    string
		AdminPassword string
	}
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Default values
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("database.driver", "postgres")
	viper.SetDefault("database.path", "news.db")
	viper.SetDefault("auth.issuer", "prajanews-cms")
	viper.SetDefault("auth.tokenhours", 24)
	viper.SetDefault("seed.adminemail", "admin@example.com")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) GetTokenDuration() time.Duration {
	if c.Auth.TokenHours <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(c.Auth.TokenHours) * time.Hour
}
