package main

import (
	"strings"

	"github.com/spf13/viper"

	"aihub/pkg/twitterapi"
)

// Config captures all service configuration, loaded from an optional
// config.yaml plus environment variables (env wins).
type Config struct {
	Port           int    `mapstructure:"port"`
	DBDSN          string `mapstructure:"db_dsn"`
	DBAutoMigrate  bool   `mapstructure:"db_auto_migrate"`
	JWTSecret      string `mapstructure:"jwt_secret"`
	AdminPassword  string `mapstructure:"admin_password"`
	RapidAPIKey    string `mapstructure:"rapidapi_key"`
	TwitterAPIBase string `mapstructure:"twitter_api_endpoint"`
	Release        bool   `mapstructure:"release"`
}

// loadConfig builds the Config. Missing values fall back to development
// defaults; only DB_DSN is required and that is enforced later by initDB.
func loadConfig() (Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetDefault("port", 8081)
	v.SetDefault("db_auto_migrate", true)
	v.SetDefault("jwt_secret", "dev-insecure-secret-change")
	v.SetDefault("twitter_api_endpoint", twitterapi.DefaultBaseURL)
	v.SetDefault("release", false)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// env names match the deployment convention (DB_DSN, JWT_SECRET, ...)
	for _, key := range []string{
		"port", "db_dsn", "db_auto_migrate", "jwt_secret",
		"admin_password", "rapidapi_key", "twitter_api_endpoint", "release",
	} {
		_ = v.BindEnv(key)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
