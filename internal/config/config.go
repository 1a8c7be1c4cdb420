package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env             string        `mapstructure:"ENV"`
	Port            string        `mapstructure:"PORT"`
	FeedbackAPIURL  string        `mapstructure:"FEEDBACK_API_URL"`
	PollInterval    time.Duration `mapstructure:"POLL_INTERVAL"`
	RequestTimeout  time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	LogLevel        string        `mapstructure:"LOG_LEVEL"`
	CORSAllowed     string        `mapstructure:"CORS_ALLOWED_ORIGINS"`
	MaxUploadSizeMB int64         `mapstructure:"MAX_UPLOAD_MB"`
	AdminKey        string        `mapstructure:"ADMIN_KEY"`
	AdminUser       string        `mapstructure:"ADMIN_USER"`
	AdminPass       string        `mapstructure:"ADMIN_PASS"`
	MockSeedCount   int           `mapstructure:"MOCK_SEED_COUNT"`
}

func Load() (Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	_ = v.ReadInConfig()

	v.SetDefault("ENV", "dev")
	v.SetDefault("PORT", "8080")
	v.SetDefault("POLL_INTERVAL", "15s")
	v.SetDefault("REQUEST_TIMEOUT", "30s")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("MAX_UPLOAD_MB", 20)
	v.SetDefault("ADMIN_KEY", "dev-admin-key")
	v.SetDefault("ADMIN_USER", "admin")
	v.SetDefault("ADMIN_PASS", "admin123")
	v.SetDefault("MOCK_SEED_COUNT", 24)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
