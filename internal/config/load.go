package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from environment variables and optionally a
// config file. Environment variables take precedence over values from the
// config file. Returns a populated Config struct or an error if
// loading/validation fails.
//
// Environment variables use the SEJONG_ prefix with underscores separating
// nested keys, e.g. SEJONG_SERVER_PORT, SEJONG_STORE_BACKEND,
// SEJONG_AUTH_JWT_SECRET.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	// Optionally read a config file from the working directory or
	// /etc/sejong. A missing file is fine, env vars alone can carry the
	// whole configuration.
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/sejong/")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Configure environment variable reading
	v.SetEnvPrefix("SEJONG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv does not cooperate with Unmarshal for keys that were
	// never set, so bind each known key explicitly.
	for _, key := range configKeys() {
		_ = v.BindEnv(key)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate checks the configuration against its struct validation tags.
func Validate(cfg *Config) error {
	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			fields := make([]string, 0, len(validationErrors))
			for _, fieldErr := range validationErrors {
				fields = append(fields, fieldErr.Namespace())
			}
			return fmt.Errorf("validation failed for: %s", strings.Join(fields, ", "))
		}
		return err
	}
	return nil
}

// setDefaults registers default values for optional settings.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("store.backend", "postgres")
	v.SetDefault("store.redis_db", 0)
	v.SetDefault("auth.token_lifetime_minutes", 60)
	v.SetDefault("auth.bcrypt_cost", 10)
	v.SetDefault("llm.model_name", "gemini-2.0-flash")
	v.SetDefault("llm.max_retries", 3)
	v.SetDefault("llm.retry_delay_seconds", 2)
}

// configKeys lists every key Load binds to an environment variable.
func configKeys() []string {
	return []string{
		"server.port",
		"server.log_level",
		"database.url",
		"store.backend",
		"store.redis_addr",
		"store.redis_password",
		"store.redis_db",
		"store.rest_base_url",
		"auth.jwt_secret",
		"auth.token_lifetime_minutes",
		"auth.bcrypt_cost",
		"auth.admin_emails",
		"llm.gemini_api_key",
		"llm.model_name",
		"llm.prompt_template_path",
		"llm.max_retries",
		"llm.retry_delay_seconds",
	}
}
