package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Store    StoreConfig    `mapstructure:"store"    validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	LLM      LLMConfig      `mapstructure:"llm"      validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"omitempty,url"`
}

// StoreConfig selects and configures the document store backend used for
// per-user deck and progress documents.
type StoreConfig struct {
	// Backend selects where user documents live: the application's own
	// Postgres database, a Redis instance, or a remote document service
	// reached over REST.
	Backend string `mapstructure:"backend" validate:"required,oneof=postgres redis rest"`

	// RedisAddr is the host:port of the Redis server. Required when
	// Backend is "redis".
	RedisAddr string `mapstructure:"redis_addr" validate:"required_if=Backend redis"`

	// RedisPassword is the optional Redis AUTH password.
	RedisPassword string `mapstructure:"redis_password"`

	// RedisDB is the Redis logical database number.
	RedisDB int `mapstructure:"redis_db" validate:"gte=0"`

	// RestBaseURL is the base URL of the remote document service. Required
	// when Backend is "rest".
	RestBaseURL string `mapstructure:"rest_base_url" validate:"required_if=Backend rest,omitempty,url"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret" validate:"required,min=32"`

	// TokenLifetimeMinutes is how long issued access tokens stay valid.
	TokenLifetimeMinutes int `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`

	// BcryptCost is the bcrypt work factor used when hashing passwords.
	BcryptCost int `mapstructure:"bcrypt_cost" validate:"gte=4,lte=31"`

	// AdminEmails lists the accounts that are issued admin tokens at login.
	// Admin-only routes reject everyone else.
	AdminEmails []string `mapstructure:"admin_emails" validate:"omitempty,dive,email"`
}

// LLMConfig contains all LLM integration related settings.
type LLMConfig struct {
	GeminiAPIKey string `mapstructure:"gemini_api_key"`

	// ModelName is the Gemini model used for quest generation.
	ModelName string `mapstructure:"model_name"`

	// PromptTemplatePath optionally points at a custom prompt template
	// file. When empty, a built-in template is used.
	PromptTemplatePath string `mapstructure:"prompt_template_path"`

	// MaxRetries is the number of retry attempts for transient API errors.
	MaxRetries int `mapstructure:"max_retries" validate:"gte=0"`

	// RetryDelaySeconds is the base delay for exponential backoff between
	// retries.
	RetryDelaySeconds int `mapstructure:"retry_delay_seconds" validate:"gte=0"`
}
