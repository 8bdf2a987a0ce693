package conf

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lk2023060901/ai-learning-backend/internal/pkg/database"
	"github.com/lk2023060901/ai-learning-backend/internal/pkg/logger"
	"github.com/lk2023060901/ai-learning-backend/internal/pkg/redis"
	"github.com/spf13/viper"
)

// Header identity policies
const (
	HeaderPolicyBound   = "bound"
	HeaderPolicyTrusted = "trusted"
	HeaderPolicyIgnore  = "ignore"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  database.Config `mapstructure:"database"`
	Redis     redis.Config    `mapstructure:"redis"`
	Log       logger.Config   `mapstructure:"log"`
	Auth      AuthConfig      `mapstructure:"auth"`
	AI        AIConfig        `mapstructure:"ai"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
}

type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	BasePath     string        `mapstructure:"base_path"`
	CORSOrigins  []string      `mapstructure:"cors_origins"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type AuthConfig struct {
	JWTSecret     string `mapstructure:"jwt_secret"`
	JWTIssuer     string `mapstructure:"jwt_issuer"`
	SessionSecret string `mapstructure:"session_secret"` // signs X-User-Signature
	HeaderPolicy  string `mapstructure:"header_policy"`  // bound, trusted, ignore
}

type AIConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"` // 0 means no client-side timeout
}

type RateLimitConfig struct {
	GenerateMaxRequests   int `mapstructure:"generate_max_requests"` // 0 disables the limiter
	GenerateWindowSeconds int `mapstructure:"generate_window_seconds"`
}

// Addr returns host:port for the HTTP listener
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.base_path", "")
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 0)

	db := database.DefaultConfig()
	v.SetDefault("database.host", db.Host)
	v.SetDefault("database.port", db.Port)
	v.SetDefault("database.user", db.User)
	v.SetDefault("database.password", db.Password)
	v.SetDefault("database.dbname", db.DBName)
	v.SetDefault("database.sslmode", db.SSLMode)
	v.SetDefault("database.timezone", db.Timezone)
	v.SetDefault("database.max_idle_conns", db.MaxIdleConns)
	v.SetDefault("database.max_open_conns", db.MaxOpenConns)
	v.SetDefault("database.conn_max_lifetime", db.ConnMaxLifetime)
	v.SetDefault("database.conn_max_idle_time", db.ConnMaxIdleTime)
	v.SetDefault("database.log_level", db.LogLevel)
	v.SetDefault("database.slow_threshold", db.SlowThreshold)
	v.SetDefault("database.auto_migrate", db.AutoMigrate)

	rd := redis.DefaultConfig()
	v.SetDefault("redis.enabled", rd.Enabled)
	v.SetDefault("redis.mode", string(rd.Mode))
	v.SetDefault("redis.addrs", rd.Addrs)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", rd.DB)
	v.SetDefault("redis.pool_size", rd.PoolSize)
	v.SetDefault("redis.min_idle_conns", rd.MinIdleConns)
	v.SetDefault("redis.dial_timeout", rd.DialTimeout)
	v.SetDefault("redis.read_timeout", rd.ReadTimeout)
	v.SetDefault("redis.write_timeout", rd.WriteTimeout)
	v.SetDefault("redis.pool_timeout", rd.PoolTimeout)
	v.SetDefault("redis.max_retries", rd.MaxRetries)

	lg := logger.DefaultConfig()
	v.SetDefault("log.level", lg.Level)
	v.SetDefault("log.format", lg.Format)
	v.SetDefault("log.output", lg.Output)
	v.SetDefault("log.enable_caller", lg.EnableCaller)
	v.SetDefault("log.enable_stacktrace", lg.EnableStacktrace)
	v.SetDefault("log.file.filename", lg.File.Filename)
	v.SetDefault("log.file.max_size", lg.File.MaxSize)
	v.SetDefault("log.file.max_age", lg.File.MaxAge)
	v.SetDefault("log.file.max_backups", lg.File.MaxBackups)
	v.SetDefault("log.file.compress", lg.File.Compress)

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.jwt_issuer", "")
	v.SetDefault("auth.session_secret", "")
	v.SetDefault("auth.header_policy", HeaderPolicyBound)

	v.SetDefault("ai.api_key", "")
	v.SetDefault("ai.base_url", "https://router.huggingface.co/v1")
	v.SetDefault("ai.model", "mlfoundations-dev/oh-dcft-v3.1-claude-3-5-sonnet-20241022:featherless-ai")
	v.SetDefault("ai.timeout", 0)

	v.SetDefault("ratelimit.generate_max_requests", 10)
	v.SetDefault("ratelimit.generate_window_seconds", 60)
}

// LoadConfig reads the YAML file at path (optional when empty) and applies
// environment overrides such as AI_API_KEY or DATABASE_HOST.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate rejects configurations the service cannot run with. There is
// no built-in provider key to fall back to.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.AI.APIKey) == "" {
		return errors.New("ai.api_key is required (set AI_API_KEY)")
	}
	if c.AI.Model == "" {
		return errors.New("ai.model is required")
	}
	if c.AI.Timeout < 0 {
		return errors.New("ai.timeout must be >= 0")
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("auth.jwt_secret is required (set AUTH_JWT_SECRET)")
	}

	switch c.Auth.HeaderPolicy {
	case HeaderPolicyBound:
		if c.Auth.SessionSecret == "" {
			return errors.New("auth.session_secret is required when header_policy is bound")
		}
	case HeaderPolicyTrusted, HeaderPolicyIgnore:
	default:
		return fmt.Errorf("invalid auth.header_policy %q, must be one of: bound, trusted, ignore", c.Auth.HeaderPolicy)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errors.New("server.port must be between 1 and 65535")
	}
	if c.Server.BasePath != "" && !strings.HasPrefix(c.Server.BasePath, "/") {
		return errors.New("server.base_path must start with /")
	}
	if c.RateLimit.GenerateMaxRequests < 0 {
		return errors.New("ratelimit.generate_max_requests must be >= 0")
	}
	if c.RateLimit.GenerateMaxRequests > 0 && c.RateLimit.GenerateWindowSeconds <= 0 {
		return errors.New("ratelimit.generate_window_seconds must be > 0")
	}
	return nil
}
