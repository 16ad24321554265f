package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/at-ishikawa/guanwo/internal/validation"
)

type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	LLM        LLMConfig        `mapstructure:"llm"`
	Moderation ModerationConfig `mapstructure:"moderation"`
	Speech     SpeechConfig     `mapstructure:"speech"`
	Journal    JournalConfig    `mapstructure:"journal"`
	Tags       TagsConfig       `mapstructure:"tags"`
	Tracking   TrackingConfig   `mapstructure:"tracking"`
	Analysis   AnalysisConfig   `mapstructure:"analysis"`
	Insights   InsightsConfig   `mapstructure:"insights"`
	Worker     WorkerConfig     `mapstructure:"worker"`
	Scheduler  SchedulerConfig  `mapstructure:"scheduler"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Templates  TemplatesConfig  `mapstructure:"templates"`
}

type AppConfig struct {
	// Timezone used for calendar days, heatmaps and scheduler periods.
	Timezone string `mapstructure:"timezone" validate:"required,timezone"`
}

// Location returns the configured timezone, falling back to UTC.
func (c AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

type ServerConfig struct {
	Port int        `mapstructure:"port" validate:"min=1,max=65535"`
	CORS CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite3"
)

type DatabaseConfig struct {
	Driver          string            `mapstructure:"driver" validate:"oneof=mysql sqlite3"`
	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port"`
	Database        string            `mapstructure:"database"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	Path            string            `mapstructure:"path" validate:"required_if=Driver sqlite3"`
	BusyTimeoutMS   int               `mapstructure:"busy_timeout_ms"`
	MaxOpenConns    int               `mapstructure:"max_open_conns"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds"`
}

type LLMConfig struct {
	DefaultProvider  string                       `mapstructure:"default_provider" validate:"required"`
	DefaultModelKey  string                       `mapstructure:"default_model_key" validate:"required"`
	Temperature      float32                      `mapstructure:"temperature" validate:"min=0,max=2"`
	TimeoutSeconds   int                          `mapstructure:"timeout_seconds" validate:"min=1"`
	MaxRetryAttempts uint                         `mapstructure:"max_retry_attempts"`
	Providers        map[string]LLMProviderConfig `mapstructure:"providers" validate:"required,dive"`
}

type LLMProviderConfig struct {
	BaseURL string `mapstructure:"base_url" validate:"required,url"`
	APIKey  string `mapstructure:"api_key"`
	// Models maps a model key used in this service to the provider's model id.
	Models map[string]string `mapstructure:"models" validate:"required"`
}

type ModerationConfig struct {
	// Endpoint of the text moderation service. Empty means every entry is accepted.
	Endpoint       string `mapstructure:"endpoint" validate:"omitempty,url"`
	APIKey         string `mapstructure:"api_key"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"min=1"`
}

type SpeechConfig struct {
	Endpoint       string `mapstructure:"endpoint" validate:"omitempty,url"`
	APIKey         string `mapstructure:"api_key"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"min=1"`
}

const (
	ModerationModeAsync = "async"
	ModerationModeSync  = "sync"
)

type JournalConfig struct {
	MaxContentLength int    `mapstructure:"max_content_length" validate:"min=1"`
	MaxAudioSeconds  int    `mapstructure:"max_audio_seconds" validate:"min=1"`
	MaxImages        int    `mapstructure:"max_images" validate:"min=0"`
	ModerationMode   string `mapstructure:"moderation_mode" validate:"oneof=async sync"`
	// StaleAfterSeconds is how long an entry may stay in sending before the sweeper fails it.
	StaleAfterSeconds int `mapstructure:"stale_after_seconds" validate:"min=1"`
}

type TagsConfig struct {
	MaxCustomPerUser int `mapstructure:"max_custom_per_user" validate:"min=1"`
	// SeedFile overrides the embedded default system tags.
	SeedFile string `mapstructure:"seed_file" validate:"omitempty,file"`
}

type TrackingConfig struct {
	MinSamples int `mapstructure:"min_samples" validate:"min=1"`
}

type AnalysisConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	ModelKey       string `mapstructure:"model_key"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"min=1"`
}

type InsightsConfig struct {
	MaxEnabledConfigs        int    `mapstructure:"max_enabled_configs" validate:"min=1"`
	MinEmotionMapEntries     int    `mapstructure:"min_emotion_map_entries" validate:"min=1"`
	GenerationTimeoutSeconds int    `mapstructure:"generation_timeout_seconds" validate:"min=1"`
	ModelKey                 string `mapstructure:"model_key"`
}

type WorkerConfig struct {
	Concurrency int `mapstructure:"concurrency" validate:"min=1"`
	QueueSize   int `mapstructure:"queue_size" validate:"min=1"`
}

type SchedulerConfig struct {
	Enabled         bool `mapstructure:"enabled"`
	IntervalSeconds int  `mapstructure:"interval_seconds" validate:"min=1"`
	Concurrency     int  `mapstructure:"concurrency" validate:"min=1"`
}

type RedisConfig struct {
	// Addr enables the shared scheduler gate. Empty keeps the gate in process.
	Addr      string `mapstructure:"addr"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

type TemplatesConfig struct {
	// PromptsDirectory may hold *.tmpl files overriding the embedded prompts.
	PromptsDirectory string `mapstructure:"prompts_directory" validate:"omitempty,dir"`
}

type ConfigLoader struct {
	viper     *viper.Viper
	validator *validation.Validator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, err := validation.New("mapstructure")
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/guanwo")
	}

	return &ConfigLoader{
		viper:     v,
		validator: validate,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("app.timezone", "Asia/Shanghai")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("database.driver", DriverSQLite)
	v.SetDefault("database.path", "guanwo.db")
	v.SetDefault("database.busy_timeout_ms", 5000)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.database", "guanwo")
	v.SetDefault("database.username", "guanwo")
	v.SetDefault("llm.default_provider", "siliconflow")
	v.SetDefault("llm.default_model_key", "kimi-k2")
	v.SetDefault("llm.temperature", 0.7)
	v.SetDefault("llm.timeout_seconds", 30)
	v.SetDefault("llm.max_retry_attempts", 2)
	v.SetDefault("llm.providers", map[string]any{
		"siliconflow": map[string]any{
			"base_url": "https://api.siliconflow.cn/v1",
			"models":   map[string]string{"kimi-k2": "moonshotai/Kimi-K2-Instruct"},
		},
		"ark": map[string]any{
			"base_url": "https://ark.cn-beijing.volces.com/api/v3",
			"models":   map[string]string{"doubao-seed-1-6-flash": "doubao-seed-1-6-flash-250715"},
		},
	})
	v.SetDefault("moderation.timeout_seconds", 10)
	v.SetDefault("speech.timeout_seconds", 30)
	v.SetDefault("journal.max_content_length", 5000)
	v.SetDefault("journal.max_audio_seconds", 300)
	v.SetDefault("journal.max_images", 9)
	v.SetDefault("journal.moderation_mode", ModerationModeAsync)
	v.SetDefault("journal.stale_after_seconds", 600)
	v.SetDefault("tags.max_custom_per_user", 10)
	v.SetDefault("tags.seed_file", "")
	v.SetDefault("tracking.min_samples", 5)
	v.SetDefault("analysis.enabled", true)
	v.SetDefault("analysis.timeout_seconds", 30)
	v.SetDefault("insights.max_enabled_configs", 10)
	v.SetDefault("insights.min_emotion_map_entries", 3)
	v.SetDefault("insights.generation_timeout_seconds", 60)
	v.SetDefault("worker.concurrency", 4)
	v.SetDefault("worker.queue_size", 256)
	v.SetDefault("scheduler.enabled", false)
	v.SetDefault("scheduler.interval_seconds", 900)
	v.SetDefault("scheduler.concurrency", 4)
	v.SetDefault("redis.key_prefix", "guanwo:")
	v.SetDefault("templates.prompts_directory", "")

	// Secrets are bound to environment variables only
	envBindings := map[string]string{
		"database.password":                 "DB_PASSWORD",
		"llm.providers.siliconflow.api_key": "SILICONFLOW_API_KEY",
		"llm.providers.ark.api_key":         "ARK_API_KEY",
		"moderation.api_key":                "MODERATION_API_KEY",
		"speech.api_key":                    "SPEECH_API_KEY",
		"redis.addr":                        "REDIS_ADDR",
		"redis.password":                    "REDIS_PASSWORD",
	}
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s environment variable: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	violations, err := loader.validator.Struct(cfg)
	if err != nil {
		return nil, fmt.Errorf("validate configuration: %w", err)
	}
	if len(violations) > 0 {
		return nil, fmt.Errorf("invalid configuration: %s", validation.Join(violations))
	}
	if _, ok := cfg.LLM.Providers[cfg.LLM.DefaultProvider]; !ok {
		return nil, fmt.Errorf("invalid configuration: llm provider %q is not configured", cfg.LLM.DefaultProvider)
	}

	return &cfg, nil
}

func (c ModerationConfig) Timeout() time.Duration { return seconds(c.TimeoutSeconds) }
func (c SpeechConfig) Timeout() time.Duration     { return seconds(c.TimeoutSeconds) }
func (c LLMConfig) Timeout() time.Duration        { return seconds(c.TimeoutSeconds) }
func (c AnalysisConfig) Timeout() time.Duration   { return seconds(c.TimeoutSeconds) }
func (c InsightsConfig) GenerationTimeout() time.Duration {
	return seconds(c.GenerationTimeoutSeconds)
}
func (c JournalConfig) StaleAfter() time.Duration { return seconds(c.StaleAfterSeconds) }
func (c SchedulerConfig) Interval() time.Duration { return seconds(c.IntervalSeconds) }

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}
