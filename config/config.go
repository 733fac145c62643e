package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Gemini diagnosis.
	GeminiAPIKey      string        `mapstructure:"GEMINI_API_KEY"`
	GeminiModel       string        `mapstructure:"GEMINI_MODEL"`
	DiagnosisCache    string        `mapstructure:"DIAGNOSIS_CACHE"`
	DiagnosisCacheTTL time.Duration `mapstructure:"DIAGNOSIS_CACHE_TTL"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`

	// Billing.
	ServiceCharge float64 `mapstructure:"SERVICE_CHARGE"`
	Currency      string  `mapstructure:"CURRENCY"`

	// Where the technician is headed.
	DefaultServiceAddress string  `mapstructure:"DEFAULT_SERVICE_ADDRESS"`
	ServiceLat            float64 `mapstructure:"SERVICE_LAT"`
	ServiceLng            float64 `mapstructure:"SERVICE_LNG"`

	// Simulated payment provider.
	PaymentProcessingDelay time.Duration `mapstructure:"PAYMENT_PROCESSING_DELAY"`
	PaymentSuccessDelay    time.Duration `mapstructure:"PAYMENT_SUCCESS_DELAY"`

	// Map animation.
	TrackingDuration time.Duration `mapstructure:"TRACKING_DURATION"`
	TrackingTick     time.Duration `mapstructure:"TRACKING_TICK"`
}

var AppConfig Config

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	v.SetDefault("GEMINI_API_KEY", "")
	v.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
	v.SetDefault("DIAGNOSIS_CACHE", "none")
	v.SetDefault("DIAGNOSIS_CACHE_TTL", "24h")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_CACHE_DB", 0)
	v.SetDefault("SERVICE_CHARGE", 250)
	v.SetDefault("CURRENCY", "INR")
	v.SetDefault("DEFAULT_SERVICE_ADDRESS", "Flat 402, Sunrise Towers, Benz Circle, Vijayawada, 520010")
	v.SetDefault("SERVICE_LAT", 16.5062)
	v.SetDefault("SERVICE_LNG", 80.6480)
	v.SetDefault("PAYMENT_PROCESSING_DELAY", "2s")
	v.SetDefault("PAYMENT_SUCCESS_DELAY", "1500ms")
	v.SetDefault("TRACKING_DURATION", "30s")
	v.SetDefault("TRACKING_TICK", "100ms")
}

// Load reads config.yaml from the current or ./config directory, then lets
// environment variables override it. A missing file is not an error.
func Load(paths ...string) (Config, error) {
	// .env is optional; real environment variables still win.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{".", "./config"}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		log.Println("No config file found, using environment variables only")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig populates AppConfig and exits the process on failure.
func LoadConfig() {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	AppConfig = cfg
}

func (c Config) validate() error {
	switch c.DiagnosisCache {
	case "none", "redis":
	default:
		return fmt.Errorf("DIAGNOSIS_CACHE must be 'none' or 'redis', got %q", c.DiagnosisCache)
	}
	if c.ServiceCharge < 0 {
		return fmt.Errorf("SERVICE_CHARGE must not be negative")
	}
	if c.TrackingTick <= 0 || c.TrackingDuration <= 0 {
		return fmt.Errorf("TRACKING_TICK and TRACKING_DURATION must be positive")
	}
	return nil
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
