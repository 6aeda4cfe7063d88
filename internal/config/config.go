package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Upstream  UpstreamConfig
	Redis     RedisConfig
	JWT       JWTConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

// UpstreamConfig points at the Product/User Directory Service. Mode
// "simulated" swaps in the in-process simulator, with the latency and
// failure knobs mirroring the demo API's behavior.
type UpstreamConfig struct {
	Mode        string // "http" or "simulated"
	BaseURL     string
	Token       string
	Timeout     time.Duration
	SimLatency  time.Duration
	SimFailRate float64
}

type RedisConfig struct {
	Addr     string // empty disables rate limiting
	Password string
	DB       int
}

type JWTConfig struct {
	Secret string
}

type RateLimitConfig struct {
	RequestsPerWindow int
	Window            time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

func Load() *Config {
	// .env first so viper's AutomaticEnv sees it
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_ENV", "development")
	viper.SetDefault("UPSTREAM_MODE", "http")
	viper.SetDefault("UPSTREAM_BASE_URL", "https://fakestoreapi.com")
	viper.SetDefault("UPSTREAM_TIMEOUT_SECONDS", 10)
	viper.SetDefault("UPSTREAM_SIM_LATENCY_MS", 0)
	viper.SetDefault("UPSTREAM_SIM_FAIL_RATE", 0.0)
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("JWT_SECRET", "dev-secret-change-me")
	viper.SetDefault("RATE_LIMIT_REQUESTS", 20)
	viper.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 60)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	return &Config{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
			Env:  viper.GetString("SERVER_ENV"),
		},
		Upstream: UpstreamConfig{
			Mode:        viper.GetString("UPSTREAM_MODE"),
			BaseURL:     viper.GetString("UPSTREAM_BASE_URL"),
			Token:       viper.GetString("UPSTREAM_TOKEN"),
			Timeout:     time.Duration(viper.GetInt("UPSTREAM_TIMEOUT_SECONDS")) * time.Second,
			SimLatency:  time.Duration(viper.GetInt("UPSTREAM_SIM_LATENCY_MS")) * time.Millisecond,
			SimFailRate: viper.GetFloat64("UPSTREAM_SIM_FAIL_RATE"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret: viper.GetString("JWT_SECRET"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerWindow: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Window:            time.Duration(viper.GetInt("RATE_LIMIT_WINDOW_SECONDS")) * time.Second,
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
		},
	}
}
