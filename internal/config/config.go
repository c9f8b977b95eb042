package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Debug     bool    `yaml:"debug"`
	AppSecret string  `yaml:"app_secret" env:"APP_SECRET" env-required:"true"`
	Limiter   Limiter `yaml:"limiter"`
	Server    Server  `yaml:"server"`
	TMDB      TMDB    `yaml:"tmdb"`
	Mongo     Mongo   `yaml:"mongo"`
	Redis     Redis   `yaml:"redis"`
	Auth      Auth    `yaml:"auth"`
	Catalog   Catalog `yaml:"catalog"`
	Sentry    Sentry  `yaml:"sentry"`
	Tasks     Tasks   `yaml:"tasks"`
}

type Limiter struct {
	Enabled bool    `yaml:"enabled"`
	Rps     float64 `yaml:"rps" env-default:"20"`
	Burst   int     `yaml:"burst" env-default:"5"`
}

type Server struct {
	Port string `yaml:"port" env-default:"8000"`
	Host string `yaml:"host" env-default:"localhost"`

	ReadTimeout     time.Duration `yaml:"read_timeout" env-default:"5s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env-default:"10s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env-default:"10s"`
}

type TMDB struct {
	APIKey  string        `yaml:"api_key" env:"TMDB_API_KEY" env-required:"true"`
	Timeout time.Duration `yaml:"timeout" env-default:"10s"`
}

type Mongo struct {
	URI      string `yaml:"uri" env:"MONGO_URI" env-required:"true"`
	Database string `yaml:"database" env-default:"buscador_peliculas"`
}

type Redis struct {
	Addr     string `yaml:"addr" env-default:"localhost:6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env-default:"0"`
}

type Auth struct {
	TokenTTL           time.Duration `yaml:"token_ttl" env-default:"24h"`
	GoogleTokenInfoURL string        `yaml:"google_tokeninfo_url" env-default:"https://oauth2.googleapis.com/tokeninfo"`
}

type Catalog struct {
	DebounceDelay time.Duration `yaml:"debounce_delay" env-default:"500ms"`
}

type Sentry struct {
	DSN string `yaml:"dsn" env:"SENTRY_DSN"`
}

type Tasks struct {
	MaxWorkers   int `yaml:"max_workers" env-default:"4"`
	MaxQueueSize int `yaml:"max_queue_size" env-default:"100"`
}

func MustLoad(configPath string) *Config {
	var cfg Config
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic(fmt.Errorf("config file %s not found", configPath))
	}
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		panic(err)
	}

	return &cfg
}
