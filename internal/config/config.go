package config

import (
	"os"
	"time"

	"github.com/go-yaml/yaml"
)

const (
	defaultListen          = ":8000"
	defaultGeocoderURL     = "https://nominatim.openstreetmap.org"
	defaultGeocoderAgent   = "addressapi/1.0"
	defaultGeocoderTimeout = 3 * time.Second
)

type Config struct {
	Server   Server   `yaml:"server"`
	Geocoder Geocoder `yaml:"geocoder"`
}

type Server struct {
	Listen        string `yaml:"listen"`
	PostgresDsn   string `yaml:"postgresDsn"`
	RedisAddr     string `yaml:"redisAddr"` // empty disables change events
	RedisPassword string `yaml:"redisPassword"`
	RedisDB       int    `yaml:"redisDB"`
	EnableTrace   bool   `yaml:"enableTrace"`
	TraceEndpoint string `yaml:"traceEndpoint"`
	LogLevel      string `yaml:"logLevel"` // debug, info, warn, error
}

type Geocoder struct {
	BaseURL   string        `yaml:"baseURL"`
	UserAgent string        `yaml:"userAgent"`
	Timeout   time.Duration `yaml:"timeout"`
}

func Load(path string) (Config, error) {

	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	var config Config
	err = yaml.NewDecoder(file).Decode(&config)
	if err != nil {
		return Config{}, err
	}

	config.applyEnv()
	config.applyDefaults()

	return config, nil
}

func (c *Config) applyEnv() {
	if dsn := os.Getenv("ADDRESSAPI_POSTGRES_DSN"); dsn != "" {
		c.Server.PostgresDsn = dsn
	}
	if addr := os.Getenv("ADDRESSAPI_REDIS_ADDR"); addr != "" {
		c.Server.RedisAddr = addr
	}
}

func (c *Config) applyDefaults() {
	if c.Server.Listen == "" {
		c.Server.Listen = defaultListen
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = "info"
	}
	if c.Geocoder.BaseURL == "" {
		c.Geocoder.BaseURL = defaultGeocoderURL
	}
	if c.Geocoder.UserAgent == "" {
		c.Geocoder.UserAgent = defaultGeocoderAgent
	}
	if c.Geocoder.Timeout <= 0 {
		c.Geocoder.Timeout = defaultGeocoderTimeout
	}
}
