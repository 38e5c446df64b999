package config

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Env        string `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer `yaml:"http_server"`
	Database   `yaml:"database"`
	Cloudinary `yaml:"cloudinary"`
}

type HTTPServer struct {
	Address                 string        `yaml:"address" env-default:"localhost:8080"`
	ReadTimeout             time.Duration `yaml:"read_timeout" env-default:"5s"`
	WriteTimeout            time.Duration `yaml:"write_timeout" env-default:"30s"`
	IdleTimeout             time.Duration `yaml:"idle_timeout" env-default:"60s"`
	GracefulShutdownTimeout time.Duration `yaml:"graceful_shutdown_timeout" env-default:"10s"`
}

type Database struct {
	DriverName   string        `yaml:"driver_name" env:"DB_DRIVER" env-default:"postgres"`
	Host         string        `yaml:"host" env:"DB_HOST" env-default:"localhost"`
	Port         int           `yaml:"port" env:"DB_PORT" env-default:"5432"`
	Username     string        `yaml:"username" env:"DB_USER" env-default:"postgres"`
	DBname       string        `yaml:"db_name" env:"DB_NAME" env-default:"postgres"`
	SSLmode      string        `yaml:"ssl_mode" env-default:"disable"`
	MaxOpenConns int           `yaml:"max_open_conns" env-default:"100"`
	MaxIdleConns int           `yaml:"max_idle_conns" env-default:"2"`
	MaxLifetime  time.Duration `yaml:"max_lifetime" env-default:"1h"`
}

type Cloudinary struct {
	CloudName    string `yaml:"cloud_name" env:"CLOUDINARY_CLOUD_NAME"`
	APIKey       string `yaml:"api_key" env:"CLOUDINARY_API_KEY"`
	Folder       string `yaml:"folder" env-default:"banners"`
	UploadPrefix string `yaml:"upload_prefix"`
}

type Secret struct {
	DBPassword          string `env:"DB_PASSWORD" env-required:"true"`
	CloudinaryAPISecret string `env:"CLOUDINARY_API_SECRET" env-required:"true"`
}

var ErrConfigPathEmpty = errors.New("config path is empty")

func MustLoad() (*Config, *Secret) {
	configPath := fetchConfigPath()

	cfg, scr, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot load config: %s", err)
	}

	return cfg, scr
}

// Load reads the YAML file at configPath, applies environment overrides and
// reads secrets from the environment.
func Load(configPath string) (*Config, *Secret, error) {
	const op = "config.Load"

	if configPath == "" {
		return nil, nil, fmt.Errorf("%s: %w", op, ErrConfigPathEmpty)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, nil, fmt.Errorf("%s: config file %s does not exist", op, configPath)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, nil, fmt.Errorf("%s: cannot read config: %w", op, err)
	}

	var scr Secret
	if err := cleanenv.ReadEnv(&scr); err != nil {
		return nil, nil, fmt.Errorf("%s: failed to get secret env: %w", op, err)
	}

	return &cfg, &scr, nil
}

func fetchConfigPath() string {
	var configPath, envPath string

	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.StringVar(&envPath, "env", "", "path to env file")
	flag.Parse()

	if envPath != "" {
		if err := godotenv.Load(envPath); err != nil {
			log.Fatalf("Env file %s does not exist", envPath)
		}
	} else {
		// .env next to the binary is optional
		_ = godotenv.Load()
	}

	if configPath == "" {
		configPath = os.Getenv("CONFIG_PATH")
	}

	return configPath
}
