package config

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type MQConfig struct {
	URL string `yaml:"url"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
}

// StoreConfig selects where the habit collection lives.
// Backend: memory, redis or postgres. Key is the redis key holding the
// serialized collection.
type StoreConfig struct {
	Backend string `yaml:"backend"`
	Key     string `yaml:"key"`
}

type CoachConfig struct {
	APIKey         string `yaml:"api_key"`
	Model          string `yaml:"model"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type Config struct {
	Server ServerConfig `yaml:"server"`
	Store  StoreConfig  `yaml:"store"`
	DB     DBConfig     `yaml:"db"`
	Redis  RedisConfig  `yaml:"redis"`
	MQ     MQConfig     `yaml:"mq"`
	Coach  CoachConfig  `yaml:"coach"`
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{Port: ":8080"},
		Store:  StoreConfig{Backend: "memory", Key: "habits"},
		Coach:  CoachConfig{Model: "gemini-2.5-flash", TimeoutSeconds: 30},
	}
}

func Load() *Config {
	cfg := defaults()

	f, err := os.Open("config.yaml")
	if err != nil {
		// Config file is optional; env vars can carry everything.
		log.Printf("config.yaml not loaded (%v), using defaults and environment", err)
	} else {
		defer f.Close()
		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(cfg); err != nil {
			log.Fatalf("failed to decode config.yaml: %v", err)
		}
	}

	overrideFromEnv(cfg)

	return cfg
}

func overrideFromEnv(cfg *Config) {
	if port := os.Getenv("SERVER_PORT"); port != "" {
		cfg.Server.Port = port
	}

	if backend := os.Getenv("STORE_BACKEND"); backend != "" {
		cfg.Store.Backend = backend
	}
	if key := os.Getenv("STORE_KEY"); key != "" {
		cfg.Store.Key = key
	}

	if host := os.Getenv("DB_HOST"); host != "" {
		cfg.DB.Host = host
	}
	if port := os.Getenv("DB_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.DB.Port = p
		}
	}
	if user := os.Getenv("DB_USER"); user != "" {
		cfg.DB.User = user
	}
	if password := os.Getenv("DB_PASSWORD"); password != "" {
		cfg.DB.Password = password
	}
	if name := os.Getenv("DB_NAME"); name != "" {
		cfg.DB.Name = name
	}

	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.Redis.Addr = addr
	}
	if password := os.Getenv("REDIS_PASSWORD"); password != "" {
		cfg.Redis.Password = password
	}
	if db := os.Getenv("REDIS_DB"); db != "" {
		if n, err := strconv.Atoi(db); err == nil {
			cfg.Redis.DB = n
		}
	}

	if url := os.Getenv("MQ_URL"); url != "" {
		cfg.MQ.URL = url
	}

	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		cfg.Coach.APIKey = key
	}
	if model := os.Getenv("COACH_MODEL"); model != "" {
		cfg.Coach.Model = model
	}
	if timeout := os.Getenv("COACH_TIMEOUT_SECONDS"); timeout != "" {
		if n, err := strconv.Atoi(timeout); err == nil {
			cfg.Coach.TimeoutSeconds = n
		}
	}
}
