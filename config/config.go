package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
	Redis     RedisConfig     `yaml:"redis"`
	Minio     MinioConfig     `yaml:"minio"`
	Assistant AssistantConfig `yaml:"assistant"`
	Auth      AuthConfig      `yaml:"auth"`
	Engine    EngineConfig    `yaml:"engine"`
	Users     []User          `yaml:"users"`
}

type ServerConfig struct {
	Port          int `yaml:"port"`
	MaxUploadMB   int `yaml:"max_upload_mb"`
	RatePerMinute int `yaml:"rate_per_minute"`
}

type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

type RedisConfig struct {
	Addr                string `yaml:"addr"`
	Password            string `yaml:"password"`
	DB                  int    `yaml:"db"`
	SessionTimeoutHours int    `yaml:"session_timeout_hours"`
	MaxSessions         int    `yaml:"max_sessions"` // fallback store limit, 0 = unlimited
}

type MinioConfig struct {
	Endpoint   string `yaml:"endpoint"`
	AccessKey  string `yaml:"access_key"`
	SecretKey  string `yaml:"secret_key"`
	Bucket     string `yaml:"bucket"`
	UseSSL     bool   `yaml:"use_ssl"`
	ExpireDays int    `yaml:"expire_days"`
}

type AssistantConfig struct {
	APIURL string `yaml:"api_url"`
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

type AuthConfig struct {
	JWTSecret        string `yaml:"jwt_secret"`
	TokenExpireHours int    `yaml:"token_expire_hours"`
}

// EngineConfig holds the detection tuning constants. The defaults are
// empirically chosen against real legal templates; they are configuration,
// not invariants.
type EngineConfig struct {
	ContextWindow       int `yaml:"context_window"`        // chars of context on each side of a match
	AmountContextWindow int `yaml:"amount_context_window"` // wider window for blank dollar fields
	DedupeProximity     int `yaml:"dedupe_proximity"`      // max char distance treated as the same match
}

type User struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

var GlobalConfig *Config

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// Set defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.MaxUploadMB == 0 {
		cfg.Server.MaxUploadMB = 10
	}
	if cfg.Server.RatePerMinute == 0 {
		cfg.Server.RatePerMinute = 100
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
	if cfg.Redis.SessionTimeoutHours == 0 {
		cfg.Redis.SessionTimeoutHours = 168 // 7 days
	}
	if cfg.Minio.ExpireDays == 0 {
		cfg.Minio.ExpireDays = 7
	}
	if cfg.Auth.TokenExpireHours == 0 {
		cfg.Auth.TokenExpireHours = 24
	}
	if cfg.Assistant.Model == "" {
		cfg.Assistant.Model = "llama-3.3-70b-versatile"
	}
	if cfg.Engine.ContextWindow == 0 {
		cfg.Engine.ContextWindow = 50
	}
	if cfg.Engine.AmountContextWindow == 0 {
		cfg.Engine.AmountContextWindow = 200
	}
	if cfg.Engine.DedupeProximity == 0 {
		cfg.Engine.DedupeProximity = 10
	}

	GlobalConfig = &cfg
	return &cfg, nil
}

// FindUser finds a user by username
func (c *Config) FindUser(username string) *User {
	for i := range c.Users {
		if c.Users[i].Username == username {
			return &c.Users[i]
		}
	}
	return nil
}
