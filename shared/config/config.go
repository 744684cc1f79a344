package config

import (
	"errors"
	"fmt"
	"os"
	"path"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"
)

const (
	DefaultAPIURL = "http://localhost:5173"

	EnvAPIURL   = "TYPEWELL_API_URL"
	EnvLogLevel = "TYPEWELL_LOG_LEVEL"
	EnvJwtKey   = "TYPEWELL_MOCK_JWT_KEY"
)

type Config struct {
	Public  Public
	private Private
}

type Public struct {
	APIURL         string        `yaml:"api_url" validate:"required,url"`
	Timeout        time.Duration `yaml:"timeout" validate:"gte=0"` // 0 means requests are never aborted by the client
	LogLevel       string        `yaml:"log_level" validate:"omitempty,oneof=debug info warn warning error"`
	LogJSON        bool          `yaml:"log_json"`
	RequireSession bool          `yaml:"require_session"` // fail fast on auth-only endpoints without a session cookie
	CookieFile     string        `yaml:"cookie_file"`
	Mock           Mock          `yaml:"mock"`
}

type Mock struct {
	Addr           string        `yaml:"addr" validate:"required"`
	SessionTTL     time.Duration `yaml:"session_ttl" validate:"gt=0"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
	LoginRate      float64       `yaml:"login_rate" validate:"required_unless=LoginBurst 0,gte=0"` // credential attempts per second and email
	LoginBurst     int           `yaml:"login_burst" validate:"gte=0"`                              // 0 disables the limit
}

type Private struct {
	JwtKey string `yaml:"jwt_key"`
}

func (s *Config) JwtKey() string {
	return s.private.JwtKey
}

func (s *Config) SessionTTL() time.Duration {
	return s.Public.Mock.SessionTTL
}

// Default returns the configuration used when no file and no environment is set.
func Default() *Config {
	return &Config{
		Public: Public{
			APIURL:     DefaultAPIURL,
			LogLevel:   "info",
			CookieFile: ".typewell-cookies.json",
			Mock: Mock{
				Addr:           ":5173",
				SessionTTL:     30 * 24 * time.Hour,
				AllowedOrigins: []string{"http://localhost:3000"},
				LoginRate:      0.2,
				LoginBurst:     5,
			},
		},
		private: Private{JwtKey: "dev-secret"},
	}
}

// loadPath unmarshals the file into output. A missing file is not an error:
// every key has a default. Unknown keys are.
func loadPath(configPath string, output interface{}) error {
	configFile, err := os.ReadFile(configPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("can't read config file %s: %w", configPath, err)
	}
	if err := yaml.UnmarshalStrict(configFile, output); err != nil {
		return fmt.Errorf("can't unmarshal config file %s: %w", configPath, err)
	}
	return nil
}

// Load reads public.yaml and private.yaml from configFolder on top of the
// defaults, then applies environment overrides. An empty folder skips files.
func Load(configFolder string) (*Config, error) {
	cfg := Default()
	if configFolder != "" {
		if err := loadPath(path.Join(configFolder, "public.yaml"), &cfg.Public); err != nil {
			return nil, err
		}
		if err := loadPath(path.Join(configFolder, "private.yaml"), &cfg.private); err != nil {
			return nil, err
		}
	}
	applyEnv(cfg)

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(cfg.Public); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func MustLoad(configFolder string) *Config {
	cfg, err := Load(configFolder)
	if err != nil {
		panic(err.Error())
	}
	return cfg
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvAPIURL); v != "" {
		cfg.Public.APIURL = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Public.LogLevel = v
	}
	if v := os.Getenv(EnvJwtKey); v != "" {
		cfg.private.JwtKey = v
	}
}
