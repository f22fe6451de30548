package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// this is a pointer so that if someone attempts to use it before loading it will
// panic and force them to load it first.
// it is also private so that it cannot be modified after loading.
var _loaded *Config

// Config is the main configuration structure
type Config struct {
	Common Common `yaml:"common"`
}

type Common struct {
	Log     logConfig     `yaml:"log"`
	Http    httpConfig    `yaml:"http"`
	Storage storageConfig `yaml:"storage"`
}

type logConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type httpConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Storage drivers selectable for the user repository.
const (
	StorageDriverMemory   = "memory"
	StorageDriverPostgres = "postgres"
)

type storageConfig struct {
	Driver   string         `yaml:"driver"`
	Postgres postgresConfig `yaml:"postgres"`
}

type postgresConfig struct {
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Database string `yaml:"database"`
}

func (c postgresConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		url.QueryEscape(c.User),
		url.QueryEscape(c.Password),
		c.Host,
		c.Port,
		url.QueryEscape(c.Database),
	)
}

var defaultConfig = Config{
	Common: Common{
		Log: logConfig{
			Level:  "info",
			Format: "json",
		},
		Http: httpConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Storage: storageConfig{
			Driver: StorageDriverMemory,
			Postgres: postgresConfig{
				User:     "postgres",
				Password: "postgres",
				Host:     "localhost",
				Port:     5432,
				Database: "dualserve",
			},
		},
	},
}

// Load loads the configuration following proper precedence: defaults → config file → environment variables
func Load() {
	_loaded = &defaultConfig

	configFile := os.Getenv("DUALSERVE_CONFIG_FILE")
	if configFile == "" {
		configFile = "dualserve.yaml"
	}

	if err := LoadFromFile(configFile); err != nil {
		log.Printf("Failed to load config file: %v, using defaults", err)
	}

	ApplyEnvOverrides()
}

func LoadDefault() {
	config := defaultConfig
	_loaded = &config
}

// LoadFromFile loads configuration from a YAML file, merged over defaults.
func LoadFromFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := defaultConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	_loaded = &cfg
	return nil
}

// ApplyEnvOverrides applies environment variable overrides (highest priority).
func ApplyEnvOverrides() {
	if _loaded == nil {
		return
	}

	if httpHost := os.Getenv("DUALSERVE_HTTP_HOST"); httpHost != "" {
		_loaded.Common.Http.Host = httpHost
	}
	if httpPort := os.Getenv("DUALSERVE_HTTP_PORT"); httpPort != "" {
		if port, err := strconv.Atoi(httpPort); err == nil {
			_loaded.Common.Http.Port = port
		}
	}

	if logLevel := os.Getenv("DUALSERVE_LOG_LEVEL"); logLevel != "" {
		_loaded.Common.Log.Level = logLevel
	}
	if logFormat := os.Getenv("DUALSERVE_LOG_FORMAT"); logFormat != "" {
		_loaded.Common.Log.Format = logFormat
	}

	if driver := os.Getenv("DUALSERVE_STORAGE_DRIVER"); driver != "" {
		_loaded.Common.Storage.Driver = driver
	}
	if dbHost := os.Getenv("DUALSERVE_DB_HOST"); dbHost != "" {
		_loaded.Common.Storage.Postgres.Host = dbHost
	}
	if dbPort := os.Getenv("DUALSERVE_DB_PORT"); dbPort != "" {
		if port, err := strconv.Atoi(dbPort); err == nil {
			_loaded.Common.Storage.Postgres.Port = port
		}
	}
	if dbUser := os.Getenv("DUALSERVE_DB_USER"); dbUser != "" {
		_loaded.Common.Storage.Postgres.User = dbUser
	}
	if dbPassword := os.Getenv("DUALSERVE_DB_PASSWORD"); dbPassword != "" {
		_loaded.Common.Storage.Postgres.Password = dbPassword
	}
	if dbName := os.Getenv("DUALSERVE_DB_NAME"); dbName != "" {
		_loaded.Common.Storage.Postgres.Database = dbName
	}
}

// there should be a getter for each top level field in the config struct.
// these getters will panic if the config has not been loaded.

func Logger() logConfig {
	if _loaded == nil {
		panic("config not loaded - call Load() first")
	}
	return _loaded.Common.Log
}

func Http() httpConfig {
	if _loaded == nil {
		panic("config not loaded - call Load() first")
	}
	return _loaded.Common.Http
}

func Storage() storageConfig {
	if _loaded == nil {
		panic("config not loaded - call Load() first")
	}
	return _loaded.Common.Storage
}

func Get() *Config {
	if _loaded == nil {
		panic("config not loaded - call Load() first")
	}
	return _loaded
}
