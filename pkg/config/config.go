package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "/etc/grid"
	ConfigFileName    = "grid.yml"

	// DefaultJWTSecret is the placeholder secret shipped with the service.
	// Running with it is allowed but logged as a warning.
	DefaultJWTSecret = "CHANGE_ME"

	AlgorithmHS256 = "HS256"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const (
	SourceDefault     = "default"
	SourceFile        = "file"
	SourceEnvironment = "environment"
)

// GridConfig holds every setting the service reads at startup. It is loaded
// once and passed by value into the components that need it.
type GridConfig struct {
	// JWTSecret is the symmetric key used to sign identity tokens
	JWTSecret string `yaml:"jwt_secret" env:"JWT_SECRET"`

	// JWTAlgorithm is the token signing algorithm; only HS256 is accepted
	JWTAlgorithm string `yaml:"jwt_alg" env:"JWT_ALG"`

	// JWTExpiresMinutes is the token lifetime in minutes
	JWTExpiresMinutes int `yaml:"jwt_expires_min" env:"JWT_EXPIRES_MIN"`

	// DisableAuth resolves every request to the first user instead of
	// verifying bearer tokens
	DisableAuth Flag `yaml:"disable_auth" env:"GRID_DISABLE_AUTH"`

	// DBDriver selects the storage engine (postgres or sqlite)
	DBDriver string `yaml:"db_driver" env:"GRID_DB_DRIVER"`

	// DatabaseURL is the postgres DSN, or the sqlite file path
	DatabaseURL string `yaml:"database_url" env:"DATABASE_URL"`

	// DataDir holds the sqlite database and uploaded branding assets
	DataDir string `yaml:"data_dir" env:"DATA_DIR"`

	// BcryptCost is the work factor for password hashing
	BcryptCost int `yaml:"bcrypt_cost" env:"GRID_BCRYPT_COST"`

	// LogLevel is one of debug, info, warn, error
	LogLevel string `yaml:"log_level" env:"GRID_LOG_LEVEL"`

	sources        map[string]string
	configFilePath string
}

// Attribute represents a configuration attribute with its value and source
type Attribute struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

// envAttributes maps environment variable names to attribute names.
var envAttributes = map[string]string{
	"JWT_SECRET":        "jwt_secret",
	"JWT_ALG":           "jwt_alg",
	"JWT_EXPIRES_MIN":   "jwt_expires_min",
	"GRID_DISABLE_AUTH": "disable_auth",
	"GRID_DB_DRIVER":    "db_driver",
	"DATABASE_URL":      "database_url",
	"DATA_DIR":          "data_dir",
	"GRID_BCRYPT_COST":  "bcrypt_cost",
	"GRID_LOG_LEVEL":    "log_level",
}

// Default returns a config populated with built-in defaults only.
func Default() GridConfig {
	c := GridConfig{
		JWTSecret:         DefaultJWTSecret,
		JWTAlgorithm:      AlgorithmHS256,
		JWTExpiresMinutes: 1440,
		DBDriver:          DriverSQLite,
		DataDir:           "/data",
		BcryptCost:        12,
		LogLevel:          "info",
		sources:           make(map[string]string),
	}
	for _, name := range attributeNames() {
		c.sources[name] = SourceDefault
	}
	return c
}

// Load reads the config file (if present) and then the environment.
// Environment variables take precedence over file values.
func Load() (GridConfig, error) {
	configPath := os.Getenv("GRID_CONFIG_PATH")
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	return LoadFrom(filepath.Join(configPath, ConfigFileName))
}

// LoadFrom is Load with an explicit config file path.
func LoadFrom(path string) (GridConfig, error) {
	c := Default()
	c.configFilePath = path

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		var fileConfig GridConfig
		if err := yaml.Unmarshal(data, &fileConfig); err != nil {
			return GridConfig{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
		c.applyFileConfig(&fileConfig)
	case !errors.Is(err, os.ErrNotExist):
		return GridConfig{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := c.applyEnvConfig(); err != nil {
		return GridConfig{}, err
	}
	return c, nil
}

func attributeNames() []string {
	return []string{
		"jwt_secret", "jwt_alg", "jwt_expires_min", "disable_auth",
		"db_driver", "database_url", "data_dir", "bcrypt_cost", "log_level",
	}
}

func (c *GridConfig) applyFileConfig(file *GridConfig) {
	if file.JWTSecret != "" {
		c.JWTSecret = file.JWTSecret
		c.sources["jwt_secret"] = SourceFile
	}
	if file.JWTAlgorithm != "" {
		c.JWTAlgorithm = file.JWTAlgorithm
		c.sources["jwt_alg"] = SourceFile
	}
	if file.JWTExpiresMinutes != 0 {
		c.JWTExpiresMinutes = file.JWTExpiresMinutes
		c.sources["jwt_expires_min"] = SourceFile
	}
	if file.DisableAuth {
		c.DisableAuth = file.DisableAuth
		c.sources["disable_auth"] = SourceFile
	}
	if file.DBDriver != "" {
		c.DBDriver = file.DBDriver
		c.sources["db_driver"] = SourceFile
	}
	if file.DatabaseURL != "" {
		c.DatabaseURL = file.DatabaseURL
		c.sources["database_url"] = SourceFile
	}
	if file.DataDir != "" {
		c.DataDir = file.DataDir
		c.sources["data_dir"] = SourceFile
	}
	if file.BcryptCost != 0 {
		c.BcryptCost = file.BcryptCost
		c.sources["bcrypt_cost"] = SourceFile
	}
	if file.LogLevel != "" {
		c.LogLevel = file.LogLevel
		c.sources["log_level"] = SourceFile
	}
}

func (c *GridConfig) applyEnvConfig() error {
	err := env.ParseWithOptions(c, env.Options{
		OnSet: func(tag string, value interface{}, isDefault bool) {
			// called for every tagged field, including unset ones
			if isDefault || value == "" {
				return
			}
			if name, ok := envAttributes[tag]; ok {
				c.sources[name] = SourceEnvironment
			}
		},
	})
	if err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}
	return nil
}

// ConfigFilePath returns the path to the config file
func (c GridConfig) ConfigFilePath() string {
	return c.configFilePath
}

// Source returns the source of a configuration attribute
func (c GridConfig) Source(name string) string {
	if s, ok := c.sources[name]; ok {
		return s
	}
	return SourceDefault
}

// TokenTTL returns the token lifetime as a duration
func (c GridConfig) TokenTTL() time.Duration {
	return time.Duration(c.JWTExpiresMinutes) * time.Minute
}

// SQLitePath returns the sqlite database file. DatabaseURL wins when set.
func (c GridConfig) SQLitePath() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return filepath.Join(c.DataDir, "grid.db")
}

// BrandingDir returns the directory uploaded branding assets live in.
func (c GridConfig) BrandingDir() string {
	return filepath.Join(c.DataDir, "branding")
}

// Validate validates the configuration
func (c GridConfig) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("jwt_secret must not be empty")
	}
	if c.JWTAlgorithm != AlgorithmHS256 {
		return fmt.Errorf("unsupported jwt_alg %q: only %s is supported", c.JWTAlgorithm, AlgorithmHS256)
	}
	if c.JWTExpiresMinutes <= 0 {
		return fmt.Errorf("jwt_expires_min must be positive, got %d", c.JWTExpiresMinutes)
	}
	switch c.DBDriver {
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("database_url is required when db_driver is %s", DriverPostgres)
		}
	case DriverSQLite:
	default:
		return fmt.Errorf("invalid db_driver %q: expected %s or %s", c.DBDriver, DriverPostgres, DriverSQLite)
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		return fmt.Errorf("bcrypt_cost must be between 4 and 31, got %d", c.BcryptCost)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	return nil
}

// Warnings lists settings that are valid but weaken security.
func (c GridConfig) Warnings() []string {
	var warnings []string
	if c.JWTSecret == DefaultJWTSecret {
		warnings = append(warnings, "jwt_secret is the default placeholder; set JWT_SECRET")
	}
	if c.DisableAuth {
		warnings = append(warnings, "authentication is disabled; every request acts as the first user")
	}
	return warnings
}

// Attributes returns all configuration attributes with their values and sources
func (c GridConfig) Attributes() []Attribute {
	return []Attribute{
		{Name: "jwt_secret", Value: mask(c.JWTSecret), Source: c.Source("jwt_secret")},
		{Name: "jwt_alg", Value: c.JWTAlgorithm, Source: c.Source("jwt_alg")},
		{Name: "jwt_expires_min", Value: strconv.Itoa(c.JWTExpiresMinutes), Source: c.Source("jwt_expires_min")},
		{Name: "disable_auth", Value: strconv.FormatBool(bool(c.DisableAuth)), Source: c.Source("disable_auth")},
		{Name: "db_driver", Value: c.DBDriver, Source: c.Source("db_driver")},
		{Name: "database_url", Value: c.DatabaseURL, Source: c.Source("database_url")},
		{Name: "data_dir", Value: c.DataDir, Source: c.Source("data_dir")},
		{Name: "bcrypt_cost", Value: strconv.Itoa(c.BcryptCost), Source: c.Source("bcrypt_cost")},
		{Name: "log_level", Value: c.LogLevel, Source: c.Source("log_level")},
	}
}

// FormatText returns a text representation of the configuration
func (c GridConfig) FormatText() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Config file: %s\n\n", c.configFilePath))
	sb.WriteString(fmt.Sprintf("%-20s %-40s %s\n", "NAME", "VALUE", "SOURCE"))
	sb.WriteString(fmt.Sprintf("%-20s %-40s %s\n", "----", "-----", "------"))

	for _, attr := range c.Attributes() {
		value := attr.Value
		if value == "" {
			value = "(not set)"
		}
		sb.WriteString(fmt.Sprintf("%-20s %-40s %s\n", attr.Name, value, attr.Source))
	}
	return sb.String()
}

// FormatJSON returns a JSON representation of the configuration
func (c GridConfig) FormatJSON() (string, error) {
	result := map[string]interface{}{
		"config_file": c.configFilePath,
		"attributes":  c.Attributes(),
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func mask(secret string) string {
	if secret == "" {
		return ""
	}
	return "********"
}
