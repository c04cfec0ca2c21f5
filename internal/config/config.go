// Package config loads server settings from defaults, an optional config
// file, a .env file, environment variables and command-line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds everything the server needs at startup.
type Config struct {
	Port            string
	StaticDir       string
	SeedFile        string
	ShutdownTimeout time.Duration
	Log             LogConfig
	CORS            CORSConfig
}

// LogConfig controls the slog handler and optional file rotation.
type LogConfig struct {
	Level      string
	Format     string // text|json
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// CORSConfig lists allowed origins; "*" allows any.
type CORSConfig struct {
	AllowOrigins []string
}

// Addr returns the listen address for the configured port.
func (c *Config) Addr() string {
	return ":" + c.Port
}

// NewFlagSet defines the flags understood by Load.
func NewFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.String("config", "", "Path to a config file (yaml, json or toml)")
	fs.String("port", "", "Port to listen on (env PORT)")
	fs.String("static-dir", "", "Directory holding index.html and static assets")
	fs.String("seed-file", "", "JSON file with the initial game library")
	fs.String("log-level", "", "Log level: debug|info|warn|error")
	return fs
}

func setDefaults(v *viper.Viper, projectRoot string) {
	v.SetDefault("port", "3000")
	v.SetDefault("static_dir", filepath.Join(projectRoot, "web", "static"))
	v.SetDefault("seed_file", "")
	v.SetDefault("shutdown_timeout", 10*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age", 28)
	v.SetDefault("log.compress", false)
	v.SetDefault("cors.allow_origins", "*")
}

// Load parses args with fs and resolves the final configuration.
// projectRoot anchors the default static directory.
func Load(fs *pflag.FlagSet, args []string, projectRoot string) (*Config, error) {
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// A missing .env is normal outside development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v, projectRoot)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, flag := range map[string]string{
		"port":       "port",
		"static_dir": "static-dir",
		"seed_file":  "seed-file",
		"log.level":  "log-level",
	} {
		if err := v.BindPFlag(key, fs.Lookup(flag)); err != nil {
			return nil, fmt.Errorf("binding flag %s: %w", flag, err)
		}
	}

	if path, _ := fs.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:            strings.TrimSpace(v.GetString("port")),
		StaticDir:       v.GetString("static_dir"),
		SeedFile:        v.GetString("seed_file"),
		ShutdownTimeout: v.GetDuration("shutdown_timeout"),
		Log: LogConfig{
			Level:      v.GetString("log.level"),
			Format:     v.GetString("log.format"),
			File:       v.GetString("log.file"),
			MaxSizeMB:  v.GetInt("log.max_size"),
			MaxBackups: v.GetInt("log.max_backups"),
			MaxAgeDays: v.GetInt("log.max_age"),
			Compress:   v.GetBool("log.compress"),
		},
		CORS: CORSConfig{AllowOrigins: stringList(v, "cors.allow_origins")},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	p, err := strconv.Atoi(c.Port)
	if err != nil || p < 1 || p > 65535 {
		return fmt.Errorf("invalid port %q: must be a number between 1 and 65535", c.Port)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q: must be text or json", c.Log.Format)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive, got %s", c.ShutdownTimeout)
	}
	return nil
}

// stringList reads key as either a config-file list or a comma-separated
// string (env, flags, scalar config values).
func stringList(v *viper.Viper, key string) []string {
	switch v.Get(key).(type) {
	case []any, []string:
		return splitList(strings.Join(v.GetStringSlice(key), ","))
	default:
		return splitList(v.GetString(key))
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
