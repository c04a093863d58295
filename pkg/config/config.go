package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	DefaultPath    = "~/.diary.db"
	DefaultBackend = "diskv"
)

// Config describes where and how entries are stored.
type Config interface {
	BasePath() string
	Backend() string
	LogLevel() slog.Level
}

// Load reads .diary.yaml from $DIARY_CONFIG_PATH or the working directory,
// with DIARY_* environment overrides. A .env file in the working directory is
// loaded first; variables already set take precedence over it.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("path", DefaultPath)
	v.SetDefault("backend", DefaultBackend)
	v.SetDefault("log", "warn")
	v.SetConfigName(".diary") // .yaml is implicit
	v.SetEnvPrefix("DIARY")
	v.AutomaticEnv()

	if override := os.Getenv("DIARY_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("config: expand path: %w", err)
	}
	return &fileConfig{
		Path:    path,
		Kind:    strings.ToLower(v.GetString("backend")),
		Verbose: v.GetString("log"),
	}, nil
}

type fileConfig struct {
	Path    string `json:"path"`
	Kind    string `json:"backend"`
	Verbose string `json:"log"`
}

func (f *fileConfig) BasePath() string { return f.Path }
func (f *fileConfig) Backend() string  { return f.Kind }

func (f *fileConfig) LogLevel() slog.Level {
	return ParseLevel(f.Verbose)
}

// ParseLevel maps debug/info/warn/error to a slog level, defaulting to warn.
func ParseLevel(s string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelWarn
	}
	return lvl
}

// Static is a literal Config.
type Static struct {
	Path  string
	Kind  string
	Level slog.Level
}

func (s Static) BasePath() string     { return s.Path }
func (s Static) Backend() string      { return s.Kind }
func (s Static) LogLevel() slog.Level { return s.Level }
