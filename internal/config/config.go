package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultOutputPath is the artifact location relative to the project root.
const DefaultOutputPath = "static/search-index.json"

// Config holds all configuration for the index builder.
// All paths are absolute once Load returns.
type Config struct {
	ProjectRoot     string
	OutputPath      string
	DBPath          string // optional SQLite mirror, empty when disabled
	MetricsTextfile string // optional Prometheus textfile, empty when disabled
	LogLevel        slog.Level
	LogFormat       string
}

// Overrides holds values supplied on the command line.
// Non-empty fields take precedence over the environment.
type Overrides struct {
	ProjectRoot     string
	OutputPath      string
	DBPath          string
	MetricsTextfile string
	Verbose         bool
}

// Load reads configuration from environment variables and returns a Config struct.
// If a .env file exists in the current directory or one of its parents, it is loaded first.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	return LoadWithOverrides(Overrides{})
}

// LoadWithOverrides is Load with command line values applied on top of the environment.
func LoadWithOverrides(o Overrides) (*Config, error) {
	loadDotEnv()

	root := firstNonEmpty(o.ProjectRoot, getEnv("PROJECT_ROOT", ""))
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to determine project root: %w", err)
		}
		root = wd
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project root %q: %w", root, err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("project root %q is not accessible: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("project root %q is not a directory", root)
	}

	cfg := &Config{
		ProjectRoot:     root,
		OutputPath:      resolve(root, firstNonEmpty(o.OutputPath, getEnv("SEARCH_INDEX_OUTPUT", DefaultOutputPath))),
		DBPath:          resolve(root, firstNonEmpty(o.DBPath, getEnv("SEARCH_DB_PATH", ""))),
		MetricsTextfile: resolve(root, firstNonEmpty(o.MetricsTextfile, getEnv("METRICS_TEXTFILE", ""))),
		LogFormat:       strings.ToLower(getEnv("LOG_FORMAT", "text")),
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error: %w", err)
	}
	if o.Verbose {
		cfg.LogLevel = slog.LevelDebug
	}

	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}

	return cfg, nil
}

// loadDotEnv loads .env from the current directory, then from the nearest parent that has one.
func loadDotEnv() {
	_ = godotenv.Load() // Try current directory

	wd, err := os.Getwd()
	if err != nil {
		return
	}
	dir := wd
	for i := 0; i < 5; i++ { // Limit search depth
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return // Reached filesystem root
		}
		dir = parent
	}
}

// resolve makes a relative path absolute against root. Empty stays empty.
func resolve(root, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, filepath.FromSlash(path))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
