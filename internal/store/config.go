package store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds user settings read from config.{yaml,json,toml} in ConfigDir and from
// KANBAN_* environment variables. Command-line flags override it.
type Config struct {
	Dir             string
	Backend         string
	LogLevel        string
	DeferDuringDrag bool
	MetricsAddr     string
	Format          string
}

func ConfigDir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.kanban).
	if v := strings.TrimSpace(os.Getenv("KANBAN_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, workspaceDirName), nil
}

func LoadConfig() (Config, error) {
	v := viper.New()
	v.SetDefault("dir", "")
	v.SetDefault("backend", string(BackendDiskv))
	v.SetDefault("log_level", "warn")
	v.SetDefault("persist.defer_during_drag", false)
	v.SetDefault("metrics_addr", "")
	v.SetDefault("format", "json")

	v.SetConfigName("config")
	v.SetEnvPrefix("KANBAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	dir, err := ConfigDir()
	if err != nil {
		return Config{}, err
	}
	v.AddConfigPath(dir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, err
		}
	}

	return Config{
		Dir:             v.GetString("dir"),
		Backend:         v.GetString("backend"),
		LogLevel:        v.GetString("log_level"),
		DeferDuringDrag: v.GetBool("persist.defer_during_drag"),
		MetricsAddr:     v.GetString("metrics_addr"),
		Format:          v.GetString("format"),
	}, nil
}
