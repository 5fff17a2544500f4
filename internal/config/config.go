package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverSQLite = "sqlite"
	DriverBolt   = "bolt"
)

type Config struct {
	StoreDriver  string
	DBPath       string
	BoltPath     string
	OutputDir    string
	SynonymsFile string

	VendorPriority []string

	InboxDir            string
	ArchiveDir          string
	ListenerIntervalSec int
	ListenerFetchMax    int
	ListenerRate        int
	ListenerAutoExport  bool

	LogLevel  string
	LogFormat string
}

// Load reads .env, then TIQUETE_* environment variables, then an optional
// tiquete.yaml in the working directory or ./config.
func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.SetConfigName("tiquete")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.SetEnvPrefix("TIQUETE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("store_driver", DriverSQLite)
	v.SetDefault("db_path", filepath.Join(cwd, "data", "tiquete.db"))
	v.SetDefault("bolt_path", filepath.Join(cwd, "data", "tiquete.bolt"))
	v.SetDefault("output_dir", filepath.Join(cwd, "out"))
	v.SetDefault("synonyms_file", "")
	v.SetDefault("vendor_priority", "")
	v.SetDefault("inbox_dir", filepath.Join(cwd, "inbox"))
	v.SetDefault("archive_dir", filepath.Join(cwd, "data", "archive"))
	v.SetDefault("listener_interval_sec", 60)
	v.SetDefault("listener_fetch_max", 50)
	v.SetDefault("listener_rate", 5)
	v.SetDefault("listener_auto_export", true)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	cfg := Config{
		StoreDriver:    strings.ToLower(strings.TrimSpace(v.GetString("store_driver"))),
		DBPath:         v.GetString("db_path"),
		BoltPath:       v.GetString("bolt_path"),
		OutputDir:      v.GetString("output_dir"),
		SynonymsFile:   v.GetString("synonyms_file"),
		VendorPriority: splitList(v.GetString("vendor_priority")),

		InboxDir:            v.GetString("inbox_dir"),
		ArchiveDir:          v.GetString("archive_dir"),
		ListenerIntervalSec: v.GetInt("listener_interval_sec"),
		ListenerFetchMax:    v.GetInt("listener_fetch_max"),
		ListenerRate:        v.GetInt("listener_rate"),
		ListenerAutoExport:  v.GetBool("listener_auto_export"),

		LogLevel:  strings.ToLower(v.GetString("log_level")),
		LogFormat: strings.ToLower(v.GetString("log_format")),
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.StoreDriver {
	case DriverSQLite, DriverBolt:
	default:
		return fmt.Errorf("invalid store_driver %q: want %s or %s", c.StoreDriver, DriverSQLite, DriverBolt)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log_format %q: want text or json", c.LogFormat)
	}
	if c.ListenerIntervalSec <= 0 {
		return fmt.Errorf("invalid listener_interval_sec %d: must be positive", c.ListenerIntervalSec)
	}
	return nil
}

func (c Config) Require(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("missing required setting: %s", name)
	}
	return nil
}

func splitList(value string) []string {
	out := []string{}
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
