package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"go.uber.org/zap/zapcore"

	"rocket-launches/internal/modules/launches"
	"rocket-launches/internal/modules/pipeline"
)

// Defaults match the paths the workflow has always used.
const (
	DefaultLaunchesURL     = launches.DefaultURL
	DefaultLaunchesPath    = "/tmp/launches.json"
	DefaultImagesDir       = "/tmp/images"
	DefaultSchedule        = "@daily"
	DefaultStartOffsetDays = 14
	DefaultLogLevel        = "info"
)

// Config holds everything the workflow steps need. Paths are threaded
// through each step instead of being shared constants.
type Config struct {
	LaunchesURL     string
	LaunchesPath    string
	ImagesDir       string
	HTTPTimeout     time.Duration
	Schedule        string
	StartOffsetDays int
	LogLevel        string
}

// LoadDotEnv loads variables from the given .env files (default ".env")
// without overriding variables already set. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// FromEnv builds a Config from environment variables, falling back to defaults.
func FromEnv() *Config {
	return &Config{
		LaunchesURL:     getEnv("ROCKET_LAUNCHES_URL", DefaultLaunchesURL),
		LaunchesPath:    getEnv("ROCKET_LAUNCHES_PATH", DefaultLaunchesPath),
		ImagesDir:       getEnv("ROCKET_IMAGES_DIR", DefaultImagesDir),
		HTTPTimeout:     getDuration("ROCKET_HTTP_TIMEOUT", 0),
		Schedule:        getEnv("ROCKET_SCHEDULE", DefaultSchedule),
		StartOffsetDays: getInt("ROCKET_START_OFFSET_DAYS", DefaultStartOffsetDays),
		LogLevel:        getEnv("LOG_LEVEL", DefaultLogLevel),
	}
}

// BindFlags registers one flag per field on fs, using the current values
// as defaults so that flags override the environment.
func (c *Config) BindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.LaunchesURL, "launches-url", c.LaunchesURL, "URL of the upcoming launches listing")
	fs.StringVarP(&c.LaunchesPath, "launches-path", "l", c.LaunchesPath, "Path the launch list is saved to and read from")
	fs.StringVarP(&c.ImagesDir, "images-dir", "d", c.ImagesDir, "Directory images are saved to")
	fs.DurationVar(&c.HTTPTimeout, "http-timeout", c.HTTPTimeout, "Timeout per HTTP request (0 waits forever)")
	fs.StringVar(&c.Schedule, "schedule", c.Schedule, "Run cadence: @hourly, @daily, @weekly or a duration")
	fs.IntVar(&c.StartOffsetDays, "start-offset-days", c.StartOffsetDays, "Days before today the schedule starts")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "Log level: debug, info, warn or error")
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.LaunchesURL) == "" {
		return errors.New("launches URL must not be empty")
	}
	if strings.TrimSpace(c.LaunchesPath) == "" {
		return errors.New("launches path must not be empty")
	}
	if strings.TrimSpace(c.ImagesDir) == "" {
		return errors.New("images directory must not be empty")
	}
	if c.HTTPTimeout < 0 {
		return errors.New("HTTP timeout cannot be negative")
	}
	if c.StartOffsetDays < 0 {
		return errors.New("start offset cannot be negative")
	}
	if _, err := pipeline.ParseSchedule(c.Schedule); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (zapcore.Level, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(c.LogLevel)))); err != nil {
		return level, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return fallback
}
