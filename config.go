package xa

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Defaults applied when the corresponding Config field is zero.
const (
	DefaultScriptTimeout = 30 * time.Second
	DefaultLaunchTimeout = 15 * time.Second
	DefaultPollInterval  = 50 * time.Millisecond
)

// Config holds xa configuration.
// Zero value is valid and uses sensible defaults.
type Config struct {
	// Osascript is the osascript binary. Defaults to the one in PATH.
	Osascript string

	// ScriptTimeout bounds a single script. Defaults to DefaultScriptTimeout.
	ScriptTimeout time.Duration

	// LaunchTimeout bounds the wait for a launched application to appear in
	// the running application list. Defaults to DefaultLaunchTimeout.
	LaunchTimeout time.Duration

	// PollInterval is how often a launch wait checks the workspace.
	PollInterval time.Duration

	// LaunchVisible launches applications visible and activated instead of
	// hidden in the background.
	LaunchVisible bool

	// Debug enables debug logging of every script.
	Debug bool

	// TCCDatabase overrides the path of the user's TCC database.
	TCCDatabase string
}

// NewConfig returns an empty configuration.
func NewConfig() *Config {
	return &Config{}
}

// FromEnv loads configuration from XA_ environment variables.
func (c *Config) FromEnv() *Config {
	if c == nil {
		c = &Config{}
	}
	if p := os.Getenv("XA_OSASCRIPT"); p != "" {
		c.Osascript = p
	}
	if d, err := time.ParseDuration(os.Getenv("XA_SCRIPT_TIMEOUT")); err == nil {
		c.ScriptTimeout = d
	}
	if d, err := time.ParseDuration(os.Getenv("XA_LAUNCH_TIMEOUT")); err == nil {
		c.LaunchTimeout = d
	}
	if d, err := time.ParseDuration(os.Getenv("XA_POLL_INTERVAL")); err == nil {
		c.PollInterval = d
	}
	if os.Getenv("XA_LAUNCH_VISIBLE") == "1" {
		c.LaunchVisible = true
	}
	if os.Getenv("XA_DEBUG") == "1" {
		c.Debug = true
	}
	if p := os.Getenv("XA_TCC_DB"); p != "" {
		c.TCCDatabase = p
	}
	return c
}

// WithOsascript sets the osascript binary.
func (c *Config) WithOsascript(path string) *Config {
	if c == nil {
		c = &Config{}
	}
	c.Osascript = path
	return c
}

// WithScriptTimeout sets the per-script timeout.
func (c *Config) WithScriptTimeout(d time.Duration) *Config {
	if c == nil {
		c = &Config{}
	}
	c.ScriptTimeout = d
	return c
}

// WithLaunchTimeout sets the launch wait.
func (c *Config) WithLaunchTimeout(d time.Duration) *Config {
	if c == nil {
		c = &Config{}
	}
	c.LaunchTimeout = d
	return c
}

// WithPollInterval sets the launch poll interval.
func (c *Config) WithPollInterval(d time.Duration) *Config {
	if c == nil {
		c = &Config{}
	}
	c.PollInterval = d
	return c
}

// WithLaunchVisible launches applications in the foreground.
func (c *Config) WithLaunchVisible() *Config {
	if c == nil {
		c = &Config{}
	}
	c.LaunchVisible = true
	return c
}

// WithDebug enables debug logging.
func (c *Config) WithDebug() *Config {
	if c == nil {
		c = &Config{}
	}
	c.Debug = true
	return c
}

// WithTCCDatabase sets the TCC database path.
func (c *Config) WithTCCDatabase(path string) *Config {
	if c == nil {
		c = &Config{}
	}
	c.TCCDatabase = path
	return c
}

func (c Config) scriptTimeout() time.Duration {
	if c.ScriptTimeout == 0 {
		return DefaultScriptTimeout
	}
	return c.ScriptTimeout
}

func (c Config) launchTimeout() time.Duration {
	if c.LaunchTimeout <= 0 {
		return DefaultLaunchTimeout
	}
	return c.LaunchTimeout
}

func (c Config) pollInterval() time.Duration {
	if c.PollInterval <= 0 {
		return DefaultPollInterval
	}
	return c.PollInterval
}

// LoadConfig reads configuration from an optional file (YAML, TOML or
// JSON, chosen by extension), then XA_ environment variables, after loading
// a .env file from the working directory if one exists. An empty path
// reads only the environment.
func LoadConfig(path string) (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, &Error{Op: "load .env", Err: err}
	}

	v := viper.New()
	v.SetDefault("osascript", "")
	v.SetDefault("script_timeout", DefaultScriptTimeout)
	v.SetDefault("launch_timeout", DefaultLaunchTimeout)
	v.SetDefault("poll_interval", DefaultPollInterval)
	v.SetDefault("launch_visible", false)
	v.SetDefault("debug", false)
	v.SetDefault("tcc_db", "")

	v.SetEnvPrefix("XA")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, &Error{
				Op:   "load config",
				Err:  fmt.Errorf("read %s: %w", path, err),
				Help: "config files may be .yaml, .toml or .json",
			}
		}
	}

	return &Config{
		Osascript:     v.GetString("osascript"),
		ScriptTimeout: v.GetDuration("script_timeout"),
		LaunchTimeout: v.GetDuration("launch_timeout"),
		PollInterval:  v.GetDuration("poll_interval"),
		LaunchVisible: v.GetBool("launch_visible"),
		Debug:         v.GetBool("debug"),
		TCCDatabase:   v.GetString("tcc_db"),
	}, nil
}

func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
