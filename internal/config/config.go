// Package config loads the settings of the caseval command.
//
// Settings are resolved in this order, highest first: command-line flags,
// CASEVAL_* environment variables, the .caseval.yaml file in the working
// directory, and the defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gobwas/glob"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// FileName is the name of the config file looked up in the working
// directory.
const FileName = ".caseval.yaml"

// Config holds the settings of the caseval command.
type Config struct {
	// Output is the name of the generated file in each package.
	Output string `mapstructure:"output"`

	// Tags is the comma-separated build tags to load packages with.
	Tags string `mapstructure:"tags"`

	// Tests includes test files.
	Tests bool `mapstructure:"tests"`

	// Color is one of "auto", "always" and "never".
	Color string `mapstructure:"color"`

	// Skip lists glob patterns of package paths to leave alone.
	Skip []string `mapstructure:"skip"`

	Watch WatchConfig `mapstructure:"watch"`
}

type WatchConfig struct {
	// Debounce is how long to wait for more changes before regenerating.
	Debounce time.Duration `mapstructure:"debounce"`
}

// Default returns the default settings.
func Default() *Config {
	return &Config{
		Output: "caseval_gen.go",
		Color:  "auto",
		Skip:   []string{},
		Watch: WatchConfig{
			Debounce: 200 * time.Millisecond,
		},
	}
}

var (
	// ErrInvalidColor indicates an unknown color mode.
	ErrInvalidColor = errors.New("invalid color mode")

	// ErrInvalidOutput indicates an output name which is not a Go file name.
	ErrInvalidOutput = errors.New("invalid output file name")

	// ErrInvalidSkip indicates a skip pattern which is not a valid glob.
	ErrInvalidSkip = errors.New("invalid skip pattern")

	// ErrInvalidDebounce indicates a negative debounce.
	ErrInvalidDebounce = errors.New("invalid watch debounce")
)

// Validate checks every setting and reports all problems at once.
func Validate(cfg *Config) error {
	var errs []error

	switch cfg.Color {
	case "auto", "always", "never":
	default:
		errs = append(errs, fmt.Errorf("%w: %q (want auto, always or never)", ErrInvalidColor, cfg.Color))
	}

	if !strings.HasSuffix(cfg.Output, ".go") || strings.ContainsRune(cfg.Output, '/') || strings.ContainsRune(cfg.Output, filepath.Separator) {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidOutput, cfg.Output))
	}

	for _, pattern := range cfg.Skip {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			errs = append(errs, fmt.Errorf("%w: %q: %v", ErrInvalidSkip, pattern, err))
		}
	}

	if cfg.Watch.Debounce < 0 {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidDebounce, cfg.Watch.Debounce))
	}

	return errors.Join(errs...)
}

// Loader loads [Config] for a working directory.
type Loader struct {
	dir   string
	file  string
	flags *pflag.FlagSet
}

// NewLoader creates a loader reading the config file in dir.
func NewLoader(dir string) *Loader {
	return &Loader{dir: dir}
}

// WithFile reads the config from the given file instead. The file must
// exist.
func (l *Loader) WithFile(file string) *Loader {
	l.file = file
	return l
}

// WithFlags lets the changed flags of fs override the other sources. Flags
// are named after their keys, except "debounce" for "watch.debounce".
func (l *Loader) WithFlags(fs *pflag.FlagSet) *Loader {
	l.flags = fs
	return l
}

// flagNames maps keys to the names of the flags overriding them.
var flagNames = map[string]string{
	"output":         "output",
	"tags":           "tags",
	"tests":          "tests",
	"color":          "color",
	"skip":           "skip",
	"watch.debounce": "debounce",
}

// Load loads and validates the config.
func (l *Loader) Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	v.SetEnvPrefix("CASEVAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := Default()
	v.SetDefault("output", defaults.Output)
	v.SetDefault("tags", defaults.Tags)
	v.SetDefault("tests", defaults.Tests)
	v.SetDefault("color", defaults.Color)
	v.SetDefault("skip", defaults.Skip)
	v.SetDefault("watch.debounce", defaults.Watch.Debounce)

	if l.flags != nil {
		for key, name := range flagNames {
			if f := l.flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", key, err)
				}
			}
		}
	}

	if file := l.UsedFile(); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// UsedFile returns the config file [Loader.Load] reads, or "" if there is
// none.
func (l *Loader) UsedFile() string {
	if l.file != "" {
		return l.file
	}
	file := filepath.Join(l.dir, FileName)
	if _, err := os.Stat(file); err != nil {
		return ""
	}
	return file
}
