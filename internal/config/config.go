package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"bucketcopy/internal/domain"
)

type Config struct {
	SourceDir string
	OutDir    string
	Jobs      int
	Verbose   bool
	TUI       bool
	NoColor   bool
}

// Bind registers the command line flags on fs, writing into cfg.
func Bind(fs *pflag.FlagSet, cfg *Config) {
	fs.StringVarP(&cfg.SourceDir, "source", "s", "", "Path to source directory")
	fs.StringVarP(&cfg.OutDir, "out", "o", "", "Path to output directory")
	fs.IntVarP(&cfg.Jobs, "jobs", "j", 0, "Maximum concurrent copies (default: CPUs minus one)")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Log every copied file")
	fs.BoolVar(&cfg.TUI, "tui", false, "Show an interactive progress view")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable coloured output")
}

// Resolve fills unset values from the environment and defaults and checks
// that the result is usable.
func (cfg Config) Resolve() (Config, error) {
	if cfg.SourceDir == "" {
		cfg.SourceDir = envOrEmpty("BUCKETCOPY_SOURCE_DIR")
	}
	if cfg.OutDir == "" {
		cfg.OutDir = envOrEmpty("BUCKETCOPY_OUT_DIR")
	}
	if !cfg.Verbose {
		cfg.Verbose = envTruthy("BUCKETCOPY_VERBOSE")
	}
	if cfg.Jobs == 0 {
		if raw := envOrEmpty("BUCKETCOPY_JOBS"); raw != "" {
			jobs, err := strconv.Atoi(raw)
			if err != nil {
				return Config{}, fmt.Errorf("invalid BUCKETCOPY_JOBS %q: %w", raw, err)
			}
			cfg.Jobs = jobs
		}
	}

	if cfg.SourceDir == "" || cfg.OutDir == "" {
		return Config{}, errors.New("source and out are required")
	}
	if cfg.Jobs < 0 {
		return Config{}, errors.New("jobs must not be negative")
	}
	if cfg.Jobs == 0 {
		cfg.Jobs = DefaultConcurrency()
	}
	return cfg, nil
}

// DefaultConcurrency leaves one CPU for the walker and the rest of the system.
func DefaultConcurrency() int {
	return max(runtime.NumCPU()-1, 1)
}

func (cfg Config) RunConfig() domain.RunConfig {
	return domain.RunConfig{
		Source:      cfg.SourceDir,
		Out:         cfg.OutDir,
		Concurrency: cfg.Jobs,
	}
}

func envOrEmpty(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func envTruthy(key string) bool {
	val := strings.TrimSpace(strings.ToLower(os.Getenv(key)))
	return val == "1" || val == "true" || val == "yes" || val == "y"
}
