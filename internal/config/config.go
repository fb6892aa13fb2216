package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultFile is read from the working directory when no path is given.
const DefaultFile = "brewin.yml"

// Environment variables consulted after the config file.
const (
	EnvVerbose  = "BREWIN_VERBOSE"
	EnvTrace    = "BREWIN_TRACE"
	EnvMaxSteps = "BREWIN_MAX_STEPS"
	EnvNoColor  = "NO_COLOR"
)

// Config holds the interpreter settings shared by the CLI and the runner.
type Config struct {
	Verbose  bool `yaml:"verbose"`   // print the decoded program before running it
	NoColor  bool `yaml:"no_color"`  // disable ANSI colors
	Trace    bool `yaml:"trace"`     // log every executed statement
	MaxSteps int  `yaml:"max_steps"` // 0 = unlimited
}

// Load reads the YAML file at path, then applies a .env file and the process
// environment on top. A missing default file is not an error; a missing
// explicit path is.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	if err := cfg.readFile(path); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) readFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("config: open %s: %w", path, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	if err := decoder.Decode(c); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	if c.MaxSteps < 0 {
		return fmt.Errorf("config: %s: max_steps must not be negative", path)
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v, ok := os.LookupEnv(EnvVerbose); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvVerbose, err)
		}
		c.Verbose = b
	}

	if v, ok := os.LookupEnv(EnvTrace); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvTrace, err)
		}
		c.Trace = b
	}

	if v, ok := os.LookupEnv(EnvMaxSteps); ok {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return fmt.Errorf("config: %s: invalid step limit %q", EnvMaxSteps, v)
		}
		c.MaxSteps = n
	}

	// any value disables color, see https://no-color.org
	if v := os.Getenv(EnvNoColor); v != "" {
		c.NoColor = true
	}

	return nil
}
