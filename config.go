package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	appName           = "check-docs"
	envPrefix         = "CHECK_DOCS"
	defaultConfigFile = ".check-docs.yaml"

	defaultDocsGlob  = "docs/*.md"
	defaultFlag      = "--output"
	defaultPrefixLen = len("--output")
	defaultProgram   = "robot"
)

// Extraction modes.
const (
	modePositional = "positional"
	modeShell      = "shell"
)

// settings is the resolved configuration for one run.
type settings struct {
	Docs      string   `mapstructure:"docs"`
	Exclude   []string `mapstructure:"exclude"`
	Flag      string   `mapstructure:"flag"`
	Mode      string   `mapstructure:"mode"`
	PrefixLen int      `mapstructure:"prefix_len"`
	Program   string   `mapstructure:"program"`
	Verbose   bool     `mapstructure:"verbose"`
}

func defaultSettings() settings {
	return settings{
		Docs:      defaultDocsGlob,
		Flag:      defaultFlag,
		Mode:      modePositional,
		PrefixLen: defaultPrefixLen,
		Program:   defaultProgram,
	}
}

// flagKeys maps command-line flag names to their configuration keys.
var flagKeys = map[string]string{
	"docs":       "docs",
	"exclude":    "exclude",
	"flag":       "flag",
	"mode":       "mode",
	"prefix-len": "prefix_len",
	"program":    "program",
	"verbose":    "verbose",
}

// loadSettings resolves settings with the precedence flags > environment >
// config file > defaults. configPath may be empty, in which case
// .check-docs.yaml in the working directory is used when present.
func loadSettings(flags *pflag.FlagSet, configPath string) (settings, error) {
	v := viper.New()

	defaults := defaultSettings()
	v.SetDefault("docs", defaults.Docs)
	v.SetDefault("exclude", defaults.Exclude)
	v.SetDefault("flag", defaults.Flag)
	v.SetDefault("mode", defaults.Mode)
	v.SetDefault("prefix_len", defaults.PrefixLen)
	v.SetDefault("program", defaults.Program)
	v.SetDefault("verbose", defaults.Verbose)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return settings{}, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	switch {
	case configPath != "":
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return settings{}, fmt.Errorf("read config %s: %w", configPath, err)
		}
	case fileExists(defaultConfigFile):
		v.SetConfigFile(defaultConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return settings{}, fmt.Errorf("read config %s: %w", defaultConfigFile, err)
		}
	}

	var s settings
	if err := v.Unmarshal(&s); err != nil {
		return settings{}, fmt.Errorf("decode config: %w", err)
	}
	if err := s.validate(); err != nil {
		return settings{}, err
	}
	return s, nil
}

func (s settings) validate() error {
	if strings.TrimSpace(s.Docs) == "" {
		return errors.New("docs glob is required")
	}
	if s.Flag == "" {
		return errors.New("flag substring is required")
	}
	switch s.Mode {
	case modePositional:
		if s.PrefixLen < 0 {
			return fmt.Errorf("prefix length must not be negative, got %d", s.PrefixLen)
		}
	case modeShell:
		if s.Program == "" {
			return errors.New("shell mode requires a program name")
		}
	default:
		return fmt.Errorf("unsupported mode %q (want %s or %s)", s.Mode, modePositional, modeShell)
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func newLogger(w io.Writer, verbose bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		Prefix: appName,
	})
	logger.SetLevel(log.WarnLevel)
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}
