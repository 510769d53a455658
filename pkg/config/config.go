// Package config resolves the shell's process-wide settings.
package config

import (
	"flag"
	"fmt"
	"io"
	"strings"
)

const (
	// DefaultApplicationID is used when GROOVER_APPLICATION_ID is unset.
	DefaultApplicationID = "org.perezdecastro.groover"

	// DefaultServerURL is the Groove Basin instance the page view loads.
	DefaultServerURL = "http://127.0.0.1:16242"

	// ProcessModelSharedSecondary runs every page view in one shared web process.
	ProcessModelSharedSecondary = "shared-secondary-process"

	DefaultLogLevel = "info"
)

// Environment variables read by Load.
const (
	EnvApplicationID = "GROOVER_APPLICATION_ID"
	EnvLogLevel      = "GROOVER_LOG_LEVEL"
)

// Build configuration, set with -ldflags "-X".
var (
	Prefix                 = "/usr/local"
	WebExtensionsDirectory = ""
)

// Config holds the settings resolved once at process start.
type Config struct {
	ApplicationID    string
	ServerURL        string
	WebExtensionsDir string
	ProcessModel     string
	LogLevel         string
}

// Load resolves the configuration using getenv (normally os.Getenv).
func Load(getenv func(string) string) Config {
	cfg := Config{
		ApplicationID:    DefaultApplicationID,
		ServerURL:        DefaultServerURL,
		WebExtensionsDir: ExtensionsDir(),
		ProcessModel:     ProcessModelSharedSecondary,
		LogLevel:         DefaultLogLevel,
	}
	if id := getenv(EnvApplicationID); id != "" {
		cfg.ApplicationID = id
	}
	if level := getenv(EnvLogLevel); level != "" {
		cfg.LogLevel = strings.ToLower(level)
	}
	return cfg
}

// ExtensionsDir returns the web extensions directory, derived from Prefix
// unless WebExtensionsDirectory was set at link time.
func ExtensionsDir() string {
	if WebExtensionsDirectory != "" {
		return WebExtensionsDirectory
	}
	return strings.TrimSuffix(Prefix, "/") + "/lib/groover"
}

// Flags are the command line options understood by both the first and
// any later instance of the program.
type Flags struct {
	LogLevel string
	Action   string
}

// ParseFlags parses args, which must not include the program name.
func ParseFlags(args []string) (Flags, error) {
	var f Flags
	fs := flag.NewFlagSet("groover", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&f.LogLevel, "log-level", "", "diagnostic log level (debug, info, warn, error)")
	fs.StringVar(&f.Action, "action", "", "activate the named action in the running instance")
	if err := fs.Parse(args); err != nil {
		return Flags{}, fmt.Errorf("parse flags: %w", err)
	}
	if fs.NArg() > 0 {
		return Flags{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	return f, nil
}

// Apply overrides cfg with any values given on the command line.
func (f Flags) Apply(cfg Config) Config {
	if f.LogLevel != "" {
		cfg.LogLevel = strings.ToLower(f.LogLevel)
	}
	return cfg
}
