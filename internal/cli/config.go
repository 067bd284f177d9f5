package cli

import (
	"fmt"
	"net/url"
	"os"
)

// Output formats accepted by --output
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config holds the global flags shared by every command
type Config struct {
	ServerURL string
	Output    string
	Verbose   bool
}

// DefaultConfig reads TEAMDRAFT_SERVER and TEAMDRAFT_OUTPUT, falling back to a local server and text output
func DefaultConfig() *Config {
	return &Config{
		ServerURL: envOr("TEAMDRAFT_SERVER", "http://localhost:8080"),
		Output:    envOr("TEAMDRAFT_OUTPUT", FormatText),
	}
}

// Validate rejects an unknown output format or a server URL without scheme and host
func (c *Config) Validate() error {
	switch c.Output {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("unknown output format %q (want text or json)", c.Output)
	}

	u, err := url.Parse(c.ServerURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid server URL %q", c.ServerURL)
	}
	return nil
}

func envOr(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}
