package config

import (
	"fmt"
	"net/url"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "proxycollector"

	// DefaultListenAddress is where the HTTP gateway listens.
	DefaultListenAddress = ":8080"

	// DefaultTimeout bounds the single upstream fetch made per request.
	DefaultTimeout = 30 * time.Second

	// DefaultBaseURL is the origin hosting channel preview pages.
	DefaultBaseURL = "https://t.me"

	// DefaultUserAgent is a desktop Chrome identity. t.me serves the
	// preview page without message bodies to unknown agents.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

	// DefaultMaxBodySize limits how much of the preview page is read.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB

	// DefaultShutdownTimeout is how long in-flight requests get on shutdown.
	DefaultShutdownTimeout = 10 * time.Second

	// DefaultTorStartupTimeout is the maximum time to wait for the embedded
	// Tor daemon to bootstrap.
	DefaultTorStartupTimeout = 3 * time.Minute

	// DefaultOutputFormat is the extract command's output format.
	DefaultOutputFormat = "json"
)

// OutputFormats lists the formats accepted for OutputFormat.
var OutputFormats = []string{"json", "markdown", "md", "text", "txt"}

// Config holds all configuration options.
// It is populated from defaults, the config file and CLI flags, and passed
// through the application via dependency injection rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs.
// The nested shape lives only in the YAML File type.
type Config struct {
	// ListenAddress is the HTTP gateway's listen address.
	ListenAddress string

	// ShutdownTimeout bounds graceful shutdown of the HTTP server.
	ShutdownTimeout time.Duration

	// Timeout is the total timeout of one upstream fetch, redirects included.
	Timeout time.Duration

	// BaseURL is the origin the preview page is fetched from.
	// Only tests and mirrors need to change it.
	BaseURL string

	// UserAgent is the User-Agent header sent upstream.
	UserAgent string

	// MaxBodySize is the maximum response body size in bytes to read.
	// Set to 0 to use the default (5MB).
	MaxBodySize int64

	// SOCKS5Proxy is an optional "host:port" SOCKS5 proxy for upstream fetches.
	SOCKS5Proxy string

	// SOCKS5User and SOCKS5Password are optional proxy credentials.
	SOCKS5User     string
	SOCKS5Password string

	// UseEmbeddedTor starts a private Tor daemon and routes fetches through it.
	// Mutually exclusive with SOCKS5Proxy.
	UseEmbeddedTor bool

	// TorStartupTimeout is the maximum time to wait for the embedded Tor
	// daemon to bootstrap. Only used when UseEmbeddedTor is true.
	TorStartupTimeout time.Duration

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// JSONLogs switches log output from text to JSON lines.
	JSONLogs bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, FindConfigFile searches the default locations.
	ConfigFilePath string

	// OutputFormat is the extract command's output format.
	OutputFormat string

	// OutputFile is the extract command's output file; empty means stdout.
	OutputFile string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		ListenAddress:     DefaultListenAddress,
		ShutdownTimeout:   DefaultShutdownTimeout,
		Timeout:           DefaultTimeout,
		BaseURL:           DefaultBaseURL,
		UserAgent:         DefaultUserAgent,
		MaxBodySize:       DefaultMaxBodySize,
		TorStartupTimeout: DefaultTorStartupTimeout,
		OutputFormat:      DefaultOutputFormat,
	}
}

// XDGConfigDir returns the XDG config directory for the application.
// On Linux: ~/.config/proxycollector
// On macOS: ~/Library/Application Support/proxycollector
// On Windows: %APPDATA%\proxycollector
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns the first problem found.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.ListenAddress) == "" {
		return ErrEmptyListenAddress
	}
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.ShutdownTimeout < 0 {
		return ErrInvalidShutdownTimeout
	}
	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}
	if err := validateBaseURL(c.BaseURL); err != nil {
		return err
	}
	if c.SOCKS5Proxy != "" && c.UseEmbeddedTor {
		return ErrConflictingProxySettings
	}
	if c.OutputFormat != "" && !slices.Contains(OutputFormats, strings.ToLower(c.OutputFormat)) {
		return fmt.Errorf("%w: %q (supported: json, markdown, text)", ErrInvalidOutputFormat, c.OutputFormat)
	}
	return nil
}

func validateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidBaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidBaseURL
	}
	return nil
}
