package config

import "time"

// File represents the structure of the .proxycollector configuration file.
// Zero values mean "not set" and leave the corresponding Config field alone.
type File struct {
	Server ServerSection `yaml:"server,omitempty"`
	Fetch  FetchSection  `yaml:"fetch,omitempty"`
	Proxy  ProxySection  `yaml:"proxy,omitempty"`
	Tor    TorSection    `yaml:"tor,omitempty"`
	Log    LogSection    `yaml:"log,omitempty"`
}

// ServerSection configures the HTTP gateway.
type ServerSection struct {
	Listen          string        `yaml:"listen,omitempty"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout,omitempty"`
}

// FetchSection configures the upstream page fetch.
type FetchSection struct {
	BaseURL     string        `yaml:"baseURL,omitempty"`
	UserAgent   string        `yaml:"userAgent,omitempty"`
	Timeout     time.Duration `yaml:"timeout,omitempty"`
	MaxBodySize int64         `yaml:"maxBodySize,omitempty"`
}

// ProxySection configures an external SOCKS5 proxy.
type ProxySection struct {
	SOCKS5   string `yaml:"socks5,omitempty"`
	User     string `yaml:"user,omitempty"`
	Password string `yaml:"password,omitempty"`
}

// TorSection configures the embedded Tor daemon.
type TorSection struct {
	Embedded       bool          `yaml:"embedded,omitempty"`
	StartupTimeout time.Duration `yaml:"startupTimeout,omitempty"`
}

// LogSection configures logging.
type LogSection struct {
	Verbose bool `yaml:"verbose,omitempty"`
	JSON    bool `yaml:"json,omitempty"`
}

// Apply copies every value set in the file onto cfg.
func (f *File) Apply(cfg *Config) {
	if f == nil || cfg == nil {
		return
	}

	setString(&cfg.ListenAddress, f.Server.Listen)
	setDuration(&cfg.ShutdownTimeout, f.Server.ShutdownTimeout)

	setString(&cfg.BaseURL, f.Fetch.BaseURL)
	setString(&cfg.UserAgent, f.Fetch.UserAgent)
	setDuration(&cfg.Timeout, f.Fetch.Timeout)
	if f.Fetch.MaxBodySize != 0 {
		cfg.MaxBodySize = f.Fetch.MaxBodySize
	}

	setString(&cfg.SOCKS5Proxy, f.Proxy.SOCKS5)
	setString(&cfg.SOCKS5User, f.Proxy.User)
	setString(&cfg.SOCKS5Password, f.Proxy.Password)

	cfg.UseEmbeddedTor = cfg.UseEmbeddedTor || f.Tor.Embedded
	setDuration(&cfg.TorStartupTimeout, f.Tor.StartupTimeout)

	cfg.Verbose = cfg.Verbose || f.Log.Verbose
	cfg.JSONLogs = cfg.JSONLogs || f.Log.JSON
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v time.Duration) {
	if v != 0 {
		*dst = v
	}
}
