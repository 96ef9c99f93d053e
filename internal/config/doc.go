// Package config provides the gateway configuration: listen address, fetch
// behavior, optional SOCKS5 or embedded Tor routing, and logging options.
//
// Values come from three layers with increasing precedence: built-in
// defaults (NewConfig), the YAML configuration file (File.Apply), and
// command-line flags the user set explicitly.
package config
