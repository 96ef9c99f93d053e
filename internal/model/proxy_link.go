package model

import (
	"errors"
	"net/url"
	"strconv"
	"strings"
)

// ErrInvalidProxyLink is returned when a string is not a proxy link.
var ErrInvalidProxyLink = errors.New("invalid proxy link")

// ProxyLinkKind distinguishes the web and native URI forms of a proxy link.
type ProxyLinkKind int

const (
	// ProxyLinkUnknown indicates an unrecognized form.
	ProxyLinkUnknown ProxyLinkKind = iota
	// ProxyLinkWeb is the https://t.me/proxy?... form.
	ProxyLinkWeb
	// ProxyLinkNative is the tg://proxy?... form.
	ProxyLinkNative
)

// String returns the string representation of the ProxyLinkKind.
func (k ProxyLinkKind) String() string {
	switch k {
	case ProxyLinkWeb:
		return "web"
	case ProxyLinkNative:
		return "native"
	default:
		return "unknown"
	}
}

// ProxyLink is a parsed view of an extracted proxy link.
// Raw is kept verbatim; the other fields are best effort and may be empty
// for links captured by the loose patterns.
type ProxyLink struct {
	// Raw is the link as returned in the response envelope.
	Raw string

	// Kind is the URI form of the link.
	Kind ProxyLinkKind

	// Server is the proxy host.
	Server string

	// Port is the proxy port, 0 if absent or not numeric.
	Port int

	// Secret is the proxy secret token.
	Secret string
}

// ParseProxyLink parses an extracted link into its connection parameters.
// Scheme and host are compared case-insensitively, matching extraction.
func ParseProxyLink(raw string) (ProxyLink, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return ProxyLink{}, errors.Join(ErrInvalidProxyLink, err)
	}

	link := ProxyLink{Raw: raw}
	switch {
	case strings.EqualFold(u.Scheme, "https") && strings.EqualFold(u.Host, TelegramHost) && strings.EqualFold(u.Path, "/proxy"):
		link.Kind = ProxyLinkWeb
	case strings.EqualFold(u.Scheme, "tg") && strings.EqualFold(u.Host, "proxy"):
		link.Kind = ProxyLinkNative
	default:
		return ProxyLink{}, ErrInvalidProxyLink
	}

	query := u.Query()
	link.Server = query.Get("server")
	link.Secret = query.Get("secret")
	if port, err := strconv.Atoi(query.Get("port")); err == nil {
		link.Port = port
	}

	return link, nil
}

// Address returns "server:port", or just the server if the port is unknown.
func (l ProxyLink) Address() string {
	if l.Port == 0 {
		return l.Server
	}
	return l.Server + ":" + strconv.Itoa(l.Port)
}
