package tor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"time"

	"golang.org/x/net/proxy"

	"github.com/nao1215/proxycollector/internal/model"
)

// checkProxyTimeout bounds the SOCKS5 handshake performed by CheckConnection.
const checkProxyTimeout = 2 * time.Second

// Client provides SOCKS5 connectivity for outbound fetches.
type Client struct {
	// proxyAddress is the SOCKS5 proxy address in "host:port" format.
	proxyAddress string

	// auth holds optional username/password credentials.
	auth *proxy.Auth

	// dialer is the SOCKS5 dialer, cached for the lifetime of the client.
	dialer proxy.Dialer
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithAuth sets username/password credentials (RFC 1929).
// An empty user leaves authentication disabled.
func WithAuth(user, password string) ClientOption {
	return func(c *Client) {
		if user == "" {
			return
		}
		c.auth = &proxy.Auth{User: user, Password: password}
	}
}

// NewClient creates a SOCKS5 client for the given "host:port" address.
//
// The address format is validated but no connection is made; call
// CheckConnection to verify the proxy is up.
func NewClient(proxyAddress string, opts ...ClientOption) (*Client, error) {
	if !isValidProxyAddress(proxyAddress) {
		return nil, ErrInvalidProxyAddress
	}

	c := &Client{proxyAddress: proxyAddress}
	for _, opt := range opts {
		opt(c)
	}

	dialer, err := proxy.SOCKS5("tcp", proxyAddress, c.auth, proxy.Direct)
	if err != nil {
		return nil, fmt.Errorf("failed to create SOCKS5 dialer: %w", err)
	}
	c.dialer = dialer

	return c, nil
}

// isValidProxyAddress checks if the address is in valid "host:port" format
// with a non-empty host and a port between 1 and 65535.
func isValidProxyAddress(address string) bool {
	host, port, err := net.SplitHostPort(address)
	if err != nil || host == "" {
		return false
	}
	portNum, err := strconv.Atoi(port)
	if err != nil {
		return false
	}
	return portNum >= 1 && portNum <= 65535
}

// SOCKS5 protocol constants
const (
	socks5Version        = 0x05
	socks5AuthNone       = 0x00
	socks5AuthUserPass   = 0x02
	socks5AuthNoAccept   = 0xFF
	socks5CmdConnect     = 0x01
	socks5AddrTypeDomain = 0x03
	socks5UserPassVer    = 0x01

	// probePort is the port of the CONNECT probe sent to the Telegram host.
	probePort = 443
)

// CheckConnection verifies that the proxy speaks SOCKS5, accepts our
// authentication method and answers a CONNECT request for the Telegram
// host. Any CONNECT reply counts as success; a refusal still proves the
// proxy processed the request.
func (c *Client) CheckConnection(ctx context.Context) ProxyStatus {
	ctx, cancel := context.WithTimeout(ctx, checkProxyTimeout)
	defer cancel()

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", c.proxyAddress)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return ProxyStatusTimeout
		}
		return ProxyStatusCannotConnect
	}
	defer conn.Close()

	if err := conn.SetDeadline(time.Now().Add(checkProxyTimeout)); err != nil {
		return ProxyStatusCannotConnect
	}

	// Greeting: version, method count, methods.
	greeting := []byte{socks5Version, 0x01, socks5AuthNone}
	if c.auth != nil {
		greeting = []byte{socks5Version, 0x02, socks5AuthNone, socks5AuthUserPass}
	}
	if _, err := conn.Write(greeting); err != nil {
		return ProxyStatusCannotConnect
	}

	authResp := make([]byte, 2)
	if _, err := io.ReadFull(conn, authResp); err != nil {
		return readFailureStatus(err)
	}
	if authResp[0] != socks5Version {
		return ProxyStatusWrongType
	}

	switch authResp[1] {
	case socks5AuthNone:
	case socks5AuthUserPass:
		if c.auth == nil {
			return ProxyStatusAuthFailed
		}
		if status := c.authenticate(conn); status != ProxyStatusOK {
			return status
		}
	case socks5AuthNoAccept:
		if c.auth != nil {
			return ProxyStatusAuthFailed
		}
		return ProxyStatusWrongType
	default:
		return ProxyStatusWrongType
	}

	host := model.TelegramHost
	connectReq := []byte{
		socks5Version,
		socks5CmdConnect,
		0x00, // reserved
		socks5AddrTypeDomain,
		byte(len(host)),
	}
	connectReq = append(connectReq, host...)
	connectReq = append(connectReq, byte(probePort>>8), byte(probePort&0xFF))

	if _, err := conn.Write(connectReq); err != nil {
		return ProxyStatusCannotConnect
	}

	// version, reply, reserved, address type
	connectResp := make([]byte, 4)
	if _, err := io.ReadFull(conn, connectResp); err != nil {
		return readFailureStatus(err)
	}
	if connectResp[0] != socks5Version {
		return ProxyStatusWrongType
	}
	return ProxyStatusOK
}

// authenticate runs the RFC 1929 username/password subnegotiation.
func (c *Client) authenticate(conn net.Conn) ProxyStatus {
	req := []byte{socks5UserPassVer, byte(len(c.auth.User))}
	req = append(req, c.auth.User...)
	req = append(req, byte(len(c.auth.Password)))
	req = append(req, c.auth.Password...)
	if _, err := conn.Write(req); err != nil {
		return ProxyStatusCannotConnect
	}

	resp := make([]byte, 2)
	if _, err := io.ReadFull(conn, resp); err != nil {
		return readFailureStatus(err)
	}
	if resp[1] != 0x00 {
		return ProxyStatusAuthFailed
	}
	return ProxyStatusOK
}

func readFailureStatus(err error) ProxyStatus {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ProxyStatusTimeout
	}
	return ProxyStatusWrongType
}

// ProxyAddress returns the configured proxy address.
func (c *Client) ProxyAddress() string {
	return c.proxyAddress
}

// Dialer returns the SOCKS5 dialer for use with fetcher.NewHTTPClient.
func (c *Client) Dialer() proxy.Dialer {
	return c.dialer
}

// Dial establishes a TCP connection through the proxy.
func (c *Client) Dial(network, address string) (net.Conn, error) {
	return c.dialer.Dial(network, address)
}
