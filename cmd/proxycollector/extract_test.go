package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/nao1215/proxycollector/internal/model"
)

const proxyPage = `<html><head><title>Proxy Channel</title></head><body>
<div class="tgme_widget_message_text">
<a href="https://t.me/proxy?server=1.2.3.4&amp;port=443&amp;secret=ee00">proxy</a>
<a href="tg://proxy?server=5.6.7.8&amp;port=8443&amp;secret=dd11">proxy</a>
<a href="https://t.me/proxy?server=1.2.3.4&amp;port=443&amp;secret=ee00">again</a>
</div></body></html>`

// newUpstream starts a fake preview page origin. Only "proxychannel" exists.
func newUpstream(t *testing.T) (*httptest.Server, *atomic.Int32) {
	t.Helper()

	var calls atomic.Int32
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		switch r.URL.Path {
		case "/s/proxychannel":
			_, _ = w.Write([]byte(proxyPage))
		case "/s/quietchannel":
			_, _ = w.Write([]byte("<html><body>nothing here</body></html>"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(upstream.Close)
	return upstream, &calls
}

// emptyConfig writes an empty config file so that no file from the
// developer's machine leaks into the test.
func emptyConfig(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, nil, 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

// runRoot executes the root command with args and returns stdout, stderr.
func runRoot(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestNewExtractCmd(t *testing.T) {
	t.Parallel()

	cmd := NewExtractCmd()
	for _, name := range []string{"format", "output", flagTimeout, flagBaseURL, flagSOCKS5, flagEmbeddedTor} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("expected %s flag", name)
		}
	}
	if f := cmd.Flags().Lookup("format"); f != nil && f.DefValue != "json" {
		t.Errorf("expected default format json, got %q", f.DefValue)
	}
}

func TestExtract_JSON(t *testing.T) {
	upstream, calls := newUpstream(t)

	stdout, _, err := runRoot(t, "extract", "@proxychannel",
		"-c", emptyConfig(t), "--base-url", upstream.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("expected exactly one upstream request, got %d", got)
	}

	var env model.Envelope
	if err := json.Unmarshal([]byte(stdout), &env); err != nil {
		t.Fatalf("invalid JSON %q: %v", stdout, err)
	}
	if !env.OK || env.Channel != "@proxychannel" {
		t.Errorf("unexpected envelope: %+v", env)
	}
	want := []string{
		"https://t.me/proxy?server=1.2.3.4&port=443&secret=ee00",
		"tg://proxy?server=5.6.7.8&port=8443&secret=dd11",
	}
	if len(env.Proxies) != len(want) {
		t.Fatalf("expected %d proxies, got %v", len(want), env.Proxies)
	}
	for i := range want {
		if env.Proxies[i] != want[i] {
			t.Errorf("proxy %d: expected %q, got %q", i, want[i], env.Proxies[i])
		}
	}
	if strings.Contains(stdout, `\u0026`) {
		t.Errorf("expected unescaped ampersands, got %s", stdout)
	}
}

func TestExtract_Text(t *testing.T) {
	upstream, _ := newUpstream(t)

	stdout, _, err := runRoot(t, "extract", "https://t.me/proxychannel",
		"-c", emptyConfig(t), "--base-url", upstream.URL, "-F", "text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "https://t.me/proxy?server=1.2.3.4&port=443&secret=ee00\n" +
		"tg://proxy?server=5.6.7.8&port=8443&secret=dd11\n"
	if stdout != want {
		t.Errorf("expected %q, got %q", want, stdout)
	}
}

func TestExtract_MarkdownFile(t *testing.T) {
	upstream, _ := newUpstream(t)
	outputPath := filepath.Join(t.TempDir(), "reports", "proxies.md")

	stdout, stderr, err := runRoot(t, "extract", "proxychannel",
		"-c", emptyConfig(t), "--base-url", upstream.URL, "-F", "markdown", "-o", outputPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stdout != "" {
		t.Errorf("expected nothing on stdout, got %q", stdout)
	}
	if !strings.Contains(stderr, outputPath) {
		t.Errorf("expected stderr to mention %s, got %q", outputPath, stderr)
	}

	content, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("failed to read report: %v", err)
	}
	for _, want := range []string{"# Proxy Collection Report", "@proxychannel", "5.6.7.8"} {
		if !strings.Contains(string(content), want) {
			t.Errorf("expected report to contain %q", want)
		}
	}
}

func TestExtract_Failures(t *testing.T) {
	upstream, _ := newUpstream(t)

	tests := []struct {
		name    string
		channel string
		wantErr error
		wantOut string
	}{
		{
			name:    "invalid channel",
			channel: "not a valid channel!!",
			wantErr: model.ErrInvalidChannel,
			wantOut: "error: Invalid channel format\n",
		},
		{
			name:    "unknown channel",
			channel: "@missingchannel",
			wantErr: model.ErrFetchFailed,
			wantOut: "error: Failed to fetch channel page\n",
		},
		{
			name:    "no proxies",
			channel: "@quietchannel",
			wantErr: model.ErrNoProxiesFound,
			wantOut: "error: No proxy links found in channel\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := runRoot(t, "extract", tt.channel,
				"-c", emptyConfig(t), "--base-url", upstream.URL, "-F", "text")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
			if stdout != tt.wantOut {
				t.Errorf("expected output %q, got %q", tt.wantOut, stdout)
			}
		})
	}
}

func TestExtract_InvalidSettings(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "unknown format", args: []string{"-F", "xml"}},
		{name: "zero timeout", args: []string{"--timeout", "0s"}},
		{name: "relative base URL", args: []string{"--base-url", "t.me"}},
		{name: "proxy conflict", args: []string{"--socks5", "127.0.0.1:9050", "--embedded-tor"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"extract", "@proxychannel", "-c", emptyConfig(t)}, tt.args...)
			_, _, err := runRoot(t, args...)
			if err == nil || !strings.Contains(err.Error(), "invalid configuration") {
				t.Errorf("expected invalid configuration error, got %v", err)
			}
		})
	}
}

func TestExtract_RequiresChannel(t *testing.T) {
	if _, _, err := runRoot(t, "extract"); err == nil {
		t.Error("expected error without a channel argument")
	}
}
