// Package main provides the entry point for the proxycollector CLI.
//
// proxycollector reads the public web preview of a Telegram channel and
// returns the MTProto proxy links posted in it, either from an HTTP
// gateway or once from the command line.
//
// Usage:
//
//	proxycollector serve --listen :8080
//	proxycollector extract @channelname
//
// See --help for all available options.
package main

func main() {
	Execute()
}
