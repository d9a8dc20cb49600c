// Package transport builds the HTTP clients used to fetch the terminal page
// and to deliver webhook notifications.
//
// Connections are direct by default. When a SOCKS5 proxy address is
// configured, every connection is dialed through it using
// golang.org/x/net/proxy. Timeouts are left to the client: a hung request
// blocks until Options.Timeout elapses.
package transport
