// Package main provides the entry point for the antenna CLI.
//
// antenna watches the terminal page for new transmissions, announces each
// one to a Discord webhook exactly once and remembers what it announced.
//
// Usage:
//
//	antenna run
//	antenna watch --schedule "*/5 * * * *"
//	antenna history
//
// See --help for all available options.
package main

// main is the entry point for antenna.
func main() {
	Execute()
}
