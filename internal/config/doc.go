// Package config holds antenna's configuration: defaults, the optional YAML
// file, secrets from the environment (or a .env file) and validation.
package config
