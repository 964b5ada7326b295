// Package config loads and validates application settings from an optional
// YAML file and from the environment. Components receive typed sections of
// the configuration instead of reading the environment themselves.
package config
