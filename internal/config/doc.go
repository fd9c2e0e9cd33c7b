// Package config loads and validates the stagehand configuration file.
//
// Site targets are configuration data, not code: each [[sites]] entry pairs
// a shows document with a backup directory, and adding a deployment is an
// edit to the TOML file.
package config
