// Package file provides TOML file-based configuration.
package file
