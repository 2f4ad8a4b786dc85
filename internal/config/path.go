// Package config holds small configuration helpers shared by the CLI
// commands.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath resolves a user-supplied file path: a leading ~ becomes the
// home directory and $VAR references are expanded. Paths that need no
// expansion pass through unchanged, as does ~ when the home directory
// cannot be determined.
func ExpandPath(path string) string {
	switch {
	case path == "":
		return path
	case path == "~":
		if home, err := os.UserHomeDir(); err == nil {
			path = home
		}
	case strings.HasPrefix(path, "~/"):
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}

	return os.ExpandEnv(path)
}
