package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	t.Setenv("EXPENSIO_TEST_DIR", "/var/data")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "bare tilde", in: "~", want: home},
		{name: "tilde prefix", in: "~/.local/share/expensio", want: filepath.Join(home, ".local", "share", "expensio")},
		{name: "env var", in: "$EXPENSIO_TEST_DIR/expensio.db", want: "/var/data/expensio.db"},
		{name: "plain path", in: "/tmp/expensio.db", want: "/tmp/expensio.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpandPath(tt.in); got != tt.want {
				t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
