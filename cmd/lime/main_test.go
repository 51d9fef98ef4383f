package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/f4ah6o/lime-go/internal/config"
)

func TestPrintBanner(t *testing.T) {
	tests := []struct {
		name     string
		cfg      func(t *testing.T) *config.Config
		wantHint bool
	}{
		{
			name:     "defaults",
			cfg:      func(*testing.T) *config.Config { return config.Default() },
			wantHint: true,
		},
		{
			name: "from file",
			cfg: func(t *testing.T) *config.Config {
				path := filepath.Join(t.TempDir(), "lime.toml")
				if err := os.WriteFile(path, []byte("port = 8080\n"), 0644); err != nil {
					t.Fatal(err)
				}
				cfg, err := config.Load(path)
				if err != nil {
					t.Fatal(err)
				}
				return cfg
			},
			wantHint: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg(t)
			var buf bytes.Buffer
			printBanner(&buf, cfg)
			out := buf.String()

			if !strings.Contains(out, "http://"+cfg.Addr()) {
				t.Errorf("banner missing address:\n%s", out)
			}
			if got := strings.Contains(out, config.DefaultPath); got != tt.wantHint {
				t.Errorf("config hint shown = %v, want %v:\n%s", got, tt.wantHint, out)
			}
		})
	}
}

func TestLoadConfigFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lime.toml")
	if err := os.WriteFile(path, []byte("port = [\n"), 0644); err != nil {
		t.Fatal(err)
	}

	old := configPath
	configPath = path
	t.Cleanup(func() { configPath = old })

	cfg := loadConfig()
	if *cfg != *config.Default() {
		t.Errorf("loadConfig() = %+v, want defaults", *cfg)
	}
}

func TestSubcommands(t *testing.T) {
	for _, name := range []string{"serve", "list"} {
		cmd, _, err := rootCmd.Find([]string{name})
		if err != nil {
			t.Errorf("Find(%q) error = %v", name, err)
			continue
		}
		if cmd.Name() != name {
			t.Errorf("Find(%q) = %q", name, cmd.Name())
		}
	}
}
