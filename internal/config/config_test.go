package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lime.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if *cfg != *Default() {
		t.Errorf("Load() = %+v, want defaults %+v", *cfg, *Default())
	}
	if !cfg.IsDefault() {
		t.Error("IsDefault() = false for missing file")
	}
}

func TestLoadPartial(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    Config
	}{
		{
			name:    "port only",
			content: "port = 8080\n",
			want:    Config{Host: DefaultHost, Port: 8080, PagesDir: DefaultPagesDir, StaticDir: DefaultStaticDir},
		},
		{
			name:    "dirs only",
			content: "pages_dir = \"site/html\"\nstatic_dir = \"site/assets\"\n",
			want:    Config{Host: DefaultHost, Port: DefaultPort, PagesDir: "site/html", StaticDir: "site/assets"},
		},
		{
			name:    "all keys",
			content: "host = \"0.0.0.0\"\nport = 80\npages_dir = \"/srv/pages\"\nstatic_dir = \"/srv/static\"\nnot_found_page = \"404.html\"\n",
			want:    Config{Host: "0.0.0.0", Port: 80, PagesDir: "/srv/pages", StaticDir: "/srv/static", NotFoundPage: "404.html"},
		},
		{
			name:    "empty file",
			content: "",
			want:    Config{Host: DefaultHost, Port: DefaultPort, PagesDir: DefaultPagesDir, StaticDir: DefaultStaticDir},
		},
		{
			name:    "empty host falls back",
			content: "host = \"\"\n",
			want:    Config{Host: DefaultHost, Port: DefaultPort, PagesDir: DefaultPagesDir, StaticDir: DefaultStaticDir},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, tt.content))
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if cfg.IsDefault() {
				t.Error("IsDefault() = true for a loaded file")
			}
			cfg.fromFile = false
			if *cfg != tt.want {
				t.Errorf("Load() = %+v, want %+v", *cfg, tt.want)
			}
		})
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "malformed toml", content: "port = \n"},
		{name: "wrong type", content: "port = \"eighty\"\n"},
		{name: "port zero", content: "port = 0\n"},
		{name: "port too large", content: "port = 70000\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("Load() error = nil, want error")
			}
			if cfg == nil || *cfg != *Default() {
				t.Errorf("Load() on error = %+v, want defaults", cfg)
			}
		})
	}
}

func TestAddr(t *testing.T) {
	if got := Default().Addr(); got != "127.0.0.1:3000" {
		t.Errorf("Addr() = %q, want %q", got, "127.0.0.1:3000")
	}
}
