// Package main is the entry point for lime, a static site server that serves
// HTML pages and static assets from two separate directories.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/f4ah6o/lime-go/internal/config"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "0.1.0"

var configPath string

var rootCmd = &cobra.Command{
	Use:     "lime",
	Short:   "A lightweight static site server",
	Version: version,
	Long: `lime serves a static website split across two directories:
HTML pages (requested with or without the .html suffix) and static assets
such as stylesheets, scripts and images.

Configuration is read from lime.toml in the current directory when present.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "Path to the configuration file")
}

// loadConfig reads the configuration, falling back to defaults when the file
// cannot be parsed.
func loadConfig() *config.Config {
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Warning: %v; using defaults", err)
	}
	return cfg
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
