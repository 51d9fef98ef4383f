package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/f4ah6o/lime-go/internal/config"
	"github.com/f4ah6o/lime-go/internal/router"
	"github.com/f4ah6o/lime-go/internal/server"
)

var (
	colorBanner = color.New(color.FgHiGreen, color.Bold)
	colorHint   = color.New(color.FgYellow, color.Bold)
	colorBold   = color.New(color.Bold)
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the HTTP server on the configured host and port.

Requests without an extension or ending in .html are served from pages_dir,
with .html appended when missing (/about -> pages/about.html, / -> pages/index.html).
Every other request is served from static_dir (/css/style.css -> static/css/style.css).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		if cmd.Flags().Changed("port") {
			cfg.Port, _ = cmd.Flags().GetInt("port")
		}
		if cmd.Flags().Changed("host") {
			cfg.Host, _ = cmd.Flags().GetString("host")
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		return serve(cmd.Context(), cfg)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntP("port", "p", config.DefaultPort, "Override the port from the configuration file")
	serveCmd.Flags().String("host", config.DefaultHost, "Override the host from the configuration file")
}

func serve(ctx context.Context, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}

	s := server.New(cfg, router.New(cfg))
	printBanner(os.Stdout, cfg)
	return s.Run(ctx)
}

func printBanner(w io.Writer, cfg *config.Config) {
	fmt.Fprintln(w)
	colorBanner.Fprintf(w, " Lime Web Server v%s\n", version)
	if cfg.IsDefault() {
		colorHint.Fprint(w, "  ! ")
		colorBold.Fprintf(w, "In order to configure Lime, create '%s' file in the current directory.\n", config.DefaultPath)
	}
	fmt.Fprintf(w, "    pages:  %s\n", cfg.PagesDir)
	fmt.Fprintf(w, "    static: %s\n", cfg.StaticDir)
	colorBold.Fprint(w, "    Available on:")
	fmt.Fprintf(w, " http://%s\n\n", cfg.Addr())
}
