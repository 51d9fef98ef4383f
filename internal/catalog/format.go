package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

var (
	colorHeader  = color.New(color.FgHiMagenta, color.Bold)
	colorBold    = color.New(color.Bold)
	colorCyan    = color.New(color.FgCyan)
	colorWarning = color.New(color.FgYellow)
)

// Print writes a human-readable listing.
func (c *Catalog) Print(w io.Writer) {
	colorHeader.Fprintf(w, "\nPages (%d)\n", len(c.Pages))
	for _, p := range c.Pages {
		colorBold.Fprintf(w, "  %-30s", p.Route)
		fmt.Fprintf(w, " %s (%s)\n", p.Title, formatSize(p.Size))
		if p.Excerpt != "" {
			fmt.Fprintf(w, "  %-30s %s\n", "", p.Excerpt)
		}
	}

	colorHeader.Fprintf(w, "\nAssets (%d)\n", len(c.Assets))
	for _, a := range c.Assets {
		colorBold.Fprintf(w, "  %-30s", a.Route)
		colorCyan.Fprintf(w, " %-24s", a.ContentType)
		fmt.Fprintf(w, " %s\n", formatSize(a.Size))
	}

	if len(c.Unreachable) > 0 {
		colorWarning.Fprintf(w, "\nUnreachable (%d)\n", len(c.Unreachable))
		fmt.Fprintln(w, "  These files are never served: requests for them route to the other root.")
		for _, f := range c.Unreachable {
			fmt.Fprintf(w, "  %s\n", f)
		}
	}
	fmt.Fprintln(w)
}

// WriteJSON writes the catalog as indented JSON.
func (c *Catalog) WriteJSON(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(c)
}

// WriteYAML writes the catalog as YAML.
func (c *Catalog) WriteYAML(w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(c); err != nil {
		return err
	}
	return encoder.Close()
}

func formatSize(n int64) string {
	switch {
	case n >= 1024*1024:
		return fmt.Sprintf("%.1f MB", float64(n)/(1024*1024))
	case n >= 1024:
		return fmt.Sprintf("%.1f KB", float64(n)/1024)
	default:
		return fmt.Sprintf("%d B", n)
	}
}

// TotalSize sums the sizes of all pages and assets.
func (c *Catalog) TotalSize() int64 {
	var total int64
	for _, p := range c.Pages {
		total += p.Size
	}
	for _, a := range c.Assets {
		total += a.Size
	}
	return total
}

// Summary is a one-line description of the catalog.
func (c *Catalog) Summary() string {
	parts := []string{
		fmt.Sprintf("%d pages", len(c.Pages)),
		fmt.Sprintf("%d assets", len(c.Assets)),
		formatSize(c.TotalSize()),
	}
	if len(c.Unreachable) > 0 {
		parts = append(parts, fmt.Sprintf("%d unreachable", len(c.Unreachable)))
	}
	return strings.Join(parts, ", ")
}
