// Package catalog builds an inventory of a site: every page with the route
// that serves it, its title and a short excerpt, every static asset with its
// content type, and the files that no request can reach.
package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/transform"

	"github.com/f4ah6o/lime-go/internal/config"
	"github.com/f4ah6o/lime-go/internal/contenttype"
	"github.com/f4ah6o/lime-go/internal/resolver"
)

const excerptLength = 80

// Page is an HTML document under the pages root.
type Page struct {
	Route   string `json:"route" yaml:"route"`
	File    string `json:"file" yaml:"file"`
	Size    int64  `json:"size" yaml:"size"`
	Title   string `json:"title" yaml:"title"`
	Excerpt string `json:"excerpt,omitempty" yaml:"excerpt,omitempty"`
}

// Asset is a file under the static root.
type Asset struct {
	Route       string `json:"route" yaml:"route"`
	File        string `json:"file" yaml:"file"`
	Size        int64  `json:"size" yaml:"size"`
	ContentType string `json:"content_type" yaml:"content_type"`
}

// Catalog lists the contents of both roots.
type Catalog struct {
	Pages  []Page  `json:"pages" yaml:"pages"`
	Assets []Asset `json:"assets" yaml:"assets"`
	// Unreachable holds files that the router never serves, e.g. a .css file
	// under the pages root or an .html file under the static root.
	Unreachable []string `json:"unreachable,omitempty" yaml:"unreachable,omitempty"`
}

// Builder reads pages and extracts their metadata.
type Builder struct {
	mdConverter *md.Converter
}

// New creates a new Builder instance.
func New() *Builder {
	return &Builder{
		mdConverter: md.NewConverter("", true, nil),
	}
}

// Build walks the pages and static roots of cfg. A missing root is reported
// and treated as empty.
func (b *Builder) Build(cfg *config.Config) (*Catalog, error) {
	c := &Catalog{}

	err := walkFiles(cfg.PagesDir, func(rel string, info fs.FileInfo) error {
		// Only .html files are reachable: /notes maps to notes.html, never notes.
		if !strings.EqualFold(path.Ext(rel), ".html") {
			c.Unreachable = append(c.Unreachable, filepath.ToSlash(filepath.Join(cfg.PagesDir, rel)))
			return nil
		}
		page, err := b.inspectPage(filepath.Join(cfg.PagesDir, filepath.FromSlash(rel)))
		if err != nil {
			return err
		}
		page.Route = pageRoute(rel)
		page.File = rel
		page.Size = info.Size()
		c.Pages = append(c.Pages, page)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan pages: %w", err)
	}

	err = walkFiles(cfg.StaticDir, func(rel string, info fs.FileInfo) error {
		if resolver.Classify("/"+rel) != resolver.Static {
			c.Unreachable = append(c.Unreachable, filepath.ToSlash(filepath.Join(cfg.StaticDir, rel)))
			return nil
		}
		c.Assets = append(c.Assets, Asset{
			Route:       "/" + rel,
			File:        rel,
			Size:        info.Size(),
			ContentType: contenttype.ForPath(rel),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan static files: %w", err)
	}

	sort.Slice(c.Pages, func(i, j int) bool { return c.Pages[i].Route < c.Pages[j].Route })
	sort.Slice(c.Assets, func(i, j int) bool { return c.Assets[i].Route < c.Assets[j].Route })
	sort.Strings(c.Unreachable)
	return c, nil
}

// walkFiles calls fn for every regular file under root with its
// slash-separated relative path.
func walkFiles(root string, fn func(rel string, info fs.FileInfo) error) error {
	resolved, err := filepath.EvalSymlinks(root)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("Warning: directory not found: %s", root)
		return nil
	}
	if err != nil {
		return err
	}

	return filepath.WalkDir(resolved, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(resolved, p)
		if err != nil {
			return err
		}
		return fn(filepath.ToSlash(rel), info)
	})
}

// pageRoute is the shortest request path that serves rel.
func pageRoute(rel string) string {
	if path.Ext(rel) != ".html" {
		return "/" + rel
	}
	route := strings.TrimSuffix(rel, ".html")
	if route == "index" {
		return "/"
	}
	return "/" + route
}

func (b *Builder) inspectPage(p string) (Page, error) {
	raw, err := os.ReadFile(p)
	if err != nil {
		return Page{}, fmt.Errorf("failed to read page: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(decodeHTML(raw)))
	if err != nil {
		return Page{}, fmt.Errorf("failed to parse %s: %w", p, err)
	}

	page := Page{Title: "Untitled"}
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		page.Title = title
	} else if h1 := strings.TrimSpace(doc.Find("h1").First().Text()); h1 != "" {
		page.Title = h1
	}

	page.Excerpt = b.excerpt(doc)
	return page, nil
}

// excerpt returns the first line of prose from the page's main content.
func (b *Builder) excerpt(doc *goquery.Document) string {
	var content *goquery.Selection
	for _, selector := range []string{"main", "article", "body"} {
		if sel := doc.Find(selector).First(); sel.Length() > 0 {
			content = sel
			break
		}
	}
	if content == nil {
		return ""
	}

	content.Find("script, style, noscript, nav, header, footer, h1, h2, h3, h4, h5, h6").Remove()
	contentHTML, err := content.Html()
	if err != nil {
		return ""
	}
	markdown, err := b.mdConverter.ConvertString(contentHTML)
	if err != nil {
		return ""
	}

	for _, line := range strings.Split(markdown, "\n") {
		line = strings.TrimSpace(stripMarkup(line))
		if strings.Trim(line, "-=|: ") == "" {
			continue
		}
		return truncate(line, excerptLength)
	}
	return ""
}

var (
	reImage    = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	reLink     = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	reEmphasis = regexp.MustCompile("[*_`]+")
	reBullet   = regexp.MustCompile(`^\s*(?:[-+>]|\d+\.)\s+`)
)

func stripMarkup(line string) string {
	line = reImage.ReplaceAllString(line, "")
	line = reLink.ReplaceAllString(line, "$1")
	line = reEmphasis.ReplaceAllString(line, "")
	return reBullet.ReplaceAllString(line, "")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return strings.TrimSpace(string(r[:n])) + "..."
}

// decodeHTML converts body to UTF-8 using its BOM or <meta> charset.
func decodeHTML(body []byte) string {
	enc, name, _ := charset.DetermineEncoding(body, "text/html")
	if name == "utf-8" {
		return string(body)
	}

	decoded, err := io.ReadAll(transform.NewReader(bytes.NewReader(body), enc.NewDecoder()))
	if err != nil {
		return string(body)
	}
	return string(decoded)
}
