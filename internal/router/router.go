// Package router answers a request path with a file from the pages or static
// root. It holds no state besides the configuration, so one Router serves
// any number of concurrent requests.
package router

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/f4ah6o/lime-go/internal/config"
	"github.com/f4ah6o/lime-go/internal/contenttype"
	"github.com/f4ah6o/lime-go/internal/resolver"
)

var (
	// ErrNotFound means the target is missing or not a regular file.
	ErrNotFound = errors.New("not found")
	// ErrIO means the target exists but could not be read.
	ErrIO = errors.New("i/o failure")
)

const plainText = "text/plain; charset=utf-8"

// Response is the outcome of one request.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// Write sends the response.
func (resp *Response) Write(w http.ResponseWriter) {
	h := w.Header()
	for k, v := range resp.Header {
		h[k] = v
	}
	h.Set("Content-Length", strconv.Itoa(len(resp.Body)))
	w.WriteHeader(resp.Status)
	w.Write(resp.Body)
}

// Router serves files from the roots named in its configuration.
type Router struct {
	cfg *config.Config
}

// New creates a Router. cfg must not be modified afterwards.
func New(cfg *config.Config) *Router {
	return &Router{cfg: cfg}
}

// ServeHTTP treats every method as a read of r.URL.Path.
func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rt.Handle(r.URL.Path).Write(w)
}

// Handle resolves requestPath, reads the file and builds the response.
func (rt *Router) Handle(requestPath string) *Response {
	target, err := resolver.Resolve(requestPath, rt.cfg)
	if err != nil {
		return rt.fail(requestPath, err)
	}

	body, err := readFile(target.AbsolutePath)
	if err != nil {
		return rt.fail(requestPath, err)
	}

	ext := target.Ext
	if ext == "" {
		ext = "html"
	}
	return newResponse(http.StatusOK, contenttype.Lookup(ext), body)
}

// statusFor is the only place errors become status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, resolver.ErrInvalidPath):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (rt *Router) fail(requestPath string, err error) *Response {
	status := statusFor(err)
	switch status {
	case http.StatusBadRequest:
		log.Printf("Warning: rejected %q: %v", requestPath, err)
		return newResponse(status, plainText, []byte("bad request\n"))
	case http.StatusNotFound:
		if resp := rt.notFoundPage(); resp != nil {
			return resp
		}
		return newResponse(status, plainText, []byte("not found\n"))
	default:
		log.Printf("Error: failed to serve %q: %v", requestPath, err)
		return newResponse(status, plainText, []byte("internal server error\n"))
	}
}

// notFoundPage returns the configured 404 page, or nil to fall back to plain text.
func (rt *Router) notFoundPage() *Response {
	if rt.cfg.NotFoundPage == "" {
		return nil
	}

	target, err := resolver.Resolve("/"+strings.TrimPrefix(rt.cfg.NotFoundPage, "/"), rt.cfg)
	if err != nil {
		log.Printf("Warning: not_found_page %q: %v", rt.cfg.NotFoundPage, err)
		return nil
	}
	if target.Root != resolver.Pages {
		log.Printf("Warning: not_found_page %q is not an HTML page", rt.cfg.NotFoundPage)
		return nil
	}

	body, err := readFile(target.AbsolutePath)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Printf("Warning: failed to read not_found_page: %v", err)
		}
		return nil
	}
	return newResponse(http.StatusNotFound, contenttype.Lookup("html"), body)
}

func newResponse(status int, contentType string, body []byte) *Response {
	h := make(http.Header)
	h.Set("Content-Type", contentType)
	return &Response{Status: status, Header: h, Body: body}
}

// readFile reads a regular file, classifying failures as ErrNotFound or ErrIO.
func readFile(p string) ([]byte, error) {
	info, err := os.Stat(p)
	if err != nil {
		if isMissing(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, p)
		}
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s is not a regular file", ErrNotFound, p)
	}

	body, err := os.ReadFile(p)
	if err != nil {
		if isMissing(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, p)
		}
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	return body, nil
}

// isMissing covers a path whose parent component is a file, too.
func isMissing(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR)
}
