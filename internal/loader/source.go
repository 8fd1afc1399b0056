package loader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	themeerrors "github.com/alexisbeaulieu97/themer/pkg/errors"
)

// maxDocumentSize bounds a token source document.
const maxDocumentSize = 16 << 20

type format int

const (
	formatJSON format = iota
	formatYAML
)

// document is a fetched token source before decoding.
type document struct {
	data   []byte
	format format
}

// fetch reads source from HTTP(S), a git repository, a file:// URL or a
// filesystem path. HTTP responses are never served from a cache.
func (l *Loader) fetch(ctx context.Context, source string) (document, error) {
	u, err := url.Parse(source)
	if err == nil {
		if isGitSource(u.Scheme) {
			return l.fetchGit(ctx, source)
		}
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return l.fetchHTTP(ctx, source, u)
		case "file":
			return readFile(source, u.Path)
		}
	}
	return readFile(source, source)
}

func (l *Loader) fetchHTTP(ctx context.Context, source string, u *url.URL) (document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return document{}, themeerrors.NewSourceError(source, 0, err)
	}
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")

	resp, err := l.client.Do(req)
	if err != nil {
		return document{}, themeerrors.NewSourceError(source, 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return document{}, themeerrors.NewSourceError(source, resp.StatusCode, nil)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return document{}, themeerrors.NewSourceError(source, resp.StatusCode, err)
	}

	f := formatFromPath(u.Path)
	if strings.Contains(resp.Header.Get("Content-Type"), "yaml") {
		f = formatYAML
	}
	return document{data: data, format: f}, nil
}

func readFile(source, path string) (document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return document{}, themeerrors.NewSourceError(source, 0, fmt.Errorf("read %s: %w", path, err))
	}
	return document{data: data, format: formatFromPath(path)}, nil
}

func formatFromPath(path string) format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return formatYAML
	default:
		return formatJSON
	}
}

// IsLocal reports whether source names a file on disk.
func IsLocal(source string) bool {
	u, err := url.Parse(source)
	if err != nil {
		return true
	}
	if isGitSource(u.Scheme) {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return false
	default:
		return true
	}
}

// LocalPath returns the filesystem path of a local source.
func LocalPath(source string) string {
	if u, err := url.Parse(source); err == nil && strings.EqualFold(u.Scheme, "file") {
		return u.Path
	}
	return source
}
