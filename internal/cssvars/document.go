package cssvars

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/alexisbeaulieu97/themer/internal/ports"
)

// Document is an in-memory root element. It is safe for concurrent use.
type Document struct {
	mu         sync.RWMutex
	properties map[string]string
	attributes map[string]string
}

// NewDocument creates an empty Document.
func NewDocument() *Document {
	return &Document{
		properties: make(map[string]string),
		attributes: make(map[string]string),
	}
}

// SetProperty implements ports.StyleSink.
func (d *Document) SetProperty(name, value string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.properties[name] = value
}

// RemoveProperty implements ports.StyleSink.
func (d *Document) RemoveProperty(name string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.properties, name)
}

// SetAttribute implements ports.StyleSink.
func (d *Document) SetAttribute(name, value string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.attributes[name] = value
}

// Property returns the value of a custom property.
func (d *Document) Property(name string) (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	v, ok := d.properties[name]
	return v, ok
}

// Attribute returns the value of a root attribute.
func (d *Document) Attribute(name string) (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	v, ok := d.attributes[name]
	return v, ok
}

// Properties returns a copy of every property.
func (d *Document) Properties() map[string]string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make(map[string]string, len(d.properties))
	for k, v := range d.properties {
		out[k] = v
	}
	return out
}

// CSS renders the document as a :root rule with properties sorted by name.
func (d *Document) CSS() string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	names := make([]string, 0, len(d.properties))
	for name := range d.properties {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(":root")
	if theme, ok := d.attributes[ThemeAttribute]; ok {
		fmt.Fprintf(&b, "[%s=%q]", ThemeAttribute, theme)
	}
	b.WriteString(" {\n")
	for _, name := range names {
		fmt.Fprintf(&b, "  %s: %s;\n", name, d.properties[name])
	}
	b.WriteString("}\n")
	return b.String()
}

// FileSink is a Document that can be written to a stylesheet file.
type FileSink struct {
	*Document
	path string
}

// NewFileSink creates a FileSink targeting path.
func NewFileSink(path string) *FileSink {
	return &FileSink{Document: NewDocument(), path: path}
}

// Path returns the stylesheet location.
func (s *FileSink) Path() string {
	return s.path
}

// Flush writes the current stylesheet atomically. Concurrent flushes each
// use their own temporary file; the last rename wins.
func (s *FileSink) Flush() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create stylesheet directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpPath := tmp.Name()

	_, err = tmp.WriteString(s.CSS())
	if err == nil {
		err = tmp.Chmod(0o644)
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}
	return nil
}

var (
	_ ports.StyleSink = (*Document)(nil)
	_ ports.StyleSink = (*FileSink)(nil)
)
