package overrides

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexisbeaulieu97/themer/internal/theme"
	themeerrors "github.com/alexisbeaulieu97/themer/pkg/errors"
)

// ExportFilename returns "{name}-{mode}-merged.json".
func ExportFilename(name string, mode theme.Mode) string {
	return fmt.Sprintf("%s-%s-merged.json", name, mode)
}

// ExportMerged writes resolved as indented JSON into dir and returns the
// file path. Names that would leave dir are rejected.
func ExportMerged(dir string, resolved theme.Resolved, mode theme.Mode) (string, error) {
	if err := checkExportName(resolved.Name); err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(resolved, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode merged theme: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	path := filepath.Join(dir, ExportFilename(resolved.Name, mode))
	if err := writeAtomic(path, data); err != nil {
		return "", err
	}
	return path, nil
}

func checkExportName(name string) error {
	if name == "" || name == "." || strings.Contains(name, "..") ||
		strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		return fmt.Errorf("%w: theme name %q cannot be used as a file name", themeerrors.ErrInvalidTokens, name)
	}
	return nil
}

func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to set file mode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to close temporary file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}
	return nil
}
