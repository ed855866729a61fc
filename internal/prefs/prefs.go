// Package prefs persists per-user client state between runs.
// Preferences are stored in ~/.config/storefront/prefs.toml.
package prefs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/storefront/internal/filter"
)

// Prefs holds the remembered session and browsing choices.
type Prefs struct {
	Token string `toml:"token"`
	Sort  string `toml:"sort"`
}

const defaultPrefsPath = "~/.config/storefront/prefs.toml"

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// SortOption returns the stored sort, or relevant when unset or unknown.
func (p Prefs) SortOption() filter.SortOption {
	opt, err := filter.ParseSort(p.Sort)
	if err != nil {
		return filter.SortRelevant
	}
	return opt
}

// Load reads preferences from the given path, falling back to defaults if missing.
func Load(path string) (Prefs, error) {
	defaults := Prefs{Sort: string(filter.SortRelevant)}

	resolved, err := resolvePath(path)
	if err != nil {
		return defaults, nil
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaults, nil
		}
		return defaults, nil // Graceful degradation
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return defaults, nil // Graceful degradation
	}

	var p Prefs
	if err := toml.Unmarshal(bytes, &p); err != nil {
		return defaults, nil // Graceful degradation
	}

	p.Token = strings.TrimSpace(p.Token)
	p.Sort = string(p.SortOption())
	return p, nil
}

// Save writes preferences to the given path, creating directories as needed.
// The file holds a session token, so it is only readable by the owner.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	dir := filepath.Dir(resolved)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	bytes, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	if err := os.WriteFile(resolved, bytes, 0o600); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}

	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultPrefsPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
