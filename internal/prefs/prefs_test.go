package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/five82/storefront/internal/filter"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	p, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p.Token != "" || p.SortOption() != filter.SortRelevant {
		t.Fatalf("prefs = %+v, want empty token and relevant sort", p)
	}
}

func TestLoad_ReadsExistingFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	prefsDir := filepath.Join(home, ".config", "storefront")
	if err := os.MkdirAll(prefsDir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	prefsFile := filepath.Join(prefsDir, "prefs.toml")
	if err := os.WriteFile(prefsFile, []byte("token = \" abc \"\nsort = \"high-low\"\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p.Token != "abc" {
		t.Fatalf("Token = %q, want abc", p.Token)
	}
	if p.SortOption() != filter.SortPriceDescending || p.Sort != string(filter.SortPriceDescending) {
		t.Fatalf("Sort = %q, want normalized price-descending", p.Sort)
	}
}

func TestLoad_UnknownSortFallsBack(t *testing.T) {
	prefsFile := filepath.Join(t.TempDir(), "prefs.toml")
	if err := os.WriteFile(prefsFile, []byte("sort = \"newest\"\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	p, _ := Load(prefsFile)
	if p.SortOption() != filter.SortRelevant {
		t.Fatalf("SortOption = %q, want relevant", p.SortOption())
	}
}

func TestLoad_InvalidTOMLDegradesGracefully(t *testing.T) {
	prefsFile := filepath.Join(t.TempDir(), "prefs.toml")
	if err := os.WriteFile(prefsFile, []byte("token = ["), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p, err := Load(prefsFile)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p.Token != "" || p.SortOption() != filter.SortRelevant {
		t.Fatalf("prefs = %+v, want defaults", p)
	}
}

func TestSave_RoundTripAndPermissions(t *testing.T) {
	prefsFile := filepath.Join(t.TempDir(), "nested", "prefs.toml")

	want := Prefs{Token: "tok-123", Sort: string(filter.SortPriceAscending)}
	if err := Save(prefsFile, want); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	info, err := os.Stat(prefsFile)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm&0o077 != 0 {
		t.Fatalf("prefs file mode = %v, want owner-only", perm)
	}

	got, err := Load(prefsFile)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if got != want {
		t.Fatalf("Load = %+v, want %+v", got, want)
	}
}

func TestDefaultPath(t *testing.T) {
	if DefaultPath() != defaultPrefsPath {
		t.Fatalf("DefaultPath() = %q, want %q", DefaultPath(), defaultPrefsPath)
	}
}
