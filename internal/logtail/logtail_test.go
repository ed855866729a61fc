package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestRead(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "storefront.log")

	var content strings.Builder
	var expectedAll []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		expectedAll = append(expectedAll, line)
	}
	if err := os.WriteFile(logPath, []byte(content.String()), 0o644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{name: "zero", maxLines: 0, expected: nil},
		{name: "negative", maxLines: -1, expected: nil},
		{name: "partial", maxLines: 5, expected: expectedAll[5:]},
		{name: "exactly all", maxLines: 10, expected: expectedAll},
		{name: "more than exists", maxLines: 20, expected: expectedAll},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(logPath, tt.maxLines)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Read() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRead_MissingFile(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "absent.log"), 10)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if got != nil {
		t.Fatalf("Read() = %v, want nil", got)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Entry
	}{
		{
			name:  "quoted message with attrs",
			input: `time=2026-10-16T09:00:00.000+00:00 level=WARN msg="cart sync failed" path=/api/cart/add error="status 500"`,
			want:  Entry{Level: "WARN", Msg: "cart sync failed", Attrs: `path=/api/cart/add error="status 500"`},
		},
		{
			name:  "bare message",
			input: "time=2026-10-16T09:00:00.000+00:00 level=INFO msg=started",
			want:  Entry{Level: "INFO", Msg: "started"},
		},
		{
			name:  "escaped quote",
			input: `level=ERROR msg="say \"hi\"" n=1`,
			want:  Entry{Level: "ERROR", Msg: `say "hi"`, Attrs: "n=1"},
		},
		{
			name:  "unstructured",
			input: "panic: something",
			want:  Entry{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.input)
			tt.want.Raw = tt.input
			if got != tt.want {
				t.Errorf("Parse() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
