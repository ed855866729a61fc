package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Read returns at most maxLines from the end of the file at path. A missing
// file yields no lines and no error.
func Read(path string, maxLines int) ([]string, error) {
	if maxLines <= 0 || path == "" {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	ring := make([]string, maxLines)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	count, idx := 0, 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	if count < maxLines {
		return ring[:count:count], nil
	}
	lines := make([]string, count)
	for i := range count {
		lines[i] = ring[(idx+i)%maxLines]
	}
	return lines, nil
}

// Entry is one slog text-handler line split into its level, message and the
// remaining attributes.
type Entry struct {
	Level string
	Msg   string
	Attrs string
	Raw   string
}

// Parse splits a line written by slog.TextHandler. Lines in any other shape
// come back with only Raw set.
func Parse(line string) Entry {
	e := Entry{Raw: line}
	rest := line
	if strings.HasPrefix(rest, "time=") {
		if i := strings.IndexByte(rest, ' '); i >= 0 {
			rest = rest[i+1:]
		} else {
			return e
		}
	}
	if !strings.HasPrefix(rest, "level=") {
		return e
	}
	rest = strings.TrimPrefix(rest, "level=")
	level, rest, _ := strings.Cut(rest, " ")
	e.Level = level

	if !strings.HasPrefix(rest, "msg=") {
		e.Attrs = rest
		return e
	}
	rest = strings.TrimPrefix(rest, "msg=")
	if strings.HasPrefix(rest, `"`) {
		end := closingQuote(rest)
		e.Msg = strings.ReplaceAll(rest[1:end], `\"`, `"`)
		rest = rest[min(end+1, len(rest)):]
	} else {
		e.Msg, rest, _ = strings.Cut(rest, " ")
	}
	e.Attrs = strings.TrimSpace(rest)
	return e
}

// closingQuote returns the index of the quote ending the string that starts
// at s[0], or len(s) when unterminated.
func closingQuote(s string) int {
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			return i
		}
	}
	return len(s)
}
