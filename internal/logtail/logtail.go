package logtail

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"
)

// Read returns at most maxLines from the end of the file at path. A
// non-positive maxLines returns every line. A missing file yields no lines.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if maxLines <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, maxLines)
	count := 0
	idx := 0
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

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Entry is one decoded zerolog JSON line.
type Entry struct {
	Time      time.Time
	Level     string
	Component string
	Message   string
	Error     string
	Fields    map[string]string
}

// Parse decodes a zerolog JSON line. Lines that are not JSON objects are
// returned as a message-only entry.
func Parse(line string) Entry {
	var raw map[string]any
	if err := json.Unmarshal([]byte(line), &raw); err != nil {
		return Entry{Message: line}
	}

	e := Entry{Fields: map[string]string{}}
	for key, value := range raw {
		text := stringify(value)
		switch key {
		case "time":
			if t, err := time.Parse(time.RFC3339, text); err == nil {
				e.Time = t
			}
		case "level":
			e.Level = strings.ToUpper(text)
		case "component":
			e.Component = text
		case "message":
			e.Message = text
		case "error":
			e.Error = text
		default:
			e.Fields[key] = text
		}
	}
	return e
}

// Format renders a JSON log line for the log view:
//
//	2025-10-08 21:01:05 INFO [store] – state updated action=toggleFavorite
func Format(line string) string {
	e := Parse(line)
	if e.Level == "" && e.Time.IsZero() && len(e.Fields) == 0 {
		return e.Message
	}

	var parts []string
	if !e.Time.IsZero() {
		parts = append(parts, e.Time.In(time.Local).Format("2006-01-02 15:04:05"))
	}
	level := e.Level
	if level == "" {
		level = "INFO"
	}
	parts = append(parts, level)
	if e.Component != "" {
		parts = append(parts, "["+e.Component+"]")
	}

	header := strings.Join(parts, " ")
	if e.Message != "" {
		header += " – " + e.Message
	}
	if e.Error != "" {
		header += " error=" + quoteIfNeeded(e.Error)
	}

	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		header += " " + k + "=" + quoteIfNeeded(e.Fields[k])
	}
	return header
}

// FormatLines applies Format to every line.
func FormatLines(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = Format(line)
	}
	return out
}

func stringify(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case nil:
		return ""
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(data)
	}
}

func quoteIfNeeded(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\"") {
		return fmt.Sprintf("%q", s)
	}
	return s
}
