package loader

import (
	"encoding/json"
	"fmt"
	"os"
	"reflect"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/oakwood-commons/kvfold/internal/document"
)

// LoadData loads structured data from a string, auto-detecting format.
// Supports:
// - JWT tokens (3-part base64url-encoded tokens)
// - Single JSON value
// - Newline-delimited JSON (NDJSON): one JSON value per line
// - YAML: single document or multi-document (separated by ---)
// - TOML
//
// Each element of the result is one parsed document. JSON and YAML keep the
// key order of the source; TOML tables are sorted by key.
func LoadData(input string) ([]*document.Value, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("empty input")
	}

	// Check for JWT first (single-line, dot-separated base64url)
	if IsJWT(input) {
		return loadJWT(input)
	}

	// Try multi-document YAML first (most restrictive)
	if strings.Contains(input, "\n---") || strings.HasPrefix(input, "---") {
		return loadMultiDocYAML(input)
	}

	// Try newline-delimited JSON (check for multiple lines starting with '{' or '[')
	lines := splitLines(input)
	if len(lines) > 1 && isLikelyNDJSON(lines) {
		// A pretty-printed single document also spans lines starting with
		// '{' or '['; prefer it when the whole input parses.
		if v, err := document.ParseJSON([]byte(input)); err == nil {
			return []*document.Value{v}, nil
		}
		return loadNDJSON(lines)
	}

	// Check for TOML before JSON - TOML [section] headers look like JSON arrays
	// but are distinct (e.g., "[server]" vs "[1, 2, 3]")
	if isLikelyTOML(input) {
		return loadTOML(input)
	}

	if strings.HasPrefix(input, "{") || strings.HasPrefix(input, "[") {
		return loadJSON(input)
	}

	// Fall back to single YAML document
	return loadYAML(input)
}

// LoadRoot parses input into a single root node. Multi-document inputs are
// returned as an array.
func LoadRoot(input string) (*document.Value, error) {
	results, err := LoadData(input)
	if err != nil {
		return nil, err
	}
	if len(results) == 1 {
		return results[0], nil
	}
	return document.NewArray(results...), nil
}

// LoadRootBytes parses input bytes into a single root node.
func LoadRootBytes(data []byte) (*document.Value, error) {
	return LoadRoot(string(data))
}

// LoadFile reads a file and parses it into a single root node. Files with a
// .csv extension are read as CSV; everything else is auto-detected.
func LoadFile(path string) (*document.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if isCSVFile(path) {
		return LoadCSV(data)
	}
	return LoadRootBytes(data)
}

// LoadObject accepts an already parsed object (maps, slices, structs, etc.).
// Strings and byte slices are parsed using the existing loaders for format detection.
// Structs and typed containers are converted through their JSON encoding so
// struct tags and field order are honored.
func LoadObject(value any) (*document.Value, error) {
	if value == nil {
		return nil, fmt.Errorf("object input is nil")
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Interface, reflect.Func, reflect.Chan:
		if rv.IsNil() {
			return nil, fmt.Errorf("object input is nil")
		}
	default:
	}

	switch v := value.(type) {
	case *document.Value:
		return v, nil
	case string:
		return LoadRoot(v)
	case []byte:
		return LoadRootBytes(v)
	}

	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	//exhaustive:ignore // only composite kinds go through JSON
	switch rv.Kind() {
	case reflect.Struct, reflect.Slice, reflect.Array, reflect.Map:
		data, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("cannot marshal custom type to JSON: %w", err)
		}
		return document.ParseJSON(data)
	default:
		return document.FromInterface(value), nil
	}
}

// loadJSON parses a single JSON value.
func loadJSON(input string) ([]*document.Value, error) {
	v, err := document.ParseJSON([]byte(input))
	if err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return []*document.Value{v}, nil
}

// loadYAML parses a single YAML document.
func loadYAML(input string) ([]*document.Value, error) {
	docs, err := document.ParseYAML([]byte(input))
	if err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	switch len(docs) {
	case 0:
		return []*document.Value{document.NewNull()}, nil
	case 1:
		return docs, nil
	}
	return []*document.Value{document.NewArray(docs...)}, nil
}

// loadMultiDocYAML parses YAML with multiple documents (separated by ---).
func loadMultiDocYAML(input string) ([]*document.Value, error) {
	docs, err := document.ParseYAML([]byte(input))
	if err != nil {
		return nil, fmt.Errorf("invalid multi-document YAML: %w", err)
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("no documents found in multi-document YAML")
	}
	return docs, nil
}

// loadNDJSON parses newline-delimited JSON. Lines that are not valid JSON
// are kept as plain strings.
func loadNDJSON(lines []string) ([]*document.Value, error) {
	results := make([]*document.Value, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		v, err := document.ParseJSON([]byte(line))
		if err != nil {
			results = append(results, document.NewString(line))
			continue
		}
		results = append(results, v)
	}

	if len(results) == 0 {
		return nil, fmt.Errorf("no data found in input")
	}
	return results, nil
}

// splitLines splits on LF, CRLF and bare CR. Tools that redraw progress
// lines with CR often interleave them with JSON log output.
func splitLines(input string) []string {
	input = strings.ReplaceAll(input, "\r\n", "\n")
	return strings.Split(strings.ReplaceAll(input, "\r", "\n"), "\n")
}

// isLikelyNDJSON heuristic: returns true if the input looks like newline-delimited JSON.
// Uses positive JSON matching: a majority of non-empty lines must start with '{' or '['
// to be classified as NDJSON. This prevents YAML files (which may have many bare list
// items like "- name" that lack colons) from being misclassified as NDJSON.
func isLikelyNDJSON(lines []string) bool {
	jsonCount := 0
	nonEmptyCount := 0

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		nonEmptyCount++
		if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
			jsonCount++
		}
	}

	return nonEmptyCount > 1 && jsonCount > nonEmptyCount/2
}

var (
	// TOML section headers: [server], [[items]], ["table name"], [database.credentials].
	// JSON arrays like [1, 2, 3] have spaces/commas without quotes and do not match.
	tomlSectionPattern = regexp.MustCompile(`^\s*\[{1,2}(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+')+(?:\.(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+'))*\]{1,2}\s*$`)

	// TOML key = value (not key: value which is YAML), with bare, quoted or dotted keys.
	tomlKeyValuePattern = regexp.MustCompile(`^\s*(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+')+(?:\.(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+'))*\s*=\s*.+$`)
)

// isLikelyTOML heuristic: returns true if the input has a section header or
// a majority of key = value lines.
func isLikelyTOML(input string) bool {
	sectionCount := 0
	keyValueCount := 0
	nonEmptyCount := 0

	for _, line := range strings.Split(input, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		nonEmptyCount++

		if tomlSectionPattern.MatchString(line) {
			sectionCount++
		}
		if tomlKeyValuePattern.MatchString(line) {
			keyValueCount++
		}
	}

	return sectionCount > 0 || (nonEmptyCount > 0 && keyValueCount > nonEmptyCount/2)
}

// loadTOML parses a TOML document.
func loadTOML(input string) ([]*document.Value, error) {
	var data map[string]any
	if err := toml.Unmarshal([]byte(input), &data); err != nil {
		return nil, fmt.Errorf("invalid TOML: %w", err)
	}
	return []*document.Value{document.FromInterface(data)}, nil
}
