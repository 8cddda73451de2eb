// Package source decodes JSON and YAML documents into plain Go trees
// (map[string]any, []any, string, json.Number, bool, nil) for validation.
// It never builds typed values.
package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	gojson "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/reoring/conform"
)

// Format names an input encoding.
type Format string

const (
	FormatAuto Format = "auto"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrUnknownFormat is returned for format names Decode does not understand.
var ErrUnknownFormat = errors.New("source: unknown format")

// ParseFormat maps a user-supplied name ("json", "yaml", "yml", "auto", "")
// to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return FormatAuto, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// FormatFromPath picks a Format from the file extension; anything that is not
// .yaml/.yml is treated as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// JSON decodes a single JSON document. Numbers are kept as json.Number so no
// precision is lost before rules look at them.
func JSON(data []byte) (any, error) {
	dec := gojson.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("source: decode json: %w", err)
	}
	// trailing content after the first document is an error
	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, errors.New("source: decode json: unexpected data after top-level value")
	}
	return v, nil
}

// YAML decodes the first YAML document, normalizing mapping keys to strings so
// the result has the same shape as JSON input. An empty document decodes to nil.
func YAML(data []byte) (any, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var v any
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("source: decode yaml: %w", err)
	}
	return yamlNormalizeValue(v), nil
}

// Decode decodes data in the given format. FormatAuto sniffs the first
// non-space byte: '{' or '[' is JSON, anything else YAML.
func Decode(data []byte, f Format) (any, error) {
	switch f {
	case FormatJSON:
		return JSON(data)
	case FormatYAML:
		return YAML(data)
	case FormatAuto, "":
		if IsJSON(data, f) {
			return JSON(data)
		}
		return YAML(data)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// Document is a decoded input file.
type Document struct {
	Path   string
	Format Format // resolved: never FormatAuto
	Data   []byte
	Value  any
}

// Open reads and decodes path. FormatAuto resolves via FormatFromPath.
func Open(path string, f Format) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("source: read %s: %w", path, err)
	}
	if f == FormatAuto || f == "" {
		f = FormatFromPath(path)
	}
	v, err := Decode(data, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &Document{Path: path, Format: f, Data: data, Value: v}, nil
}

// DuplicateKeys reports repeated object keys for JSON documents; YAML
// documents never carry any.
func (d *Document) DuplicateKeys() (conform.Errors, error) {
	if d.Format != FormatJSON {
		return nil, nil
	}
	return DuplicateKeys(d.Data)
}

// ReadFile reads and decodes path, returning only the decoded value.
func ReadFile(path string, f Format) (any, error) {
	doc, err := Open(path, f)
	if err != nil {
		return nil, err
	}
	return doc.Value, nil
}

func yamlAnyToStringMap(v any) map[string]any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = yamlNormalizeValue(vv)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[fmt.Sprint(k)] = yamlNormalizeValue(vv)
		}
		return out
	default:
		return nil
	}
}

func yamlNormalizeValue(v any) any {
	switch t := v.(type) {
	case map[string]any, map[any]any:
		return yamlAnyToStringMap(t)
	case []any:
		arr := make([]any, len(t))
		for i := range t {
			arr[i] = yamlNormalizeValue(t[i])
		}
		return arr
	default:
		return v
	}
}
