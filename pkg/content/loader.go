package content

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vanderheijden86/archguide/pkg/metrics"

	"github.com/BurntSushi/toml"
	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// PathEnvVar names a guide file to load instead of the built-in guide.
const PathEnvVar = "AG_CONTENT"

// Format is a guide file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// ErrUnknownFormat is returned for file extensions with no decoder.
var ErrUnknownFormat = errors.New("unknown guide format")

// FormatFromPath infers the encoding from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %q (use .yaml, .json or .toml)", ErrUnknownFormat, filepath.Ext(path))
	}
}

// ResolvePath returns the guide file to use: the explicit path if set,
// otherwise $AG_CONTENT. An empty result means the built-in guide.
func ResolvePath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	return os.Getenv(PathEnvVar)
}

// Load reads, decodes and validates a guide file.
func Load(path string) (*Guide, error) {
	defer metrics.Timer(metrics.ContentLoad)()
	doc, err := LoadDocument(path)
	if err != nil {
		return nil, err
	}
	g, err := doc.Build()
	if err != nil {
		return nil, fmt.Errorf("invalid guide %s: %w", path, err)
	}
	return g, nil
}

// LoadOrDefault loads path, or returns the built-in guide when path is empty.
func LoadOrDefault(path string) (*Guide, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// LoadDocument reads and decodes a guide file without validating it.
func LoadDocument(path string) (Document, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return Document{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("failed to open guide: %w", err)
	}
	defer f.Close()

	doc, err := ParseDocument(f, format)
	if err != nil {
		return Document{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return doc, nil
}

// Parse decodes and validates a guide from r.
func Parse(r io.Reader, format Format) (*Guide, error) {
	doc, err := ParseDocument(r, format)
	if err != nil {
		return nil, err
	}
	return doc.Build()
}

// ParseDocument decodes a guide document from r. Unknown fields are
// rejected so that typos in hand-written guides surface early.
func ParseDocument(r io.Reader, format Format) (Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Document{}, err
	}
	data = stripBOM(data)

	var doc Document
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
			return Document{}, err
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return Document{}, err
		}
	case FormatTOML:
		md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&doc)
		if err != nil {
			return Document{}, err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, 0, len(undecoded))
			for _, k := range undecoded {
				keys = append(keys, k.String())
			}
			sort.Strings(keys)
			return Document{}, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
		}
	default:
		return Document{}, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return doc, nil
}

// Encode writes doc to w in the given format.
func Encode(w io.Writer, doc Document, format Format) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatTOML:
		return toml.NewEncoder(w).Encode(doc)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Save writes doc to path, choosing the format from the extension.
// The write is atomic (temp file + rename) so a watcher never sees a
// half-written guide.
func Save(path string, doc Document) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if err := Encode(tmp, doc, format); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to encode guide: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// stripBOM removes the UTF-8 byte order mark if present.
func stripBOM(b []byte) []byte {
	return bytes.TrimPrefix(b, []byte{0xEF, 0xBB, 0xBF})
}
