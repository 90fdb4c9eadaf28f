package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-logr/logr"
	"github.com/pelletier/go-toml/v2"

	"github.com/oakwood-commons/jptr/pkg/tree"
)

// Format names the syntax a document was read from.
type Format string

const (
	FormatJSON   Format = "json"
	FormatNDJSON Format = "ndjson"
	FormatYAML   Format = "yaml"
	FormatTOML   Format = "toml"
	FormatJWT    Format = "jwt"

	// FormatYAMLStream is a YAML input holding more than one document. Its
	// root is an array with one element per document.
	FormatYAMLStream Format = "yaml-stream"
)

// ErrEmptyInput is returned when there is nothing to parse.
var ErrEmptyInput = errors.New("empty input")

var (
	tomlSectionPattern  = regexp.MustCompile(`^\[{1,2}(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+')+(?:\.(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+'))*\]{1,2}\s*$`)
	tomlKeyValuePattern = regexp.MustCompile(`^\s*(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+')+(?:\.(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+'))*\s*=\s*.+$`)
)

// LoadData parses input, detecting its format:
// - JWT tokens (decoded into header, payload and signature)
// - multi-document YAML (documents separated by ---)
// - newline-delimited JSON
// - a single JSON value
// - TOML
// - a single YAML document
//
// Every document comes back as its own tree; the caller owns each of them.
func LoadData(input string) ([]*tree.Node, Format, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, "", ErrEmptyInput
	}

	if IsJWT(input) {
		n, err := loadJWT(input)
		if err != nil {
			return nil, "", err
		}
		return []*tree.Node{n}, FormatJWT, nil
	}

	if strings.Contains(input, "\n---") || strings.HasPrefix(input, "---") {
		docs, err := loadMultiDocYAML(input)
		if err != nil {
			return nil, "", err
		}
		if len(docs) > 1 {
			return docs, FormatYAMLStream, nil
		}
		return docs, FormatYAML, nil
	}

	if lines := strings.Split(input, "\n"); len(lines) > 1 && isLikelyNDJSON(lines) {
		docs, err := loadNDJSON(lines)
		return docs, FormatNDJSON, err
	}

	var jsonErr error
	if strings.HasPrefix(input, "{") || strings.HasPrefix(input, "[") {
		n, err := DecodeJSON(strings.NewReader(input))
		if err == nil {
			return []*tree.Node{n}, FormatJSON, nil
		}
		jsonErr = err
	}

	// A TOML section header looks like a JSON array, so TOML only gets a
	// turn once the input has failed to parse as JSON.
	if isLikelyTOML(input) {
		n, err := loadTOML(input)
		if err == nil {
			return []*tree.Node{n}, FormatTOML, nil
		}
		if jsonErr == nil {
			return nil, "", err
		}
	}

	if jsonErr != nil {
		// Flow-style YAML such as {a: 1} also starts with a brace.
		if yn, yerr := loadYAML(input); yerr == nil {
			return []*tree.Node{yn}, FormatYAML, nil
		}
		return nil, "", fmt.Errorf("invalid JSON: %w", jsonErr)
	}

	n, err := loadYAML(input)
	if err != nil {
		return nil, "", err
	}
	return []*tree.Node{n}, FormatYAML, nil
}

// LoadRoot parses input into a single root. Multiple documents are gathered
// into an array.
func LoadRoot(input string) (*tree.Node, Format, error) {
	docs, format, err := LoadData(input)
	if err != nil {
		return nil, "", err
	}
	if len(docs) == 1 {
		return docs[0], format, nil
	}
	return tree.NewArray(docs...), format, nil
}

// LoadRootBytes parses data into a single root.
func LoadRootBytes(data []byte) (*tree.Node, Format, error) {
	return LoadRoot(string(data))
}

// LoadRootBytesWithLogger is like LoadRootBytes but records the detected
// format on lgr.
func LoadRootBytesWithLogger(data []byte, lgr logr.Logger) (*tree.Node, Format, error) {
	n, format, err := LoadRootBytes(data)
	if err != nil {
		lgr.V(1).Info("content detection failed", "bytes", len(data), "error", err.Error())
		return nil, "", err
	}
	lgr.V(1).Info("content detected", "format", string(format), "bytes", len(data))
	return n, format, nil
}

// LoadReader reads everything from r and parses it into a single root.
func LoadReader(r io.Reader) (*tree.Node, Format, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, "", err
	}
	return LoadRootBytes(data)
}

// LoadFile reads a file and parses it into a single root.
func LoadFile(path string) (*tree.Node, Format, error) {
	return LoadFileWithLogger(path, logr.Discard())
}

// LoadFileWithLogger reads a file and parses it using its extension when it
// names a known format, falling back to content detection otherwise.
func LoadFileWithLogger(path string, lgr logr.Logger) (*tree.Node, Format, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}
	lgr = lgr.WithValues("file", path)

	format, ok := FormatFromExtension(path)
	if !ok {
		return LoadRootBytesWithLogger(data, lgr)
	}
	n, format, err := decodeAs(data, format)
	if err != nil {
		lgr.V(1).Info("extension decode failed, detecting content", "format", string(format), "error", err.Error())
		return LoadRootBytesWithLogger(data, lgr)
	}
	lgr.V(1).Info("decoded by extension", "format", string(format))
	return n, format, nil
}

// FormatFromExtension maps a file name to the format its extension implies.
func FormatFromExtension(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, true
	case ".ndjson", ".jsonl":
		return FormatNDJSON, true
	case ".yaml", ".yml":
		return FormatYAML, true
	case ".toml":
		return FormatTOML, true
	case ".jwt":
		return FormatJWT, true
	default:
		return "", false
	}
}

// decodeAs parses data as format. A YAML file with several documents comes
// back as FormatYAMLStream.
func decodeAs(data []byte, format Format) (*tree.Node, Format, error) {
	var (
		n   *tree.Node
		err error
	)
	switch format {
	case FormatJSON:
		n, err = DecodeJSON(bytes.NewReader(data))
	case FormatNDJSON:
		var docs []*tree.Node
		docs, err = loadNDJSON(strings.Split(strings.TrimSpace(string(data)), "\n"))
		if err == nil {
			n = tree.NewArray(docs...)
		}
	case FormatYAML, FormatYAMLStream:
		var docs []*tree.Node
		docs, err = loadMultiDocYAML(string(data))
		switch {
		case err != nil:
		case len(docs) == 1:
			n, format = docs[0], FormatYAML
		default:
			n, format = tree.NewArray(docs...), FormatYAMLStream
		}
	case FormatTOML:
		n, err = loadTOML(string(data))
	case FormatJWT:
		n, err = loadJWT(strings.TrimSpace(string(data)))
	default:
		err = fmt.Errorf("unknown format %q", format)
	}
	if err != nil {
		return nil, format, err
	}
	return n, format, nil
}

// loadNDJSON parses one JSON value per line. Lines that are not JSON become
// string nodes.
func loadNDJSON(lines []string) ([]*tree.Node, error) {
	docs := make([]*tree.Node, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		n, err := DecodeJSON(strings.NewReader(line))
		if err != nil {
			n = tree.NewString(line)
		}
		docs = append(docs, n)
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("no data found in input")
	}
	return docs, nil
}

// isLikelyNDJSON requires several non-empty lines, most of which start like a
// JSON object or array.
func isLikelyNDJSON(lines []string) bool {
	jsonCount := 0
	nonEmpty := 0
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		nonEmpty++
		if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
			jsonCount++
		}
	}
	if nonEmpty <= 1 || jsonCount <= nonEmpty/2 {
		return false
	}
	// A pretty-printed JSON document also has many lines starting with a brace.
	_, err := DecodeJSON(strings.NewReader(strings.Join(lines, "\n")))
	return err != nil
}

// isLikelyTOML looks for section headers or a majority of key = value lines.
func isLikelyTOML(input string) bool {
	sections := 0
	keyValues := 0
	nonEmpty := 0
	for _, line := range strings.Split(input, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		nonEmpty++
		if tomlSectionPattern.MatchString(line) {
			sections++
		}
		if tomlKeyValuePattern.MatchString(line) {
			keyValues++
		}
	}
	return sections > 0 || (nonEmpty > 0 && keyValues > nonEmpty/2)
}

func loadTOML(input string) (*tree.Node, error) {
	var data map[string]any
	if err := toml.Unmarshal([]byte(input), &data); err != nil {
		return nil, fmt.Errorf("invalid TOML: %w", err)
	}
	n, err := tree.FromGo(data)
	if err != nil {
		return nil, fmt.Errorf("invalid TOML: %w", err)
	}
	return n, nil
}
