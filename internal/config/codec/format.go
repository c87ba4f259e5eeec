package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/fxamacker/cbor/v2"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is a document serialization format.
type Format int

// Supported formats.
const (
	JSON Format = iota
	TOML
	YAML
	CBOR
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case JSON:
		return "json"
	case TOML:
		return "toml"
	case YAML:
		return "yaml"
	case CBOR:
		return "cbor"
	default:
		return "unknown"
	}
}

// ParseFormat returns the format with the given name.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return JSON, nil
	case "toml":
		return TOML, nil
	case "yaml", "yml":
		return YAML, nil
	case "cbor":
		return CBOR, nil
	}
	return JSON, errors.Newf("unknown format %q", name)
}

// FormatFromPath picks the format from a file extension. Unknown
// extensions are JSON.
func FormatFromPath(path string) Format {
	f, err := ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
	if err != nil {
		return JSON
	}
	return f
}

var (
	cborEnc cbor.EncMode
	cborDec cbor.DecMode
)

func init() {
	var err error

	encOpts := cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
	}
	cborEnc, err = encOpts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create CBOR encoder mode: %v", err))
	}

	decOpts := cbor.DecOptions{
		DupMapKey:      cbor.DupMapKeyQuiet,
		IndefLength:    cbor.IndefLengthAllowed,
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}
	cborDec, err = decOpts.DecMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create CBOR decoder mode: %v", err))
	}
}

// Marshal serializes a document.
func Marshal(f Format, doc any) ([]byte, error) {
	switch f {
	case JSON:
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, errors.Wrap(err, "encoding json")
		}
		return append(data, '\n'), nil
	case TOML:
		var buf bytes.Buffer
		enc := toml.NewEncoder(&buf)
		enc.SetIndentTables(true)
		if err := enc.Encode(doc); err != nil {
			return nil, errors.Wrap(err, "encoding toml")
		}
		return buf.Bytes(), nil
	case YAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, errors.Wrap(err, "encoding yaml")
		}
		if err := enc.Close(); err != nil {
			return nil, errors.Wrap(err, "encoding yaml")
		}
		return buf.Bytes(), nil
	case CBOR:
		data, err := cborEnc.Marshal(doc)
		if err != nil {
			return nil, errors.Wrap(err, "encoding cbor")
		}
		return data, nil
	}
	return nil, errors.Newf("unknown format %d", int(f))
}

// Unmarshal parses a document and normalizes it.
func Unmarshal(f Format, data []byte) (any, error) {
	var doc any
	var err error

	switch f {
	case JSON:
		err = json.Unmarshal(data, &doc)
	case TOML:
		var m map[string]any
		err = toml.Unmarshal(data, &m)
		doc = m
	case YAML:
		err = yaml.Unmarshal(data, &doc)
	case CBOR:
		err = cborDec.Unmarshal(data, &doc)
	default:
		return nil, errors.Newf("unknown format %d", int(f))
	}
	if err != nil {
		return nil, newSyntaxError(f, err)
	}
	return Normalize(doc), nil
}

// SyntaxError reports a document that failed to parse.
type SyntaxError struct {
	Format Format
	Line   int
	Column int
	Err    error
}

func newSyntaxError(f Format, err error) *SyntaxError {
	se := &SyntaxError{Format: f, Err: err}
	var de *toml.DecodeError
	if errors.As(err, &de) {
		se.Line, se.Column = de.Position()
	}
	return se
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("invalid %s at line %d, column %d: %v", e.Format, e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("invalid %s: %v", e.Format, e.Err)
}

// Unwrap returns the parser error.
func (e *SyntaxError) Unwrap() error {
	return e.Err
}
