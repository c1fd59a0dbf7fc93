package settings

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Document is a decoded TOML file: tables become nested maps, arrays become
// []any, integers are int64 and floats are float64.
type Document map[string]any

// Parse reads and decodes the TOML file at path.
func Parse(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ParseError{Path: path, Message: "cannot open file", Err: err}
	}
	defer f.Close()

	return ParseReader(path, f)
}

// ParseReader decodes a TOML document from r. name is only used in errors.
func ParseReader(name string, r io.Reader) (Document, error) {
	var raw map[string]any
	if err := toml.NewDecoder(r).Decode(&raw); err != nil {
		perr := &ParseError{Path: name, Message: err.Error(), Err: err}

		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		return nil, perr
	}

	if raw == nil {
		raw = map[string]any{}
	}
	return Document(raw), nil
}

// Lookup resolves a dotted path such as "info.links.top_gg".
func (d Document) Lookup(path string) (any, bool) {
	var cur any = map[string]any(d)
	for _, key := range strings.Split(path, ".") {
		table, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = table[key]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// ParseError is returned when the configuration file cannot be read or decoded.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
