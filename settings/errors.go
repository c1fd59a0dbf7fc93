package settings

import (
	"fmt"
	"time"
)

// MissingKeyError reports a required configuration path that is absent.
type MissingKeyError struct {
	Path string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("missing required setting %q", e.Path)
}

// TypeMismatchError reports a configuration value of the wrong type.
type TypeMismatchError struct {
	Path     string
	Expected string
	Actual   string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("setting %q: expected %s, got %s", e.Path, e.Expected, e.Actual)
}

// InvalidFormatError reports a value with the right type but unusable content,
// such as a color that is not hexadecimal.
type InvalidFormatError struct {
	Path  string
	Value string
	Err   error
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("setting %q: invalid value %q: %v", e.Path, e.Value, e.Err)
}

func (e *InvalidFormatError) Unwrap() error {
	return e.Err
}

// typeName names the TOML type of a decoded value.
func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "nothing"
	case string:
		return "string"
	case int64:
		return "integer"
	case float64:
		return "float"
	case bool:
		return "boolean"
	case []any:
		return "array"
	case map[string]any:
		return "table"
	case time.Time:
		return "datetime"
	default:
		return fmt.Sprintf("%T", v)
	}
}
