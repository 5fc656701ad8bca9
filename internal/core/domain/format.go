package domain

import (
	"fmt"
	"strings"
)

// Format identifies one of the two file formats handled by propjson.
type Format string

const (
	// FormatJSON is a .json file.
	FormatJSON Format = "json"
	// FormatProperties is a .properties file.
	FormatProperties Format = "properties"
)

// Extension returns the file suffix for the format, including the dot.
func (f Format) Extension() string {
	return "." + string(f)
}

// IsValid reports whether f is a known format.
func (f Format) IsValid() bool {
	return f == FormatJSON || f == FormatProperties
}

// Other returns the format a file of this format converts into.
func (f Format) Other() Format {
	if f == FormatJSON {
		return FormatProperties
	}
	return FormatJSON
}

// ParseFormat converts a user-supplied name into a Format.
// A leading dot is accepted, so ".json" and "json" are equivalent.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")))
	if !f.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
	return f, nil
}

// StripExtension removes a trailing .json or .properties from name.
// Any other name is returned unchanged.
func StripExtension(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("%w: no file name was specified", ErrMissingArgument)
	}

	for _, f := range []Format{FormatJSON, FormatProperties} {
		if strings.HasSuffix(name, f.Extension()) {
			return strings.TrimSuffix(name, f.Extension()), nil
		}
	}
	return name, nil
}

// FileName returns name with any known extension replaced by f's extension.
func (f Format) FileName(name string) (string, error) {
	base, err := StripExtension(name)
	if err != nil {
		return "", err
	}
	return base + f.Extension(), nil
}
