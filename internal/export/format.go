package export

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// ErrUnknownFormat is returned for a format name with no template.
var ErrUnknownFormat = errors.New("unknown export format")

// Format is a code export format. It implements pflag.Value so it can be
// bound directly to a command flag.
type Format string

const (
	FormatCSS  Format = "css"
	FormatSCSS Format = "scss"
	FormatJS   Format = "js"
	FormatJSON Format = "json"
)

var _ pflag.Value = (*Format)(nil)

// Formats returns every supported format in display order.
func Formats() []Format {
	return []Format{FormatCSS, FormatSCSS, FormatJS, FormatJSON}
}

// ParseFormat parses a format name, ignoring case and surrounding space.
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Formats() {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q (must be one of %s)", ErrUnknownFormat, name, formatList())
}

// String returns the format name.
func (f *Format) String() string {
	return string(*f)
}

// Set parses and stores a format name.
func (f *Format) Set(name string) error {
	parsed, err := ParseFormat(name)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// Type names the flag value type in help output.
func (f *Format) Type() string {
	return "format"
}

// Filename is the template file for the format.
func (f Format) Filename() string {
	return string(f) + ".tmpl"
}

func formatList() string {
	names := make([]string, 0, len(Formats()))
	for _, f := range Formats() {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}
