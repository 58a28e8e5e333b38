package printer

import (
	"fmt"
	"io"
)

// New returns the printer for a format.
func New(format Format, w io.Writer, noColor bool) (Printer, error) {
	switch format {
	case FormatText, "":
		return NewTextPrinter(w), nil
	case FormatTable:
		return NewTablePrinter(w, noColor), nil
	case FormatJSON:
		return NewJSONPrinter(w), nil
	}
	return nil, fmt.Errorf("unknown output format %q", format)
}
