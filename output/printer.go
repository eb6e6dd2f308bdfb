package output

import (
	"io"
	"net/http"

	"github.com/HexmosTech/curlform/input"
)

type Printer interface {
	PrintForm(req *input.Request) error
	PrintError(err error) error
	PrintRequestLine(req *http.Request) error
	PrintStatusLine(proto string, status string, statusCode int) error
	PrintHeader(header http.Header) error
	PrintBody(body io.Reader, contentType string) error
}

func NewPrinter(w io.Writer, options *Options) Printer {
	if options.EnableFormat {
		return NewPrettyPrinter(PrettyPrinterConfig{
			Writer:      w,
			EnableColor: options.EnableColor,
		})
	}
	return NewPlainPrinter(w)
}
