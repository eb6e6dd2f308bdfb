package output

import (
	"fmt"
	"io"
	"net/http"
	"sort"

	"github.com/HexmosTech/curlform/input"
	"github.com/pkg/errors"
)

type PlainPrinter struct {
	writer io.Writer
}

func NewPlainPrinter(writer io.Writer) Printer {
	return &PlainPrinter{
		writer: writer,
	}
}

func (p *PlainPrinter) PrintForm(req *input.Request) error {
	fmt.Fprintf(p.writer, "Method: %s\n", req.Method)
	fmt.Fprintf(p.writer, "URL: %s\n", req.URL)
	fmt.Fprintln(p.writer, "Headers:")
	for _, field := range req.Header.Fields {
		fmt.Fprintf(p.writer, "  %s: %s\n", field.Name, field.Value)
	}
	fmt.Fprintln(p.writer, "Body:")
	if req.Body != "" {
		fmt.Fprintf(p.writer, "  %s\n", req.Body)
	}
	return nil
}

func (p *PlainPrinter) PrintError(err error) error {
	fmt.Fprintf(p.writer, "error: %v\n", err)
	return nil
}

func (p *PlainPrinter) PrintRequestLine(req *http.Request) error {
	fmt.Fprintf(p.writer, "%s %s %s\n", req.Method, req.URL, req.Proto)
	return nil
}

func (p *PlainPrinter) PrintStatusLine(proto string, status string, statusCode int) error {
	fmt.Fprintf(p.writer, "%s %s\n", proto, status)
	return nil
}

func (p *PlainPrinter) PrintHeader(header http.Header) error {
	for _, name := range sortedNames(header) {
		for _, value := range header[name] {
			fmt.Fprintf(p.writer, "%s: %s\n", name, value)
		}
	}
	fmt.Fprintln(p.writer)
	return nil
}

func (p *PlainPrinter) PrintBody(body io.Reader, contentType string) error {
	_, err := io.Copy(p.writer, body)
	if err != nil {
		return errors.Wrap(err, "printing body")
	}
	return nil
}

func sortedNames(header http.Header) []string {
	names := make([]string, 0, len(header))
	for name := range header {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
