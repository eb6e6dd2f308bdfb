package output

import (
	"bytes"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"strings"

	"code.cloudfoundry.org/bytefmt"
	"github.com/HexmosTech/curlform/input"
	"github.com/goccy/go-json"
	"github.com/logrusorgru/aurora"
	"github.com/pkg/errors"
)

type PrettyPrinter struct {
	writer        io.Writer
	plain         Printer
	aurora        aurora.Aurora
	headerPalette *HeaderPalette
	formPalette   *FormPalette
}

type PrettyPrinterConfig struct {
	Writer      io.Writer
	EnableColor bool
}

type HeaderPalette struct {
	Method              aurora.Color
	URL                 aurora.Color
	Proto               aurora.Color
	SuccessfulStatus    aurora.Color
	NonSuccessfulStatus aurora.Color
	FieldName           aurora.Color
	FieldValue          aurora.Color
	FieldSeparator      aurora.Color
}

var defaultHeaderPalette = HeaderPalette{
	Method:              aurora.WhiteFg | aurora.BoldFm,
	URL:                 aurora.CyanFg | aurora.UnderlineFm,
	Proto:               aurora.BlueFg,
	SuccessfulStatus:    aurora.GreenFg | aurora.BoldFm,
	NonSuccessfulStatus: aurora.YellowFg | aurora.BoldFm,
	FieldName:           aurora.WhiteFg,
	FieldValue:          aurora.CyanFg,
	FieldSeparator:      aurora.WhiteFg,
}

// FormPalette colors the parsed request and parse errors.
type FormPalette struct {
	Label  aurora.Color
	Method aurora.Color
	Value  aurora.Color
	Error  aurora.Color
}

var defaultFormPalette = FormPalette{
	Label:  aurora.BlueFg | aurora.BoldFm,
	Method: aurora.GreenFg | aurora.BoldFm,
	Value:  aurora.CyanFg,
	Error:  aurora.RedFg | aurora.BoldFm,
}

func NewPrettyPrinter(config PrettyPrinterConfig) Printer {
	return &PrettyPrinter{
		writer:        config.Writer,
		plain:         NewPlainPrinter(config.Writer),
		aurora:        aurora.NewAurora(config.EnableColor),
		headerPalette: &defaultHeaderPalette,
		formPalette:   &defaultFormPalette,
	}
}

func (p *PrettyPrinter) PrintForm(req *input.Request) error {
	label := func(s string) aurora.Value {
		return p.aurora.Colorize(s, p.formPalette.Label)
	}

	fmt.Fprintf(p.writer, "%s  %s\n", label("Method"), p.aurora.Colorize(req.Method, p.formPalette.Method))
	fmt.Fprintf(p.writer, "%s     %s\n", label("URL"), p.aurora.Colorize(req.URL, p.formPalette.Value))

	fmt.Fprintf(p.writer, "%s\n", label("Headers"))
	for _, field := range req.Header.Fields {
		fmt.Fprintf(p.writer, "  %s%s %s\n",
			p.aurora.Colorize(field.Name, p.headerPalette.FieldName),
			p.aurora.Colorize(":", p.headerPalette.FieldSeparator),
			p.aurora.Colorize(field.Value, p.headerPalette.FieldValue))
	}

	fmt.Fprintf(p.writer, "%s\n", label("Body"))
	if req.Body == "" {
		return nil
	}
	body := []byte(req.Body)
	if json.Valid(body) {
		var buf bytes.Buffer
		if err := json.Indent(&buf, body, "  ", "    "); err == nil {
			body = buf.Bytes()
		}
	}
	fmt.Fprintf(p.writer, "  %s\n", body)
	return nil
}

func (p *PrettyPrinter) PrintError(err error) error {
	fmt.Fprintf(p.writer, "%s %v\n", p.aurora.Colorize("error:", p.formPalette.Error), err)
	return nil
}

func (p *PrettyPrinter) PrintRequestLine(req *http.Request) error {
	fmt.Fprintf(p.writer, "%s %s %s\n",
		p.aurora.Colorize(req.Method, p.headerPalette.Method),
		p.aurora.Colorize(req.URL, p.headerPalette.URL),
		p.aurora.Colorize(req.Proto, p.headerPalette.Proto),
	)
	return nil
}

func (p *PrettyPrinter) PrintStatusLine(proto string, status string, statusCode int) error {
	var statusColor aurora.Color
	if 200 <= statusCode && statusCode < 300 {
		statusColor = p.headerPalette.SuccessfulStatus
	} else {
		statusColor = p.headerPalette.NonSuccessfulStatus
	}

	fmt.Fprintf(p.writer, "%s %s\n",
		p.aurora.Colorize(proto, p.headerPalette.Proto),
		p.aurora.Colorize(status, statusColor),
	)
	return nil
}

func (p *PrettyPrinter) PrintHeader(header http.Header) error {
	for _, name := range sortedNames(header) {
		for _, value := range header[name] {
			fmt.Fprintf(p.writer, "%s%s %s\n",
				p.aurora.Colorize(name, p.headerPalette.FieldName),
				p.aurora.Colorize(":", p.headerPalette.FieldSeparator),
				p.aurora.Colorize(value, p.headerPalette.FieldValue))
		}
	}

	fmt.Fprintln(p.writer)
	return nil
}

func isJSON(contentType string) bool {
	contentType = strings.TrimSpace(contentType)

	semicolon := strings.Index(contentType, ";")
	if semicolon != -1 {
		contentType = contentType[:semicolon]
	}

	return contentType == "application/json" || strings.HasSuffix(contentType, "+json")
}

func isBinary(body []byte) bool {
	return bytes.IndexByte(body, 0) != -1
}

func (p *PrettyPrinter) PrintBody(body io.Reader, contentType string) error {
	b, err := ioutil.ReadAll(body)
	if err != nil {
		return errors.Wrap(err, "reading body")
	}

	if isBinary(b) {
		fmt.Fprintf(p.writer, "+-----------------------------------------+\n")
		fmt.Fprintf(p.writer, "| NOTE: binary data not shown in terminal |\n")
		fmt.Fprintf(p.writer, "+-----------------------------------------+ (%s)\n", bytefmt.ByteSize(uint64(len(b))))
		return nil
	}

	// Fallback to PlainPrinter when the body is not valid JSON
	if !isJSON(contentType) || !json.Valid(b) {
		return p.plain.PrintBody(bytes.NewReader(b), contentType)
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, b, "", "    "); err != nil {
		return errors.Wrap(err, "indenting JSON")
	}
	buf.WriteByte('\n')
	if _, err := buf.WriteTo(p.writer); err != nil {
		return errors.Wrap(err, "printing body")
	}
	return nil
}
