package input

import (
	"strings"

	"github.com/pkg/errors"
)

type FormatOptions struct {
	Dialect Dialect
	// Multiline puts every flag on its own continued line. Commands for
	// WindowsCmd are always multiline because the caret continuation is
	// what marks them as such.
	Multiline bool
}

// FormatCommand renders req as a curl command that ParseCommand reads back
// into an equal Request.
func FormatCommand(req *Request, options FormatOptions) (string, error) {
	if req.URL == "" {
		return "", errors.New("URL is required")
	}
	if strings.ContainsAny(req.URL, "\"' \t\r\n") || strings.HasPrefix(req.URL, "-") {
		return "", errors.Errorf("URL cannot be written as a single token: %q", req.URL)
	}
	method := req.Method
	if method == "" {
		method = MethodGet
	}
	if _, ok := ParseMethod(string(method)); !ok {
		return "", errors.Errorf("unsupported method: %s", method)
	}

	var f formatter
	switch options.Dialect {
	case Bash:
		f = bashFormatter{}
	case WindowsCmd:
		f = cmdFormatter{}
	default:
		return "", errors.Errorf("unknown dialect: %v", options.Dialect)
	}

	parts := []string{"curl " + f.quote(req.URL), "-X " + string(method)}
	for _, field := range req.Header.Fields {
		h, err := formatHeader(f, field)
		if err != nil {
			return "", err
		}
		parts = append(parts, "-H "+h)
	}
	if req.Body != "" {
		if strings.ContainsAny(req.Body, "\r\n") {
			return "", errors.New("body spans several lines")
		}
		b, err := f.body(req.Body)
		if err != nil {
			return "", err
		}
		parts = append(parts, "-d "+b)
	}

	sep := " "
	if options.Multiline || options.Dialect == WindowsCmd {
		sep = f.continuation()
	}
	out := strings.Join(parts, sep)
	if options.Dialect == Bash && strings.Contains(out, "^") {
		return "", errors.New("bash command cannot contain a caret; it would be read as a CMD command")
	}
	return out, nil
}

func formatHeader(f formatter, field Field) (string, error) {
	name := field.Name
	if name == "" || name != strings.TrimSpace(name) || strings.ContainsAny(name, ":\"'\r\n") {
		return "", errors.Errorf("invalid header name: %q", name)
	}
	value := field.Value
	if strings.ContainsAny(value, "\r\n") {
		return "", errors.Errorf("header %s spans several lines", name)
	}
	if strings.Contains(value, ":") && joinHeaderValue(reHeaderSep.Split(value, -1)) != strings.TrimSpace(value) {
		return "", errors.Errorf("header %s has a colon that would not read back as \": \"", name)
	}
	// Parsing trims the value and strips one pair of quotes, so a value
	// that would lose either gets an extra pair.
	if value != strings.TrimSpace(value) || stripQuotes(value) != value {
		value = `"` + value + `"`
	}
	return f.header(name, value)
}

type formatter interface {
	quote(s string) string
	header(name, value string) (string, error)
	body(s string) (string, error)
	continuation() string
}

type bashFormatter struct{}

func (bashFormatter) quote(s string) string {
	return "'" + s + "'"
}

func (bashFormatter) header(name, value string) (string, error) {
	if strings.Contains(value, "'") {
		return "", errors.Errorf("header %s contains a single quote", name)
	}
	return "'" + name + ": " + strings.ReplaceAll(value, `"`, `\"`) + "'", nil
}

func (bashFormatter) body(s string) (string, error) {
	if strings.Contains(s, "'") {
		return "", errors.New("body contains a single quote")
	}
	return "'" + s + "'", nil
}

func (bashFormatter) continuation() string {
	return " \\\n  "
}

type cmdFormatter struct{}

func (cmdFormatter) quote(s string) string {
	return `"` + s + `"`
}

func (cmdFormatter) header(name, value string) (string, error) {
	if strings.Contains(name+value, "^") {
		return "", errors.Errorf("header %s contains a caret", name)
	}
	return `"` + name + ": " + strings.ReplaceAll(value, `"`, `^"`) + `"`, nil
}

// body never escapes: the body is taken literally, so a body with double
// quotes or carets goes inside single quotes instead.
func (cmdFormatter) body(s string) (string, error) {
	if !strings.ContainsAny(s, "\"^") {
		return `"` + s + `"`, nil
	}
	if strings.Contains(s, "'") {
		return "", errors.New("body mixes single quotes with double quotes or carets")
	}
	return "'" + s + "'", nil
}

func (cmdFormatter) continuation() string {
	return " ^\n  "
}
