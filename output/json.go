package output

import (
	"io"

	"github.com/HexmosTech/curlform/input"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

type requestDocument struct {
	Method  input.Method      `json:"method"`
	URL     string            `json:"url"`
	Headers map[string]string `json:"headers"`
	Body    string            `json:"body"`
}

// WriteJSON writes req as {"method", "url", "headers", "body"}.
func WriteJSON(w io.Writer, req *input.Request) error {
	doc := requestDocument{
		Method:  req.Method,
		URL:     req.URL,
		Headers: make(map[string]string, req.Header.Len()),
		Body:    req.Body,
	}
	for _, field := range req.Header.Fields {
		doc.Headers[field.Name] = field.Value
	}

	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return errors.Wrap(err, "encoding request as JSON")
	}
	return nil
}
