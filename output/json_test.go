package output

import (
	"strings"
	"testing"

	"github.com/HexmosTech/curlform/input"
)

func TestWriteJSON(t *testing.T) {
	// Setup
	var buffer strings.Builder
	req := &input.Request{
		Method: input.MethodPost,
		URL:    "https://api.example.com/items?a=1&b=2",
		Header: input.Header{Fields: []input.Field{
			{Name: "X-B", Value: "2"},
			{Name: "X-A", Value: "<1>"},
		}},
		Body: `{"name":"a"}`,
	}

	// Exercise
	if err := WriteJSON(&buffer, req); err != nil {
		t.Fatalf("unexpected error: err=%+v", err)
	}

	// Verify
	expected := strings.Join([]string{
		`{`,
		`  "method": "POST",`,
		`  "url": "https://api.example.com/items?a=1&b=2",`,
		`  "headers": {`,
		`    "X-A": "<1>",`,
		`    "X-B": "2"`,
		`  },`,
		`  "body": "{\"name\":\"a\"}"`,
		`}`,
		``,
	}, "\n")
	if buffer.String() != expected {
		t.Errorf("unexpected output: expected=\n%s\nactual=\n%s", expected, buffer.String())
	}
}
