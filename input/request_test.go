package input

import (
	"reflect"
	"testing"
)

func TestParseMethod(t *testing.T) {
	testCases := []struct {
		token    string
		expected Method
		ok       bool
	}{
		{token: "GET", expected: MethodGet, ok: true},
		{token: "post", expected: MethodPost, ok: true},
		{token: "Options", expected: MethodOptions, ok: true},
		{token: "FOO", expected: MethodGet, ok: false},
		{token: "", expected: MethodGet, ok: false},
	}
	for _, tt := range testCases {
		t.Run(tt.token, func(t *testing.T) {
			actual, ok := ParseMethod(tt.token)
			if actual != tt.expected || ok != tt.ok {
				t.Errorf("unexpected result: expected=(%v, %v), actual=(%v, %v)", tt.expected, tt.ok, actual, ok)
			}
		})
	}
}

func TestHeader(t *testing.T) {
	// Setup
	var h Header

	// Exercise
	h.Set("A", "1")
	h.Set("B", "2")
	h.Set("A", "3")
	h.Set("C", "4")
	deleted := h.Del("B")
	missing := h.Del("Z")

	// Verify
	if !deleted || missing {
		t.Errorf("unexpected Del results: deleted=%v, missing=%v", deleted, missing)
	}
	expected := []Field{{Name: "A", Value: "3"}, {Name: "C", Value: "4"}}
	if !reflect.DeepEqual(h.Fields, expected) {
		t.Errorf("unexpected fields: expected=%v, actual=%v", expected, h.Fields)
	}
	if v, ok := h.Get("A"); !ok || v != "3" {
		t.Errorf("unexpected value of A: ok=%v, value=%s", ok, v)
	}
	if _, ok := h.Get("B"); ok {
		t.Errorf("B should be gone")
	}
	if !reflect.DeepEqual(h.Names(), []string{"A", "C"}) {
		t.Errorf("unexpected names: %v", h.Names())
	}
	if h.Len() != 2 {
		t.Errorf("unexpected length: %d", h.Len())
	}
}

func TestRequest_Clone(t *testing.T) {
	// Setup
	original := &Request{
		Method: MethodPut,
		URL:    "http://a.test",
		Header: Header{Fields: []Field{{Name: "A", Value: "1"}}},
		Body:   "x",
	}

	// Exercise
	clone := original.Clone()
	clone.Header.Set("A", "2")
	clone.Header.Set("B", "3")
	clone.Body = "y"

	// Verify
	if v, _ := original.Header.Get("A"); v != "1" {
		t.Errorf("original header was modified: %s", v)
	}
	if original.Header.Len() != 1 || original.Body != "x" {
		t.Errorf("original was modified: %+v", original)
	}
}
