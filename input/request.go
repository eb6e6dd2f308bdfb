package input

import "strings"

type Method string

const (
	MethodGet     Method = "GET"
	MethodPost    Method = "POST"
	MethodPut     Method = "PUT"
	MethodDelete  Method = "DELETE"
	MethodPatch   Method = "PATCH"
	MethodHead    Method = "HEAD"
	MethodOptions Method = "OPTIONS"
)

// Methods lists every method a Request can carry, in display order.
var Methods = []Method{
	MethodGet,
	MethodPost,
	MethodPut,
	MethodDelete,
	MethodPatch,
	MethodHead,
	MethodOptions,
}

// ParseMethod upper-cases s and reports whether it names a known method.
func ParseMethod(s string) (Method, bool) {
	m := Method(strings.ToUpper(s))
	for _, known := range Methods {
		if m == known {
			return m, true
		}
	}
	return MethodGet, false
}

// Request is the structured form of a curl command.
type Request struct {
	Method Method
	URL    string
	Header Header
	Body   string
}

func (r *Request) Clone() *Request {
	c := *r
	c.Header = r.Header.Clone()
	return &c
}

type Field struct {
	Name  string
	Value string
}

// Header behaves like a map keyed by field name that remembers the
// position at which each name was first inserted.
type Header struct {
	Fields []Field
}

func (h *Header) index(name string) int {
	for i, f := range h.Fields {
		if f.Name == name {
			return i
		}
	}
	return -1
}

// Set replaces the value stored under name, or appends a new field.
func (h *Header) Set(name, value string) {
	if i := h.index(name); i >= 0 {
		h.Fields[i].Value = value
		return
	}
	h.Fields = append(h.Fields, Field{Name: name, Value: value})
}

func (h *Header) Get(name string) (string, bool) {
	if i := h.index(name); i >= 0 {
		return h.Fields[i].Value, true
	}
	return "", false
}

func (h *Header) Del(name string) bool {
	i := h.index(name)
	if i < 0 {
		return false
	}
	h.Fields = append(h.Fields[:i], h.Fields[i+1:]...)
	return true
}

func (h *Header) Len() int {
	return len(h.Fields)
}

func (h *Header) Names() []string {
	names := make([]string, 0, len(h.Fields))
	for _, f := range h.Fields {
		names = append(names, f.Name)
	}
	return names
}

func (h Header) Clone() Header {
	if h.Fields == nil {
		return Header{}
	}
	fields := make([]Field, len(h.Fields))
	copy(fields, h.Fields)
	return Header{Fields: fields}
}
