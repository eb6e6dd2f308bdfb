// Package form keeps an editable copy of the last request parsed from a
// curl command.
package form

import (
	"fmt"
	"sync"

	"github.com/HexmosTech/curlform/input"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Form is safe for concurrent use.
type Form struct {
	mu      sync.Mutex
	request *input.Request
	err     error
}

func New() *Form {
	return &Form{request: &input.Request{Method: input.MethodGet}}
}

// Update re-parses raw. A failed parse, empty input included, leaves the
// previous values in place and is remembered until the next successful one.
func (f *Form) Update(raw string) error {
	req, err := input.ParseCommand(raw)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		logrus.WithError(err).Debug("keeping previous form values")
		f.err = err
		return err
	}
	logrus.WithFields(logrus.Fields{
		"dialect": input.DetectDialect(raw),
		"method":  req.Method,
		"url":     req.URL,
		"headers": req.Header.Len(),
	}).Debug("parsed curl command")
	f.request = req
	f.err = nil
	return nil
}

func (f *Form) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

// Request returns a copy of the current values.
func (f *Form) Request() *input.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.request.Clone()
}

// Ready reports whether the form holds enough to send a request.
func (f *Form) Ready() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.request.URL != ""
}

func (f *Form) SetMethod(method string) error {
	m, ok := input.ParseMethod(method)
	if !ok {
		return errors.Errorf("unsupported method: %s", method)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.request.Method = m
	return nil
}

func (f *Form) SetURL(url string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.request.URL = url
}

func (f *Form) SetBody(body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.request.Body = body
}

func (f *Form) SetHeader(name, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.request.Header.Set(name, value)
}

func (f *Form) DelHeader(name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.request.Header.Del(name)
}

// RenameHeader moves the value of oldName under newName. The renamed field
// goes to the end, replacing any existing newName.
func (f *Form) RenameHeader(oldName, newName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	value, ok := f.request.Header.Get(oldName)
	if !ok {
		return errors.Errorf("no such header: %s", oldName)
	}
	f.request.Header.Del(oldName)
	f.request.Header.Del(newName)
	f.request.Header.Set(newName, value)
	return nil
}

// AddHeader appends an empty field named after the current header count
// and returns its name.
func (f *Form) AddHeader() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	name := fmt.Sprintf("header%d", f.request.Header.Len()+1)
	f.request.Header.Set(name, "")
	return name
}
