package exchange

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/HexmosTech/curlform/input"
	"github.com/HexmosTech/curlform/version"
	"github.com/pkg/errors"
)

var reScheme = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+-.]*://`)

const defaultContentType = "application/x-www-form-urlencoded"

func BuildHTTPRequest(ctx context.Context, req *input.Request, options *Options) (*http.Request, error) {
	u, err := buildURL(req.URL)
	if err != nil {
		return nil, err
	}

	header := buildHTTPHeader(req)
	body := buildHTTPBody(req)

	if body.body != nil && header.Get("Content-Type") == "" {
		header.Set("Content-Type", defaultContentType)
	}
	if header.Get("User-Agent") == "" {
		header.Set("User-Agent", "curlform/"+version.Current().String())
	}

	method := string(req.Method)
	if method == "" {
		method = string(input.MethodGet)
	}
	r, err := http.NewRequestWithContext(ctx, method, u.String(), body.body)
	if err != nil {
		return nil, errors.Wrap(err, "building HTTP request")
	}
	r.Header = header
	r.Host = header.Get("Host")
	r.ContentLength = body.contentLength
	if options.Auth.Enabled {
		r.SetBasicAuth(options.Auth.UserName, options.Auth.Password)
	}
	return r, nil
}

// buildURL accepts what curl accepts: a missing scheme means http.
func buildURL(raw string) (*url.URL, error) {
	if raw == "" {
		return nil, errors.New("URL is required")
	}
	if !reScheme.MatchString(raw) {
		raw = "http://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing URL %q", raw)
	}
	if u.Host == "" {
		return nil, errors.Errorf("URL has no host: %s", raw)
	}
	return u, nil
}

func buildHTTPHeader(req *input.Request) http.Header {
	header := make(http.Header)
	for _, field := range req.Header.Fields {
		header.Set(field.Name, field.Value)
	}
	return header
}

type bodyTuple struct {
	body          io.Reader
	contentLength int64
}

// buildHTTPBody drops the body of GET requests.
func buildHTTPBody(req *input.Request) bodyTuple {
	if req.Body == "" || req.Method == input.MethodGet || req.Method == "" {
		return bodyTuple{}
	}
	return bodyTuple{
		body:          strings.NewReader(req.Body),
		contentLength: int64(len(req.Body)),
	}
}
