package exchange

import (
	"crypto/tls"
	"net/http"

	"github.com/sirupsen/logrus"
)

// BuildHTTPClient returns a client that sends exactly what it is given:
// redirects are reported rather than followed unless FollowRedirects is set.
func BuildHTTPClient(options *Options) (*http.Client, error) {
	client := &http.Client{
		CheckRedirect: redirectPolicy(options.FollowRedirects),
		Timeout:       options.Timeout,
		Transport:     buildTransport(options),
	}
	logrus.WithFields(logrus.Fields{
		"timeout":     options.Timeout,
		"follow":      options.FollowRedirects,
		"skip_verify": options.SkipVerify,
		"http1":       options.ForceHTTP1,
	}).Debug("built HTTP client")
	return client, nil
}

func redirectPolicy(follow bool) func(*http.Request, []*http.Request) error {
	if follow {
		return nil
	}
	return func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}
}

func buildTransport(options *Options) http.RoundTripper {
	if options.Transport != nil {
		return options.Transport
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if transport.TLSClientConfig == nil {
		transport.TLSClientConfig = &tls.Config{}
	}
	transport.TLSClientConfig.InsecureSkipVerify = options.SkipVerify
	if options.ForceHTTP1 {
		transport.ForceAttemptHTTP2 = false
		transport.TLSClientConfig.NextProtos = []string{"http/1.1", "http/1.0"}
		transport.TLSNextProto = make(map[string]func(string, *tls.Conn) http.RoundTripper)
	}
	return transport
}
