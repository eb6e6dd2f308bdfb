package exchange

import (
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// RequestFailedError reports a request that could not be sent or that got
// a non-2xx answer. StatusCode is zero when no response arrived.
type RequestFailedError struct {
	StatusCode int
	Status     string
	Err        error
}

func (e *RequestFailedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("request failed: %v", e.Err)
	}
	return fmt.Sprintf("request failed: %s", e.Status)
}

func (e *RequestFailedError) Unwrap() error {
	return e.Err
}

// SendRequest sends r once. There is no retry.
func SendRequest(client *http.Client, r *http.Request) (*http.Response, error) {
	log := logrus.WithFields(logrus.Fields{
		"method": r.Method,
		"url":    r.URL.String(),
	})
	log.Debug("sending request")

	start := time.Now()
	resp, err := client.Do(r)
	if err != nil {
		return nil, errors.WithStack(&RequestFailedError{Err: err})
	}
	log.WithFields(logrus.Fields{
		"status":  resp.StatusCode,
		"elapsed": time.Since(start),
	}).Debug("received response")
	return resp, nil
}

// CheckStatus turns a non-2xx response into a *RequestFailedError.
func CheckStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	return errors.WithStack(&RequestFailedError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
	})
}
