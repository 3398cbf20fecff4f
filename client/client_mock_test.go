package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/sangforsdk/scp-go/api/types/common"
	"gotest.tools/v3/assert"
)

// transportFunc allows us to inject a mock transport for testing. We
// define it here so we can detect the tlsconfig and return nil for only
// this type.
type transportFunc func(*http.Request) (*http.Response, error)

func (tf transportFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return tf(req)
}

func newMockClient(doer func(*http.Request) (*http.Response, error)) *http.Client {
	return &http.Client{
		Transport: transportFunc(doer),
	}
}

// withMockClient makes the client round-trip through doer instead of
// the network.
func withMockClient(doer func(*http.Request) (*http.Response, error)) Opt {
	return WithHTTPClient(newMockClient(doer))
}

// newTestClient returns a client that signs with fixed example
// credentials and a pinned clock, so request signatures are
// reproducible, and round-trips through doer.
func newTestClient(t *testing.T, doer func(*http.Request) (*http.Response, error), ops ...Opt) *Client {
	t.Helper()
	ops = append([]Opt{
		WithHost("https://scp.example.com"),
		WithCredentials("AKIA0123456789", "MY_SECRET"),
		WithRegion("GOLBASI"),
		withMockClient(doer),
	}, ops...)
	cli, err := New(ops...)
	assert.NilError(t, err)
	cli.now = func() time.Time {
		return time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	}
	return cli
}

func errorMock(statusCode int, message string) func(req *http.Request) (*http.Response, error) {
	return func(req *http.Request) (*http.Response, error) {
		header := http.Header{}
		header.Set("Content-Type", "application/json")

		body, err := json.Marshal(&common.ErrorResponse{
			Message: message,
		})
		if err != nil {
			return nil, err
		}

		return &http.Response{
			StatusCode: statusCode,
			Body:       io.NopCloser(bytes.NewReader(body)),
			Header:     header,
		}, nil
	}
}

func plainTextErrorMock(statusCode int, message string) func(req *http.Request) (*http.Response, error) {
	return func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: statusCode,
			Body:       io.NopCloser(strings.NewReader(message)),
		}, nil
	}
}

// mockResponse replies with the given status and body regardless of the
// request.
func mockResponse(statusCode int, header http.Header, body string) func(req *http.Request) (*http.Response, error) {
	return func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: statusCode,
			Header:     header,
			Body:       io.NopCloser(strings.NewReader(body)),
		}, nil
	}
}

// mockJSONResponse replies 200 with a JSON body.
func mockJSONResponse(body string) func(req *http.Request) (*http.Response, error) {
	header := http.Header{}
	header.Set("Content-Type", "application/json")
	return mockResponse(http.StatusOK, header, body)
}

func assertRequest(req *http.Request, method, url string) error {
	if req.Method != method {
		return fmt.Errorf("expected %s method, got %s", method, req.Method)
	}
	if !strings.HasPrefix(req.URL.Path, url) {
		return fmt.Errorf("expected URL %q, got %q", url, req.URL)
	}
	return nil
}
