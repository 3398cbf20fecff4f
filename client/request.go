package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/containerd/log"
	"github.com/sangforsdk/scp-go/api/types/common"
	"github.com/sangforsdk/scp-go/pkg/sigv4"
)

// get sends a signed GET request to the API.
func (cli *Client) get(ctx context.Context, path string, query url.Values, headers http.Header) (*http.Response, error) {
	return cli.sendRequest(ctx, http.MethodGet, path, query, nil, headers)
}

func (cli *Client) sendRequest(ctx context.Context, method, path string, query url.Values, body []byte, headers http.Header) (*http.Response, error) {
	req, err := cli.buildRequest(ctx, method, cli.getAPIPath(path, query), body, headers)
	if err != nil {
		return nil, err
	}

	if cli.limiter != nil {
		if err := cli.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	log.G(ctx).WithFields(log.Fields{
		"method": method,
		"path":   req.URL.Path,
	}).Debug("sending API request")

	resp, err := cli.doRequest(req)
	if err != nil {
		// Failed to connect or context error.
		return resp, err
	}

	// Successfully made a request; return the response and handle any
	// API HTTP response errors.
	return resp, checkResponseErr(resp)
}

// buildRequest assembles and signs one request. The signature covers
// the final header set, so headers must not be modified afterwards.
func (cli *Client) buildRequest(ctx context.Context, method, urlStr string, body []byte, headers http.Header) (*http.Request, error) {
	var bodyR io.Reader
	if body != nil {
		bodyR = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, urlStr, bodyR)
	if err != nil {
		return nil, err
	}
	req = cli.addHeaders(req, headers)
	req.URL.Scheme = cli.scheme
	req.URL.Host = cli.addr

	if body != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "text/plain")
	}

	if err := cli.signRequest(req, body); err != nil {
		return nil, err
	}
	return req, nil
}

// signRequest computes the payload hash and produces the Authorization
// header. Each request is signed with a fresh timestamp; retrying a
// request requires signing it again.
func (cli *Client) signRequest(req *http.Request, body []byte) error {
	payloadHash := sigv4.EmptyStringSHA256
	if len(body) > 0 {
		payloadHash = sigv4.PayloadHash(body)
	}
	return cli.signer.Sign(req, payloadHash, sigv4.NewTime(cli.now()))
}

// doRequest sends an HTTP request and returns an HTTP response. It is a
// wrapper around [http.Client.Do] with extra handling to decorate
// errors.
//
// Otherwise, it behaves identical to [http.Client.Do]; an error is
// returned when failing to make a connection. On error, any Response
// can be ignored. A non-2xx status code doesn't cause an error.
func (cli *Client) doRequest(req *http.Request) (*http.Response, error) {
	resp, err := cli.client.Do(req)
	if err == nil {
		return resp, nil
	}

	if cli.scheme != "https" && strings.Contains(err.Error(), "malformed HTTP response") {
		return nil, errConnectionFailed{fmt.Errorf("%w.\n* Are you trying to connect to a TLS-enabled endpoint without TLS?", err)}
	}

	if cli.scheme == "https" && strings.Contains(err.Error(), "certificate signed by unknown authority") {
		return nil, errConnectionFailed{fmt.Errorf("error verifying the server certificate of %s; provide the appliance CA with WithTLSClientConfig: %w", cli.host, err)}
	}

	// Don't decorate context sentinel errors; users may be comparing to
	// them directly.
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil, err
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return nil, connectionFailed(cli.host, dnsErr)
	}

	var nErr net.Error
	if errors.As(err, &nErr) && nErr.Timeout() {
		return nil, connectionFailed(cli.host, nErr)
	}

	return nil, connectionFailed(cli.host, err)
}

func checkResponseErr(serverResp *http.Response) (retErr error) {
	if serverResp == nil {
		return nil
	}
	if serverResp.StatusCode >= http.StatusOK && serverResp.StatusCode < http.StatusBadRequest {
		return nil
	}
	defer func() {
		retErr = httpErrorFromStatusCode(retErr, serverResp.StatusCode)
	}()

	var body []byte
	var err error
	var reqURL string
	if serverResp.Request != nil {
		reqURL = serverResp.Request.URL.String()
	}
	statusMsg := serverResp.Status
	if statusMsg == "" {
		statusMsg = http.StatusText(serverResp.StatusCode)
	}
	if serverResp.Body != nil {
		bodyMax := 1 * 1024 * 1024 // 1 MiB
		bodyR := &io.LimitedReader{
			R: serverResp.Body,
			N: int64(bodyMax),
		}
		body, err = io.ReadAll(bodyR)
		if err != nil {
			return err
		}
		if bodyR.N == 0 {
			if reqURL != "" {
				return fmt.Errorf("request returned %s with a message (> %d bytes) for API route %s", statusMsg, bodyMax, reqURL)
			}
			return fmt.Errorf("request returned %s with a message (> %d bytes)", statusMsg, bodyMax)
		}
	}
	if len(body) == 0 {
		if reqURL != "" {
			return fmt.Errorf("request returned %s for API route %s, check if the endpoint supports API version %q", statusMsg, reqURL, DefaultAPIVersion)
		}
		return fmt.Errorf("request returned %s, check if the endpoint supports API version %q", statusMsg, DefaultAPIVersion)
	}

	var remoteErr error
	if serverResp.Header.Get("Content-Type") == "application/json" {
		var errorResponse common.ErrorResponse
		if err := json.Unmarshal(body, &errorResponse); err != nil {
			return fmt.Errorf("error reading JSON: %w", err)
		}
		if errorResponse.Message == "" {
			// Valid JSON, but not the error schema the endpoint
			// documents. Report the status instead of an empty message.
			remoteErr = fmt.Errorf("API returned a %d (%s) but provided no error message",
				serverResp.StatusCode,
				http.StatusText(serverResp.StatusCode),
			)
		} else {
			remoteErr = errors.New(strings.TrimSpace(errorResponse.Message))
		}
	} else {
		// Fall back to returning the response as-is for situations where
		// a plain text error is returned. This branch may also catch
		// situations where a proxy is involved, returning a HTML response.
		remoteErr = errors.New(strings.TrimSpace(string(body)))
	}
	return fmt.Errorf("Error response from endpoint: %w", remoteErr)
}

func (cli *Client) addHeaders(req *http.Request, headers http.Header) *http.Request {
	// Add the configured headers before the per-call headers, so a call
	// can override them.
	for k, v := range cli.customHTTPHeaders {
		req.Header.Set(k, v)
	}

	for k, v := range headers {
		req.Header[http.CanonicalHeaderKey(k)] = v
	}

	if cli.userAgent != nil {
		if *cli.userAgent == "" {
			req.Header.Del("User-Agent")
		} else {
			req.Header.Set("User-Agent", *cli.userAgent)
		}
	}
	return req
}

// decodeCollection unwraps the endpoint's two-level list envelope,
// {"data": {"data": [...], "next_page_num": n}}, returning the raw
// item list and the next page cursor. Responses without a data payload
// decode as an empty collection.
func decodeCollection(resp *http.Response) (json.RawMessage, common.PageNumber, error) {
	var env common.Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, 0, fmt.Errorf("error reading response envelope: %w", err)
	}
	if len(env.Data) == 0 || bytes.Equal(env.Data, []byte("null")) {
		return nil, 0, nil
	}
	var coll common.Collection
	if err := json.Unmarshal(env.Data, &coll); err != nil {
		return nil, 0, fmt.Errorf("error reading collection: %w", err)
	}
	return coll.Items, coll.NextPage, nil
}

func ensureReaderClosed(response *http.Response) {
	if response != nil && response.Body != nil {
		// Drain up to 512 bytes and close the body to let the Transport
		// reuse the connection.
		_, _ = io.CopyN(io.Discard, response.Body, 512)
		_ = response.Body.Close()
	}
}
