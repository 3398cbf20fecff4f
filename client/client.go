/*
Package client is a Go client for the Sangfor SCP virtualization
management API.

Usage:

	import (
		"context"
		"fmt"

		"github.com/sangforsdk/scp-go/client"
	)

	func main() {
		cli, err := client.New(client.FromEnv)
		if err != nil {
			panic(err)
		}
		defer cli.Close()

		vms, err := cli.VMListAll(context.Background(), client.VMListAllOptions{})
		if err != nil {
			panic(err)
		}
		for _, vm := range vms {
			fmt.Printf("%s %s (%s)\n", vm.ID, vm.Name, vm.Status)
		}
	}

Every request is signed with the endpoint's SigV4-style scheme; see
[github.com/sangforsdk/scp-go/pkg/sigv4] for the signing contract.
*/
package client

import (
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sangforsdk/scp-go/pkg/sigv4"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
)

// Environment variables read by [FromEnv].
const (
	// EnvOverrideHost is the name of the environment variable that can
	// be used to override the endpoint to connect to.
	EnvOverrideHost = "SCP_HOST"

	// EnvOverrideRegion overrides the region requests are signed for.
	EnvOverrideRegion = "SCP_REGION"

	// EnvOverrideAPIVersion overrides the date-versioned API path
	// segment. Only use this for endpoints running an older release.
	EnvOverrideAPIVersion = "SCP_API_VERSION"

	// EnvAccessKey and EnvSecretKey hold the signing key pair.
	EnvAccessKey = "SCP_ACCESS_KEY"
	EnvSecretKey = "SCP_SECRET_KEY"
)

const (
	// DefaultAPIVersion is the date-versioned path segment requests are
	// built with unless [WithAPIVersion] overrides it.
	DefaultAPIVersion = "20190725"

	// DefaultService is the service name requests are signed for.
	DefaultService = "open-api"

	// apiPrefix is the path prefix shared by every endpoint route.
	apiPrefix = "/janus"
)

// Client is the API client that performs all operations against an SCP
// endpoint. Its configuration is fixed at construction time; a Client
// is safe for concurrent use by multiple goroutines.
type Client struct {
	// scheme sets the scheme for the client, http or https.
	scheme string
	// host holds the server address to connect to, as given to WithHost.
	host string
	// addr holds the host:port of the endpoint.
	addr string
	// basePath holds the path to prepend to the requests, including any
	// path component of the host URL.
	basePath string
	// version of the API to reach on the endpoint.
	version string

	accessKey    string
	secretKey    string
	sessionToken string
	region       string
	service      string

	// signer produces the Authorization header for outgoing requests.
	signer *sigv4.Signer
	// client used to send and receive http requests.
	client *http.Client
	// limiter, when set, throttles outgoing requests.
	limiter *rate.Limiter

	// userAgent is the User-Agent header to use for HTTP requests. It
	// takes precedence over User-Agent headers set in customHTTPHeaders.
	userAgent *string
	// custom HTTP headers configured by users.
	customHTTPHeaders map[string]string

	// tp is the TracerProvider the transport is instrumented with.
	tp trace.TracerProvider

	// now returns the signing time for each request. Tests pin it to
	// keep signatures reproducible.
	now func() time.Time
}

// New returns a Client configured by the given options. A host,
// a credential pair and a signing region are required; everything else
// has a default.
func New(ops ...Opt) (*Client, error) {
	c := &Client{
		client:  defaultHTTPClient(),
		version: DefaultAPIVersion,
		service: DefaultService,
		now:     time.Now,
	}
	for _, op := range ops {
		if err := op(c); err != nil {
			return nil, err
		}
	}

	if c.host == "" {
		return nil, invalidConfigError("no endpoint host provided, set " + EnvOverrideHost + " or use WithHost")
	}

	signerOpts := []sigv4.Option{
		sigv4.WithCredentials(c.accessKey, c.secretKey),
		sigv4.WithRegionService(c.region, c.service),
	}
	if c.sessionToken != "" {
		signerOpts = append(signerOpts, sigv4.WithSessionToken(c.sessionToken))
	}
	signer, err := sigv4.New(signerOpts...)
	if err != nil {
		return nil, err
	}
	c.signer = signer

	if c.tp != nil {
		c.client.Transport = otelhttp.NewTransport(
			c.client.Transport,
			otelhttp.WithTracerProvider(c.tp),
			otelhttp.WithSpanNameFormatter(func(_ string, req *http.Request) string {
				return req.Method + " " + req.URL.Path
			}),
		)
	}

	return c, nil
}

func defaultHTTPClient() *http.Client {
	return &http.Client{
		Transport:     &http.Transport{Proxy: http.ProxyFromEnvironment},
		CheckRedirect: checkRedirect,
	}
}

// checkRedirect is the redirect policy of the default HTTP client. A
// signature is only valid for the exact URL it was computed over, so
// redirects are returned to the caller rather than replayed against
// the Location target.
func checkRedirect(_ *http.Request, _ []*http.Request) error {
	return http.ErrUseLastResponse
}

// ParseHostURL parses addr and returns the endpoint URL. Addresses
// without a scheme default to https. A path component is kept and
// prepended to every request path.
func ParseHostURL(host string) (*url.URL, error) {
	if host == "" {
		return nil, errors.New("unable to parse SCP host: value is empty")
	}
	if !strings.Contains(host, "://") {
		host = "https://" + host
	}
	u, err := url.Parse(host)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to parse SCP host `%s`", host)
	}
	switch u.Scheme {
	case "http", "https":
		// keep
	default:
		return nil, errors.Errorf("unable to parse SCP host `%s`: unsupported scheme %q", host, u.Scheme)
	}
	if u.Host == "" {
		return nil, errors.Errorf("unable to parse SCP host `%s`: no host", host)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	return u, nil
}

// getAPIPath returns the versioned request path to call the API. The
// path is escaped so it is safe to embed identifiers taken from API
// responses.
func (cli *Client) getAPIPath(p string, query url.Values) string {
	return (&url.URL{
		Path:     path.Join(cli.basePath, cli.version, p),
		RawQuery: query.Encode(),
	}).String()
}

// APIVersion returns the date-based API version used by the client.
func (cli *Client) APIVersion() string {
	return cli.version
}

// Host returns the server address the client connects to, as it was
// given to [WithHost].
func (cli *Client) Host() string {
	return cli.host
}

// HTTPClient returns a copy of the HTTP client bound to the endpoint.
func (cli *Client) HTTPClient() *http.Client {
	c := *cli.client
	return &c
}

// Close the transport used by the client.
func (cli *Client) Close() error {
	if t, ok := cli.client.Transport.(*http.Transport); ok {
		t.CloseIdleConnections()
	}
	return nil
}
