package client

import (
	"net/http"
	"os"
	"time"

	"github.com/docker/go-connections/tlsconfig"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
)

// Opt is a configuration option to initialize a [Client].
type Opt func(*Client) error

// FromEnv configures the client with values from environment variables.
// It is the option to use for tools that follow the conventional SCP_*
// variables:
//
//   - SCP_HOST endpoint to connect to ("scp.example.com" or a full URL).
//   - SCP_ACCESS_KEY and SCP_SECRET_KEY signing key pair.
//   - SCP_REGION region requests are signed for.
//   - SCP_API_VERSION date-based API version override.
//
// Variables that are not set leave the corresponding setting untouched,
// so FromEnv composes with explicit options.
func FromEnv(c *Client) error {
	ops := []Opt{
		WithHostFromEnv(),
		WithCredentialsFromEnv(),
		WithRegionFromEnv(),
		WithVersionFromEnv(),
	}
	for _, op := range ops {
		if err := op(c); err != nil {
			return err
		}
	}
	return nil
}

// WithHost overrides the client host with the specified one. Accepts a
// bare "host[:port]" (https assumed), or an http/https URL whose path
// becomes part of the request base path.
func WithHost(host string) Opt {
	return func(c *Client) error {
		hostURL, err := ParseHostURL(host)
		if err != nil {
			return err
		}
		c.host = host
		c.scheme = hostURL.Scheme
		c.addr = hostURL.Host
		c.basePath = hostURL.Path + apiPrefix
		return nil
	}
}

// WithHostFromEnv overrides the client host with the value of the
// SCP_HOST ([EnvOverrideHost]) environment variable. It is a no-op if
// the variable is not set.
func WithHostFromEnv() Opt {
	return func(c *Client) error {
		if host := os.Getenv(EnvOverrideHost); host != "" {
			return WithHost(host)(c)
		}
		return nil
	}
}

// WithCredentials sets the access and secret key pair requests are
// signed with.
func WithCredentials(accessKey, secretKey string) Opt {
	return func(c *Client) error {
		c.accessKey = accessKey
		c.secretKey = secretKey
		return nil
	}
}

// WithCredentialsFromEnv reads the signing key pair from the
// SCP_ACCESS_KEY and SCP_SECRET_KEY environment variables. Variables
// that are not set leave the corresponding key untouched.
func WithCredentialsFromEnv() Opt {
	return func(c *Client) error {
		if ak := os.Getenv(EnvAccessKey); ak != "" {
			c.accessKey = ak
		}
		if sk := os.Getenv(EnvSecretKey); sk != "" {
			c.secretKey = sk
		}
		return nil
	}
}

// WithSessionToken sets the security token attached to every signed
// request. Most deployments use long-lived key pairs and never need
// this.
func WithSessionToken(token string) Opt {
	return func(c *Client) error {
		c.sessionToken = token
		return nil
	}
}

// WithRegion sets the region component of the signing scope.
func WithRegion(region string) Opt {
	return func(c *Client) error {
		c.region = region
		return nil
	}
}

// WithRegionFromEnv overrides the signing region with the value of the
// SCP_REGION ([EnvOverrideRegion]) environment variable. It is a no-op
// if the variable is not set.
func WithRegionFromEnv() Opt {
	return func(c *Client) error {
		if region := os.Getenv(EnvOverrideRegion); region != "" {
			c.region = region
		}
		return nil
	}
}

// WithService overrides the service component of the signing scope.
// The default, [DefaultService], is correct for every known endpoint.
func WithService(service string) Opt {
	return func(c *Client) error {
		c.service = service
		return nil
	}
}

// WithAPIVersion overrides the date-based API version used by the
// client. Only use this for endpoints running an older release.
func WithAPIVersion(version string) Opt {
	return func(c *Client) error {
		c.version = version
		return nil
	}
}

// WithVersionFromEnv overrides the API version with the value of the
// SCP_API_VERSION ([EnvOverrideAPIVersion]) environment variable. It is
// a no-op if the variable is not set.
func WithVersionFromEnv() Opt {
	return func(c *Client) error {
		if version := os.Getenv(EnvOverrideAPIVersion); version != "" {
			c.version = version
		}
		return nil
	}
}

// WithHTTPClient overrides the default http client. When the option is
// used, TLS options must be applied to the replacement client by the
// caller.
func WithHTTPClient(client *http.Client) Opt {
	return func(c *Client) error {
		if client != nil {
			c.client = client
		}
		return nil
	}
}

// WithTimeout configures the time limit for requests made by the HTTP
// client. Exhaustive listings on large estates can legitimately take
// tens of seconds; the default is no timeout.
func WithTimeout(timeout time.Duration) Opt {
	return func(c *Client) error {
		c.client.Timeout = timeout
		return nil
	}
}

// WithHTTPHeaders appends to the custom headers the client sends with
// every request. Custom headers take part in request signing.
func WithHTTPHeaders(headers map[string]string) Opt {
	return func(c *Client) error {
		c.customHTTPHeaders = headers
		return nil
	}
}

// WithUserAgent overrides the User-Agent the client sends. The
// User-Agent header never takes part in request signing, so proxies
// rewriting it do not invalidate signatures.
func WithUserAgent(ua string) Opt {
	return func(c *Client) error {
		c.userAgent = &ua
		return nil
	}
}

// WithTLSClientConfig applies a TLS configuration built from the given
// PEM-encoded CA, certificate and key files to the client transport.
// Pass only a CA file to trust a private appliance CA without client
// authentication.
func WithTLSClientConfig(cacertPath, certPath, keyPath string) Opt {
	return func(c *Client) error {
		transport, ok := c.client.Transport.(*http.Transport)
		if !ok {
			return errors.Errorf("cannot apply tls config to transport: %T", c.client.Transport)
		}
		config, err := tlsconfig.Client(tlsconfig.Options{
			CAFile:             cacertPath,
			CertFile:           certPath,
			KeyFile:            keyPath,
			ExclusiveRootPools: true,
		})
		if err != nil {
			return errors.Wrap(err, "failed to create tls config")
		}
		transport.TLSClientConfig = config
		return nil
	}
}

// WithInsecureTLSVerify disables verification of the endpoint's
// certificate chain and host name. The appliances this client talks to
// commonly ship self-signed certificates; prefer [WithTLSClientConfig]
// with the appliance CA where possible.
func WithInsecureTLSVerify() Opt {
	return func(c *Client) error {
		transport, ok := c.client.Transport.(*http.Transport)
		if !ok {
			return errors.Errorf("cannot apply tls config to transport: %T", c.client.Transport)
		}
		config := tlsconfig.ClientDefault()
		config.InsecureSkipVerify = true
		transport.TLSClientConfig = config
		return nil
	}
}

// WithTraceProvider specifies the trace provider the client transport
// is instrumented with. Spans are named "<METHOD> <path>".
func WithTraceProvider(provider trace.TracerProvider) Opt {
	return func(c *Client) error {
		c.tp = provider
		return nil
	}
}

// WithRequestLimiter throttles outgoing requests through l. Exhaustive
// listings issue one request per page of results, so a limiter keeps
// full-estate scans from saturating smaller appliances.
func WithRequestLimiter(l *rate.Limiter) Opt {
	return func(c *Client) error {
		c.limiter = l
		return nil
	}
}
