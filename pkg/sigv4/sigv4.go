package sigv4

import (
	"encoding/hex"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	authHeaderPrefix = "AWS4-HMAC-SHA256"
	timeFormat       = "20060102T150405Z"
	shortTimeFormat  = "20060102"
	awsV4Request     = "aws4_request"
	keyPrefix        = "AWS4"

	authorizationHeader = "Authorization"

	// AmzDateKey is the header and query key carrying the signing
	// timestamp.
	AmzDateKey = "X-Amz-Date"
	// AmzContentSHA256Key is the header carrying the hex SHA-256
	// digest of the request payload.
	AmzContentSHA256Key = "X-Amz-Content-Sha256"
	// AmzSecurityTokenKey is the header and query key carrying the
	// session token when temporary credentials are in use.
	AmzSecurityTokenKey = "X-Amz-Security-Token"

	amzAlgorithmKey     = "X-Amz-Algorithm"
	amzCredentialKey    = "X-Amz-Credential"
	amzExpiresKey       = "X-Amz-Expires"
	amzSignedHeadersKey = "X-Amz-SignedHeaders"
	amzSignatureKey     = "X-Amz-Signature"

	// EmptyStringSHA256 is the hex SHA-256 digest of the empty byte
	// sequence, used as the payload hash of body-less requests.
	EmptyStringSHA256 = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"

	// UnsignedPayload marks a payload deliberately excluded from
	// signing.
	UnsignedPayload = "UNSIGNED-PAYLOAD"
)

var validMethods = map[string]struct{}{
	http.MethodGet:     {},
	http.MethodHead:    {},
	http.MethodPost:    {},
	http.MethodPut:     {},
	http.MethodPatch:   {},
	http.MethodDelete:  {},
	http.MethodConnect: {},
	http.MethodOptions: {},
	http.MethodTrace:   {},
}

// Credentials is the access and secret key pair signing keys are
// derived from. The signer never persists the pair and never exposes
// derived secrets to callers.
type Credentials struct {
	AccessKey string
	SecretKey string
}

// Signer produces Signature Version 4 authentication material for HTTP
// requests. Construct with New; a Signer is immutable afterwards and
// safe for concurrent use.
type Signer struct {
	credentials  Credentials
	region       string
	service      string
	sessionToken string
	keys         *derivedKeyCache
}

// Option configures a Signer during New.
type Option func(*Signer)

// WithCredentials sets the access and secret key pair.
func WithCredentials(accessKey, secretKey string) Option {
	return func(s *Signer) {
		s.credentials = Credentials{AccessKey: accessKey, SecretKey: secretKey}
	}
}

// WithRegionService sets the region and service components of the
// credential scope.
func WithRegionService(region, service string) Option {
	return func(s *Signer) {
		s.region = region
		s.service = service
	}
}

// WithSessionToken sets the token attached and signed as
// X-Amz-Security-Token. Leave unset for long-lived credentials.
func WithSessionToken(token string) Option {
	return func(s *Signer) {
		s.sessionToken = token
	}
}

// New validates the options and returns a ready Signer.
func New(opts ...Option) (*Signer, error) {
	s := &Signer{
		keys: newDerivedKeyCache(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.credentials.AccessKey == "" {
		return nil, invalidInputError("access key is required")
	}
	if s.credentials.SecretKey == "" {
		return nil, invalidInputError("secret key is required")
	}
	if s.region == "" {
		return nil, invalidInputError("region is required")
	}
	if s.service == "" {
		return nil, invalidInputError("service is required")
	}
	return s, nil
}

// Sign authenticates req via headers. It sets X-Amz-Date from tm,
// X-Amz-Content-Sha256 from payloadHash, X-Amz-Security-Token when a
// session token is configured, and the final Authorization header. The
// URL and body are left untouched.
//
// payloadHash is the lowercase hex SHA-256 digest of the request body;
// use PayloadHash, or EmptyStringSHA256 for body-less requests. An
// empty string is treated as EmptyStringSHA256. A retried request must
// be re-signed with a fresh timestamp.
func (s *Signer) Sign(req *http.Request, payloadHash string, tm Time) error {
	if err := validate(req, tm); err != nil {
		return err
	}
	if payloadHash == "" {
		payloadHash = EmptyStringSHA256
	}

	amzDate := tm.Format()
	req.Header.Set(AmzDateKey, amzDate)
	req.Header.Set(AmzContentSHA256Key, payloadHash)
	if s.sessionToken != "" {
		req.Header.Set(AmzSecurityTokenKey, s.sessionToken)
	}

	headers, signedHeaders := canonicalHeaders(req, ignoredHeaders)
	creq := canonicalRequest(req.Method, uriPath(req.URL), canonicalQuery(req.URL.Query()), headers, signedHeaders, payloadHash)
	scope := s.scope(tm)
	signature := s.signature(creq, amzDate, scope, tm)

	req.Header.Set(authorizationHeader, strings.Join([]string{
		authHeaderPrefix + " Credential=" + s.credentials.AccessKey + "/" + scope,
		"SignedHeaders=" + signedHeaders,
		"Signature=" + signature,
	}, ", "))
	return nil
}

// Presign authenticates via query parameters instead of headers,
// yielding a URL that stands alone for the given lifetime. req is not
// modified; the returned header set is what the caller must transmit
// alongside the signed URL.
func (s *Signer) Presign(req *http.Request, payloadHash string, tm Time, expires time.Duration) (*url.URL, http.Header, error) {
	if err := validate(req, tm); err != nil {
		return nil, nil, err
	}
	if expires <= 0 {
		return nil, nil, invalidInputError("expiry must be positive")
	}
	if payloadHash == "" {
		payloadHash = EmptyStringSHA256
	}

	amzDate := tm.Format()
	scope := s.scope(tm)
	headers, signedHeaders := canonicalHeaders(req, ignoredPresignHeaders)

	query := req.URL.Query()
	query.Set(amzAlgorithmKey, authHeaderPrefix)
	query.Set(amzCredentialKey, s.credentials.AccessKey+"/"+scope)
	query.Set(AmzDateKey, amzDate)
	query.Set(amzExpiresKey, strconv.FormatInt(int64(expires/time.Second), 10))
	query.Set(amzSignedHeadersKey, signedHeaders)
	if s.sessionToken != "" {
		query.Set(AmzSecurityTokenKey, s.sessionToken)
	}
	cq := canonicalQuery(query)

	creq := canonicalRequest(req.Method, uriPath(req.URL), cq, headers, signedHeaders, payloadHash)
	signature := s.signature(creq, amzDate, scope, tm)

	signedURL := *req.URL
	signedURL.RawQuery = cq + "&" + amzSignatureKey + "=" + signature

	sendHeaders := make(http.Header)
	for _, name := range strings.Split(signedHeaders, ";") {
		switch name {
		case "host":
			sendHeaders.Set("Host", requestHost(req))
		case "content-length":
			sendHeaders.Set("Content-Length", strconv.FormatInt(req.ContentLength, 10))
		default:
			for _, v := range req.Header.Values(name) {
				sendHeaders.Add(name, v)
			}
		}
	}
	return &signedURL, sendHeaders, nil
}

func (s *Signer) scope(tm Time) string {
	return strings.Join([]string{tm.ShortFormat(), s.region, s.service, awsV4Request}, "/")
}

func (s *Signer) signature(creq, amzDate, scope string, tm Time) string {
	sts := strings.Join([]string{
		authHeaderPrefix,
		amzDate,
		scope,
		hex.EncodeToString(makeSha256([]byte(creq))),
	}, "\n")
	key := s.keys.Get(s.credentials, s.region, s.service, tm)
	return hex.EncodeToString(makeHmac(key, []byte(sts)))
}

func validate(req *http.Request, tm Time) error {
	if req == nil || req.URL == nil {
		return invalidInputError("nil request")
	}
	if _, ok := validMethods[req.Method]; !ok {
		return invalidInputError("unrecognized HTTP method " + strconv.Quote(req.Method))
	}
	if tm.IsZero() {
		return invalidInputError("zero timestamp")
	}
	return nil
}

// invalidInputError reports malformed signing input. It carries the
// InvalidParameter marker recognized by errdefs-style matchers.
type invalidInputError string

func (e invalidInputError) Error() string {
	return "sigv4: " + string(e)
}

func (e invalidInputError) InvalidParameter() {}
