package sigv4

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Headers the transport rewrites after signing, or that carry the
// signature itself, never participate in canonicalization.
var ignoredHeaders = map[string]struct{}{
	"Authorization":   {},
	"User-Agent":      {},
	"X-Amzn-Trace-Id": {},
}

// Presigned requests carry the timestamp in the query instead.
var ignoredPresignHeaders = map[string]struct{}{
	"Authorization":   {},
	"User-Agent":      {},
	"X-Amzn-Trace-Id": {},
	AmzDateKey:        {},
}

// PayloadHash returns the lowercase hex SHA-256 digest of p, the form
// Sign and Presign expect for the request body.
func PayloadHash(p []byte) string {
	return hex.EncodeToString(makeSha256(p))
}

func canonicalRequest(method, path, query, headers, signedHeaders, payloadHash string) string {
	return strings.Join([]string{
		method,
		path,
		query,
		headers,
		signedHeaders,
		payloadHash,
	}, "\n")
}

func uriPath(u *url.URL) string {
	var path string
	if len(u.Opaque) > 0 {
		path = "/" + strings.Join(strings.Split(u.Opaque, "/")[3:], "/")
	} else {
		path = u.EscapedPath()
	}
	if len(path) == 0 {
		path = "/"
	}
	return path
}

// canonicalQuery percent-encodes keys and values, orders pairs by
// encoded key and then encoded value, and joins them with "&".
// Duplicate keys are legal and keep every value.
func canonicalQuery(query url.Values) string {
	if len(query) == 0 {
		return ""
	}
	pairs := make([][2]string, 0, len(query))
	for key, values := range query {
		ek := queryEscape(key)
		for _, v := range values {
			pairs = append(pairs, [2]string{ek, queryEscape(v)})
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i][0] != pairs[j][0] {
			return pairs[i][0] < pairs[j][0]
		}
		return pairs[i][1] < pairs[j][1]
	})
	var b strings.Builder
	for i, p := range pairs {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(p[0])
		b.WriteByte('=')
		b.WriteString(p[1])
	}
	return b.String()
}

// queryEscape encodes like url.QueryEscape but with spaces as %20,
// leaving only unreserved characters (A-Z a-z 0-9 - _ . ~) bare.
func queryEscape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// canonicalHeaders renders the sorted name:value block and the
// signed-headers list for every header on req outside the exclude set.
// The host pseudo-header always participates, content-length only when
// the request declares a positive length.
func canonicalHeaders(req *http.Request, exclude map[string]struct{}) (headers string, signedHeaders string) {
	values := make(map[string][]string, len(req.Header)+2)
	for name, vals := range req.Header {
		if _, skip := exclude[http.CanonicalHeaderKey(name)]; skip {
			continue
		}
		lname := strings.ToLower(name)
		values[lname] = append(values[lname], vals...)
	}
	values["host"] = []string{requestHost(req)}
	if req.ContentLength > 0 {
		values["content-length"] = []string{strconv.FormatInt(req.ContentLength, 10)}
	}

	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		b.WriteString(name)
		b.WriteByte(':')
		for i, v := range values[name] {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(stripExcessSpaces(v))
		}
		b.WriteByte('\n')
	}
	return b.String(), strings.Join(names, ";")
}

func requestHost(req *http.Request) string {
	if req.Host != "" {
		return req.Host
	}
	return req.URL.Host
}

const doubleSpace = "  "

// stripExcessSpaces trims leading and trailing spaces and collapses
// interior runs of spaces to one, the normalization applied to header
// values before hashing.
func stripExcessSpaces(s string) string {
	s = strings.Trim(s, " ")
	if !strings.Contains(s, doubleSpace) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	var inRun bool
	for i := 0; i < len(s); i++ {
		if s[i] == ' ' {
			if !inRun {
				b.WriteByte(' ')
			}
			inRun = true
			continue
		}
		inRun = false
		b.WriteByte(s[i])
	}
	return b.String()
}

func makeHmac(key []byte, data []byte) []byte {
	h := hmac.New(sha256.New, key)
	h.Write(data)
	return h.Sum(nil)
}

func makeSha256(data []byte) []byte {
	h := sha256.New()
	h.Write(data)
	return h.Sum(nil)
}
