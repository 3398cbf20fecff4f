// Package sigv4 signs HTTP requests with the AWS Signature Version 4
// scheme as deployed by SCP-compatible endpoints.
//
// Signing transforms a request into three derived values. First the
// request is reduced to a canonical form: the HTTP method, the encoded
// path, the query parameters percent-encoded and sorted, the headers
// lower-cased, space-normalized and sorted, the list of signed header
// names, and the hex SHA-256 digest of the payload, joined by newlines.
// Second, the digest of that canonical form is combined with the
// algorithm name, the timestamp and the credential scope (date, region,
// service and the aws4_request terminator) into the string to sign.
// Third, a signing key is derived by chaining HMAC-SHA256 from the
// secret key through each scope component, and the string to sign is
// MACed with it. The result is emitted as the Authorization header
// together with the X-Amz-Date timestamp and X-Amz-Content-Sha256
// payload digest headers.
//
// The computation is pure: the caller supplies the timestamp, the
// signer performs no I/O and reads no clocks, and identical inputs
// always produce identical signatures. A Signer is immutable after
// construction and safe for concurrent use; the only shared state is a
// cache of derived keys, which memoizes a deterministic function.
//
// Sign authenticates via headers. Presign authenticates via query
// parameters instead, producing a self-contained URL with a bounded
// lifetime; it leaves the request untouched and returns the URL and
// headers the caller must transmit.
package sigv4
