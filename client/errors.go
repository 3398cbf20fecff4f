package client

import (
	"errors"
	"fmt"
	"net/http"

	cerrdefs "github.com/containerd/errdefs"
	"github.com/containerd/errdefs/pkg/errhttp"
)

// errConnectionFailed implements an error returned when connecting to
// the endpoint failed.
type errConnectionFailed struct {
	error
}

func (e errConnectionFailed) Unwrap() error {
	return e.error
}

// connectionFailed returns an error with the host in the error message
// when connecting to the endpoint failed.
func connectionFailed(host string, cause error) error {
	if host == "" {
		return errConnectionFailed{fmt.Errorf("cannot connect to the SCP endpoint: %w", cause)}
	}
	return errConnectionFailed{fmt.Errorf("cannot connect to the SCP endpoint at %s: %w", host, cause)}
}

// IsErrConnectionFailed returns true if the error is caused by a
// failure to reach the endpoint.
func IsErrConnectionFailed(err error) bool {
	return errors.As(err, &errConnectionFailed{})
}

// IsErrNotFound returns true if the error is caused by the endpoint
// not knowing the requested object. It matches both HTTP 404 responses
// and name lookups that scanned the full inventory without a hit.
func IsErrNotFound(err error) bool {
	return cerrdefs.IsNotFound(err)
}

// invalidConfigError reports a client construction problem. It
// satisfies the cerrdefs.IsInvalidArgument predicate.
type invalidConfigError string

func (e invalidConfigError) InvalidParameter() {}

func (e invalidConfigError) Error() string {
	return string(e)
}

// vmNotFoundError is returned by VMFind when neither a VM ID nor an
// exact VM name matches the identifier.
type vmNotFoundError struct {
	identifier string
}

func (e vmNotFoundError) NotFound() {}

func (e vmNotFoundError) Error() string {
	return "no such virtual machine: " + e.identifier
}

// statusError pairs the error decoded from a response body with the
// errdefs sentinel for its HTTP status, so the endpoint's message is
// preserved verbatim while callers match with the cerrdefs predicates.
type statusError struct {
	cause  error
	native error
}

func (e statusError) Error() string {
	return e.cause.Error()
}

func (e statusError) Unwrap() []error {
	return []error{e.cause, e.native}
}

// httpErrorFromStatusCode attaches the errdefs sentinel for status to
// err. Errors from 2xx/3xx responses pass through untouched.
func httpErrorFromStatusCode(err error, status int) error {
	if err == nil || status < http.StatusBadRequest {
		return err
	}
	return statusError{cause: err, native: errhttp.ToNative(status)}
}
