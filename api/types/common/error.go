package common

// ErrorResponse is the body the service sends alongside a non-2xx
// status code.
type ErrorResponse struct {
	// Code is the vendor-specific error identifier, when present.
	Code string `json:"code,omitempty"`
	// Message is the human-readable description of the failure.
	Message string `json:"message"`
}

// Error implements the error interface.
func (e ErrorResponse) Error() string {
	return e.Message
}
