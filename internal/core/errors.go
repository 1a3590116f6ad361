package core

import "errors"

// Error taxonomy shared by every component. Callers classify with errors.Is.
var (
	// ErrInvalidInput means the request carried no reviewable code.
	ErrInvalidInput = errors.New("code is required")
	// ErrConfiguration means the provider credential is missing.
	ErrConfiguration = errors.New("provider is not configured")
	// ErrProvider covers transport and non-success responses from the LLM API.
	ErrProvider = errors.New("provider request failed")
	// ErrTimeout means a deadline elapsed before a response arrived.
	ErrTimeout = errors.New("request timed out")
	// ErrTransport covers failures talking to the gateway.
	ErrTransport = errors.New("transport failure")
	// ErrUpstream is returned by the gateway for any provider-side failure.
	ErrUpstream = errors.New("upstream review failed")
	// ErrMalformedResponse means a response body had no usable envelope.
	ErrMalformedResponse = errors.New("malformed response")
)
