// Package core defines the essential interfaces and data structures that form the
// backbone of the application. These types are shared by the gateway, the
// provider clients and the review client, and carry no transport concerns.
package core

import (
	"encoding/json"
	"strings"
)

// ReviewRequest is the wire payload sent by the review client to the gateway.
type ReviewRequest struct {
	Code string `json:"code"`
}

// Validate reports whether the request carries reviewable code.
func (r ReviewRequest) Validate() error {
	if strings.TrimSpace(r.Code) == "" {
		return ErrInvalidInput
	}
	return nil
}

type envelopeKind int

const (
	kindNone envelopeKind = iota
	kindReview
	kindError
)

// Envelope is the normalized gateway response. Exactly one of the review text
// or the error message is populated.
type Envelope struct {
	kind envelopeKind
	text string
}

// ReviewEnvelope wraps a successful review.
func ReviewEnvelope(review string) Envelope {
	return Envelope{kind: kindReview, text: review}
}

// ErrorEnvelope wraps a user-facing error message.
func ErrorEnvelope(msg string) Envelope {
	return Envelope{kind: kindError, text: msg}
}

// Review returns the review text and true for a success envelope.
func (e Envelope) Review() (string, bool) {
	return e.text, e.kind == kindReview
}

// Error returns the error message and true for an error envelope.
func (e Envelope) Error() (string, bool) {
	return e.text, e.kind == kindError
}

// IsZero reports whether the envelope carries neither variant.
func (e Envelope) IsZero() bool {
	return e.kind == kindNone
}

type wireEnvelope struct {
	Review *string `json:"review,omitempty"`
	Error  *string `json:"error,omitempty"`
}

// MarshalJSON emits {"review": ...} or {"error": ...}.
func (e Envelope) MarshalJSON() ([]byte, error) {
	var w wireEnvelope
	switch e.kind {
	case kindReview:
		w.Review = &e.text
	case kindError:
		w.Error = &e.text
	}
	return json.Marshal(w)
}

// ParseEnvelope decodes a gateway response body. It never fails: a body that
// is empty, is not JSON, or carries no usable string field yields false.
// A non-empty "review" wins over "error" when a body carries both.
func ParseEnvelope(body []byte) (Envelope, bool) {
	if len(strings.TrimSpace(string(body))) == 0 {
		return Envelope{}, false
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return Envelope{}, false
	}

	if review, ok := stringField(raw, "review"); ok && review != "" {
		return ReviewEnvelope(review), true
	}
	if msg, ok := stringField(raw, "error"); ok {
		return ErrorEnvelope(msg), true
	}
	return Envelope{}, false
}

// ParseErrorMessage returns the string "error" member of a response body,
// whatever else the body carries.
func ParseErrorMessage(body []byte) (string, bool) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return "", false
	}
	return stringField(raw, "error")
}

func stringField(raw map[string]json.RawMessage, key string) (string, bool) {
	v, ok := raw[key]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return "", false
	}
	return s, true
}
