package core

import "context"

// ReviewGateway validates inbound review payloads and mediates the call to the
// review provider. Every outcome is expressed as an Envelope; the returned
// error classifies failures (ErrInvalidInput or ErrUpstream) for transports
// that need a status code.
type ReviewGateway interface {
	HandleReviewRequest(ctx context.Context, payload []byte) (Envelope, error)
}
