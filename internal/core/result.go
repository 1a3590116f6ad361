package core

// Result is the client-side outcome of one review round-trip.
type Result struct {
	Review string
	Err    error
}

// OK reports whether the round-trip produced a review.
func (r Result) OK() bool {
	return r.Err == nil
}
