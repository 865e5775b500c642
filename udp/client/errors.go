package client

import "errors"

var (
	// ErrTimeout is returned when the full retransmission budget elapsed
	// without a matching response.
	ErrTimeout = errors.New("no matching response within retransmission budget")
	// ErrReset is returned when the peer rejected the request with a Reset
	// message.
	ErrReset = errors.New("request was rejected by peer")
	// ErrTokenAlreadyExists is returned when a request carries a token that
	// is already bound to an outstanding exchange on the same connection.
	ErrTokenAlreadyExists = errors.New("token already exists")
)
