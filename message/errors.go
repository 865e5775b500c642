package message

import "errors"

var (
	// ErrTooSmall is returned by marshaling when the target buffer cannot
	// hold the encoding. The returned length is the size required.
	ErrTooSmall = errors.New("buffer too small")

	ErrInvalidTokenLen    = errors.New("invalid token length")
	ErrInvalidValueLength = errors.New("invalid value length")
	ErrInvalidEncoding    = errors.New("invalid encoding")

	ErrOptionTruncated              = errors.New("option is truncated")
	ErrOptionUnexpectedExtendMarker = errors.New("option has unexpected extended marker")
	ErrOptionNotFound               = errors.New("option not found")
)
