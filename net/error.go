package net

type Error string

func (e Error) Error() string { return string(e) }

const (
	ErrConnectionClosed = Error("connection was closed")
	ErrWriteTruncated   = Error("only part of the datagram was written")
)
