package net

import (
	"net"
	"strings"
	"time"
)

// https://github.com/golang/go/blob/958e212db799e609b2a8df51cdd85c9341e7a404/src/internal/poll/fd.go#L43
const ioTimeout = "i/o timeout"

func isTemporary(err error, deadline time.Time) bool {
	if deadline.After(time.Now()) {
		// a deadline in the future means the timeout did not really occur,
		// bail out instead of looping forever.
		return false
	}

	if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
		return true
	}

	return strings.Contains(err.Error(), ioTimeout)
}
