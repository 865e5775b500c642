package message

import (
	"crypto/rand"
	"encoding/binary"
	"time"

	pkgRand "github.com/doxxx/coap-cli/pkg/rand"
)

var weakRng = pkgRand.NewRand(time.Now().UnixNano())

// RandMID returns a random starting point for a message id counter.
// (0 <= mid <= 65535)
func RandMID() int32 {
	b := make([]byte, 4)
	_, err := rand.Read(b)
	if err != nil {
		// fallback to cryptographically insecure pseudo-random generator
		return int32(uint16(weakRng.Uint32() >> 16))
	}
	return int32(uint16(binary.BigEndian.Uint32(b)))
}
