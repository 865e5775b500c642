package message

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"hash/crc64"
)

// Token is an opaque correlator binding a response to its request. It is
// independent of the transport-level message id.
type Token []byte

func (t Token) String() string {
	return base64.StdEncoding.EncodeToString(t)
}

// Hash returns a key usable for map lookups of outstanding exchanges.
func (t Token) Hash() uint64 {
	return crc64.Checksum(t, crc64.MakeTable(crc64.ISO))
}

// GetToken generates a random 8-byte token.
func GetToken() (Token, error) {
	b := make(Token, MaxTokenSize)
	_, err := rand.Read(b)
	// Note that err == nil only if we read len(b) bytes.
	if err != nil {
		return nil, fmt.Errorf("cannot generate token: %w", err)
	}
	return b, nil
}
