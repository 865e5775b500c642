package client

import (
	"time"

	"github.com/doxxx/coap-cli/message"
)

type (
	ErrorFunc    = func(error)
	GetMIDFunc   = func() int32
	GetTokenFunc = func() (message.Token, error)
)

// Config configures a Conn. The zero value of a field selects the default.
type Config struct {
	// Errors receives faults that do not terminate an exchange, such as
	// malformed inbound datagrams being discarded.
	Errors ErrorFunc
	// GetMID seeds the connection-local message id counter.
	GetMID GetMIDFunc
	// GetToken allocates tokens for exchanges that do not bring their own.
	GetToken GetTokenFunc

	// TransmissionNStart caps the number of outstanding interactions.
	TransmissionNStart int64
	// TransmissionAcknowledgeTimeout is the base retransmission timeout
	// (ACK_TIMEOUT of RFC 7252).
	TransmissionAcknowledgeTimeout time.Duration
	// TransmissionAcknowledgeRandomFactor jitters the initial timeout into
	// [timeout, timeout*factor) (ACK_RANDOM_FACTOR).
	TransmissionAcknowledgeRandomFactor float64
	// TransmissionMaxRetransmit bounds the number of retransmissions of a
	// confirmable message (MAX_RETRANSMIT), so at most 1+MaxRetransmit
	// transmissions happen in total.
	TransmissionMaxRetransmit int32
	// TransmissionMaxTransmitWait bounds the wait for a separate response
	// after the request was acknowledged (MAX_TRANSMIT_WAIT).
	TransmissionMaxTransmitWait time.Duration

	// MaxMessageSize bounds encoded requests and the receive buffer.
	MaxMessageSize uint32
}

// Reliability transmission parameters of RFC 7252 section 4.8.
var DefaultConfig = Config{
	TransmissionNStart:                  1,
	TransmissionAcknowledgeTimeout:      2 * time.Second,
	TransmissionAcknowledgeRandomFactor: 1.5,
	TransmissionMaxRetransmit:           4,
	TransmissionMaxTransmitWait:         93 * time.Second,
	MaxMessageSize:                      64 * 1024,
}
