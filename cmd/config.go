package cmd

import "time"

// transmissionEnv overrides the RFC 7252 reliability transmission parameters
// from the environment. Zero values keep the library defaults, except the
// acknowledge timeout which the --timeout flag controls.
type transmissionEnv struct {
	AckRandomFactor float64       `env:"COAP_ACK_RANDOM_FACTOR"`
	MaxRetransmit   int32         `env:"COAP_MAX_RETRANSMIT"`
	MaxTransmitWait time.Duration `env:"COAP_MAX_TRANSMIT_WAIT"`
	NStart          int64         `env:"COAP_NSTART"`
}
