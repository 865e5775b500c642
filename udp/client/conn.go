package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/doxxx/coap-cli/message"
	"github.com/doxxx/coap-cli/message/codes"
	pkgRand "github.com/doxxx/coap-cli/pkg/rand"
	coapSync "github.com/doxxx/coap-cli/pkg/sync"
	"github.com/doxxx/coap-cli/udp/coder"
	"go.uber.org/atomic"
	"golang.org/x/sync/semaphore"
)

// Transport is the datagram channel contract the exchange engine requires:
// fire-and-forget sends and deadline-bounded receives. The engine assumes
// nothing about ordering or delivery beyond what its retransmission algorithm
// tolerates.
type Transport interface {
	// WriteWithContext sends a single datagram without any delivery guarantee.
	WriteWithContext(ctx context.Context, data []byte) error
	// ReadWithContext blocks until a datagram arrives or ctx is done. An
	// elapsed ctx deadline must surface as context.DeadlineExceeded.
	ReadWithContext(ctx context.Context, buffer []byte) (int, error)
}

// errRetransmitDeadline signals inside the engine that the retransmission
// window elapsed without a matching message.
var errRetransmitDeadline = errors.New("retransmission deadline elapsed")

const (
	errFmtWriteRequest = "cannot write request: %w"
	errFmtReadResponse = "cannot read response: %w"
)

// Transmission is a threadsafe container for transmission related parameters.
type Transmission struct {
	acknowledgeTimeout      *atomic.Duration
	acknowledgeRandomFactor *atomic.Float64
	maxRetransmit           *atomic.Int32
	maxTransmitWait         *atomic.Duration
}

func (t *Transmission) SetTransmissionAcknowledgeTimeout(d time.Duration) {
	t.acknowledgeTimeout.Store(d)
}

func (t *Transmission) SetTransmissionAcknowledgeRandomFactor(f float64) {
	t.acknowledgeRandomFactor.Store(f)
}

func (t *Transmission) SetTransmissionMaxRetransmit(d int32) {
	t.maxRetransmit.Store(d)
}

func (t *Transmission) SetTransmissionMaxTransmitWait(d time.Duration) {
	t.maxTransmitWait.Store(d)
}

// Conn drives request/response exchanges over a datagram transport. It owns
// the only two pieces of state shared between concurrent exchanges: the
// message id counter and the set of in-flight tokens.
type Conn struct {
	// This field needs to be the first in the struct to ensure proper word alignment on 32-bit platforms.
	// See: https://golang.org/pkg/sync/atomic/#pkg-note-BUG
	msgID atomic.Uint32

	transport      Transport
	transmission   *Transmission
	errors         ErrorFunc
	getToken       GetTokenFunc
	maxMessageSize uint32
	jitter         *pkgRand.Rand

	inflightTokens            *coapSync.Map[uint64, struct{}]
	numOutstandingInteraction *semaphore.Weighted
}

// NewConn creates a connection over the given transport. A nil cfg selects
// DefaultConfig.
func NewConn(transport Transport, cfg *Config) *Conn {
	var c Config
	if cfg != nil {
		c = *cfg
	}
	if c.Errors == nil {
		c.Errors = func(error) {
			// default no-op
		}
	}
	if c.GetMID == nil {
		c.GetMID = message.RandMID
	}
	if c.GetToken == nil {
		c.GetToken = message.GetToken
	}
	if c.TransmissionNStart <= 0 {
		c.TransmissionNStart = DefaultConfig.TransmissionNStart
	}
	if c.TransmissionAcknowledgeTimeout <= 0 {
		c.TransmissionAcknowledgeTimeout = DefaultConfig.TransmissionAcknowledgeTimeout
	}
	if c.TransmissionAcknowledgeRandomFactor < 1 {
		c.TransmissionAcknowledgeRandomFactor = DefaultConfig.TransmissionAcknowledgeRandomFactor
	}
	if c.TransmissionMaxRetransmit <= 0 {
		c.TransmissionMaxRetransmit = DefaultConfig.TransmissionMaxRetransmit
	}
	if c.TransmissionMaxTransmitWait <= 0 {
		c.TransmissionMaxTransmitWait = DefaultConfig.TransmissionMaxTransmitWait
	}
	if c.MaxMessageSize == 0 {
		c.MaxMessageSize = DefaultConfig.MaxMessageSize
	}

	cc := Conn{
		transport: transport,
		transmission: &Transmission{
			acknowledgeTimeout:      atomic.NewDuration(c.TransmissionAcknowledgeTimeout),
			acknowledgeRandomFactor: atomic.NewFloat64(c.TransmissionAcknowledgeRandomFactor),
			maxRetransmit:           atomic.NewInt32(c.TransmissionMaxRetransmit),
			maxTransmitWait:         atomic.NewDuration(c.TransmissionMaxTransmitWait),
		},
		errors:                    c.Errors,
		getToken:                  c.GetToken,
		maxMessageSize:            c.MaxMessageSize,
		jitter:                    pkgRand.NewRand(time.Now().UnixNano()),
		inflightTokens:            coapSync.NewMap[uint64, struct{}](),
		numOutstandingInteraction: semaphore.NewWeighted(c.TransmissionNStart),
	}
	cc.msgID.Store(uint32(c.GetMID()))
	return &cc
}

func (cc *Conn) Transmission() *Transmission {
	return cc.transmission
}

// GetMessageID allocates a fresh message id. (0 <= mid <= 65535)
func (cc *Conn) GetMessageID() int32 {
	return int32(uint16(cc.msgID.Inc()))
}

// acquireToken reserves a token that is unique among the outstanding
// exchanges of this connection.
func (cc *Conn) acquireToken() (message.Token, error) {
	for {
		token, err := cc.getToken()
		if err != nil {
			return nil, fmt.Errorf("cannot get token: %w", err)
		}
		if _, loaded := cc.inflightTokens.LoadOrStore(token.Hash(), struct{}{}); !loaded {
			return token, nil
		}
	}
}

func (cc *Conn) releaseToken(token message.Token) {
	cc.inflightTokens.Delete(token.Hash())
}

func (cc *Conn) randAckTimeout() time.Duration {
	timeout := cc.transmission.acknowledgeTimeout.Load()
	factor := cc.transmission.acknowledgeRandomFactor.Load() - 1
	if factor < 0 {
		factor = 0
	}
	return timeout + time.Duration(cc.jitter.Float64()*factor*float64(timeout))
}

// Do sends the request and blocks until a matching response arrives, the
// retransmission budget is exhausted, or ctx is done.
//
// A confirmable request is retransmitted with exponential backoff: the
// initial window is AcknowledgeTimeout jittered into [1.0, RandomFactor),
// doubling on each of up to MaxRetransmit retransmissions. An inbound
// datagram that does not decode is discarded and the exchange continues.
// Responses are correlated by token; a Reset from the peer fails the
// exchange with ErrReset, exhaustion fails it with ErrTimeout.
func (cc *Conn) Do(ctx context.Context, req *message.Message) (*message.Message, error) {
	if req == nil {
		return nil, fmt.Errorf("invalid request: nil")
	}
	if len(req.Token) > message.MaxTokenSize {
		return nil, message.ErrInvalidTokenLen
	}
	if req.Type == message.Unset {
		req.Type = message.Confirmable
	}
	if !message.ValidateMID(req.MessageID) {
		req.MessageID = cc.GetMessageID()
	}
	if len(req.Token) == 0 {
		token, err := cc.acquireToken()
		if err != nil {
			return nil, err
		}
		req.Token = token
	} else if _, loaded := cc.inflightTokens.LoadOrStore(req.Token.Hash(), struct{}{}); loaded {
		return nil, fmt.Errorf("cannot register exchange for token(%v): %w", req.Token, ErrTokenAlreadyExists)
	}
	defer cc.releaseToken(req.Token)

	if err := cc.numOutstandingInteraction.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer cc.numOutstandingInteraction.Release(1)

	buf := make([]byte, cc.maxMessageSize)
	n, err := coder.DefaultCoder.Encode(*req, buf)
	if err != nil {
		return nil, fmt.Errorf("cannot encode request: %w", err)
	}
	data := buf[:n]

	maxRetransmit := cc.transmission.maxRetransmit.Load()
	if req.Type != message.Confirmable {
		// only confirmable messages are retransmitted
		maxRetransmit = 0
	}
	timeout := cc.randAckTimeout()
	for attempt := int32(0); ; attempt++ {
		if err := cc.transport.WriteWithContext(ctx, data); err != nil {
			return nil, fmt.Errorf(errFmtWriteRequest, err)
		}
		resp, acked, err := cc.waitForResponse(ctx, req, time.Now().Add(timeout))
		switch {
		case err == nil:
			return resp, nil
		case acked:
			// the request was acknowledged, a separate response follows
			return cc.waitForSeparateResponse(ctx, req)
		case errors.Is(err, errRetransmitDeadline):
			if attempt >= maxRetransmit {
				return nil, ErrTimeout
			}
			// identical bytes, unchanged message id, doubled window
			timeout *= 2
		default:
			return nil, err
		}
	}
}

// waitForSeparateResponse covers the gap between an empty acknowledgement
// and the response the peer sends as its own confirmable or non-confirmable
// message.
func (cc *Conn) waitForSeparateResponse(ctx context.Context, req *message.Message) (*message.Message, error) {
	resp, _, err := cc.waitForResponse(ctx, req, time.Now().Add(cc.transmission.maxTransmitWait.Load()))
	if errors.Is(err, errRetransmitDeadline) {
		return nil, ErrTimeout
	}
	return resp, err
}

// waitForResponse reads datagrams until one matches the exchange or the
// deadline passes. It reports acked=true when the peer sent an empty
// acknowledgement, announcing a separate response.
func (cc *Conn) waitForResponse(ctx context.Context, req *message.Message, deadline time.Time) (*message.Message, bool, error) {
	wctx, cancel := context.WithDeadline(ctx, deadline)
	defer cancel()

	buffer := make([]byte, cc.maxMessageSize)
	for {
		n, err := cc.transport.ReadWithContext(wctx, buffer)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				// the caller abandoned the exchange
				return nil, false, ctxErr
			}
			if errors.Is(err, context.DeadlineExceeded) {
				return nil, false, errRetransmitDeadline
			}
			return nil, false, fmt.Errorf(errFmtReadResponse, err)
		}

		m := message.Message{MessageID: -1, Type: message.Unset}
		if _, err := coder.DefaultCoder.Decode(buffer[:n], &m); err != nil {
			// tolerate protocol noise, the exchange continues
			cc.errors(fmt.Errorf("discarding malformed datagram: %w", err))
			continue
		}

		switch {
		case m.Type == message.Reset:
			// a reset echoes the message id and carries no token
			if m.MessageID == req.MessageID || (len(m.Token) > 0 && bytes.Equal(m.Token, req.Token)) {
				return nil, false, ErrReset
			}
		case m.Type == message.Acknowledgement && m.Code == codes.Empty:
			if m.MessageID == req.MessageID {
				return nil, true, errRetransmitDeadline
			}
		case bytes.Equal(m.Token, req.Token):
			if m.Type == message.Confirmable {
				// a separate confirmable response wants its own ack
				cc.sendACK(ctx, m.MessageID)
			}
			return &m, false, nil
		}
		// anything else is a stray or duplicate datagram, drop it
	}
}

// sendACK confirms a separate confirmable response, best effort.
func (cc *Conn) sendACK(ctx context.Context, mid int32) {
	ack := message.Message{
		Type:      message.Acknowledgement,
		Code:      codes.Empty,
		MessageID: mid,
	}
	buf := make([]byte, 4)
	n, err := coder.DefaultCoder.Encode(ack, buf)
	if err != nil {
		cc.errors(fmt.Errorf("cannot encode acknowledgement: %w", err))
		return
	}
	if err := cc.transport.WriteWithContext(ctx, buf[:n]); err != nil {
		cc.errors(fmt.Errorf("cannot write acknowledgement: %w", err))
	}
}
