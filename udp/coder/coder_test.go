package coder

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/doxxx/coap-cli/message"
	"github.com/doxxx/coap-cli/message/codes"
)

func testEncodeMessage(t *testing.T, msg message.Message, expectedOut []byte) {
	buf := make([]byte, 1024)
	length, err := DefaultCoder.Encode(msg, buf)
	require.NoError(t, err)
	require.Equal(t, expectedOut, buf[:length])
}

func TestEncodeMessage(t *testing.T) {
	// validate messageID
	buf := make([]byte, 1024)
	_, err := DefaultCoder.Encode(message.Message{MessageID: -1}, buf)
	require.Error(t, err)
	_, err = DefaultCoder.Encode(message.Message{MessageID: math.MaxUint16 + 1}, buf)
	require.Error(t, err)

	// validate type
	_, err = DefaultCoder.Encode(message.Message{Type: message.Unset}, buf)
	require.Error(t, err)

	// validate token
	_, err = DefaultCoder.Encode(message.Message{Token: make([]byte, 9)}, buf)
	require.ErrorIs(t, err, message.ErrInvalidTokenLen)

	testEncodeMessage(t, message.Message{}, []byte{0x40, 0, 0, 0})
	testEncodeMessage(t, message.Message{Code: codes.GET}, []byte{0x40, 0x1, 0, 0})
	testEncodeMessage(t, message.Message{Code: codes.GET, Payload: []byte{0x1}}, []byte{0x40, 0x1, 0, 0, 0xff, 0x1})
	testEncodeMessage(t,
		message.Message{Code: codes.GET, Payload: []byte{0x1}, Token: []byte{0x1, 0x2, 0x3}},
		[]byte{0x43, 0x1, 0, 0, 0x1, 0x2, 0x3, 0xff, 0x1})
}

func TestEncodeGetVersion(t *testing.T) {
	var opts message.Options
	opts, err := opts.SetPath("/version")
	require.NoError(t, err)
	testEncodeMessage(t, message.Message{
		Code:      codes.GET,
		Type:      message.Confirmable,
		MessageID: 0x1234,
		Options:   opts,
	}, []byte{0x40, 0x1, 0x12, 0x34, 0xb7, 'v', 'e', 'r', 's', 'i', 'o', 'n'})

	// and back: a single Uri-Path option with value "version"
	var m message.Message
	_, err = DefaultCoder.Decode([]byte{0x40, 0x1, 0x12, 0x34, 0xb7, 'v', 'e', 'r', 's', 'i', 'o', 'n'}, &m)
	require.NoError(t, err)
	require.Equal(t, []string{"version"}, m.Options.GetStrings(message.URIPath))
}

func TestDecodeContentResponse(t *testing.T) {
	payload := []byte(`{"version":"1.2.3.4"}`)
	data := append([]byte{0x60, 0x45, 0x12, 0x34, 0xff}, payload...)

	var m message.Message
	n, err := DefaultCoder.Decode(data, &m)
	require.NoError(t, err)
	require.Equal(t, len(data), n)
	require.Equal(t, message.Acknowledgement, m.Type)
	require.Equal(t, "2.05", m.Code.Dotted())
	require.Equal(t, int32(0x1234), m.MessageID)
	require.Equal(t, payload, m.Payload)
}

func TestDecodeErrors(t *testing.T) {
	var m message.Message

	// fewer than 4 bytes
	_, err := DefaultCoder.Decode([]byte{0x40, 0x1, 0x0}, &m)
	require.ErrorIs(t, err, ErrMessageTruncated)

	// version != 1
	_, err = DefaultCoder.Decode([]byte{0x80, 0x1, 0x0, 0x0}, &m)
	require.ErrorIs(t, err, ErrMessageInvalidVersion)

	// reserved token length nibble
	_, err = DefaultCoder.Decode([]byte{0x49, 0x1, 0x0, 0x0}, &m)
	require.ErrorIs(t, err, message.ErrInvalidTokenLen)

	// token bytes missing
	_, err = DefaultCoder.Decode([]byte{0x42, 0x1, 0x0, 0x0, 0xab}, &m)
	require.ErrorIs(t, err, ErrMessageTruncated)

	// payload marker with zero payload bytes
	_, err = DefaultCoder.Decode([]byte{0x40, 0x45, 0x0, 0x0, 0xff}, &m)
	require.ErrorIs(t, err, ErrMessageMissingPayload)

	// option length exceeds remaining bytes
	_, err = DefaultCoder.Decode([]byte{0x40, 0x1, 0x0, 0x0, 0xb7, 'v'}, &m)
	require.ErrorIs(t, err, message.ErrOptionTruncated)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	var opts message.Options
	opts, err := opts.SetPath("/a/b/c")
	require.NoError(t, err)
	opts = opts.SetContentFormat(message.AppJSON)
	opts = opts.AddQuery("x=1")
	opts = opts.AddAccept(message.AppJSON)
	opts = opts.AddAccept(message.AppCBOR)

	msg := message.Message{
		Code:      codes.POST,
		Type:      message.Confirmable,
		MessageID: 27562,
		Token:     []byte{0x86, 0xed, 0x9e, 0x84, 0x96, 0x13, 0x13, 0x9f},
		Options:   opts,
		Payload:   []byte(`{"x":1}`),
	}

	buf := make([]byte, 1024)
	n, err := DefaultCoder.Encode(msg, buf)
	require.NoError(t, err)

	var decoded message.Message
	proc, err := DefaultCoder.Decode(buf[:n], &decoded)
	require.NoError(t, err)
	require.Equal(t, n, proc)
	require.Equal(t, msg, decoded)
}

func TestEncodeTooSmall(t *testing.T) {
	msg := message.Message{Code: codes.GET, Payload: []byte("abc")}
	size, err := DefaultCoder.Size(msg)
	require.NoError(t, err)
	require.Equal(t, 8, size)

	buf := make([]byte, 4)
	n, err := DefaultCoder.Encode(msg, buf)
	require.ErrorIs(t, err, message.ErrTooSmall)
	require.Equal(t, size, n)
}
