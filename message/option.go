package message

import (
	"fmt"
)

// OptionID identifies an option in a message.
type OptionID uint16

/*
   +-----+----+---+---+---+----------------+--------+--------+---------+
   | No. | C  | U | N | R | Name           | Format | Length | Default |
   +-----+----+---+---+---+----------------+--------+--------+---------+
   |   1 | x  |   |   | x | If-Match       | opaque | 0-8    | (none)  |
   |   3 | x  | x | - |   | Uri-Host       | string | 1-255  | (see    |
   |     |    |   |   |   |                |        |        | below)  |
   |   4 |    |   |   | x | ETag           | opaque | 1-8    | (none)  |
   |   5 | x  |   |   |   | If-None-Match  | empty  | 0      | (none)  |
   |   7 | x  | x | - |   | Uri-Port       | uint   | 0-2    | (see    |
   |     |    |   |   |   |                |        |        | below)  |
   |   8 |    |   |   | x | Location-Path  | string | 0-255  | (none)  |
   |  11 | x  | x | - | x | Uri-Path       | string | 0-255  | (none)  |
   |  12 |    |   |   |   | Content-Format | uint   | 0-2    | (none)  |
   |  14 |    | x | - |   | Max-Age        | uint   | 0-4    | 60      |
   |  15 | x  | x | - | x | Uri-Query      | string | 0-255  | (none)  |
   |  17 | x  |   |   |   | Accept         | uint   | 0-2    | (none)  |
   |  20 |    |   |   | x | Location-Query | string | 0-255  | (none)  |
   |  35 | x  | x | - |   | Proxy-Uri      | string | 1-1034 | (none)  |
   |  39 | x  | x | - |   | Proxy-Scheme   | string | 1-255  | (none)  |
   |  60 |    |   | x |   | Size1          | uint   | 0-4    | (none)  |
   +-----+----+---+---+---+----------------+--------+--------+---------+
*/
const (
	IfMatch       OptionID = 1
	URIHost       OptionID = 3
	ETag          OptionID = 4
	IfNoneMatch   OptionID = 5
	Observe       OptionID = 6
	URIPort       OptionID = 7
	LocationPath  OptionID = 8
	URIPath       OptionID = 11
	ContentFormat OptionID = 12
	MaxAge        OptionID = 14
	URIQuery      OptionID = 15
	Accept        OptionID = 17
	LocationQuery OptionID = 20
	ProxyURI      OptionID = 35
	ProxyScheme   OptionID = 39
	Size1         OptionID = 60
)

var optionIDToString = map[OptionID]string{
	IfMatch:       "If-Match",
	URIHost:       "Uri-Host",
	ETag:          "ETag",
	IfNoneMatch:   "If-None-Match",
	Observe:       "Observe",
	URIPort:       "Uri-Port",
	LocationPath:  "Location-Path",
	URIPath:       "Uri-Path",
	ContentFormat: "Content-Format",
	MaxAge:        "Max-Age",
	URIQuery:      "Uri-Query",
	Accept:        "Accept",
	LocationQuery: "Location-Query",
	ProxyURI:      "Proxy-Uri",
	ProxyScheme:   "Proxy-Scheme",
	Size1:         "Size1",
}

func (o OptionID) String() string {
	str, ok := optionIDToString[o]
	if !ok {
		return fmt.Sprintf("OptionID(%d)", uint16(o))
	}
	return str
}

const (
	maxOptionHeaderLen = 5

	// ExtendOptionByteCode signals a one byte extended delta/length.
	ExtendOptionByteCode = 13
	// ExtendOptionByteAddend is subtracted from the true value in the one byte form.
	ExtendOptionByteAddend = 13
	// ExtendOptionWordCode signals a two byte extended delta/length.
	ExtendOptionWordCode = 14
	// ExtendOptionWordAddend is subtracted from the true value in the two byte form.
	ExtendOptionWordAddend = 269
	// ExtendOptionError is the reserved nibble value, illegal in an option header.
	ExtendOptionError = 15
)

// Option is a typed, numbered key-value attached to a message.
type Option struct {
	Value []byte
	ID    OptionID
}

func (o Option) String() string {
	return fmt.Sprintf("%v: %v", o.ID, o.Value)
}

func extendOpt(opt int) (int, int) {
	ext := 0
	if opt >= ExtendOptionByteAddend {
		if opt >= ExtendOptionWordAddend {
			ext = opt - ExtendOptionWordAddend
			opt = ExtendOptionWordCode
		} else {
			ext = opt - ExtendOptionByteAddend
			opt = ExtendOptionByteCode
		}
	}
	return opt, ext
}

func marshalOptionHeaderExt(buf []byte, opt, ext int) (int, error) {
	switch opt {
	case ExtendOptionByteCode:
		if len(buf) < 1 {
			return 1, ErrTooSmall
		}
		buf[0] = byte(ext)
		return 1, nil
	case ExtendOptionWordCode:
		if len(buf) < 2 {
			return 2, ErrTooSmall
		}
		buf[0] = byte(ext >> 8)
		buf[1] = byte(ext & 0xff)
		return 2, nil
	}
	return 0, nil
}

func marshalOptionHeader(buf []byte, delta, length int) (int, error) {
	size := 0

	d, dx := extendOpt(delta)
	l, lx := extendOpt(length)

	if len(buf) < 1 {
		buf = nil
	}
	if buf != nil {
		buf[0] = byte(d<<4) | byte(l)
	}
	size++

	var err error
	var proc int
	if buf != nil {
		proc, err = marshalOptionHeaderExt(buf[size:], d, dx)
	} else {
		proc, err = marshalOptionHeaderExt(nil, d, dx)
	}
	switch {
	case err == nil:
	case err == ErrTooSmall:
		buf = nil
	default:
		return -1, err
	}
	size += proc

	if buf != nil {
		proc, err = marshalOptionHeaderExt(buf[size:], l, lx)
	} else {
		proc, err = marshalOptionHeaderExt(nil, l, lx)
	}
	switch {
	case err == nil:
	case err == ErrTooSmall:
		buf = nil
	default:
		return -1, err
	}
	size += proc
	if buf == nil {
		return size, ErrTooSmall
	}
	return size, nil
}

// Marshal serializes the option as a delta from previousID followed by the
// raw value bytes.
func (o Option) Marshal(buf []byte, previousID OptionID) (int, error) {
	if o.ID < previousID {
		return -1, ErrInvalidEncoding
	}
	delta := int(o.ID) - int(previousID)

	proc, err := marshalOptionHeader(buf, delta, len(o.Value))
	switch {
	case err == nil:
	case err == ErrTooSmall:
		buf = nil
	default:
		return -1, err
	}
	size := proc

	if buf != nil {
		if len(buf[size:]) < len(o.Value) {
			buf = nil
		} else {
			copy(buf[size:], o.Value)
		}
	}
	size += len(o.Value)
	if buf == nil {
		return size, ErrTooSmall
	}
	return size, nil
}

func parseExtOpt(data []byte, opt int) (int, int, error) {
	processed := 0
	switch opt {
	case ExtendOptionByteCode:
		if len(data) < 1 {
			return -1, -1, ErrOptionTruncated
		}
		opt = int(data[0]) + ExtendOptionByteAddend
		processed = 1
	case ExtendOptionWordCode:
		if len(data) < 2 {
			return -1, -1, ErrOptionTruncated
		}
		opt = int(data[0])<<8 + int(data[1]) + ExtendOptionWordAddend
		processed = 2
	}
	return processed, opt, nil
}
