package codes

import "fmt"

// A Code is an 8-bit request method or response code. The three high bits are
// the class, the five low bits the detail: class 2 detail 5 is 0x45, rendered
// "2.05".
type Code uint8

// Request Codes
const (
	GET    Code = 1
	POST   Code = 2
	PUT    Code = 3
	DELETE Code = 4
)

// Response Codes
const (
	Empty                 Code = 0
	Created               Code = 65
	Deleted               Code = 66
	Valid                 Code = 67
	Changed               Code = 68
	Content               Code = 69
	BadRequest            Code = 128
	Unauthorized          Code = 129
	BadOption             Code = 130
	Forbidden             Code = 131
	NotFound              Code = 132
	MethodNotAllowed      Code = 133
	NotAcceptable         Code = 134
	PreconditionFailed    Code = 140
	RequestEntityTooLarge Code = 141
	UnsupportedMediaType  Code = 143
	InternalServerError   Code = 160
	NotImplemented        Code = 161
	BadGateway            Code = 162
	ServiceUnavailable    Code = 163
	GatewayTimeout        Code = 164
	ProxyingNotSupported  Code = 165
)

// IsRequest reports whether the code is a request method.
func (c Code) IsRequest() bool {
	return c >= GET && c <= DELETE
}

// IsResponse reports whether the code belongs to a response class (2.xx-5.xx).
func (c Code) IsResponse() bool {
	class := c >> 5
	return class >= 2 && class <= 5
}

// IsSuccess reports whether the code belongs to the 2.xx class.
func (c Code) IsSuccess() bool {
	return c>>5 == 2
}

// Dotted renders the code in the "<class>.<detail>" form, e.g. "2.05".
func (c Code) Dotted() string {
	return fmt.Sprintf("%d.%02d", c>>5, c&0x1f)
}
