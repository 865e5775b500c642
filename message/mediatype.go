package message

import "fmt"

// MediaType specifies the content format of a message payload.
type MediaType uint16

const (
	TextPlain     MediaType = 0  // text/plain;charset=utf-8
	AppLinkFormat MediaType = 40 // application/link-format
	AppXML        MediaType = 41 // application/xml
	AppOctets     MediaType = 42 // application/octet-stream
	AppExi        MediaType = 47 // application/exi
	AppJSON       MediaType = 50 // application/json
	AppCBOR       MediaType = 60 // application/cbor
)

var mediaTypeToString = map[MediaType]string{
	TextPlain:     "text/plain",
	AppLinkFormat: "application/link-format",
	AppXML:        "application/xml",
	AppOctets:     "application/octet-stream",
	AppExi:        "application/exi",
	AppJSON:       "application/json",
	AppCBOR:       "application/cbor",
}

func (c MediaType) String() string {
	str, ok := mediaTypeToString[c]
	if !ok {
		return fmt.Sprintf("MediaType(%d)", uint16(c))
	}
	return str
}

// ToMediaType resolves a content format given by registry name.
func ToMediaType(v string) (MediaType, error) {
	for key, val := range mediaTypeToString {
		if val == v {
			return key, nil
		}
	}
	return 0, fmt.Errorf("not found")
}
