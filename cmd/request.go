package cmd

import (
	"fmt"
	"os"

	"github.com/doxxx/coap-cli/message"
	"github.com/doxxx/coap-cli/message/codes"
)

// buildRequest projects the parsed URL and the flag values into a message:
// path segments become repeated Uri-Path options, query terms repeated
// Uri-Query options, each accept value its own Accept option.
func buildRequest(code codes.Code, tgt *target, payload []byte, contentFormat *message.MediaType, accept []message.MediaType) (*message.Message, error) {
	var opts message.Options
	opts, err := opts.SetPath(tgt.path)
	if err != nil {
		return nil, fmt.Errorf("cannot set path %q: %w", tgt.path, err)
	}
	for _, q := range tgt.queries {
		opts = opts.AddQuery(q)
	}
	if contentFormat != nil {
		opts = opts.SetContentFormat(*contentFormat)
	}
	for _, a := range accept {
		opts = opts.AddAccept(a)
	}
	return &message.Message{
		Code:      code,
		Options:   opts,
		Payload:   payload,
		Type:      message.Confirmable,
		MessageID: -1,
	}, nil
}

// loadBody resolves the request body from --data or --file, requiring
// exactly one of them.
func loadBody(data, file string) ([]byte, error) {
	switch {
	case data != "" && file != "":
		return nil, fmt.Errorf("data string and file path are mutually exclusive")
	case data != "":
		return []byte(data), nil
	case file != "":
		body, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("cannot read data file: %w", err)
		}
		return body, nil
	}
	return nil, fmt.Errorf("must specify either data string or file path")
}
