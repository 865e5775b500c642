package cmd

import (
	"fmt"
	"math"
	"strconv"

	"github.com/doxxx/coap-cli/message"
)

// parseContentFormat resolves a content format given either by registry name
// (e.g. "application/json") or by registry number (e.g. "50").
func parseContentFormat(s string) (message.MediaType, error) {
	if num, err := strconv.ParseUint(s, 10, 64); err == nil {
		if num > math.MaxUint16 {
			return 0, fmt.Errorf("invalid content format number: %v", s)
		}
		return message.MediaType(num), nil
	}
	mt, err := message.ToMediaType(s)
	if err != nil {
		return 0, fmt.Errorf("unsupported content format string: %v", s)
	}
	return mt, nil
}

func parseContentFormats(values []string) ([]message.MediaType, error) {
	r := make([]message.MediaType, 0, len(values))
	for _, v := range values {
		mt, err := parseContentFormat(v)
		if err != nil {
			return nil, err
		}
		r = append(r, mt)
	}
	return r, nil
}
