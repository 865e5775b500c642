package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"reflect"

	"github.com/fxamacker/cbor/v2"

	"github.com/doxxx/coap-cli/message"
)

// printResponse writes the response code to stderr and the payload to
// stdout. With decode set, an application/cbor payload is transcoded to
// JSON for readability.
func printResponse(resp *message.Message, decode bool) error {
	fmt.Fprintln(os.Stderr, resp.Code.Dotted())

	payload := resp.Payload
	if decode {
		if cf, err := resp.Options.ContentFormat(); err == nil && cf == message.AppCBOR {
			transcoded, err := cborToJSON(payload)
			if err != nil {
				return fmt.Errorf("cannot decode cbor payload: %w", err)
			}
			payload = transcoded
		}
	}
	fmt.Println(string(payload))
	return nil
}

var cborDecMode = func() cbor.DecMode {
	dm, err := cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]interface{}(nil)),
	}.DecMode()
	if err != nil {
		panic(err)
	}
	return dm
}()

func cborToJSON(payload []byte) ([]byte, error) {
	var v interface{}
	if err := cborDecMode.Unmarshal(payload, &v); err != nil {
		return nil, err
	}
	return json.Marshal(v)
}
