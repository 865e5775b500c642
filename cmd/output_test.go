package cmd

import (
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/require"
)

func TestCborToJSON(t *testing.T) {
	encoded, err := cbor.Marshal(map[string]interface{}{
		"version": "1.2.3.4",
		"n":       uint64(3),
	})
	require.NoError(t, err)

	decoded, err := cborToJSON(encoded)
	require.NoError(t, err)
	require.JSONEq(t, `{"version":"1.2.3.4","n":3}`, string(decoded))
}

func TestCborToJSONInvalid(t *testing.T) {
	_, err := cborToJSON([]byte{0xff})
	require.Error(t, err)
}
