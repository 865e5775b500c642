package cmd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseTarget(t *testing.T) {
	tgt, err := parseTarget("coap://192.168.0.51/version")
	require.NoError(t, err)
	require.Equal(t, "192.168.0.51:5683", tgt.hostport)
	require.Equal(t, "/version", tgt.path)
	require.Empty(t, tgt.queries)

	tgt, err = parseTarget("coap://host:15683/oic/res?rt=oic.wk.d&if=oic.if.ll")
	require.NoError(t, err)
	require.Equal(t, "host:15683", tgt.hostport)
	require.Equal(t, "/oic/res", tgt.path)
	require.Equal(t, []string{"rt=oic.wk.d", "if=oic.if.ll"}, tgt.queries)

	tgt, err = parseTarget("coap://[fe80::1]/a")
	require.NoError(t, err)
	require.Equal(t, "[fe80::1]:5683", tgt.hostport)
}

func TestParseTargetErrors(t *testing.T) {
	_, err := parseTarget("http://host/a")
	require.Error(t, err)

	_, err = parseTarget("coaps://host/a")
	require.Error(t, err)

	_, err = parseTarget("coap:///a")
	require.Error(t, err)
}
