package codes

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDotted(t *testing.T) {
	require.Equal(t, "0.01", GET.Dotted())
	require.Equal(t, "2.01", Created.Dotted())
	require.Equal(t, "2.05", Content.Dotted())
	require.Equal(t, "4.04", NotFound.Dotted())
	require.Equal(t, "5.00", InternalServerError.Dotted())
}

func TestIsRequest(t *testing.T) {
	require.True(t, GET.IsRequest())
	require.True(t, DELETE.IsRequest())
	require.False(t, Empty.IsRequest())
	require.False(t, Content.IsRequest())
}

func TestIsResponse(t *testing.T) {
	require.True(t, Content.IsResponse())
	require.True(t, NotFound.IsResponse())
	require.True(t, GatewayTimeout.IsResponse())
	require.False(t, GET.IsResponse())
	require.False(t, Empty.IsResponse())
}

func TestString(t *testing.T) {
	require.Equal(t, "GET", GET.String())
	require.Equal(t, "Content", Content.String())
	require.Equal(t, "Code(47)", Code(47).String())
}
