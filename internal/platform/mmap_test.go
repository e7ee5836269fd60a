package platform

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMapPages(t *testing.T) {
	requireSupported(t)

	b, errno := MapPages(8 * 1024)
	require.Zero(t, errno)
	require.Equal(t, 8*1024, len(b))
	require.Equal(t, make([]byte, len(b)), b, "pages are zero-filled")

	// Writable.
	copy(b, "buffer")
	require.Equal(t, "buffer", string(b[:6]))

	require.Zero(t, UnmapPages(b))
}

func TestMapPages_Zero(t *testing.T) {
	requireSupported(t)

	_, errno := MapPages(0)
	require.NotZero(t, errno)
}
