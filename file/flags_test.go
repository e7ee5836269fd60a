package file

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tetratelabs/rtio/internal/platform"
)

func TestFlags_Native(t *testing.T) {
	tests := []struct {
		name     string
		flags    Flags
		expected int
	}{
		{name: "empty", flags: NewFlags(), expected: 0},
		{name: "ReadOnly", flags: NewFlags().ReadOnly(), expected: platform.O_RDONLY},
		{name: "WriteOnly", flags: NewFlags().WriteOnly(), expected: platform.O_WRONLY},
		{name: "ReadWrite", flags: NewFlags().ReadWrite(), expected: platform.O_RDWR},
		{name: "Create", flags: NewFlags().Create(), expected: platform.O_CREAT},
		{name: "Exclusive", flags: NewFlags().Exclusive(), expected: platform.O_EXCL},
		{name: "Append", flags: NewFlags().Append(), expected: platform.O_APPEND},
		{name: "Truncate", flags: NewFlags().Truncate(), expected: platform.O_TRUNC},
		{
			name:     "all portable",
			flags:    NewFlags().ReadWrite().Create().Exclusive().Append().Truncate(),
			expected: platform.O_RDWR | platform.O_CREAT | platform.O_EXCL | platform.O_APPEND | platform.O_TRUNC,
		},
		{name: "FlagsFrom", flags: FlagsFrom(platform.O_WRONLY).Create(), expected: platform.O_WRONLY | platform.O_CREAT},
	}

	for _, tt := range tests {
		tc := tt
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, tc.flags.Native())
		})
	}
}

func TestFlags_OrderIndependent(t *testing.T) {
	a := NewFlags().WriteOnly().Create().Truncate()
	b := NewFlags().Truncate().Create().WriteOnly()
	require.Equal(t, a, b)

	// Setting a flag twice is the same as once.
	require.Equal(t, a, a.Create().Truncate())
}

func TestFlags_ValueSemantics(t *testing.T) {
	base := NewFlags().ReadOnly()
	_ = base.Create()
	require.Equal(t, platform.O_RDONLY, base.Native(), "methods return a copy")
}

func TestFlags_String(t *testing.T) {
	tests := []struct {
		flags    Flags
		expected string
	}{
		{flags: NewFlags(), expected: "O_RDONLY"},
		{flags: NewFlags().ReadWrite(), expected: "O_RDWR"},
		{flags: NewFlags().WriteOnly().Create().Truncate(), expected: "O_WRONLY|O_CREAT|O_TRUNC"},
		{flags: NewFlags().WriteOnly().Create().Exclusive(), expected: "O_WRONLY|O_CREAT|O_EXCL"},
		{flags: NewFlags().Append(), expected: "O_RDONLY|O_APPEND"},
		{flags: FlagsFrom(3), expected: "0x3"},
	}

	for _, tt := range tests {
		tc := tt
		t.Run(tc.expected, func(t *testing.T) {
			require.Equal(t, tc.expected, tc.flags.String())
		})
	}
}

func TestOrigin_String(t *testing.T) {
	require.Equal(t, "start", Start.String())
	require.Equal(t, "current", Current.String())
	require.Equal(t, "end", End.String())
	require.Equal(t, "unknown", Origin(42).String())
}
