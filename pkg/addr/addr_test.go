package addr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveDeterministic(t *testing.T) {
	a1, b1 := Derive("restaurant", []byte("owner-key"))
	a2, b2 := Derive("restaurant", []byte("owner-key"))

	assert.Equal(t, a1, a2)
	assert.Equal(t, b1, b2)
	assert.Len(t, string(a1), 64)
}

func TestDeriveDistinctInputs(t *testing.T) {
	tests := []struct {
		name  string
		tagA  string
		argsA [][]byte
		tagB  string
		argsB [][]byte
	}{
		{
			name: "different tags, same parts",
			tagA: "inventory", argsA: [][]byte{[]byte("r1"), U64(123)},
			tagB: "menu_item", argsB: [][]byte{[]byte("r1"), U64(123)},
		},
		{
			name: "same tag, different discriminator",
			tagA: "order", argsA: [][]byte{[]byte("r1"), U64(1)},
			tagB: "order", argsB: [][]byte{[]byte("r1"), U64(2)},
		},
		{
			name: "part boundaries are unambiguous",
			tagA: "employee", argsA: [][]byte{[]byte("ab"), []byte("c")},
			tagB: "employee", argsB: [][]byte{[]byte("a"), []byte("bc")},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a, _ := Derive(tc.tagA, tc.argsA...)
			b, _ := Derive(tc.tagB, tc.argsB...)
			assert.NotEqual(t, a, b)
		})
	}
}

func TestDeriveBumpValid(t *testing.T) {
	_, bump := Derive("protocol")
	require.LessOrEqual(t, bump, uint8(MaxBump))
}

func TestU64LittleEndian(t *testing.T) {
	b := U64(1)
	require.Len(t, b, 8)
	assert.Equal(t, byte(1), b[0])
	assert.Equal(t, byte(0), b[7])
}
