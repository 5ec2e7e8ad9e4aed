package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOriginFromFlags(t *testing.T) {
	tests := []struct {
		name  string
		flags uint
		x, y  float64
	}{
		{"center", FlagCenter, 0, 0},
		{"none", 0, 0, 0},
		{"left", FlagLeft, -1, 0},
		{"right", FlagRight, 1, 0},
		{"top", FlagTop, 0, 1},
		{"bottom", FlagBottom, 0, -1},
		{"left bottom", FlagLeft | FlagBottom, -1, -1},
		{"right top", FlagRight | FlagTop, 1, 1},
		{"left wins over right", FlagLeft | FlagRight, -1, 0},
		{"bottom wins over top", FlagTop | FlagBottom, 0, -1},
		{"center with left", FlagCenter | FlagLeft, -1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := OriginFromFlags(tt.flags)
			assert.Equal(t, tt.x, o.X())
			assert.Equal(t, tt.y, o.Y())
		})
	}
}

func TestOriginFlagsRoundTrip(t *testing.T) {
	for _, o := range []Origin{{}, {H: Left}, {V: Top}, {H: Right, V: Bottom}} {
		assert.Equal(t, o, OriginFromFlags(o.Flags()), o.String())
	}
	assert.Equal(t, FlagCenter, Origin{}.Flags())
}

func TestParseOrigin(t *testing.T) {
	o, err := ParseOrigin("left|bottom")
	require.NoError(t, err)
	assert.Equal(t, Origin{H: Left, V: Bottom}, o)
	assert.Equal(t, "left|bottom", o.String())

	o, err = ParseOrigin("Top, RIGHT")
	require.NoError(t, err)
	assert.Equal(t, Origin{H: Right, V: Top}, o)

	o, err = ParseOrigin("center")
	require.NoError(t, err)
	assert.Equal(t, Origin{}, o)
	assert.Equal(t, "center", o.String())

	_, err = ParseOrigin("middle")
	assert.Error(t, err)
	_, err = ParseOrigin("")
	assert.Error(t, err)
}
