package srgb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundTrip(t *testing.T) {
	for i := 0; i < 256; i++ {
		x := uint8(i)
		assert.Equal(t, x, From(Linear(x)), "channel %d", i)
	}
}

func TestEndpoints(t *testing.T) {
	assert.Equal(t, float32(0), Linear(0))
	assert.Equal(t, float32(1), Linear(255))
	assert.Equal(t, uint8(0), From(0))
	assert.Equal(t, uint8(255), From(1))
}

func TestFromClamps(t *testing.T) {
	assert.Equal(t, uint8(0), From(-0.5))
	assert.Equal(t, uint8(255), From(1.5))
}

func TestLinearMonotonic(t *testing.T) {
	for i := 1; i < 256; i++ {
		assert.Greater(t, Linear(uint8(i)), Linear(uint8(i-1)), "channel %d", i)
	}
}

func TestFromMonotonic(t *testing.T) {
	prev := uint8(0)
	for i := 0; i <= 1024; i++ {
		v := From(float32(i) / 1024)
		assert.GreaterOrEqual(t, v, prev, "step %d", i)
		prev = v
	}
}

func TestMultiplyIdentity(t *testing.T) {
	for i := 0; i < 256; i++ {
		x := uint8(i)
		assert.Equal(t, x, Multiply(x, 255), "channel %d", i)
	}
}

func TestMultiplyZero(t *testing.T) {
	for i := 0; i < 256; i++ {
		x := uint8(i)
		assert.Equal(t, uint8(0), Multiply(x, 0), "channel %d", i)
	}
}

func TestMultiplyCommutes(t *testing.T) {
	cases := [][2]uint8{{1, 254}, {13, 37}, {64, 192}, {100, 200}, {128, 128}}
	for _, c := range cases {
		assert.Equal(t, Multiply(c[0], c[1]), Multiply(c[1], c[0]))
	}
}

func TestMultiplyMatchesConversions(t *testing.T) {
	assert.Equal(t, From(Linear(128)*Linear(128)), Multiply(128, 128))
	assert.Equal(t, From(Linear(37)*Linear(200)), Multiply(37, 200))
}
