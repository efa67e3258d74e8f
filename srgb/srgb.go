/*
Package srgb converts between 8-bit gamma-encoded (sRGB) color channels
and linear light intensities.

Tinting a pixel means multiplying intensities, which is only correct in
linear light; multiplying the raw gamma-encoded bytes visibly darkens
the midtones. The conversions here are exact enough that a full round
trip From(Linear(x)) returns x for every 8-bit input.
*/
package srgb

import "math"

var linearTable = makeLinearTable()

func makeLinearTable() *[256]float32 {
	t := new([256]float32)
	for i := range t {
		v := float64(i) / 255
		if v <= 0.04045 {
			v /= 12.92
		} else {
			v = math.Pow((v+0.055)/1.055, 2.4)
		}
		t[i] = float32(v)
	}
	return t
}

// Linear converts an 8-bit sRGB channel to a linear intensity in [0, 1].
func Linear(x uint8) float32 {
	return linearTable[x]
}

// From converts a linear intensity to an 8-bit sRGB channel, clamping to
// [0, 1] and rounding to the nearest representable value.
func From(l float32) uint8 {
	v := float64(l)
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	if v <= 0.0031308 {
		v *= 12.92
	} else {
		v = 1.055*math.Pow(v, 1/2.4) - 0.055
	}
	return uint8(math.Round(v * 255))
}

var multiplyTable = makeMultiplyTable()

func makeMultiplyTable() *[256 * 256]uint8 {
	t := new([256 * 256]uint8)
	for a := 0; a < 256; a++ {
		for b := a; b < 256; b++ {
			m := From(Linear(uint8(a)) * Linear(uint8(b)))
			t[a<<8|b] = m
			t[b<<8|a] = m
		}
	}
	return t
}

// Multiply returns the 8-bit sRGB channel whose intensity is the product
// of the intensities of a and b.
func Multiply(a, b uint8) uint8 {
	return multiplyTable[int(a)<<8|int(b)]
}
