// SPDX-License-Identifier: MIT
package signals

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComplexArithmetic(t *testing.T) {
	a := Complex{Re: 1, Im: 2}
	b := Complex{Re: 3, Im: 4}

	assert.Equal(t, Complex{Re: 4, Im: 6}, Add(a, b))
	assert.Equal(t, Complex{Re: -2, Im: -2}, Sub(a, b))
	assert.Equal(t, Complex{Re: -5, Im: 10}, Mul(a, b))
	assert.Equal(t, float32(5), Magnitude(b))
	assert.Equal(t, float32(0), Magnitude(Complex{}))
}

func TestMulCommutative(t *testing.T) {
	values := []Complex{
		{0, 0},
		{1, 0},
		{0, 1},
		{-1.5, 2.25},
		{0.1, -0.7},
		{1e-3, 3e4},
		{-123.456, 0.001},
	}

	for _, a := range values {
		for _, b := range values {
			if Mul(a, b) != Mul(b, a) {
				t.Errorf("Mul(%v, %v) = %v, Mul(%v, %v) = %v", a, b, Mul(a, b), b, a, Mul(b, a))
			}
		}
	}
}

func TestMulByIUnit(t *testing.T) {
	i := Complex{Im: 1}
	assert.Equal(t, Complex{Re: -1}, Mul(i, i))
}

func TestPolar(t *testing.T) {
	tests := []struct {
		name  string
		r     float32
		theta float32
		want  Complex
	}{
		{"zero angle", 1, 0, Complex{Re: 1}},
		{"quarter turn", 2, Pi / 2, Complex{Re: 0, Im: 2}},
		{"half turn", 1, Pi, Complex{Re: -1, Im: 0}},
		{"negative quarter", 1, -Pi / 2, Complex{Re: 0, Im: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Polar(tt.r, tt.theta)
			assert.InDelta(t, tt.want.Re, got.Re, 1e-6)
			assert.InDelta(t, tt.want.Im, got.Im, 1e-6)
		})
	}
}
