// SPDX-License-Identifier: MIT
package signals

import "math"

// Pi is the single-precision constant every phase computation uses.
const Pi float32 = 3.14159265

// Complex is an immutable (real, imaginary) pair in single precision.
type Complex struct {
	Re float32
	Im float32
}

// Add returns a + b.
func Add(a, b Complex) Complex {
	return Complex{Re: a.Re + b.Re, Im: a.Im + b.Im}
}

// Sub returns a - b.
func Sub(a, b Complex) Complex {
	return Complex{Re: a.Re - b.Re, Im: a.Im - b.Im}
}

// Mul returns a * b as (ar*br - ai*bi) + (ar*bi + ai*br)i.
//
// Each product is rounded to float32 before the sum so the compiler cannot
// fuse it into an FMA; results are identical on every architecture.
func Mul(a, b Complex) Complex {
	return Complex{
		Re: float32(a.Re*b.Re) - float32(a.Im*b.Im),
		Im: float32(a.Re*b.Im) + float32(a.Im*b.Re),
	}
}

// Magnitude returns sqrt(re^2 + im^2).
func Magnitude(a Complex) float32 {
	sq := float32(a.Re*a.Re) + float32(a.Im*a.Im)
	return float32(math.Sqrt(float64(sq)))
}

// Polar returns the complex number with magnitude r and angle theta.
func Polar(r, theta float32) Complex {
	s, c := math.Sincos(float64(theta))
	return Complex{Re: r * float32(c), Im: r * float32(s)}
}

func sinf(x float32) float32 { return float32(math.Sin(float64(x))) }

func cosf(x float32) float32 { return float32(math.Cos(float64(x))) }

func absf(x float32) float32 { return float32(math.Abs(float64(x))) }
