package quantum

import (
	"math"
	"math/cmplx"
)

// Complex is the amplitude type used throughout the engine.
type Complex = complex128

// InvSqrt2 is 1/√2, the amplitude magnitude of an equal two-way superposition.
const InvSqrt2 = 1.0 / math.Sqrt2

// MagSqr returns |c|², the measurement probability carried by amplitude c.
func MagSqr(c Complex) float64 {
	return real(c)*real(c) + imag(c)*imag(c)
}

// Polar returns the complex number r·e^(iθ).
func Polar(r, theta float64) Complex {
	return complex(r*math.Cos(theta), r*math.Sin(theta))
}

// ApproxEq reports whether a and b differ by less than eps in magnitude.
func ApproxEq(a, b Complex, eps float64) bool {
	return cmplx.Abs(a-b) < eps
}

// ApproxZero reports whether c is within eps of zero.
func ApproxZero(c Complex, eps float64) bool {
	return cmplx.Abs(c) < eps
}
