package quantum

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-10

// mul2 multiplies two 2×2 matrices.
func mul2(a, b Matrix2) Matrix2 {
	var out Matrix2
	for i := range 2 {
		for j := range 2 {
			out[i][j] = a[i][0]*b[0][j] + a[i][1]*b[1][j]
		}
	}
	return out
}

// dagger2 returns the conjugate transpose.
func dagger2(m Matrix2) Matrix2 {
	var out Matrix2
	for i := range 2 {
		for j := range 2 {
			c := m[j][i]
			out[i][j] = complex(real(c), -imag(c))
		}
	}
	return out
}

func assertIdentity2(t *testing.T, m Matrix2) {
	t.Helper()
	assert.True(t, ApproxEq(m[0][0], 1, eps), "m[0][0] = %v", m[0][0])
	assert.True(t, ApproxZero(m[0][1], eps), "m[0][1] = %v", m[0][1])
	assert.True(t, ApproxZero(m[1][0], eps), "m[1][0] = %v", m[1][0])
	assert.True(t, ApproxEq(m[1][1], 1, eps), "m[1][1] = %v", m[1][1])
}

func TestCatalogMatricesUnitary(t *testing.T) {
	angles := []float64{0, math.Pi / 7, math.Pi / 2, math.Pi, 2 * math.Pi, -1.234}
	for _, kind := range SingleQubitKinds() {
		thetas := []float64{0}
		if kind.Parameterized() {
			thetas = angles
		}
		for _, theta := range thetas {
			g := Gate{Kind: kind, Theta: theta}
			m, ok := g.Matrix()
			require.True(t, ok, "kind %s has no matrix", kind)
			assertIdentity2(t, mul2(dagger2(m), m))
		}
	}
}

func TestRotationZeroAngleIsIdentity(t *testing.T) {
	for _, kind := range []Kind{KindRX, KindRY, KindRZ, KindP} {
		m, ok := Gate{Kind: kind, Theta: 0}.Matrix()
		require.True(t, ok)
		assertIdentity2(t, m)
	}
}

func TestRZPeriodicity(t *testing.T) {
	// Rz(θ+2π) = -Rz(θ): identical up to global phase.
	theta := math.Pi / 5
	a, _ := Gate{Kind: KindRZ, Theta: theta}.Matrix()
	b, _ := Gate{Kind: KindRZ, Theta: theta + 2*math.Pi}.Matrix()
	for i := range 2 {
		for j := range 2 {
			assert.True(t, ApproxEq(b[i][j], -a[i][j], eps),
				"entry (%d,%d): got %v, want %v", i, j, b[i][j], -a[i][j])
		}
	}
}

func TestHadamardInvolution(t *testing.T) {
	h, _ := Gate{Kind: KindH}.Matrix()
	assertIdentity2(t, mul2(h, h))
}

func TestSIsSqrtZ(t *testing.T) {
	s, _ := Gate{Kind: KindS}.Matrix()
	z, _ := Gate{Kind: KindZ}.Matrix()
	ss := mul2(s, s)
	for i := range 2 {
		for j := range 2 {
			assert.True(t, ApproxEq(ss[i][j], z[i][j], eps))
		}
	}
}

func TestTIsSqrtS(t *testing.T) {
	tt, _ := Gate{Kind: KindT}.Matrix()
	s, _ := Gate{Kind: KindS}.Matrix()
	t2 := mul2(tt, tt)
	for i := range 2 {
		for j := range 2 {
			assert.True(t, ApproxEq(t2[i][j], s[i][j], eps))
		}
	}
}

func TestDaggerPairsCancel(t *testing.T) {
	pairs := [][2]Kind{{KindS, KindSdg}, {KindT, KindTdg}}
	for _, pair := range pairs {
		a, _ := Gate{Kind: pair[0]}.Matrix()
		b, _ := Gate{Kind: pair[1]}.Matrix()
		assertIdentity2(t, mul2(a, b))
	}
}

func TestKindArity(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{KindH, 1},
		{KindRZ, 1},
		{KindCX, 2},
		{KindSwap, 2},
		{KindCCX, 3},
		{KindCSwap, 3},
		{KindMeasure, 0},
		{Kind("BOGUS"), -1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.kind.Arity(), "kind %s", tt.kind)
	}
}

func TestBitIndexedKindsHaveNoMatrix(t *testing.T) {
	for _, kind := range []Kind{KindSwap, KindCCX, KindCSwap, KindMeasure} {
		_, ok := Gate{Kind: kind}.Matrix()
		assert.False(t, ok, "kind %s should have no 2x2 matrix", kind)
	}
}
