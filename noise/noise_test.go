package noise

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoise_Range(t *testing.T) {
	for i := 0; i < 5000; i++ {
		x := float64(i)*0.173 - 300
		y := float64(i%97) * 0.41
		z := float64(i%13) * 1.7
		v := Noise(x, y, z)
		require.GreaterOrEqual(t, v, -1.0)
		require.LessOrEqual(t, v, 1.0)
	}
}

func TestNoise_Deterministic(t *testing.T) {
	a := NewField(42)
	b := NewField(42)
	for i := 0; i < 200; i++ {
		x := float64(i) * 0.37
		assert.Equal(t, a.Noise(x, 1.5, 0), b.Noise(x, 1.5, 0))
	}
	assert.Equal(t, Noise(3.3, 0, 0), Noise(3.3, 0, 0))
}

func TestNoise_SeedChangesField(t *testing.T) {
	a := NewField(1)
	b := NewField(2)
	differs := false
	for i := 0; i < 50; i++ {
		x := float64(i) + 0.5
		if a.Noise(x, 0.5, 0.5) != b.Noise(x, 0.5, 0.5) {
			differs = true
			break
		}
	}
	assert.True(t, differs)
}

func TestNoise_Continuous(t *testing.T) {
	// Quintic fade keeps the gradient bounded; small steps give small changes
	const step = 1e-4
	for i := 0; i < 1000; i++ {
		x := float64(i) * 0.0713
		d := math.Abs(Noise(x+step, 0.25, 0) - Noise(x, 0.25, 0))
		require.Less(t, d, 0.01, "jump at x=%f", x)
	}
}

func TestNoise_LatticeContinuity(t *testing.T) {
	// Crossing an integer boundary must not jump
	for _, x := range []float64{1, 2, 17, 255, 256, -3} {
		left := Noise(x-1e-9, 0.3, 0.7)
		right := Noise(x+1e-9, 0.3, 0.7)
		assert.InDelta(t, left, right, 1e-6, "boundary x=%f", x)
	}
}

func TestOctave(t *testing.T) {
	t.Run("zero octaves", func(t *testing.T) {
		assert.Equal(t, 0.0, Octave(1, 2, 0, 0.5, 7))
	})

	t.Run("single octave matches base noise", func(t *testing.T) {
		assert.InDelta(t, Noise(1.25, 2.5, 0), Octave(1.25, 2.5, 1, 0.5, 0), 1e-12)
	})

	t.Run("normalized range", func(t *testing.T) {
		for i := 0; i < 1000; i++ {
			v := Octave(float64(i)*0.31, float64(i)*0.07, 5, 0.5, 99)
			require.GreaterOrEqual(t, v, -1.0)
			require.LessOrEqual(t, v, 1.0)
		}
	})

	t.Run("negative persistence stays normalized", func(t *testing.T) {
		for i := 0; i < 200; i++ {
			v := Octave(float64(i)*0.31, 0.5, 4, -0.8, 3)
			require.LessOrEqual(t, math.Abs(v), 1.0)
		}
	})

	t.Run("seed shifts domain", func(t *testing.T) {
		assert.NotEqual(t, Octave(0.5, 0.5, 3, 0.5, 1), Octave(0.5, 0.5, 3, 0.5, 2))
	})
}
