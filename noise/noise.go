// Package noise provides a deterministic, continuous value-noise field used to
// drive procedural decisions. Values lie in [-1, 1].
package noise

import (
	"math"
	"math/rand"
)

// DefaultSeed fixes the permutation table of the package-level field
const DefaultSeed = 0x5eed

const tableSize = 256

// Field is a lattice value-noise field with its own permutation table
// A Field is immutable after construction and safe for concurrent reads
type Field struct {
	perm   [tableSize * 2]uint8
	values [tableSize]float64
}

var defaultField = NewField(DefaultSeed)

// NewField builds a field whose lattice values and permutation derive from seed
func NewField(seed int64) *Field {
	rng := rand.New(rand.NewSource(seed))
	f := &Field{}

	var p [tableSize]uint8
	for i := range p {
		p[i] = uint8(i)
		f.values[i] = rng.Float64()*2 - 1
	}
	rng.Shuffle(tableSize, func(i, j int) { p[i], p[j] = p[j], p[i] })

	for i := 0; i < tableSize*2; i++ {
		f.perm[i] = p[i&(tableSize-1)]
	}
	return f
}

// Noise samples the package-level field
func Noise(x, y, z float64) float64 {
	return defaultField.Noise(x, y, z)
}

// Octave samples the package-level field with fractal summation
func Octave(x, y float64, octaves int, persistence float64, seed int64) float64 {
	return defaultField.Octave(x, y, octaves, persistence, seed)
}

// Noise returns smoothly interpolated lattice noise at (x, y, z)
func (f *Field) Noise(x, y, z float64) float64 {
	x0, y0, z0 := math.Floor(x), math.Floor(y), math.Floor(z)
	tx, ty, tz := fade(x-x0), fade(y-y0), fade(z-z0)

	xi, yi, zi := int(x0)&(tableSize-1), int(y0)&(tableSize-1), int(z0)&(tableSize-1)
	xj, yj, zj := (xi+1)&(tableSize-1), (yi+1)&(tableSize-1), (zi+1)&(tableSize-1)

	c000 := f.lattice(xi, yi, zi)
	c100 := f.lattice(xj, yi, zi)
	c010 := f.lattice(xi, yj, zi)
	c110 := f.lattice(xj, yj, zi)
	c001 := f.lattice(xi, yi, zj)
	c101 := f.lattice(xj, yi, zj)
	c011 := f.lattice(xi, yj, zj)
	c111 := f.lattice(xj, yj, zj)

	x00 := lerp(c000, c100, tx)
	x10 := lerp(c010, c110, tx)
	x01 := lerp(c001, c101, tx)
	x11 := lerp(c011, c111, tx)

	y0v := lerp(x00, x10, ty)
	y1v := lerp(x01, x11, ty)

	return lerp(y0v, y1v, tz)
}

// Octave sums octaves of progressively higher frequency and lower amplitude,
// normalized back into [-1, 1]. seed shifts the sample domain.
func (f *Field) Octave(x, y float64, octaves int, persistence float64, seed int64) float64 {
	if octaves <= 0 {
		return 0
	}

	offset := float64(seed%65536) * 1.37
	var total, maxAmp float64
	freq, amp := 1.0, 1.0
	for i := 0; i < octaves; i++ {
		total += f.Noise(x*freq+offset, y*freq+offset, float64(i)*7.31) * amp
		maxAmp += math.Abs(amp)
		freq *= 2
		amp *= persistence
	}
	if maxAmp == 0 {
		return 0
	}
	return total / maxAmp
}

func (f *Field) lattice(x, y, z int) float64 {
	return f.values[f.perm[int(f.perm[int(f.perm[x])+y])+z]]
}

// fade is the quintic smoothstep 6t^5 - 15t^4 + 10t^3
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Default returns the package-level field built once from DefaultSeed
func Default() *Field {
	return defaultField
}
