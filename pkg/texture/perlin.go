package texture

import (
	"math"
	"math/rand"

	"github.com/irradiance/pathtracer/pkg/core"
)

// perlinTableSize is the permutation table length; must be a power of two so
// lattice coordinates can be hashed with a bitmask instead of a modulo.
const perlinTableSize = 256

// Perlin is a procedural turbulence texture: it ignores (u,v) and computes a
// hashed-lattice noise octave sum at the given world position, then bands the
// result through a sine to produce a marbled/veined pattern. The permutation
// tables are generated once at construction and are immutable thereafter.
type Perlin struct {
	randomValues [perlinTableSize]float64
	permX        [perlinTableSize]int
	permY        [perlinTableSize]int
	permZ        [perlinTableSize]int

	Frequency float64
	Amplitude float64
	Octaves   int
	Color     core.Vec3
}

// NewPerlin builds a Perlin texture seeded from seed, with the given banding
// frequency/amplitude and octave count (spec suggests ~5 octaves).
func NewPerlin(seed int64, frequency, amplitude float64, octaves int, color core.Vec3) *Perlin {
	random := rand.New(rand.NewSource(seed))
	p := &Perlin{Frequency: frequency, Amplitude: amplitude, Octaves: octaves, Color: color}

	for i := range p.randomValues {
		p.randomValues[i] = random.Float64()
	}
	p.permX = generatePermutation(random)
	p.permY = generatePermutation(random)
	p.permZ = generatePermutation(random)

	return p
}

func generatePermutation(random *rand.Rand) [perlinTableSize]int {
	var perm [perlinTableSize]int
	for i := range perm {
		perm[i] = i
	}
	for i := len(perm) - 1; i > 0; i-- {
		j := random.Intn(i + 1)
		perm[i], perm[j] = perm[j], perm[i]
	}
	return perm
}

// noise returns the hashed-lattice value at p, folding the lattice indices
// down to the table size with a bitmask (table size is a power of two).
func (p *Perlin) noise(point core.Vec3) float64 {
	i := int(math.Floor(point.X)) & (perlinTableSize - 1)
	j := int(math.Floor(point.Y)) & (perlinTableSize - 1)
	k := int(math.Floor(point.Z)) & (perlinTableSize - 1)
	index := p.permX[i] ^ p.permY[j] ^ p.permZ[k]
	return p.randomValues[index]
}

// turbulence sums noise(2^i * p) octaves with weight 2^-i.
func (p *Perlin) turbulence(point core.Vec3) float64 {
	sum := 0.0
	weight := 1.0
	sample := point
	for i := 0; i < p.Octaves; i++ {
		sum += weight * p.noise(sample)
		weight *= 0.5
		sample = sample.Multiply(2)
	}
	return sum
}

// Sample ignores uv and computes sin(frequency + amplitude*turbulence(worldPos)),
// modulated into [0,1] and multiplied against the base Color to produce banding.
func (p *Perlin) Sample(_ core.Vec2, worldPos core.Vec3) core.Vec3 {
	band := 0.5 * (1 + math.Sin(p.Frequency+p.Amplitude*p.turbulence(worldPos)))
	return p.Color.Multiply(band)
}
