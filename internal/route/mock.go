package route

import (
	"math/rand/v2"
	"sync"
)

// minutesPerMile converts mock distance to duration, assuming a 50 mph
// average speed (60 min / 50 mi = 1.2 min per mile).
const minutesPerMile = 1.2

// MockSource generates plausible leg estimates and coordinates when the real
// maps API is disabled or unreachable. The random source is injected so runs
// are reproducible: seed it in tests, seed it from the clock in production.
//
// Safe for concurrent use — rand/v2 sources are not, so draws are serialized
// behind a mutex.
type MockSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewMockSource builds a MockSource around the given random source.
func NewMockSource(rng *rand.Rand) *MockSource {
	return &MockSource{rng: rng}
}

// NewSeededMockSource builds a MockSource with a PCG source seeded by seed.
// Convenience for wiring and tests.
func NewSeededMockSource(seed uint64) *MockSource {
	return NewMockSource(rand.New(rand.NewPCG(seed, seed)))
}

// Leg draws a mock leg: distance uniform within r, duration derived at
// 50 mph average speed.
func (m *MockSource) Leg(r Range) Leg {
	m.mu.Lock()
	defer m.mu.Unlock()

	miles := r.MinMiles + m.rng.Float64()*(r.MaxMiles-r.MinMiles)
	return Leg{
		DistanceMiles:   miles,
		DurationMinutes: miles * minutesPerMile,
	}
}

// Coordinates draws a mock geocoding result inside the continental US
// bounding box: latitude in [30, 45], longitude in [-120, -70].
func (m *MockSource) Coordinates() (lat, lon float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	lat = 30 + m.rng.Float64()*15
	lon = -120 + m.rng.Float64()*50
	return lat, lon
}
