package core

import (
	"math/rand"
)

// RandomVec3 returns a vector with each component uniform in [0, 1)
func RandomVec3(random *rand.Rand) Vec3 {
	return NewVec3(random.Float32(), random.Float32(), random.Float32())
}

// RandomVec3InRange returns a vector with each component uniform in [lo, hi)
func RandomVec3InRange(random *rand.Rand, lo, hi float32) Vec3 {
	span := hi - lo
	return NewVec3(
		lo+span*random.Float32(),
		lo+span*random.Float32(),
		lo+span*random.Float32(),
	)
}

// RandomInUnitSphere generates a random point strictly inside the unit sphere
// by rejection sampling the [-1,1]³ cube
func RandomInUnitSphere(random *rand.Rand) Vec3 {
	for {
		p := RandomVec3InRange(random, -1, 1)
		if p.LengthSquared() < 1 {
			return p
		}
	}
}

// RandomUnitVector returns a random direction on the unit sphere
func RandomUnitVector(random *rand.Rand) Vec3 {
	for {
		p := RandomInUnitSphere(random)
		// A point this close to the origin has no usable direction
		if p.LengthSquared() > 1e-12 {
			return p.Normalize()
		}
	}
}
