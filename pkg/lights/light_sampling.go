package lights

// UniformLightSampler picks each emitter with equal probability
type UniformLightSampler struct {
	emitters []Emitter
}

// NewUniformLightSampler creates a sampler over the given emitters
func NewUniformLightSampler(emitters []Emitter) *UniformLightSampler {
	return &UniformLightSampler{emitters: emitters}
}

// Pick maps u ∈ [0,1) to an emitter. Returns nil when there are no emitters.
func (s *UniformLightSampler) Pick(u float64) Emitter {
	n := len(s.emitters)
	if n == 0 {
		return nil
	}
	index := int(u * float64(n))
	if index >= n {
		index = n - 1
	}
	if index < 0 {
		index = 0
	}
	return s.emitters[index]
}

// Count returns the number of lights in this sampler
func (s *UniformLightSampler) Count() int {
	return len(s.emitters)
}
