package lights

import "errors"

var (
	ErrNoShape           = errors.New("lights: area light has no shape attached")
	ErrZeroPhotonDensity = errors.New("lights: photon sample has zero density")
	ErrNotPreprocessed   = errors.New("lights: emitter used before scene preprocessing")
)
