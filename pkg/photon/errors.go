package photon

import "errors"

var (
	// ErrIndexNotBuilt is returned when the index is queried before Build
	ErrIndexNotBuilt = errors.New("photon: index not built")
	// ErrIndexBuilt is returned when photons are inserted or the index rebuilt after Build
	ErrIndexBuilt = errors.New("photon: index already built")
)
