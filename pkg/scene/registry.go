package scene

import (
	"fmt"
	"sort"

	"github.com/df07/go-lighttransport/pkg/core"
)

// Definition describes a built-in scene and the probe ray the CLI estimates along
type Definition struct {
	Name        string
	Description string
	Build       func() (*Scene, error)
	Probe       core.Ray
}

var registry = map[string]Definition{
	"cornell": {
		Name:        "cornell",
		Description: "Cornell box with a mirror sphere, a glass sphere and a ceiling light",
		Build:       NewCornellScene,
		Probe:       core.NewRay(core.NewVec3(278, 278, -800), core.NewVec3(0, -278, 1078)),
	},
	"fog": {
		Name:        "fog",
		Description: "Cornell box filled with a homogeneous medium",
		Build:       NewFogScene,
		Probe:       core.NewRay(core.NewVec3(278, 278, -800), core.NewVec3(0, -278, 1078)),
	},
	"furnace": {
		Name:        "furnace",
		Description: "Diffuse sphere (albedo 0.5) under a uniform white environment",
		Build:       NewFurnaceScene,
		Probe:       core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1)),
	},
	"emitter": {
		Name:        "emitter",
		Description: "A single emissive quad and no other geometry",
		Build:       NewEmitterScene,
		Probe:       core.NewRay(core.NewVec3(0, 0, 3), core.NewVec3(0, 0, -1)),
	},
	"patch": {
		Name:        "patch",
		Description: "Diffuse floor under a small bright quad light",
		Build:       NewPatchScene,
		Probe:       core.NewRay(core.NewVec3(0.5, 0.5, 0), core.NewVec3(0, -1, 0)),
	},
	"glossy": {
		Name:        "glossy",
		Description: "Microfacet floor and glass sphere under a point light and a quad light",
		Build:       NewGlossyScene,
		Probe:       core.NewRay(core.NewVec3(0, 2, 4), core.NewVec3(0.3, -2, -3)),
	},
}

// Lookup returns the built-in scene registered under name
func Lookup(name string) (Definition, error) {
	def, ok := registry[name]
	if !ok {
		return Definition{}, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	return def, nil
}

// Definitions returns every built-in scene sorted by name
func Definitions() []Definition {
	defs := make([]Definition, 0, len(registry))
	for _, def := range registry {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool {
		return defs[i].Name < defs[j].Name
	})
	return defs
}
