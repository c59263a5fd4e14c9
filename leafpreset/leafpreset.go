// Package leafpreset holds the read-only catalog of named leaf species
// presets (spec §6): per-species margin, superformula, surface, and
// venation parameters, loaded once from an embedded YAML table.
package leafpreset

import (
	_ "embed"
	"sort"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/midgard-ro/leafshape"
	"github.com/Faultbox/midgard-ro/venation"
)

//go:embed presets.yaml
var presetsYAML []byte

// Preset bundles everything needed to reconstruct a species' leaf
// generator and, optionally, its venation generator.
type Preset struct {
	Name         string
	Superformula leafshape.SuperformulaParams
	Margin       leafshape.MarginParams
	Surface      leafshape.SurfaceParams

	VeinDensity    float64
	EnableVenation bool
}

type rawSuperformula struct {
	M, A, B, N1, N2, N3 float64
	AspectRatio         float64 `yaml:"aspect_ratio"`
}

type rawSurface struct {
	MidribCurvature float64 `yaml:"midrib_curvature"`
	CrossCurvature  float64 `yaml:"cross_curvature"`
	EdgeCurl        float64 `yaml:"edge_curl"`
}

type rawPreset struct {
	Name           string          `yaml:"name"`
	MarginType     string          `yaml:"margin_type"`
	ToothCount     int             `yaml:"tooth_count"`
	ToothDepth     float64         `yaml:"tooth_depth"`
	ToothSharpness float64         `yaml:"tooth_sharpness"`
	Superformula   rawSuperformula `yaml:"superformula"`
	Surface        rawSurface      `yaml:"surface"`
	VeinDensity    float64         `yaml:"vein_density"`
	EnableVenation bool            `yaml:"enable_venation"`
}

type rawCatalog struct {
	Presets []rawPreset `yaml:"presets"`
}

var marginTypes = map[string]leafshape.MarginType{
	"Entire":  leafshape.Entire,
	"Serrate": leafshape.Serrate,
	"Dentate": leafshape.Dentate,
	"Crenate": leafshape.Crenate,
	"Lobed":   leafshape.Lobed,
}

var registry = mustLoadRegistry()

func mustLoadRegistry() map[string]Preset {
	reg, err := loadRegistry(presetsYAML)
	if err != nil {
		panic(errors.Wrap(err, "leafpreset: decoding embedded preset catalog"))
	}
	return reg
}

func loadRegistry(data []byte) (map[string]Preset, error) {
	var catalog rawCatalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, errors.Wrap(err, "unmarshal preset catalog")
	}

	reg := make(map[string]Preset, len(catalog.Presets))
	for _, rp := range catalog.Presets {
		marginType, ok := marginTypes[rp.MarginType]
		if !ok {
			return nil, errors.Errorf("preset %q: unknown margin_type %q", rp.Name, rp.MarginType)
		}
		reg[rp.Name] = Preset{
			Name: rp.Name,
			Superformula: leafshape.SuperformulaParams{
				M: rp.Superformula.M, A: rp.Superformula.A, B: rp.Superformula.B,
				N1: rp.Superformula.N1, N2: rp.Superformula.N2, N3: rp.Superformula.N3,
				AspectRatio: rp.Superformula.AspectRatio,
			},
			Margin: leafshape.MarginParams{
				Type: marginType, ToothCount: rp.ToothCount,
				ToothDepth: rp.ToothDepth, ToothSharpness: rp.ToothSharpness,
			},
			Surface: leafshape.SurfaceParams{
				MidribCurvature: rp.Surface.MidribCurvature,
				CrossCurvature:  rp.Surface.CrossCurvature,
				EdgeCurl:        rp.Surface.EdgeCurl,
			},
			VeinDensity:    rp.VeinDensity,
			EnableVenation: rp.EnableVenation,
		}
	}
	return reg, nil
}

// Get returns the named preset and true, or a zero Preset and false if no
// preset by that name is registered.
func Get(name string) (Preset, bool) {
	p, ok := registry[name]
	return p, ok
}

// Names returns every registered preset name, sorted for determinism.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// VenationGenerator builds a venation.Generator from the preset's vein
// density, with the remaining growth parameters supplied by the caller
// (they are not species-specific in the catalog). It returns nil if the
// preset disables venation.
func (p Preset) VenationGenerator(seed int64, killDistance, attractionDistance, growthStepSize float64, maxIterations int, typ venation.VenationType) *venation.Generator {
	if !p.EnableVenation {
		return nil
	}
	return &venation.Generator{
		Type:               typ,
		VeinDensity:        p.VeinDensity,
		KillDistance:       killDistance,
		AttractionDistance: attractionDistance,
		GrowthStepSize:     growthStepSize,
		MaxIterations:      maxIterations,
		Seed:               seed,
	}
}
