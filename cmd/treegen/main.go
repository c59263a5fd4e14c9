// treegen drives the tree growth, meshing, leaf, venation, and LOD
// packages end to end: it builds a tree, meshes it, generates a leaf from
// a named preset, grows its venation, reduces it to LOD representations,
// and reports what it built.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-ro/internal/genconfig"
	"github.com/Faultbox/midgard-ro/internal/obslog"
	"github.com/Faultbox/midgard-ro/leaflod"
	"github.com/Faultbox/midgard-ro/leafpreset"
	"github.com/Faultbox/midgard-ro/leafshape"
	"github.com/Faultbox/midgard-ro/pkg/geom"
	"github.com/Faultbox/midgard-ro/pkg/mesh"
	"github.com/Faultbox/midgard-ro/pkg/property"
	"github.com/Faultbox/midgard-ro/treefunc"
	"github.com/Faultbox/midgard-ro/treemesh"
	"github.com/Faultbox/midgard-ro/venation"
)

var (
	flagPreset   = flag.String("preset", "Oak", "Leaf preset name (see -list-presets)")
	flagListOnly = flag.Bool("list-presets", false, "Print every registered preset name and exit")
	flagOutDir   = flag.String("out", "", "Directory to write tree.obj/leaf.obj/card.obj (default: no mesh output)")
)

func main() {
	genconfig.ParseFlags()

	if *flagListOnly {
		fmt.Println(strings.Join(leafpreset.Names(), "\n"))
		return
	}

	cfg, err := genconfig.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		os.Exit(1)
	}
	if err := obslog.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "initializing logging: %v\n", err)
		os.Exit(1)
	}
	defer obslog.Sync()

	preset, ok := leafpreset.Get(*flagPreset)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown preset %q (see -list-presets)\n", *flagPreset)
		os.Exit(1)
	}

	treeMesh := buildTree(cfg.Engine.Seed, cfg.Engine.RadialResolution)
	obslog.Info("tree meshed", zap.Int("vertices", len(treeMesh.Vertices)), zap.Int("polygons", len(treeMesh.Polygons)))

	leafGen := &leafshape.Generator{
		Superformula: preset.Superformula,
		Margin:       preset.Margin,
		Surface:      preset.Surface,
		Resolution:   leafshape.ResolutionParams{ContourResolution: 48, Seed: cfg.Engine.Seed},
	}
	leafMesh, warnings := leafGen.Generate()
	if warnings != nil {
		obslog.Warn("leaf generation clamped parameters", zap.Error(warnings))
	}
	obslog.Info("leaf generated", zap.String("preset", preset.Name), zap.Int("vertices", len(leafMesh.Vertices)))

	if veinGen := preset.VenationGenerator(cfg.Engine.Seed, 0.03, 0.08, 0.01, cfg.Engine.VenationMaxIterations, venation.Open); veinGen != nil {
		veins := veinGen.GenerateVeins(leafGen.Contour())
		venation.ComputeVeinDistances(leafMesh, veins)
		obslog.Info("venation grown", zap.Int("nodes", len(veins)))
	}

	lod := leaflod.Generator{}
	card := lod.GenerateCard(leafMesh)
	obslog.Debug("card reduced", zap.Int("vertices", len(card.Vertices)))

	fmt.Printf("tree: %d vertices, %d polygons\n", len(treeMesh.Vertices), len(treeMesh.Polygons))
	fmt.Printf("leaf (%s): %d vertices, %d polygons\n", preset.Name, len(leafMesh.Vertices), len(leafMesh.Polygons))
	fmt.Printf("card: %d vertices, %d polygons\n", len(card.Vertices), len(card.Polygons))

	if *flagOutDir != "" {
		if err := writeMeshes(*flagOutDir, treeMesh, leafMesh, card); err != nil {
			fmt.Fprintf(os.Stderr, "writing meshes: %v\n", err)
			os.Exit(1)
		}
	}
}

// buildTree runs a trunk -> branch pipeline with representative
// parameters and meshes the result. No GrowthFunction stage is added.
func buildTree(seed int64, radialResolution int) *mesh.Mesh {
	trunk := &treefunc.TrunkFunction{
		Length: 6, Resolution: 4, InitialRadius: 0.25, Taper: 0.4,
		Up: geom.Vec3{Z: 1}, Wobble: 0.05,
	}
	branch := &treefunc.BranchFunction{
		Length:      property.Random(1.2, 2.5),
		StartRadius: property.Curve(property.Linear, property.Keyframe{At: 0, Value: 0.08}, property.Keyframe{At: 1, Value: 0.02}),
		EndRadius:   0.3,
		BreakChance: 0.01,
		Resolution:  6,
		Randomness:  property.Constant(0.3),
		Flatness:    0.4,
		StartAngle:  45,
		Split:       treefunc.SplitParams{RadiusFactor: 0.6, AngleDegrees: 30, Probability: 0.05},
		Gravity:     treefunc.GravityParams{Strength: 0.8, Stiffness: 0.5, UpAttraction: 0.1},
		Distribution: treefunc.DistributionParams{
			Start: 0.3, End: 0.95, Density: 3, PhyllotaxisDegrees: 137.5,
		},
		Crown: treefunc.CrownParams{Shape: treefunc.Spherical, Height: 6, BaseSize: 0.3, AngleVariation: 20},
	}
	trunk.AddChild(branch)

	tree := &treefunc.Tree{Seed: seed, Root: trunk}
	stems := tree.ExecuteFunctions()

	resolution := radialResolution
	if resolution < 3 {
		resolution = 8
	}
	mesher := &treemesh.Mesher{RadialResolution: resolution, SmoothIterations: 2}
	return mesher.MeshTree(stems)
}

func writeMeshes(dir string, meshes ...*mesh.Mesh) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	names := []string{"tree.obj", "leaf.obj", "card.obj"}
	for i, m := range meshes {
		if i >= len(names) {
			break
		}
		if err := writeOBJ(dir+"/"+names[i], m); err != nil {
			return err
		}
	}
	return nil
}

// writeOBJ writes m as a minimal Wavefront OBJ file: vertex positions and
// polygon faces, 1-indexed per the format. Degenerate-quad triangles are
// written as 3-index faces, other polygons as 4-index faces.
func writeOBJ(path string, m *mesh.Mesh) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	for _, v := range m.Vertices {
		if _, err := fmt.Fprintf(f, "v %f %f %f\n", v.X, v.Y, v.Z); err != nil {
			return err
		}
	}
	for _, p := range m.Polygons {
		if p.IsTriangle() {
			a, b, c := p.Triangle()
			if _, err := fmt.Fprintf(f, "f %d %d %d\n", a+1, b+1, c+1); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(f, "f %d %d %d %d\n", p[0]+1, p[1]+1, p[2]+1, p[3]+1); err != nil {
			return err
		}
	}
	return nil
}
