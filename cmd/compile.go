package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mncc8337/shrimpy/scene"
	"github.com/mncc8337/shrimpy/scene/reader"
	"github.com/mncc8337/shrimpy/types"
	"github.com/urfave/cli"
)

// Compile a wavefront object file into the packed scene buffer consumed
// by the shader and write it to disk.
func CompileScene(ctx *cli.Context) error {
	setupLogging(ctx)

	sc, err := loadScene(ctx)
	if err != nil {
		return err
	}

	blob, err := sc.MarshalBinary()
	if err != nil {
		return err
	}

	outFile := ctx.String("out")
	if err = os.WriteFile(outFile, blob, 0644); err != nil {
		return fmt.Errorf("could not write %q: %v", outFile, err)
	}

	logger.Noticef("wrote %d byte scene buffer to %q", len(blob), outFile)
	logger.Noticef("scene statistics\n%s", sc.Stats())
	return nil
}

// Print storage and BVH statistics for a wavefront object file.
func SceneInfo(ctx *cli.Context) error {
	setupLogging(ctx)

	sc, err := loadScene(ctx)
	if err != nil {
		return err
	}

	var leafs, maxLeafItems int
	for _, node := range sc.BvhNodes() {
		if node.Leaf() {
			leafs++
			if int(node.TriangleCount) > maxLeafItems {
				maxLeafItems = int(node.TriangleCount)
			}
		}
	}

	logger.Noticef("scene statistics\n%s", sc.Stats())
	logger.Noticef("bvh: %d nodes, %d leafs, largest leaf holds %d triangles", len(sc.BvhNodes()), leafs, maxLeafItems)
	return nil
}

// Parse the mesh named by the command argument into a fresh scene using
// the material described by the command flags, then build the BVH.
func loadScene(ctx *cli.Context) (*scene.Scene, error) {
	if ctx.NArg() != 1 {
		return nil, errors.New("missing scene file argument")
	}

	mat, err := materialFromFlags(ctx)
	if err != nil {
		return nil, err
	}

	sc := scene.New()
	matID, err := sc.AddMaterial(mat)
	if err != nil {
		return nil, err
	}

	triangles, err := reader.ReadFile(ctx.Args().First(), matID)
	if err != nil {
		return nil, err
	}
	if err = sc.AddTriangles(triangles); err != nil {
		return nil, err
	}

	if err = sc.Build(); err != nil {
		return nil, err
	}
	return sc, nil
}

// Build the mesh material from the compile command flags.
func materialFromFlags(ctx *cli.Context) (scene.Material, error) {
	color, err := parseColor(ctx.String("color"))
	if err != nil {
		return scene.Material{}, err
	}

	var mat scene.Material
	if ior := float32(ctx.Float64("ior")); ior > 0 {
		mat = scene.DielectricMaterial(color, ior)
	} else {
		mat = scene.DiffuseMaterial(color, float32(ctx.Float64("roughness")))
	}
	mat.EmissionStrength = float32(ctx.Float64("emission"))
	return mat, nil
}

// Parse an "r,g,b" color triple.
func parseColor(arg string) (types.Vec3, error) {
	tokens := strings.Split(arg, ",")
	if len(tokens) != 3 {
		return types.Vec3{}, fmt.Errorf("unsupported color format %q; expected r,g,b", arg)
	}

	var color types.Vec3
	for idx, token := range tokens {
		val, err := strconv.ParseFloat(strings.TrimSpace(token), 32)
		if err != nil {
			return types.Vec3{}, fmt.Errorf("unsupported color format %q: %v", arg, err)
		}
		color[idx] = float32(val)
	}
	return color, nil
}
