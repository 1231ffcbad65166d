package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"statue-viewer/internal/bmd"
	"statue-viewer/internal/crypto"
	"statue-viewer/internal/skeleton"
	"statue-viewer/internal/texture"
)

func main() {
	decoder := flag.String("decoder", "", "Decoder key file for v15 models")
	posed := flag.Bool("pose", false, "Apply the bind pose before measuring")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: inspect [-decoder key] [-pose] model.bmd [texture ...]")
		os.Exit(2)
	}

	var key bmd.KeySource
	if *decoder != "" {
		key = func() ([crypto.LEAKeySize]byte, error) { return crypto.LoadKey(*decoder) }
	}

	failed := false
	for _, arg := range flag.Args() {
		if !isModel(arg) {
			img, err := texture.Load(arg)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Texture error %s: %v\n", arg, err)
				failed = true
				continue
			}
			fmt.Printf("\n=== %s (texture %dx%d) ===\n", arg, img.Rect.Dx(), img.Rect.Dy())
			continue
		}

		m, err := bmd.Parse(arg, key)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Parse error %s: %v\n", arg, err)
			failed = true
			continue
		}
		if *posed {
			skeleton.ApplyBindPose(m)
		}
		fmt.Printf("\n=== %s %q (v%d meshes=%d bones=%d) ===\n", arg, m.Name, m.Version, len(m.Meshes), len(m.Bones))
		printMeshes(m.Meshes)
		printBones(m.Bones)
	}
	if failed {
		os.Exit(1)
	}
}

func isModel(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".bmd")
}

func printMeshes(meshes []bmd.Mesh) {
	for i, m := range meshes {
		quads := 0
		for _, t := range m.Tris {
			if t.Polygon == 4 {
				quads++
			}
		}
		fmt.Printf("  Mesh[%d]: verts=%d normals=%d uvs=%d tris=%d (quads=%d) texture=%q\n",
			i, len(m.Verts), len(m.Normals), len(m.UVs), len(m.Tris), quads, m.TexPath)
		if len(m.Verts) == 0 {
			continue
		}

		minV := [3]float64{math.Inf(1), math.Inf(1), math.Inf(1)}
		maxV := [3]float64{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
		for _, v := range m.Verts {
			for k := 0; k < 3; k++ {
				minV[k] = math.Min(minV[k], float64(v[k]))
				maxV[k] = math.Max(maxV[k], float64(v[k]))
			}
		}
		fmt.Printf("    BBox: X[%.1f, %.1f] Y[%.1f, %.1f] Z[%.1f, %.1f]\n",
			minV[0], maxV[0], minV[1], maxV[1], minV[2], maxV[2])
		fmt.Printf("    Size: %.1f x %.1f x %.1f\n", maxV[0]-minV[0], maxV[1]-minV[1], maxV[2]-minV[2])
	}
}

func printBones(bones []bmd.Bone) {
	for i, b := range bones {
		if b.IsDummy {
			fmt.Printf("  Bone[%d]: dummy\n", i)
			continue
		}
		p, r := b.BindPosition, b.BindRotation
		fmt.Printf("  Bone[%d] %q parent=%d pos=(%.2f,%.2f,%.2f) rot=(%.3f,%.3f,%.3f)\n",
			i, b.Name, b.Parent, p[0], p[1], p[2], r[0], r[1], r[2])
	}
}
