// meshtool is a CLI utility for inspecting and converting meshes offline.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Faultbox/shadowmesh/internal/engine/lighting"
	"github.com/Faultbox/shadowmesh/internal/engine/mesh"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "validate", "check":
		cmdValidate(args)
	case "export", "x":
		cmdExport(args)
	case "light":
		cmdLight(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`meshtool - mesh inspection utility

Usage:
  meshtool <command> [options]

Commands:
  info <file>                 Show vertex, index and bounds statistics
  validate <file>...          Check that every index references a vertex
  export <file> <out.obj>     Write the deduplicated mesh as OBJ
  light [-scale s] <file>     Print a light frustum that covers the mesh

Supported inputs: .obj, .gltf, .glb

Examples:
  meshtool info models/bunny.obj
  meshtool validate models/*.obj
  meshtool export scene.glb scene.obj
  meshtool light -scale 0.1 models/bunny.obj`)
}

func mustLoad(path string) *mesh.Mesh {
	m, err := mesh.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return m
}

func cmdInfo(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: meshtool info <file>")
		os.Exit(1)
	}

	m := mustLoad(args[0])
	b := m.Bounds()
	c := b.Center()

	corners := len(m.Indices)
	ratio := 0.0
	if len(m.Vertices) > 0 {
		ratio = float64(corners) / float64(len(m.Vertices))
	}

	fmt.Printf("Mesh:      %s\n", args[0])
	fmt.Printf("Vertices:  %d\n", len(m.Vertices))
	fmt.Printf("Indices:   %d\n", len(m.Indices))
	fmt.Printf("Triangles: %d\n", m.TriangleCount())
	fmt.Printf("Reuse:     %.2f corners per vertex\n", ratio)
	fmt.Println()
	fmt.Printf("Bounds min: (%.3f, %.3f, %.3f)\n", b.Min[0], b.Min[1], b.Min[2])
	fmt.Printf("Bounds max: (%.3f, %.3f, %.3f)\n", b.Max[0], b.Max[1], b.Max[2])
	fmt.Printf("Center:     (%.3f, %.3f, %.3f)\n", c[0], c[1], c[2])
	fmt.Printf("Size:       %.3f x %.3f x %.3f\n", b.Max[0]-b.Min[0], b.Max[1]-b.Min[1], b.Max[2]-b.Min[2])
}

func cmdValidate(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: meshtool validate <file>...")
		os.Exit(1)
	}

	failed := 0
	for _, path := range args {
		m, err := mesh.Load(path)
		if err == nil {
			err = m.Validate()
		}
		if err == nil && len(m.Indices)%3 != 0 {
			err = fmt.Errorf("index count %d is not a multiple of 3", len(m.Indices))
		}
		if err != nil {
			fmt.Printf("FAIL %s: %v\n", path, err)
			failed++
			continue
		}
		fmt.Printf("ok   %s (%d triangles)\n", path, m.TriangleCount())
	}

	if failed > 0 {
		fmt.Fprintf(os.Stderr, "\n%d of %d files failed\n", failed, len(args))
		os.Exit(1)
	}
}

func cmdExport(args []string) {
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: meshtool export <file> <out.obj>")
		os.Exit(1)
	}

	m := mustLoad(args[0])
	outputPath := args[1]

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating directory: %v\n", err)
		os.Exit(1)
	}

	f, err := os.Create(outputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating file: %v\n", err)
		os.Exit(1)
	}
	if err := mesh.WriteOBJ(f, m); err != nil {
		f.Close()
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", outputPath, err)
		os.Exit(1)
	}
	if err := f.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", outputPath, err)
		os.Exit(1)
	}

	fmt.Printf("Exported: %s (%d vertices, %d triangles)\n", outputPath, len(m.Vertices), m.TriangleCount())
}

func cmdLight(args []string) {
	fs := flag.NewFlagSet("light", flag.ExitOnError)
	scale := fs.Float64("scale", 1, "Uniform scale applied to the mesh")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: meshtool light [-scale s] <file>")
		os.Exit(1)
	}

	b := mustLoad(fs.Arg(0)).Bounds()
	s := float32(*scale)
	for i := 0; i < 3; i++ {
		b.Min[i], b.Max[i] = min(b.Min[i]*s, b.Max[i]*s), max(b.Min[i]*s, b.Max[i]*s)
	}

	cfg := lighting.FitBounds(lighting.DefaultConfig(), b)
	fmt.Println("light:")
	fmt.Printf("  distance: %.3f\n", cfg.Distance)
	fmt.Printf("  half_size: %.3f\n", cfg.HalfSize)
	fmt.Printf("  near: %.3f\n", cfg.Near)
	fmt.Printf("  far: %.3f\n", cfg.Far)
}
