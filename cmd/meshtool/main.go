// meshtool is a CLI utility for inspecting OBJ/MTL assets and scene files
// without opening a window.
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Faultbox/sceneview/internal/assets"
	"github.com/Faultbox/sceneview/internal/engine/model"
	"github.com/Faultbox/sceneview/internal/engine/texture"
	"github.com/Faultbox/sceneview/internal/logger"
	"github.com/Faultbox/sceneview/internal/scene"
	"github.com/Faultbox/sceneview/pkg/formats"
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
	case "scene":
		cmdScene(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`meshtool - OBJ/MTL and scene file utility

Usage:
  meshtool <command> [options]

Commands:
  info [-v] <file.obj>               Show mesh statistics and material
  validate <file.obj|file.mtl>...    Parse files and report warnings
  scene [-root dir] <scene.cfg>      Summarize a scene configuration

Examples:
  meshtool info models/cube.obj
  meshtool validate models/*.obj models/*.mtl
  meshtool scene -root assets scene.cfg`)
}

func newLoader(roots ...string) *model.Loader {
	m := assets.NewManager(roots...)
	return model.NewLoader(m, texture.NewLoader(m))
}

func cmdInfo(args []string) {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	verbose := fs.Bool("v", false, "Log loader activity to stdout")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: meshtool info [-v] <file.obj>")
		os.Exit(1)
	}
	if *verbose {
		_ = logger.Init("debug", "")
	} else {
		logger.InitNop()
	}

	mesh, err := newLoader().LoadMesh(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	size := mesh.Bounds.Size()
	mat := mesh.Material
	fmt.Printf("Mesh:      %s (%s)\n", mesh.Name, mesh.Source)
	fmt.Printf("Vertices:  %d\n", len(mesh.Vertices))
	fmt.Printf("Indices:   %d\n", len(mesh.Indices))
	fmt.Printf("Triangles: %d\n", mesh.TriangleCount())
	fmt.Printf("Bounds:    min(%.3f, %.3f, %.3f) max(%.3f, %.3f, %.3f)\n",
		mesh.Bounds.Min.X, mesh.Bounds.Min.Y, mesh.Bounds.Min.Z,
		mesh.Bounds.Max.X, mesh.Bounds.Max.Y, mesh.Bounds.Max.Z)
	fmt.Printf("Size:      %.3f x %.3f x %.3f\n", size.X, size.Y, size.Z)
	fmt.Println()
	fmt.Println("Material:")
	fmt.Printf("  Ka %.3f %.3f %.3f\n", mat.Ambient.X, mat.Ambient.Y, mat.Ambient.Z)
	fmt.Printf("  Kd %.3f %.3f %.3f\n", mat.Diffuse.X, mat.Diffuse.Y, mat.Diffuse.Z)
	fmt.Printf("  Ks %.3f %.3f %.3f\n", mat.Specular.X, mat.Specular.Y, mat.Specular.Z)
	fmt.Printf("  Ns %.1f\n", mat.Shininess)
	switch {
	case mat.HasTexture:
		b := mat.Texture.Bounds()
		fmt.Printf("  Texture %s (%dx%d)\n", mat.TexturePath, b.Dx(), b.Dy())
	case mat.TexturePath != "":
		fmt.Printf("  Texture %s (failed to load)\n", mat.TexturePath)
	}

	printWarnings(mesh.Warnings)
}

func cmdValidate(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: meshtool validate <file.obj|file.mtl>...")
		os.Exit(1)
	}
	logger.InitNop()

	failed := 0
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Printf("FAIL  %s: %v\n", path, err)
			failed++
			continue
		}

		var warnings error
		switch strings.ToLower(filepath.Ext(path)) {
		case ".obj":
			obj, err := formats.ParseOBJ(bytes.NewReader(data))
			if err != nil {
				fmt.Printf("FAIL  %s: %v\n", path, err)
				failed++
				continue
			}
			warnings = obj.Warnings
		case ".mtl":
			mtl, err := formats.ParseMTL(bytes.NewReader(data))
			if err != nil {
				fmt.Printf("FAIL  %s: %v\n", path, err)
				failed++
				continue
			}
			warnings = mtl.Warnings
		default:
			fmt.Printf("SKIP  %s: unknown extension\n", path)
			continue
		}

		list := formats.Warnings(warnings)
		if len(list) == 0 {
			fmt.Printf("OK    %s\n", path)
			continue
		}
		fmt.Printf("WARN  %s: %d warning(s)\n", path, len(list))
		for _, w := range list {
			fmt.Printf("      %v\n", w)
		}
	}

	if failed > 0 {
		os.Exit(1)
	}
}

func cmdScene(args []string) {
	fs := flag.NewFlagSet("scene", flag.ExitOnError)
	root := fs.String("root", "", "Extra asset search root")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: meshtool scene [-root dir] <scene.cfg>")
		os.Exit(1)
	}
	logger.InitNop()

	var roots []string
	if *root != "" {
		roots = append(roots, *root)
	}

	s, err := scene.LoadConfig(fs.Arg(0), newLoader(roots...))
	if err != nil {
		if errors.Is(err, assets.ErrFileNotFound) {
			fmt.Fprintf(os.Stderr, "Scene file not found: %s\n", fs.Arg(0))
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}

	cam := s.Camera
	fmt.Printf("Scene:   %s\n", s.Source)
	fmt.Printf("Camera:  pos(%.2f, %.2f, %.2f) yaw %.1f pitch %.1f fov %.1f\n",
		cam.Position.X, cam.Position.Y, cam.Position.Z, cam.Yaw, cam.Pitch, cam.FOV)
	fmt.Printf("Lights:  %d\n", len(s.Lights))
	fmt.Printf("Objects: %d\n", len(s.Meshes))
	for _, m := range s.Meshes {
		t := m.Transform
		fmt.Printf("  %-16s %6d tris  at (%.2f, %.2f, %.2f) scale %.2f",
			m.Name, m.TriangleCount(), t.Translation.X, t.Translation.Y, t.Translation.Z, t.Scale)
		if n := m.Trajectory.Len(); n > 0 {
			fmt.Printf("  path %d pts @ %.1f", n, m.Trajectory.Speed())
		}
		fmt.Println()
	}

	printWarnings(formats.Warnings(s.Warnings))
}

func printWarnings(warnings []error) {
	if len(warnings) == 0 {
		return
	}
	fmt.Println()
	fmt.Printf("Warnings (%d):\n", len(warnings))
	for _, w := range warnings {
		fmt.Printf("  %v\n", w)
	}
}
