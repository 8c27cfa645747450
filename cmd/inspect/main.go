// Command inspect prints what a scene looks like to the pipeline without
// rendering it: camera-space bounds, zero-area triangles, facing histogram
// and projection edge cases.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	"gonum.org/v1/gonum/spatial/r3"

	"trirast/internal/config"
	"trirast/internal/geometry"
)

func main() {
	configFile := flag.String("config", "", "Path to config.json file")
	mesh := flag.String("mesh", "", "STL/OBJ/PLY file to inspect instead of the sphere")
	flag.Parse()

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	}
	cfg.Resolve(config.Flags{Mesh: *mesh})

	tris, err := cfg.Geometry()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	lo := r3.Vec{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	hi := r3.Vec{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}
	areaByDir := map[string]float64{}
	zeroArea := 0
	for _, t := range tris {
		tlo, thi := t.Bounds()
		lo = r3.Vec{X: min(lo.X, tlo.X), Y: min(lo.Y, tlo.Y), Z: min(lo.Z, tlo.Z)}
		hi = r3.Vec{X: max(hi.X, thi.X), Y: max(hi.Y, thi.Y), Z: max(hi.Z, thi.Z)}

		n := r3.Cross(r3.Sub(t.V[1], t.V[0]), r3.Sub(t.V[2], t.V[0]))
		area := 0.5 * r3.Norm(n)
		if area == 0 {
			zeroArea++
			continue
		}
		areaByDir[facing(n)] += area
	}

	fmt.Printf("Triangles: %d (zero-area: %d)\n", len(tris), zeroArea)
	fmt.Printf("  BBox: X[%.3f, %.3f] Y[%.3f, %.3f] Z[%.3f, %.3f]\n", lo.X, hi.X, lo.Y, hi.Y, lo.Z, hi.Z)
	fmt.Printf("  Size: %.3f x %.3f x %.3f\n", hi.X-lo.X, hi.Y-lo.Y, hi.Z-lo.Z)
	fmt.Println("  --- Surface area by facing ---")
	for _, d := range []string{"+Z(viewer)", "-Z(away)", "+X(right)", "-X(left)", "+Y(up)", "-Y(down)"} {
		fmt.Printf("  %s: %.3f sq units\n", d, areaByDir[d])
	}

	cam := cfg.Camera()
	if err := cam.Validate(); err != nil {
		fmt.Printf("Camera: %v\n", err)
		os.Exit(1)
	}
	screen, st := cam.Project(tris)
	slo := r3.Vec{X: math.Inf(1), Y: math.Inf(1)}
	shi := r3.Vec{X: math.Inf(-1), Y: math.Inf(-1)}
	for _, t := range screen {
		tlo, thi := t.Bounds()
		slo = r3.Vec{X: min(slo.X, tlo.X), Y: min(slo.Y, tlo.Y)}
		shi = r3.Vec{X: max(shi.X, thi.X), Y: max(shi.Y, thi.Y)}
	}
	fmt.Printf("Projection (%dx%d):\n", cam.Viewport.Width, cam.Viewport.Height)
	fmt.Printf("  Screen BBox: X[%.2f, %.2f] Y[%.2f, %.2f]\n", slo.X, shi.X, slo.Y, shi.Y)
	fmt.Printf("  Vertices: %d, behind camera: %d, non-finite: %d\n", st.Vertices, st.BehindCamera, st.NonFinite)
	if slo.X < 0 || slo.Y < 0 || shi.X > float64(cam.Viewport.Width) || shi.Y > float64(cam.Viewport.Height) {
		fmt.Println("  Note: geometry extends past the viewport and will be clipped by the bounding-box clamp")
	}
}

// facing names the dominant axis of normal n.
func facing(n geometry.Vec3) string {
	ax, ay, az := math.Abs(n.X), math.Abs(n.Y), math.Abs(n.Z)
	switch {
	case az >= ax && az >= ay:
		if n.Z > 0 {
			return "+Z(viewer)"
		}
		return "-Z(away)"
	case ax >= ay:
		if n.X > 0 {
			return "+X(right)"
		}
		return "-X(left)"
	default:
		if n.Y > 0 {
			return "+Y(up)"
		}
		return "-Y(down)"
	}
}
