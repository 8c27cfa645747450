package geometry

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"
)

// writeSTL writes a binary STL file holding the given triangles.
func writeSTL(t *testing.T, path string, tris [][3][3]float32) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	var header [80]byte
	if err := binary.Write(f, binary.LittleEndian, header); err != nil {
		t.Fatal(err)
	}
	if err := binary.Write(f, binary.LittleEndian, uint32(len(tris))); err != nil {
		t.Fatal(err)
	}
	for _, tri := range tris {
		rec := struct {
			Normal [3]float32
			V      [3][3]float32
			Attr   uint16
		}{Normal: [3]float32{0, 0, 1}, V: tri}
		if err := binary.Write(f, binary.LittleEndian, rec); err != nil {
			t.Fatal(err)
		}
	}
}

func TestLoadMesh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tri.stl")
	writeSTL(t, path, [][3][3]float32{
		{{0, 0, 0}, {2, 0, 0}, {0, 2, 0}},
	})

	tris, err := LoadMesh(path, Placement{Scale: 1, ZOffset: -5})
	if err != nil {
		t.Fatal(err)
	}
	if len(tris) != 1 {
		t.Fatalf("len = %d, want 1", len(tris))
	}
	lo, hi := tris[0].Bounds()
	const eps = 1e-6
	if math.Abs(lo.X+1) > eps || math.Abs(hi.X-1) > eps {
		t.Errorf("x range = [%g, %g], want [-1, 1]", lo.X, hi.X)
	}
	for k, v := range tris[0].V {
		if math.Abs(v.Z+5) > eps {
			t.Errorf("vertex %d z = %g, want -5", k, v.Z)
		}
	}
}

func TestLoadMeshMissing(t *testing.T) {
	_, err := LoadMesh(filepath.Join(t.TempDir(), "nope.stl"), DefaultPlacement())
	if err == nil {
		t.Fatal("LoadMesh on a missing file returned nil error")
	}
}
