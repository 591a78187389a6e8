package sat

import (
	"testing"

	"github.com/akmonengine/ballast/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// floorQuad returns a two-triangle quad at height y with upward normals
func floorQuad(halfSize, y float64) *actor.MeshData {
	return actor.NewMeshData(
		[]mgl64.Vec3{
			{-halfSize, y, -halfSize},
			{-halfSize, y, halfSize},
			{halfSize, y, halfSize},
			{halfSize, y, -halfSize},
		},
		[]uint32{0, 1, 3, 1, 2, 3},
	)
}

func TestAABBMesh(t *testing.T) {
	down := mgl64.Vec3{0, -1, 0}
	lowered := actor.NewTransform()
	lowered.Position = mgl64.Vec3{0, -0.99, 0}
	far := actor.NewTransform()
	far.Position = mgl64.Vec3{100, 0, 0}

	tests := []struct {
		name      string
		mesh      *actor.MeshData
		transform actor.Transform
		flip      bool
		wantOK    bool
		want      mgl64.Vec3
	}{
		{"floor below the box", floorQuad(5, -0.99), actor.NewTransform(), false, true, mgl64.Vec3{0, 0.01, 0}},
		{"floor placed by transform", floorQuad(5, 0), lowered, false, true, mgl64.Vec3{0, 0.01, 0}},
		{"flipped winding faces down", floorQuad(5, -0.99), actor.NewTransform(), true, false, mgl64.Vec3{}},
		{"bounds rejected", floorQuad(5, -0.99), far, false, false, mgl64.Vec3{}},
		{"nil mesh", nil, actor.NewTransform(), false, false, mgl64.Vec3{}},
		{"empty mesh", actor.NewMeshData(nil, nil), actor.NewTransform(), false, false, mgl64.Vec3{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			correction, ok := AABBMesh(unitBox(), tt.mesh, tt.transform, tt.flip, down, DefaultTriangleMargin)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v (correction %v)", ok, tt.wantOK, correction)
			}
			if ok && !vecNear(correction, tt.want, 1e-9) {
				t.Errorf("correction = %v, want %v", correction, tt.want)
			}
		})
	}
}

func TestAABBMesh_SkipsMalformedTriangles(t *testing.T) {
	mesh := floorQuad(5, -0.99)
	mesh.Indices = append([]uint32{0, 1, 42}, mesh.Indices...)
	mesh.Indices = append(mesh.Indices, 0)

	correction, ok := AABBMesh(unitBox(), mesh, actor.NewTransform(), false, mgl64.Vec3{0, -1, 0}, DefaultTriangleMargin)
	if !ok || !vecNear(correction, mgl64.Vec3{0, 0.01, 0}, 1e-9) {
		t.Errorf("correction = %v, %v, want {0 0.01 0}", correction, ok)
	}
}

func TestAABBMesh_ShallowestTriangleWins(t *testing.T) {
	// two stacked floors, the upper one penetrates deeper
	mesh := actor.NewMeshData(
		[]mgl64.Vec3{
			{-5, -0.99, -5}, {-5, -0.99, 5}, {5, -0.99, -5},
			{-5, -0.5, -5}, {-5, -0.5, 5}, {5, -0.5, -5},
		},
		[]uint32{3, 4, 5, 0, 1, 2},
	)

	correction, ok := AABBMesh(unitBox(), mesh, actor.NewTransform(), false, mgl64.Vec3{0, -1, 0}, DefaultTriangleMargin)
	if !ok || !vecNear(correction, mgl64.Vec3{0, 0.01, 0}, 1e-9) {
		t.Errorf("correction = %v, %v, want {0 0.01 0}", correction, ok)
	}
}

func BenchmarkAABBMesh(b *testing.B) {
	// 32x32 grid of quads
	const n = 32
	vertices := make([]mgl64.Vec3, 0, (n+1)*(n+1))
	for z := 0; z <= n; z++ {
		for x := 0; x <= n; x++ {
			vertices = append(vertices, mgl64.Vec3{float64(x - n/2), -0.99, float64(z - n/2)})
		}
	}
	indices := make([]uint32, 0, n*n*6)
	for z := 0; z < n; z++ {
		for x := 0; x < n; x++ {
			i := uint32(z*(n+1) + x)
			indices = append(indices, i, i+uint32(n+1), i+1, i+1, i+uint32(n+1), i+uint32(n+2))
		}
	}
	mesh := actor.NewMeshData(vertices, indices)
	box := unitBox()
	down := mgl64.Vec3{0, -1, 0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		AABBMesh(box, mesh, actor.NewTransform(), false, down, DefaultTriangleMargin)
	}
}
