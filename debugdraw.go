package ballast

import (
	"slices"

	"github.com/akmonengine/ballast/actor"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

const boxLineVertices = 24

// DebugVertex is a render-facing vertex, Color is packed as 0xAABBGGRR
type DebugVertex struct {
	Position mgl32.Vec3
	Color    uint32
}

// DebugRenderData holds a line list of box wireframes and a triangle list of meshes.
// Pass the same value every frame to reuse its buffers.
type DebugRenderData struct {
	Lines     []DebugVertex
	Triangles []DebugVertex
}

// debugRange is the slice of the output buffers owned by one body
type debugRange struct {
	body  *actor.Body
	start int
}

// GetDebugRenderData fills data with the wireframes of the registered bodies.
// Bodies are written into disjoint ranges, spread over Config.Workers goroutines.
func (w *World) GetDebugRenderData(data *DebugRenderData) {
	lines, triangles := 0, 0
	w.debugRanges = w.debugRanges[:0]

	for _, body := range w.bodies {
		switch shape := body.Shape.(type) {
		case *actor.Box:
			w.debugRanges = append(w.debugRanges, debugRange{body: body, start: lines})
			lines += boxLineVertices
		case *actor.Mesh:
			w.debugRanges = append(w.debugRanges, debugRange{body: body, start: triangles})
			triangles += 3 * validTriangles(shape.Data)
		}
	}

	data.Lines = slices.Grow(data.Lines[:0], lines)[:lines]
	data.Triangles = slices.Grow(data.Triangles[:0], triangles)[:triangles]

	task(w.config.Workers, w.debugRanges, func(_ int, r debugRange) {
		color := r.body.DebugColorOrDefault().Packed()

		switch shape := r.body.Shape.(type) {
		case *actor.Box:
			writeBox(data.Lines[r.start:r.start+boxLineVertices], shape, r.body.Transform, color)
		case *actor.Mesh:
			writeMesh(data.Triangles[r.start:], shape.Data, r.body.Transform, r.body.FlipWinding, color)
		}
	})
}

func writeBox(out []DebugVertex, box *actor.Box, transform actor.Transform, color uint32) {
	corners := actor.NewAABBFromCenter(mgl64.Vec3{}, box.HalfExtents).Corners()
	for i := range corners {
		corners[i] = transform.Apply(corners[i])
	}

	for i, edge := range box.Edges() {
		out[2*i] = debugVertex(corners[edge[0]], color)
		out[2*i+1] = debugVertex(corners[edge[1]], color)
	}
}

func writeMesh(out []DebugVertex, mesh *actor.MeshData, transform actor.Transform, flip bool, color uint32) {
	n := 0
	for i := 0; i < mesh.TriangleCount(); i++ {
		a, b, c, ok := mesh.Triangle(i)
		if !ok {
			continue
		}
		if flip {
			b, c = c, b
		}

		out[n] = debugVertex(transform.Apply(a), color)
		out[n+1] = debugVertex(transform.Apply(b), color)
		out[n+2] = debugVertex(transform.Apply(c), color)
		n += 3
	}
}

func validTriangles(mesh *actor.MeshData) int {
	count := 0
	for i := 0; i < mesh.TriangleCount(); i++ {
		if _, _, _, ok := mesh.Triangle(i); ok {
			count++
		}
	}

	return count
}

func debugVertex(position mgl64.Vec3, color uint32) DebugVertex {
	return DebugVertex{
		Position: mgl32.Vec3{float32(position[0]), float32(position[1]), float32(position[2])},
		Color:    color,
	}
}
